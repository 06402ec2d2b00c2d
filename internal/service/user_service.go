package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
)

// assignedStudentLimit caps the demo supervisor-to-student assignment.
const assignedStudentLimit = 3

type userRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, role *models.UserRole) ([]models.User, error)
	Update(ctx context.Context, id string, updates models.UserUpdate) (*models.User, error)
	UpdateStatus(ctx context.Context, id string, status models.UserStatus) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// CreateUserInput is the admin-side user creation payload.
type CreateUserInput struct {
	Name       string            `json:"name" validate:"required"`
	Email      string            `json:"email" validate:"required,email"`
	Password   string            `json:"password" validate:"required,min=6"`
	Role       models.UserRole   `json:"role" validate:"required"`
	StudentID  string            `json:"studentId"`
	Company    string            `json:"company"`
	Department string            `json:"department"`
	Phone      string            `json:"phone"`
	Status     models.UserStatus `json:"status"`
}

// UserService provides user management use cases.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Create adds a user with a hashed password. Email uniqueness is enforced by
// the repository.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid user payload")
	}
	if !input.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user, err := s.repo.Create(ctx, &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         input.Role,
		StudentID:    input.StudentID,
		Company:      input.Company,
		Department:   input.Department,
		Phone:        input.Phone,
		Status:       input.Status,
	})
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// Get returns one user.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// List returns users, optionally filtered by role.
func (s *UserService) List(ctx context.Context, role *models.UserRole) ([]models.User, error) {
	users, err := s.repo.List(ctx, role)
	if err != nil {
		return nil, err
	}
	return sanitizeUsers(users), nil
}

// Update shallow-merges fields onto a user record.
func (s *UserService) Update(ctx context.Context, id string, updates models.UserUpdate) (*models.User, error) {
	if updates.Status != nil {
		// Lifecycle moves go through Approve/Suspend so preconditions hold.
		return nil, appErrors.Clone(appErrors.ErrValidation, "status changes must use the approve or suspend operations")
	}
	user, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// Approve activates a pending account.
func (s *UserService) Approve(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.UpdateStatus(ctx, id, models.UserStatusActive)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// Suspend deactivates an account.
func (s *UserService) Suspend(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.UpdateStatus(ctx, id, models.UserStatusSuspended)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// Delete removes a user permanently.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// AssignedStudents returns the students assigned to a supervisor. Assignment
// tracking is not modeled yet, so this returns the first few active students.
// TODO: replace with a real supervisor-student assignment once the pairing is
// captured at registration.
func (s *UserService) AssignedStudents(ctx context.Context, supervisorID string) ([]models.User, error) {
	role := models.RoleStudent
	students, err := s.repo.List(ctx, &role)
	if err != nil {
		return nil, err
	}
	active := make([]models.User, 0, len(students))
	for _, u := range students {
		if u.Status == models.UserStatusActive {
			active = append(active, u)
		}
		if len(active) == assignedStudentLimit {
			break
		}
	}
	return sanitizeUsers(active), nil
}

func sanitizeUsers(users []models.User) []models.User {
	sanitized := make([]models.User, len(users))
	for i, u := range users {
		sanitized[i] = u.Sanitized()
	}
	return sanitized
}
