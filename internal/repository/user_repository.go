package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
	"github.com/ojtrack/ojtrack-api/pkg/store"
)

// UserRepository provides record-store access for user management.
type UserRepository struct {
	store *store.Store
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// Create validates email uniqueness, assigns server-side fields and appends
// the user to the partition. A duplicate email leaves the partition untouched.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var created models.User
	err := r.store.Do(store.PartitionUsers, func() error {
		var users []models.User
		r.store.Read(ctx, store.PartitionUsers, &users)

		for i := range users {
			if users[i].Email == user.Email {
				return appErrors.Clone(appErrors.ErrConflict, "user with this email already exists")
			}
		}

		record := *user
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		if record.RegistrationDate.IsZero() {
			record.RegistrationDate = time.Now().UTC()
		}
		if record.Status == "" {
			record.Status = models.UserStatusActive
		}

		users = append(users, record)
		if !r.store.Write(ctx, store.PartitionUsers, users) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to save user data")
		}
		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID returns a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var users []models.User
	r.store.Read(ctx, store.PartitionUsers, &users)
	for i := range users {
		if users[i].ID == id {
			user := users[i]
			return &user, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

// GetByEmail returns a user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var users []models.User
	r.store.Read(ctx, store.PartitionUsers, &users)
	for i := range users {
		if users[i].Email == email {
			user := users[i]
			return &user, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
}

// List returns all users, optionally restricted to a role.
func (r *UserRepository) List(ctx context.Context, role *models.UserRole) ([]models.User, error) {
	var users []models.User
	r.store.Read(ctx, store.PartitionUsers, &users)
	if role == nil {
		return users, nil
	}
	filtered := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Role == *role {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

// Update shallow-merges the provided fields onto an existing user.
func (r *UserRepository) Update(ctx context.Context, id string, updates models.UserUpdate) (*models.User, error) {
	var updated models.User
	err := r.store.Do(store.PartitionUsers, func() error {
		var users []models.User
		r.store.Read(ctx, store.PartitionUsers, &users)

		idx := -1
		for i := range users {
			if users[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}

		applyUserUpdate(&users[idx], updates)

		if !r.store.Write(ctx, store.PartitionUsers, users) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to update user data")
		}
		updated = users[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateStatus transitions the account lifecycle state. Only active and
// pending_approval accounts may move; any other source state conflicts.
func (r *UserRepository) UpdateStatus(ctx context.Context, id string, status models.UserStatus) (*models.User, error) {
	var updated models.User
	err := r.store.Do(store.PartitionUsers, func() error {
		var users []models.User
		r.store.Read(ctx, store.PartitionUsers, &users)

		idx := -1
		for i := range users {
			if users[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}

		current := users[idx].Status
		if current == status {
			// Idempotent no-op.
			updated = users[idx]
			return nil
		}
		if current != models.UserStatusActive && current != models.UserStatusPendingApproval {
			return appErrors.Clone(appErrors.ErrConflict, "user status cannot transition from "+string(current))
		}

		users[idx].Status = status
		if !r.store.Write(ctx, store.PartitionUsers, users) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to update user status")
		}
		updated = users[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a user permanently.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return r.store.Do(store.PartitionUsers, func() error {
		var users []models.User
		r.store.Read(ctx, store.PartitionUsers, &users)

		filtered := users[:0:0]
		for _, u := range users {
			if u.ID != id {
				filtered = append(filtered, u)
			}
		}
		if len(filtered) == len(users) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		if !r.store.Write(ctx, store.PartitionUsers, filtered) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to delete user")
		}
		return nil
	})
}

func applyUserUpdate(user *models.User, updates models.UserUpdate) {
	if updates.Name != nil {
		user.Name = *updates.Name
	}
	if updates.Email != nil {
		user.Email = *updates.Email
	}
	if updates.Phone != nil {
		user.Phone = *updates.Phone
	}
	if updates.Company != nil {
		user.Company = *updates.Company
	}
	if updates.StudentID != nil {
		user.StudentID = *updates.StudentID
	}
	if updates.Department != nil {
		user.Department = *updates.Department
	}
	if updates.Status != nil {
		user.Status = *updates.Status
	}
	if updates.ProfileImage != nil {
		user.ProfileImage = *updates.ProfileImage
	}
	if updates.LastLogin != nil {
		user.LastLogin = updates.LastLogin
	}
}
