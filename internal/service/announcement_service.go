package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
)

type announcementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error)
	GetByID(ctx context.Context, id string) (*models.Announcement, error)
	List(ctx context.Context, targetRole string) ([]models.Announcement, error)
	Update(ctx context.Context, id string, updates models.AnnouncementUpdate) (*models.Announcement, error)
	Delete(ctx context.Context, id string) error
}

type announcementAuthorLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// CreateAnnouncementInput is the payload for publishing an announcement.
type CreateAnnouncementInput struct {
	Title       string                      `json:"title" validate:"required"`
	Content     string                      `json:"content" validate:"required"`
	TargetRoles []string                    `json:"targetRoles" validate:"required,min=1"`
	Priority    models.AnnouncementPriority `json:"priority" validate:"required"`
	Attachments []string                    `json:"attachments"`
}

// AnnouncementService provides announcement use cases.
type AnnouncementService struct {
	repo      announcementRepository
	users     announcementAuthorLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnnouncementService constructs an AnnouncementService.
func NewAnnouncementService(repo announcementRepository, users announcementAuthorLookup, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AnnouncementService{repo: repo, users: users, validator: validate, logger: logger}
}

// Create publishes an announcement authored by the actor. The author's name
// is snapshotted at creation time; later renames do not propagate, so the
// notice keeps showing the name it was published under.
func (s *AnnouncementService) Create(ctx context.Context, actorID string, input CreateAnnouncementInput) (*models.Announcement, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid announcement payload")
	}

	author, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &models.Announcement{
		Title:       input.Title,
		Content:     input.Content,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		TargetRoles: input.TargetRoles,
		Priority:    input.Priority,
		IsActive:    true,
		Attachments: input.Attachments,
	})
}

// Get returns one announcement.
func (s *AnnouncementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns active announcements visible to the given role, newest first.
// An empty role returns every active announcement.
func (s *AnnouncementService) List(ctx context.Context, targetRole string) ([]models.Announcement, error) {
	return s.repo.List(ctx, targetRole)
}

// Update shallow-merges fields onto an announcement.
func (s *AnnouncementService) Update(ctx context.Context, id string, updates models.AnnouncementUpdate) (*models.Announcement, error) {
	return s.repo.Update(ctx, id, updates)
}

// Deactivate soft-deletes an announcement; list results stop including it but
// the record stays in the partition.
func (s *AnnouncementService) Deactivate(ctx context.Context, id string) (*models.Announcement, error) {
	inactive := false
	return s.repo.Update(ctx, id, models.AnnouncementUpdate{IsActive: &inactive})
}

// Delete removes an announcement permanently.
func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
