package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
)

type logbookRepository interface {
	Create(ctx context.Context, entry *models.LogbookEntry) (*models.LogbookEntry, error)
	GetByID(ctx context.Context, id string) (*models.LogbookEntry, error)
	ListByUser(ctx context.Context, userID string) ([]models.LogbookEntry, error)
	ListAll(ctx context.Context) ([]models.LogbookEntry, error)
	ListForReview(ctx context.Context) ([]models.LogbookEntry, error)
	Update(ctx context.Context, id string, updates models.LogbookUpdate) (*models.LogbookEntry, error)
	Review(ctx context.Context, id string, status models.LogbookStatus, feedback string) (*models.LogbookEntry, error)
	BulkApprove(ctx context.Context, ids []string) ([]models.LogbookEntry, error)
	Delete(ctx context.Context, id string) error
}

// CreateLogbookInput is the payload for logging a day's work.
type CreateLogbookInput struct {
	Date        time.Time            `json:"date" validate:"required"`
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description" validate:"required"`
	Activities  []string             `json:"activities"`
	HoursWorked int                  `json:"hoursWorked" validate:"gte=0"`
	Attachments []string             `json:"attachments"`
	Status      models.LogbookStatus `json:"status"`
}

// ReviewInput carries a review decision.
type ReviewInput struct {
	Status   models.LogbookStatus `json:"status" validate:"required"`
	Feedback string               `json:"feedback"`
}

// BulkApproveInput lists the entry ids to approve.
type BulkApproveInput struct {
	EntryIDs []string `json:"entryIds" validate:"required,min=1"`
}

// LogbookService provides logbook use cases scoped to the acting user.
type LogbookService struct {
	repo      logbookRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLogbookService constructs a LogbookService.
func NewLogbookService(repo logbookRepository, validate *validator.Validate, logger *zap.Logger) *LogbookService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &LogbookService{repo: repo, validator: validate, logger: logger}
}

// Create logs a new entry owned by the actor. Entries start as drafts unless
// explicitly submitted.
func (s *LogbookService) Create(ctx context.Context, actorID string, input CreateLogbookInput) (*models.LogbookEntry, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid logbook payload")
	}
	status := input.Status
	switch status {
	case "":
		status = models.LogbookStatusDraft
	case models.LogbookStatusDraft, models.LogbookStatusSubmitted:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "new entries must be draft or submitted")
	}

	return s.repo.Create(ctx, &models.LogbookEntry{
		UserID:      actorID,
		Date:        input.Date,
		Title:       input.Title,
		Description: input.Description,
		Activities:  input.Activities,
		HoursWorked: input.HoursWorked,
		Attachments: input.Attachments,
		Status:      status,
	})
}

// Get returns one entry, with students restricted to their own.
func (s *LogbookService) Get(ctx context.Context, actor *models.JWTClaims, id string) (*models.LogbookEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleStudent && entry.UserID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "")
	}
	return entry, nil
}

// ListMine returns the actor's entries, newest first.
func (s *LogbookService) ListMine(ctx context.Context, actorID string) ([]models.LogbookEntry, error) {
	return s.repo.ListByUser(ctx, actorID)
}

// ListByUser returns another user's entries for reviewer roles.
func (s *LogbookService) ListByUser(ctx context.Context, userID string) ([]models.LogbookEntry, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every entry for coordinators.
func (s *LogbookService) ListAll(ctx context.Context) ([]models.LogbookEntry, error) {
	return s.repo.ListAll(ctx)
}

// ListForReview returns the submitted entries awaiting review.
func (s *LogbookService) ListForReview(ctx context.Context) ([]models.LogbookEntry, error) {
	return s.repo.ListForReview(ctx)
}

// Update shallow-merges fields onto an entry the actor owns.
func (s *LogbookService) Update(ctx context.Context, actor *models.JWTClaims, id string, updates models.LogbookUpdate) (*models.LogbookEntry, error) {
	if updates.HoursWorked != nil && *updates.HoursWorked < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "hoursWorked must not be negative")
	}
	if actor.Role == models.RoleStudent {
		entry, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if entry.UserID != actor.UserID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "")
		}
	}
	return s.repo.Update(ctx, id, updates)
}

// Review applies an approve or reject decision to a submitted entry.
func (s *LogbookService) Review(ctx context.Context, id string, input ReviewInput) (*models.LogbookEntry, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}
	return s.repo.Review(ctx, id, input.Status, input.Feedback)
}

// BulkApprove approves each reviewable entry among the given ids. Ids that do
// not resolve to a submitted entry are skipped, not reported as failures.
func (s *LogbookService) BulkApprove(ctx context.Context, input BulkApproveInput) ([]models.LogbookEntry, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk approve payload")
	}
	return s.repo.BulkApprove(ctx, input.EntryIDs)
}

// Delete removes an entry the actor owns.
func (s *LogbookService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	if actor.Role == models.RoleStudent {
		entry, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if entry.UserID != actor.UserID {
			return appErrors.Clone(appErrors.ErrForbidden, "")
		}
	}
	return s.repo.Delete(ctx, id)
}
