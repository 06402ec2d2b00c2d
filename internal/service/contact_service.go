package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
)

type contactRepository interface {
	Create(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error)
	GetByID(ctx context.Context, id string) (*models.ContactSubmission, error)
	List(ctx context.Context) ([]models.ContactSubmission, error)
	SetStatus(ctx context.Context, id string, status models.ContactStatus, response, respondedBy string) (*models.ContactSubmission, error)
	Delete(ctx context.Context, id string) error
}

// SubmitContactInput is the public contact-form payload.
type SubmitContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// RespondContactInput carries an admin's reply to a submission.
type RespondContactInput struct {
	Response string `json:"response" validate:"required"`
}

// ContactService provides contact-form use cases.
type ContactService struct {
	repo      contactRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContactService constructs a ContactService.
func NewContactService(repo contactRepository, validate *validator.Validate, logger *zap.Logger) *ContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ContactService{repo: repo, validator: validate, logger: logger}
}

// Submit records a new contact-form submission.
func (s *ContactService) Submit(ctx context.Context, input SubmitContactInput) (*models.ContactSubmission, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid contact payload")
	}
	return s.repo.Create(ctx, &models.ContactSubmission{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
	})
}

// List returns every submission, newest first.
func (s *ContactService) List(ctx context.Context) ([]models.ContactSubmission, error) {
	return s.repo.List(ctx)
}

// MarkRead flags a submission as read.
func (s *ContactService) MarkRead(ctx context.Context, id string) (*models.ContactSubmission, error) {
	return s.repo.SetStatus(ctx, id, models.ContactStatusRead, "", "")
}

// Respond records a reply and marks the submission responded.
func (s *ContactService) Respond(ctx context.Context, responderID, id string, input RespondContactInput) (*models.ContactSubmission, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid response payload")
	}
	return s.repo.SetStatus(ctx, id, models.ContactStatusResponded, input.Response, responderID)
}

// Close ends handling of a submission.
func (s *ContactService) Close(ctx context.Context, id string) (*models.ContactSubmission, error) {
	return s.repo.SetStatus(ctx, id, models.ContactStatusClosed, "", "")
}

// Delete removes a submission permanently.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
