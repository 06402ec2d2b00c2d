package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
)

type documentRepository interface {
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	GetByID(ctx context.Context, id string) (*models.Document, error)
	ListByUser(ctx context.Context, userID string) ([]models.Document, error)
	ListAll(ctx context.Context) ([]models.Document, error)
	ListForReview(ctx context.Context) ([]models.Document, error)
	Review(ctx context.Context, id string, status models.DocumentStatus, reviewerID, comments string) (*models.Document, error)
	Delete(ctx context.Context, id string) error
}

// UploadDocumentInput is the payload for registering an uploaded file. The
// file itself lives elsewhere; FileURL stays an opaque reference.
type UploadDocumentInput struct {
	Type     models.DocumentType `json:"type" validate:"required"`
	Title    string              `json:"title" validate:"required"`
	FileName string              `json:"fileName" validate:"required"`
	FileURL  string              `json:"fileUrl" validate:"required"`
}

// DocumentReviewInput carries a document review decision.
type DocumentReviewInput struct {
	Status   models.DocumentStatus `json:"status" validate:"required"`
	Comments string                `json:"comments"`
}

// DocumentService provides document use cases.
type DocumentService struct {
	repo      documentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(repo documentRepository, validate *validator.Validate, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &DocumentService{repo: repo, validator: validate, logger: logger}
}

// Upload registers a document owned by the actor, starting as pending.
func (s *DocumentService) Upload(ctx context.Context, actorID string, input UploadDocumentInput) (*models.Document, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid document payload")
	}
	if !input.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown document type")
	}

	return s.repo.Create(ctx, &models.Document{
		UserID:   actorID,
		Type:     input.Type,
		Title:    input.Title,
		FileName: input.FileName,
		FileURL:  input.FileURL,
		Status:   models.DocumentStatusPending,
	})
}

// Get returns one document, with students restricted to their own.
func (s *DocumentService) Get(ctx context.Context, actor *models.JWTClaims, id string) (*models.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleStudent && doc.UserID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "")
	}
	return doc, nil
}

// ListMine returns the actor's documents, newest upload first.
func (s *DocumentService) ListMine(ctx context.Context, actorID string) ([]models.Document, error) {
	return s.repo.ListByUser(ctx, actorID)
}

// ListByUser returns another user's documents for reviewer roles.
func (s *DocumentService) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListForReview returns pending documents awaiting review.
func (s *DocumentService) ListForReview(ctx context.Context) ([]models.Document, error) {
	return s.repo.ListForReview(ctx)
}

// Review applies an approve or reject decision to a pending document,
// stamping the acting reviewer.
func (s *DocumentService) Review(ctx context.Context, reviewerID, id string, input DocumentReviewInput) (*models.Document, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid review payload")
	}
	return s.repo.Review(ctx, id, input.Status, reviewerID, input.Comments)
}

// Delete removes a document the actor owns.
func (s *DocumentService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	if actor.Role == models.RoleStudent {
		doc, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if doc.UserID != actor.UserID {
			return appErrors.Clone(appErrors.ErrForbidden, "")
		}
	}
	return s.repo.Delete(ctx, id)
}
