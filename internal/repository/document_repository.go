package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
	"github.com/ojtrack/ojtrack-api/pkg/store"
)

// DocumentRepository provides record-store access for uploaded documents.
type DocumentRepository struct {
	store *store.Store
}

// NewDocumentRepository creates the repository.
func NewDocumentRepository(s *store.Store) *DocumentRepository {
	return &DocumentRepository{store: s}
}

// Create appends a new document, assigning id and upload date.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) (*models.Document, error) {
	var created models.Document
	err := r.store.Do(store.PartitionDocuments, func() error {
		var docs []models.Document
		r.store.Read(ctx, store.PartitionDocuments, &docs)

		record := *doc
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		if record.UploadDate.IsZero() {
			record.UploadDate = time.Now().UTC()
		}
		if record.Status == "" {
			record.Status = models.DocumentStatusPending
		}

		docs = append(docs, record)
		if !r.store.Write(ctx, store.PartitionDocuments, docs) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to save document")
		}
		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID returns a document by identifier.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	var docs []models.Document
	r.store.Read(ctx, store.PartitionDocuments, &docs)
	for i := range docs {
		if docs[i].ID == id {
			doc := docs[i]
			return &doc, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
}

// ListByUser returns a user's documents, newest upload first.
func (r *DocumentRepository) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	var docs []models.Document
	r.store.Read(ctx, store.PartitionDocuments, &docs)
	filtered := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if d.UserID == userID {
			filtered = append(filtered, d)
		}
	}
	sortDocumentsDesc(filtered)
	return filtered, nil
}

// ListAll returns every document, newest upload first.
func (r *DocumentRepository) ListAll(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	r.store.Read(ctx, store.PartitionDocuments, &docs)
	sortDocumentsDesc(docs)
	return docs, nil
}

// ListForReview returns pending documents, newest upload first.
func (r *DocumentRepository) ListForReview(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	r.store.Read(ctx, store.PartitionDocuments, &docs)
	filtered := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if d.Status == models.DocumentStatusPending {
			filtered = append(filtered, d)
		}
	}
	sortDocumentsDesc(filtered)
	return filtered, nil
}

// Review transitions a pending document to approved or rejected, stamping the
// reviewer and approval date. Reviewed documents conflict on re-review.
func (r *DocumentRepository) Review(ctx context.Context, id string, status models.DocumentStatus, reviewerID, comments string) (*models.Document, error) {
	if !status.Finalized() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "review status must be approved or rejected")
	}
	var updated models.Document
	err := r.store.Do(store.PartitionDocuments, func() error {
		var docs []models.Document
		r.store.Read(ctx, store.PartitionDocuments, &docs)

		idx := -1
		for i := range docs {
			if docs[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		if docs[idx].Status != models.DocumentStatusPending {
			return appErrors.Clone(appErrors.ErrConflict, "only pending documents can be reviewed")
		}

		now := time.Now().UTC()
		docs[idx].Status = status
		docs[idx].ApprovedBy = reviewerID
		docs[idx].ApprovalDate = &now
		docs[idx].Comments = comments

		if !r.store.Write(ctx, store.PartitionDocuments, docs) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to update document status")
		}
		updated = docs[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a document permanently.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	return r.store.Do(store.PartitionDocuments, func() error {
		var docs []models.Document
		r.store.Read(ctx, store.PartitionDocuments, &docs)

		filtered := docs[:0:0]
		for _, d := range docs {
			if d.ID != id {
				filtered = append(filtered, d)
			}
		}
		if len(filtered) == len(docs) {
			return appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		if !r.store.Write(ctx, store.PartitionDocuments, filtered) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to delete document")
		}
		return nil
	})
}

func sortDocumentsDesc(docs []models.Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UploadDate.After(docs[j].UploadDate)
	})
}
