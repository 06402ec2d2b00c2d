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

// ContactRepository provides record-store access for contact submissions.
type ContactRepository struct {
	store *store.Store
}

// NewContactRepository creates the repository.
func NewContactRepository(s *store.Store) *ContactRepository {
	return &ContactRepository{store: s}
}

// Create appends a new submission. Status always starts at "new".
func (r *ContactRepository) Create(ctx context.Context, submission *models.ContactSubmission) (*models.ContactSubmission, error) {
	var created models.ContactSubmission
	err := r.store.Do(store.PartitionContact, func() error {
		var submissions []models.ContactSubmission
		r.store.Read(ctx, store.PartitionContact, &submissions)

		record := *submission
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		if record.Timestamp.IsZero() {
			record.Timestamp = time.Now().UTC()
		}
		record.Status = models.ContactStatusNew

		submissions = append(submissions, record)
		if !r.store.Write(ctx, store.PartitionContact, submissions) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to save contact submission")
		}
		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID returns a submission by identifier.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.ContactSubmission, error) {
	var submissions []models.ContactSubmission
	r.store.Read(ctx, store.PartitionContact, &submissions)
	for i := range submissions {
		if submissions[i].ID == id {
			submission := submissions[i]
			return &submission, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "contact submission not found")
}

// List returns every submission, newest first.
func (r *ContactRepository) List(ctx context.Context) ([]models.ContactSubmission, error) {
	var submissions []models.ContactSubmission
	r.store.Read(ctx, store.PartitionContact, &submissions)
	sort.SliceStable(submissions, func(i, j int) bool {
		return submissions[i].Timestamp.After(submissions[j].Timestamp)
	})
	return submissions, nil
}

// SetStatus moves a submission along its handling lifecycle, recording the
// response when one is provided.
func (r *ContactRepository) SetStatus(ctx context.Context, id string, status models.ContactStatus, response, respondedBy string) (*models.ContactSubmission, error) {
	var updated models.ContactSubmission
	err := r.store.Do(store.PartitionContact, func() error {
		var submissions []models.ContactSubmission
		r.store.Read(ctx, store.PartitionContact, &submissions)

		idx := -1
		for i := range submissions {
			if submissions[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return appErrors.Clone(appErrors.ErrNotFound, "contact submission not found")
		}

		submissions[idx].Status = status
		if response != "" {
			now := time.Now().UTC()
			submissions[idx].Response = response
			submissions[idx].RespondedBy = respondedBy
			submissions[idx].RespondedAt = &now
		}

		if !r.store.Write(ctx, store.PartitionContact, submissions) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to update contact submission")
		}
		updated = submissions[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a submission permanently.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	return r.store.Do(store.PartitionContact, func() error {
		var submissions []models.ContactSubmission
		r.store.Read(ctx, store.PartitionContact, &submissions)

		filtered := submissions[:0:0]
		for _, s := range submissions {
			if s.ID != id {
				filtered = append(filtered, s)
			}
		}
		if len(filtered) == len(submissions) {
			return appErrors.Clone(appErrors.ErrNotFound, "contact submission not found")
		}
		if !r.store.Write(ctx, store.PartitionContact, filtered) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to delete contact submission")
		}
		return nil
	})
}
