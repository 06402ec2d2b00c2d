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

// LogbookRepository provides record-store access for logbook entries.
type LogbookRepository struct {
	store *store.Store
}

// NewLogbookRepository creates the repository.
func NewLogbookRepository(s *store.Store) *LogbookRepository {
	return &LogbookRepository{store: s}
}

// Create appends a new entry, assigning id and both timestamps.
func (r *LogbookRepository) Create(ctx context.Context, entry *models.LogbookEntry) (*models.LogbookEntry, error) {
	var created models.LogbookEntry
	err := r.store.Do(store.PartitionLogbook, func() error {
		var entries []models.LogbookEntry
		r.store.Read(ctx, store.PartitionLogbook, &entries)

		record := *entry
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		now := time.Now().UTC()
		if record.CreatedAt.IsZero() {
			record.CreatedAt = now
		}
		if record.UpdatedAt.IsZero() {
			record.UpdatedAt = record.CreatedAt
		}
		if record.Status == "" {
			record.Status = models.LogbookStatusDraft
		}

		entries = append(entries, record)
		if !r.store.Write(ctx, store.PartitionLogbook, entries) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to save logbook entry")
		}
		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID returns an entry by identifier.
func (r *LogbookRepository) GetByID(ctx context.Context, id string) (*models.LogbookEntry, error) {
	var entries []models.LogbookEntry
	r.store.Read(ctx, store.PartitionLogbook, &entries)
	for i := range entries {
		if entries[i].ID == id {
			entry := entries[i]
			return &entry, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "logbook entry not found")
}

// ListByUser returns a user's entries, newest first.
func (r *LogbookRepository) ListByUser(ctx context.Context, userID string) ([]models.LogbookEntry, error) {
	var entries []models.LogbookEntry
	r.store.Read(ctx, store.PartitionLogbook, &entries)
	filtered := make([]models.LogbookEntry, 0, len(entries))
	for _, e := range entries {
		if e.UserID == userID {
			filtered = append(filtered, e)
		}
	}
	sortLogbookDesc(filtered)
	return filtered, nil
}

// ListAll returns every entry, newest first.
func (r *LogbookRepository) ListAll(ctx context.Context) ([]models.LogbookEntry, error) {
	var entries []models.LogbookEntry
	r.store.Read(ctx, store.PartitionLogbook, &entries)
	sortLogbookDesc(entries)
	return entries, nil
}

// ListForReview returns submitted entries awaiting review, newest first.
func (r *LogbookRepository) ListForReview(ctx context.Context) ([]models.LogbookEntry, error) {
	var entries []models.LogbookEntry
	r.store.Read(ctx, store.PartitionLogbook, &entries)
	filtered := make([]models.LogbookEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status == models.LogbookStatusSubmitted {
			filtered = append(filtered, e)
		}
	}
	sortLogbookDesc(filtered)
	return filtered, nil
}

// Update shallow-merges the provided fields and refreshes updatedAt. Review
// outcomes are not settable here; finalized entries reject further edits.
func (r *LogbookRepository) Update(ctx context.Context, id string, updates models.LogbookUpdate) (*models.LogbookEntry, error) {
	var updated models.LogbookEntry
	err := r.store.Do(store.PartitionLogbook, func() error {
		var entries []models.LogbookEntry
		r.store.Read(ctx, store.PartitionLogbook, &entries)

		idx := -1
		for i := range entries {
			if entries[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return appErrors.Clone(appErrors.ErrNotFound, "logbook entry not found")
		}
		if entries[idx].Status.Finalized() {
			return appErrors.Clone(appErrors.ErrConflict, "logbook entry has already been reviewed")
		}
		if updates.Status != nil && *updates.Status != models.LogbookStatusDraft && *updates.Status != models.LogbookStatusSubmitted {
			return appErrors.Clone(appErrors.ErrConflict, "review outcomes must go through the review operation")
		}

		applyLogbookUpdate(&entries[idx], updates)
		entries[idx].UpdatedAt = time.Now().UTC()

		if !r.store.Write(ctx, store.PartitionLogbook, entries) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to update logbook entry")
		}
		updated = entries[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Review transitions a submitted entry to approved or rejected and records
// feedback. Entries already finalized conflict rather than flip state.
func (r *LogbookRepository) Review(ctx context.Context, id string, status models.LogbookStatus, feedback string) (*models.LogbookEntry, error) {
	if !status.Finalized() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "review status must be approved or rejected")
	}
	var updated models.LogbookEntry
	err := r.store.Do(store.PartitionLogbook, func() error {
		var entries []models.LogbookEntry
		r.store.Read(ctx, store.PartitionLogbook, &entries)

		idx := -1
		for i := range entries {
			if entries[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return appErrors.Clone(appErrors.ErrNotFound, "logbook entry not found")
		}
		if entries[idx].Status != models.LogbookStatusSubmitted {
			return appErrors.Clone(appErrors.ErrConflict, "only submitted entries can be reviewed")
		}

		entries[idx].Status = status
		entries[idx].Feedback = feedback
		entries[idx].UpdatedAt = time.Now().UTC()

		if !r.store.Write(ctx, store.PartitionLogbook, entries) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to update logbook entry")
		}
		updated = entries[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// BulkApprove approves every reviewable entry among ids in a single
// read-modify-write of the partition. Missing ids and entries not in the
// submitted state are skipped silently; the returned slice holds only the
// entries actually updated.
func (r *LogbookRepository) BulkApprove(ctx context.Context, ids []string) ([]models.LogbookEntry, error) {
	var updated []models.LogbookEntry
	err := r.store.Do(store.PartitionLogbook, func() error {
		var entries []models.LogbookEntry
		r.store.Read(ctx, store.PartitionLogbook, &entries)

		index := make(map[string]int, len(entries))
		for i := range entries {
			index[entries[i].ID] = i
		}

		now := time.Now().UTC()
		updated = make([]models.LogbookEntry, 0, len(ids))
		for _, id := range ids {
			i, ok := index[id]
			if !ok || entries[i].Status != models.LogbookStatusSubmitted {
				continue
			}
			entries[i].Status = models.LogbookStatusApproved
			entries[i].UpdatedAt = now
			updated = append(updated, entries[i])
		}

		if len(updated) == 0 {
			return nil
		}
		if !r.store.Write(ctx, store.PartitionLogbook, entries) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to bulk approve entries")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an entry permanently.
func (r *LogbookRepository) Delete(ctx context.Context, id string) error {
	return r.store.Do(store.PartitionLogbook, func() error {
		var entries []models.LogbookEntry
		r.store.Read(ctx, store.PartitionLogbook, &entries)

		filtered := entries[:0:0]
		for _, e := range entries {
			if e.ID != id {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) == len(entries) {
			return appErrors.Clone(appErrors.ErrNotFound, "logbook entry not found")
		}
		if !r.store.Write(ctx, store.PartitionLogbook, filtered) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to delete logbook entry")
		}
		return nil
	})
}

func applyLogbookUpdate(entry *models.LogbookEntry, updates models.LogbookUpdate) {
	if updates.Date != nil {
		entry.Date = *updates.Date
	}
	if updates.Title != nil {
		entry.Title = *updates.Title
	}
	if updates.Description != nil {
		entry.Description = *updates.Description
	}
	if updates.Activities != nil {
		entry.Activities = *updates.Activities
	}
	if updates.HoursWorked != nil {
		entry.HoursWorked = *updates.HoursWorked
	}
	if updates.Attachments != nil {
		entry.Attachments = *updates.Attachments
	}
	if updates.Status != nil {
		entry.Status = *updates.Status
	}
}

func sortLogbookDesc(entries []models.LogbookEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}
