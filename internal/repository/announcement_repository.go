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

// AnnouncementRepository provides record-store access for announcements.
type AnnouncementRepository struct {
	store *store.Store
}

// NewAnnouncementRepository creates the repository.
func NewAnnouncementRepository(s *store.Store) *AnnouncementRepository {
	return &AnnouncementRepository{store: s}
}

// Create appends a new announcement, assigning id and both timestamps.
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error) {
	var created models.Announcement
	err := r.store.Do(store.PartitionAnnouncements, func() error {
		var announcements []models.Announcement
		r.store.Read(ctx, store.PartitionAnnouncements, &announcements)

		record := *announcement
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

		announcements = append(announcements, record)
		if !r.store.Write(ctx, store.PartitionAnnouncements, announcements) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to save announcement")
		}
		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID returns an announcement by identifier.
func (r *AnnouncementRepository) GetByID(ctx context.Context, id string) (*models.Announcement, error) {
	var announcements []models.Announcement
	r.store.Read(ctx, store.PartitionAnnouncements, &announcements)
	for i := range announcements {
		if announcements[i].ID == id {
			announcement := announcements[i]
			return &announcement, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
}

// List returns active announcements, newest first. When targetRole is
// non-empty, only announcements targeting that role (or "all") are included.
func (r *AnnouncementRepository) List(ctx context.Context, targetRole string) ([]models.Announcement, error) {
	var announcements []models.Announcement
	r.store.Read(ctx, store.PartitionAnnouncements, &announcements)

	filtered := make([]models.Announcement, 0, len(announcements))
	for _, a := range announcements {
		if !a.IsActive {
			continue
		}
		if targetRole != "" && !a.VisibleTo(targetRole) {
			continue
		}
		filtered = append(filtered, a)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})
	return filtered, nil
}

// ListAll returns every announcement regardless of active flag, newest first.
// Deactivated records are invisible to List but still occupy the partition, so
// emptiness checks must go through here.
func (r *AnnouncementRepository) ListAll(ctx context.Context) ([]models.Announcement, error) {
	var announcements []models.Announcement
	r.store.Read(ctx, store.PartitionAnnouncements, &announcements)
	sort.SliceStable(announcements, func(i, j int) bool {
		return announcements[i].CreatedAt.After(announcements[j].CreatedAt)
	})
	return announcements, nil
}

// Update shallow-merges the provided fields and refreshes updatedAt.
// Deactivation (isActive=false) is the soft-delete path.
func (r *AnnouncementRepository) Update(ctx context.Context, id string, updates models.AnnouncementUpdate) (*models.Announcement, error) {
	var updated models.Announcement
	err := r.store.Do(store.PartitionAnnouncements, func() error {
		var announcements []models.Announcement
		r.store.Read(ctx, store.PartitionAnnouncements, &announcements)

		idx := -1
		for i := range announcements {
			if announcements[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
		}

		applyAnnouncementUpdate(&announcements[idx], updates)
		announcements[idx].UpdatedAt = time.Now().UTC()

		if !r.store.Write(ctx, store.PartitionAnnouncements, announcements) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to update announcement")
		}
		updated = announcements[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an announcement permanently (hard removal, distinct from the
// isActive soft-delete flag).
func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	return r.store.Do(store.PartitionAnnouncements, func() error {
		var announcements []models.Announcement
		r.store.Read(ctx, store.PartitionAnnouncements, &announcements)

		filtered := announcements[:0:0]
		for _, a := range announcements {
			if a.ID != id {
				filtered = append(filtered, a)
			}
		}
		if len(filtered) == len(announcements) {
			return appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
		}
		if !r.store.Write(ctx, store.PartitionAnnouncements, filtered) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to delete announcement")
		}
		return nil
	})
}

func applyAnnouncementUpdate(announcement *models.Announcement, updates models.AnnouncementUpdate) {
	if updates.Title != nil {
		announcement.Title = *updates.Title
	}
	if updates.Content != nil {
		announcement.Content = *updates.Content
	}
	if updates.TargetRoles != nil {
		announcement.TargetRoles = *updates.TargetRoles
	}
	if updates.Priority != nil {
		announcement.Priority = *updates.Priority
	}
	if updates.IsActive != nil {
		announcement.IsActive = *updates.IsActive
	}
	if updates.Attachments != nil {
		announcement.Attachments = *updates.Attachments
	}
}
