package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojtrack/ojtrack-api/internal/models"
)

func seedAnnouncement(t *testing.T, repo *AnnouncementRepository, targetRoles []string, active bool) *models.Announcement {
	t.Helper()
	a, err := repo.Create(context.Background(), &models.Announcement{
		Title:       "Notice",
		Content:     "Body",
		AuthorID:    "c1",
		AuthorName:  "Jane Smith",
		TargetRoles: targetRoles,
		Priority:    models.AnnouncementPriorityMedium,
		IsActive:    active,
	})
	require.NoError(t, err)
	return a
}

func TestAnnouncementListFiltersByRole(t *testing.T) {
	repo := NewAnnouncementRepository(newTestStore(t))
	ctx := context.Background()

	studentsOnly := seedAnnouncement(t, repo, []string{string(models.RoleStudent)}, true)
	everyone := seedAnnouncement(t, repo, []string{models.TargetRoleAll}, true)
	seedAnnouncement(t, repo, []string{string(models.RoleSupervisor)}, true)

	visible, err := repo.List(ctx, string(models.RoleStudent))
	require.NoError(t, err)
	require.Len(t, visible, 2)
	ids := []string{visible[0].ID, visible[1].ID}
	assert.Contains(t, ids, studentsOnly.ID)
	assert.Contains(t, ids, everyone.ID)
}

func TestAnnouncementListExcludesInactive(t *testing.T) {
	repo := NewAnnouncementRepository(newTestStore(t))

	seedAnnouncement(t, repo, []string{models.TargetRoleAll}, true)
	retired := seedAnnouncement(t, repo, []string{models.TargetRoleAll}, true)

	inactive := false
	_, err := repo.Update(context.Background(), retired.ID, models.AnnouncementUpdate{IsActive: &inactive})
	require.NoError(t, err)

	visible, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, visible, 1, "deactivated announcements are hidden, not deleted")

	got, err := repo.GetByID(context.Background(), retired.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestAnnouncementAuthorNameIsSnapshot(t *testing.T) {
	repo := NewAnnouncementRepository(newTestStore(t))

	a := seedAnnouncement(t, repo, []string{models.TargetRoleAll}, true)
	assert.Equal(t, "Jane Smith", a.AuthorName)

	// The stored name never re-resolves against the user partition, so it
	// stays what it was at publish time.
	got, err := repo.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", got.AuthorName)
}
