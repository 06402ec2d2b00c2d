package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
)

func seedEntry(t *testing.T, repo *LogbookRepository, userID string, status models.LogbookStatus) *models.LogbookEntry {
	t.Helper()
	entry, err := repo.Create(context.Background(), &models.LogbookEntry{
		UserID:      userID,
		Date:        time.Now().UTC(),
		Title:       "Worked on API",
		Description: "Implemented endpoints",
		HoursWorked: 8,
		Status:      status,
	})
	require.NoError(t, err)
	return entry
}

func TestLogbookCreateDefaultsToDraft(t *testing.T) {
	repo := NewLogbookRepository(newTestStore(t))

	entry, err := repo.Create(context.Background(), &models.LogbookEntry{
		UserID: "u1", Date: time.Now(), Title: "t", Description: "d", HoursWorked: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LogbookStatusDraft, entry.Status)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, entry.CreatedAt, entry.UpdatedAt)
}

func TestLogbookListByUserNewestFirst(t *testing.T) {
	repo := NewLogbookRepository(newTestStore(t))
	ctx := context.Background()

	first := seedEntry(t, repo, "u1", models.LogbookStatusDraft)
	time.Sleep(5 * time.Millisecond)
	second := seedEntry(t, repo, "u1", models.LogbookStatusDraft)
	seedEntry(t, repo, "u2", models.LogbookStatusDraft)

	mine, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)
}

func TestLogbookReviewTransitions(t *testing.T) {
	repo := NewLogbookRepository(newTestStore(t))
	ctx := context.Background()

	entry := seedEntry(t, repo, "u1", models.LogbookStatusSubmitted)

	approved, err := repo.Review(ctx, entry.ID, models.LogbookStatusApproved, "good work")
	require.NoError(t, err)
	assert.Equal(t, models.LogbookStatusApproved, approved.Status)
	assert.Equal(t, "good work", approved.Feedback)
	assert.True(t, approved.UpdatedAt.After(entry.UpdatedAt) || approved.UpdatedAt.Equal(entry.UpdatedAt))

	// A finalized entry cannot be re-reviewed.
	_, err = repo.Review(ctx, entry.ID, models.LogbookStatusRejected, "changed my mind")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))

	got, err := repo.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LogbookStatusApproved, got.Status, "failed review leaves state unchanged")
}

func TestLogbookReviewRequiresSubmitted(t *testing.T) {
	repo := NewLogbookRepository(newTestStore(t))

	draft := seedEntry(t, repo, "u1", models.LogbookStatusDraft)
	_, err := repo.Review(context.Background(), draft.ID, models.LogbookStatusApproved, "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestLogbookUpdateRejectsFinalized(t *testing.T) {
	repo := NewLogbookRepository(newTestStore(t))
	ctx := context.Background()

	entry := seedEntry(t, repo, "u1", models.LogbookStatusSubmitted)
	_, err := repo.Review(ctx, entry.ID, models.LogbookStatusApproved, "")
	require.NoError(t, err)

	title := "revised"
	_, err = repo.Update(ctx, entry.ID, models.LogbookUpdate{Title: &title})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestLogbookBulkApproveSkipsNonSubmitted(t *testing.T) {
	repo := NewLogbookRepository(newTestStore(t))
	ctx := context.Background()

	submitted := seedEntry(t, repo, "u1", models.LogbookStatusSubmitted)
	draft := seedEntry(t, repo, "u1", models.LogbookStatusDraft)
	approved := seedEntry(t, repo, "u1", models.LogbookStatusApproved)

	updated, err := repo.BulkApprove(ctx, []string{submitted.ID, draft.ID, approved.ID, "missing-id"})
	require.NoError(t, err)
	require.Len(t, updated, 1, "only the submitted entry is approved")
	assert.Equal(t, submitted.ID, updated[0].ID)
	assert.Equal(t, models.LogbookStatusApproved, updated[0].Status)

	got, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LogbookStatusDraft, got.Status)
}

func TestLogbookListForReview(t *testing.T) {
	repo := NewLogbookRepository(newTestStore(t))

	seedEntry(t, repo, "u1", models.LogbookStatusSubmitted)
	seedEntry(t, repo, "u1", models.LogbookStatusDraft)
	seedEntry(t, repo, "u2", models.LogbookStatusApproved)

	pending, err := repo.ListForReview(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.LogbookStatusSubmitted, pending[0].Status)
}

func TestLogbookDelete(t *testing.T) {
	repo := NewLogbookRepository(newTestStore(t))
	ctx := context.Background()

	entry := seedEntry(t, repo, "u1", models.LogbookStatusDraft)
	require.NoError(t, repo.Delete(ctx, entry.ID))

	_, err := repo.GetByID(ctx, entry.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
