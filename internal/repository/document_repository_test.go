package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
)

func seedDocument(t *testing.T, repo *DocumentRepository, userID string, status models.DocumentStatus) *models.Document {
	t.Helper()
	doc, err := repo.Create(context.Background(), &models.Document{
		UserID:   userID,
		Type:     models.DocumentTypeMOA,
		Title:    "MOA",
		FileName: "moa.pdf",
		FileURL:  "#",
		Status:   status,
	})
	require.NoError(t, err)
	return doc
}

func TestDocumentCreateDefaultsToPending(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))

	doc, err := repo.Create(context.Background(), &models.Document{
		UserID: "u1", Type: models.DocumentTypeWaiver, Title: "Waiver", FileName: "w.pdf", FileURL: "#",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DocumentStatusPending, doc.Status)
	assert.NotEmpty(t, doc.ID)
	assert.False(t, doc.UploadDate.IsZero())
}

func TestDocumentReviewLifecycle(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))
	ctx := context.Background()

	doc := seedDocument(t, repo, "u1", models.DocumentStatusPending)

	approved, err := repo.Review(ctx, doc.ID, models.DocumentStatusApproved, "coord-1", "looks complete")
	require.NoError(t, err)
	assert.Equal(t, models.DocumentStatusApproved, approved.Status)
	assert.Equal(t, "coord-1", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovalDate)
	assert.Equal(t, "looks complete", approved.Comments)

	// Finalized documents cannot flip back.
	_, err = repo.Review(ctx, doc.ID, models.DocumentStatusRejected, "coord-2", "")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
}

func TestDocumentRejectRecordsReviewer(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))

	doc := seedDocument(t, repo, "u1", models.DocumentStatusPending)
	rejected, err := repo.Review(context.Background(), doc.ID, models.DocumentStatusRejected, "coord-1", "unsigned copy")
	require.NoError(t, err)
	assert.Equal(t, models.DocumentStatusRejected, rejected.Status)
	assert.Equal(t, "coord-1", rejected.ApprovedBy)
	assert.Equal(t, "unsigned copy", rejected.Comments)
}

func TestDocumentListForReview(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))

	seedDocument(t, repo, "u1", models.DocumentStatusPending)
	seedDocument(t, repo, "u2", models.DocumentStatusApproved)

	pending, err := repo.ListForReview(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, models.DocumentStatusPending, pending[0].Status)
}

func TestDocumentListByUser(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))

	seedDocument(t, repo, "u1", models.DocumentStatusPending)
	seedDocument(t, repo, "u1", models.DocumentStatusApproved)
	seedDocument(t, repo, "u2", models.DocumentStatusPending)

	docs, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestDocumentDelete(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))
	ctx := context.Background()

	doc := seedDocument(t, repo, "u1", models.DocumentStatusPending)
	require.NoError(t, repo.Delete(ctx, doc.ID))

	_, err := repo.GetByID(ctx, doc.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	err = repo.Delete(ctx, doc.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
