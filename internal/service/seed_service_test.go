package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ojtrack/ojtrack-api/internal/models"
	"github.com/ojtrack/ojtrack-api/internal/repository"
	"github.com/ojtrack/ojtrack-api/pkg/store"
)

func newSeedService(t *testing.T) (*SeedService, *repository.UserRepository, *repository.LogbookRepository) {
	t.Helper()
	blob, err := store.NewFileBlob(t.TempDir())
	require.NoError(t, err)
	st := store.New(blob, nil)

	users := repository.NewUserRepository(st)
	logbook := repository.NewLogbookRepository(st)
	svc := NewSeedService(SeedServiceParams{
		Users:           users,
		Logbook:         logbook,
		Documents:       repository.NewDocumentRepository(st),
		Announcements:   repository.NewAnnouncementRepository(st),
		Evaluations:     repository.NewEvaluationRepository(st),
		DefaultPassword: "test-password",
	})
	return svc, users, logbook
}

func TestSeedPopulatesEmptyStore(t *testing.T) {
	svc, users, logbook := newSeedService(t)
	ctx := context.Background()

	require.NoError(t, svc.Run(ctx))

	all, err := users.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	admin, err := users.GetByEmail(ctx, "admin@msu.edu.ph")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, models.UserStatusActive, admin.Status)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("test-password")))

	entries, err := logbook.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSeedIsIdempotent(t *testing.T) {
	svc, users, logbook := newSeedService(t)
	ctx := context.Background()

	require.NoError(t, svc.Run(ctx))
	require.NoError(t, svc.Run(ctx))

	all, err := users.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 6, "second run does not duplicate users")

	entries, err := logbook.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSeedSkipsDeactivatedAnnouncements(t *testing.T) {
	blob, err := store.NewFileBlob(t.TempDir())
	require.NoError(t, err)
	st := store.New(blob, nil)
	announcements := repository.NewAnnouncementRepository(st)
	svc := NewSeedService(SeedServiceParams{
		Users:           repository.NewUserRepository(st),
		Logbook:         repository.NewLogbookRepository(st),
		Documents:       repository.NewDocumentRepository(st),
		Announcements:   announcements,
		Evaluations:     repository.NewEvaluationRepository(st),
		DefaultPassword: "test-password",
	})
	ctx := context.Background()

	require.NoError(t, svc.Run(ctx))

	seeded, err := announcements.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, seeded, 3)

	// Soft-delete every seeded announcement, then restart the loader. The
	// partition still holds the deactivated records, so nothing is re-seeded.
	inactive := false
	for _, a := range seeded {
		_, err := announcements.Update(ctx, a.ID, models.AnnouncementUpdate{IsActive: &inactive})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Run(ctx))

	after, err := announcements.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, after, 3, "deactivated records keep the partition non-empty")
	for _, a := range after {
		assert.False(t, a.IsActive)
	}
}

func TestSeedSkipsNonEmptyPartition(t *testing.T) {
	svc, users, _ := newSeedService(t)
	ctx := context.Background()

	_, err := users.Create(ctx, &models.User{Name: "Existing", Email: "existing@x.com", Role: models.RoleStudent})
	require.NoError(t, err)

	require.NoError(t, svc.Run(ctx))

	all, err := users.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1, "a populated users partition is left alone")
}
