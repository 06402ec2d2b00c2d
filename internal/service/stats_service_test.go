package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojtrack/ojtrack-api/internal/models"
)

type fakeStatsUsers struct{ users []models.User }

func (f *fakeStatsUsers) List(_ context.Context, role *models.UserRole) ([]models.User, error) {
	if role == nil {
		return f.users, nil
	}
	var filtered []models.User
	for _, u := range f.users {
		if u.Role == *role {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

type fakeStatsLogbook struct{ entries []models.LogbookEntry }

func (f *fakeStatsLogbook) ListAll(_ context.Context) ([]models.LogbookEntry, error) {
	return f.entries, nil
}

func (f *fakeStatsLogbook) ListByUser(_ context.Context, userID string) ([]models.LogbookEntry, error) {
	var mine []models.LogbookEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			mine = append(mine, e)
		}
	}
	return mine, nil
}

type fakeStatsDocuments struct{ docs []models.Document }

func (f *fakeStatsDocuments) ListAll(_ context.Context) ([]models.Document, error) {
	return f.docs, nil
}

func (f *fakeStatsDocuments) ListByUser(_ context.Context, userID string) ([]models.Document, error) {
	var mine []models.Document
	for _, d := range f.docs {
		if d.UserID == userID {
			mine = append(mine, d)
		}
	}
	return mine, nil
}

type fakeStatsEvaluations struct{ evals []models.Evaluation }

func (f *fakeStatsEvaluations) ListAll(_ context.Context) ([]models.Evaluation, error) {
	return f.evals, nil
}

func (f *fakeStatsEvaluations) ListByStudent(_ context.Context, studentID string) ([]models.Evaluation, error) {
	var mine []models.Evaluation
	for _, e := range f.evals {
		if e.StudentID == studentID {
			mine = append(mine, e)
		}
	}
	return mine, nil
}

func TestStatsSnapshot(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	users := &fakeStatsUsers{users: []models.User{
		{ID: "s1", Role: models.RoleStudent, Status: models.UserStatusActive, RegistrationDate: now.AddDate(0, 0, -3)},
		{ID: "s2", Role: models.RoleStudent, Status: models.UserStatusActive, RegistrationDate: now.AddDate(0, -2, 0)},
		{ID: "s3", Role: models.RoleStudent, Status: models.UserStatusSuspended, RegistrationDate: now.AddDate(0, 0, -1)},
		{ID: "c1", Role: models.RoleCoordinator, Status: models.UserStatusActive, RegistrationDate: now.AddDate(-1, 0, 0)},
		{ID: "c2", Role: models.RoleCoordinator, Status: models.UserStatusActive, RegistrationDate: now.AddDate(0, -1, 0)},
		{ID: "v1", Role: models.RoleSupervisor, Status: models.UserStatusActive, RegistrationDate: now},
		{ID: "a1", Role: models.RoleAdmin, Status: models.UserStatusActive, RegistrationDate: now.AddDate(0, 0, -365)},
	}}
	logbook := &fakeStatsLogbook{entries: []models.LogbookEntry{
		{ID: "1", Status: models.LogbookStatusApproved},
		{ID: "2", Status: models.LogbookStatusSubmitted},
	}}
	docs := &fakeStatsDocuments{docs: []models.Document{
		{ID: "1", Status: models.DocumentStatusPending},
		{ID: "2", Status: models.DocumentStatusApproved},
		{ID: "3", Status: models.DocumentStatusPending},
	}}
	evals := &fakeStatsEvaluations{evals: []models.Evaluation{
		{ID: "1", Status: models.EvaluationStatusApproved},
		{ID: "2", Status: models.EvaluationStatusDraft},
	}}

	svc := NewStatsService(StatsServiceParams{
		Users: users, Logbook: logbook, Documents: docs, Evaluations: evals,
		Now: func() time.Time { return now },
	})

	stats, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, stats.TotalUsers)
	assert.Equal(t, 2, stats.ActiveStudents, "suspended students are not active")
	assert.Equal(t, 2, stats.TotalCoordinators)
	assert.Equal(t, 1, stats.TotalSupervisors)
	assert.Equal(t, 2, stats.TotalLogbookEntries)
	assert.Equal(t, 2, stats.PendingDocuments)
	assert.Equal(t, 1, stats.CompletedEvaluations)
	// Calendar-month match, not a 30-day window: s1, s3 and v1 registered
	// in March 2024; the anniversary from a previous year does not count.
	assert.Equal(t, 3, stats.RegistrationsThisMonth)
}

func TestStatsProgress(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	logbook := &fakeStatsLogbook{entries: []models.LogbookEntry{
		{ID: "1", UserID: "s1", Status: models.LogbookStatusApproved, HoursWorked: 8, CreatedAt: now.AddDate(0, 0, -3)},
		{ID: "2", UserID: "s1", Status: models.LogbookStatusApproved, HoursWorked: 6, CreatedAt: now.AddDate(0, 0, -2)},
		{ID: "3", UserID: "s1", Status: models.LogbookStatusSubmitted, HoursWorked: 8, CreatedAt: now.AddDate(0, 0, -1)},
		{ID: "4", UserID: "s1", Status: models.LogbookStatusRejected, HoursWorked: 8, CreatedAt: now.AddDate(0, 0, -4)},
		{ID: "5", UserID: "other", Status: models.LogbookStatusApproved, HoursWorked: 40, CreatedAt: now},
	}}
	docs := &fakeStatsDocuments{docs: []models.Document{
		{ID: "1", UserID: "s1", Type: models.DocumentTypeMOA, Status: models.DocumentStatusApproved},
		{ID: "2", UserID: "s1", Type: models.DocumentTypeWaiver, Status: models.DocumentStatusPending},
	}}
	evals := &fakeStatsEvaluations{evals: []models.Evaluation{
		{ID: "1", StudentID: "s1", Status: models.EvaluationStatusApproved},
		{ID: "2", StudentID: "s1", Status: models.EvaluationStatusDraft},
	}}

	svc := NewStatsService(StatsServiceParams{
		Users: &fakeStatsUsers{}, Logbook: logbook, Documents: docs, Evaluations: evals,
		RequiredHours: 486,
	})

	progress, err := svc.Progress(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, 14, progress.TotalHours, "only approved hours count")
	assert.Equal(t, 486, progress.RequiredHours)
	assert.Equal(t, 3, progress.CompletionPercentage, "14/486 rounds to 3")

	assert.Equal(t, 4, progress.LogbookEntries.Total)
	assert.Equal(t, 2, progress.LogbookEntries.Approved)
	assert.Equal(t, 1, progress.LogbookEntries.Pending)
	assert.Equal(t, 1, progress.LogbookEntries.Rejected)

	assert.Equal(t, 2, progress.Documents.Required)
	assert.Equal(t, 1, progress.Documents.Submitted, "pending waiver is not cleared")
	assert.Equal(t, 1, progress.Documents.Pending)

	assert.Equal(t, 2, progress.Evaluations.Total)
	assert.Equal(t, 1, progress.Evaluations.Completed)

	require.NotNil(t, progress.LastActivity)
	assert.Equal(t, now.AddDate(0, 0, -1), *progress.LastActivity, "newest entry wins")
}

func TestStatsProgressEmptyStudent(t *testing.T) {
	svc := NewStatsService(StatsServiceParams{
		Users:       &fakeStatsUsers{},
		Logbook:     &fakeStatsLogbook{},
		Documents:   &fakeStatsDocuments{},
		Evaluations: &fakeStatsEvaluations{},
	})

	progress, err := svc.Progress(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Zero(t, progress.TotalHours)
	assert.Zero(t, progress.CompletionPercentage)
	assert.Nil(t, progress.LastActivity)
	assert.Equal(t, 2, progress.Documents.Required)
}
