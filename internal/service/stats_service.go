package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/ojtrack/ojtrack-api/internal/models"
)

type statsUserSource interface {
	List(ctx context.Context, role *models.UserRole) ([]models.User, error)
}

type statsLogbookSource interface {
	ListAll(ctx context.Context) ([]models.LogbookEntry, error)
	ListByUser(ctx context.Context, userID string) ([]models.LogbookEntry, error)
}

type statsDocumentSource interface {
	ListAll(ctx context.Context) ([]models.Document, error)
	ListByUser(ctx context.Context, userID string) ([]models.Document, error)
}

type statsEvaluationSource interface {
	ListAll(ctx context.Context) ([]models.Evaluation, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Evaluation, error)
}

// requiredDocumentTypes is the checklist every student must clear.
var requiredDocumentTypes = []models.DocumentType{models.DocumentTypeMOA, models.DocumentTypeWaiver}

// StatsServiceParams wires the aggregator's sources.
type StatsServiceParams struct {
	Users         statsUserSource
	Logbook       statsLogbookSource
	Documents     statsDocumentSource
	Evaluations   statsEvaluationSource
	RequiredHours int
	Logger        *zap.Logger
	Now           func() time.Time
}

// StatsService computes derived system-wide counts by scanning the
// repositories at call time. It holds no state of its own: every snapshot is
// an independent full scan, consistent only at that instant.
type StatsService struct {
	users         statsUserSource
	logbook       statsLogbookSource
	documents     statsDocumentSource
	evaluations   statsEvaluationSource
	requiredHours int
	logger        *zap.Logger
	now           func() time.Time
}

// NewStatsService constructs a StatsService.
func NewStatsService(params StatsServiceParams) *StatsService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	if params.RequiredHours <= 0 {
		params.RequiredHours = 486
	}
	return &StatsService{
		users:         params.Users,
		logbook:       params.Logbook,
		documents:     params.Documents,
		evaluations:   params.Evaluations,
		requiredHours: params.RequiredHours,
		logger:        params.Logger,
		now:           params.Now,
	}
}

// Snapshot scans every repository and returns the flat counter set.
// Registrations-this-month matches the current calendar month and year, not a
// sliding window.
func (s *StatsService) Snapshot(ctx context.Context) (*models.SystemStats, error) {
	users, err := s.users.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	entries, err := s.logbook.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	documents, err := s.documents.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	evaluations, err := s.evaluations.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	stats := &models.SystemStats{
		TotalUsers:          len(users),
		TotalLogbookEntries: len(entries),
	}
	for _, u := range users {
		switch u.Role {
		case models.RoleStudent:
			if u.Status == models.UserStatusActive {
				stats.ActiveStudents++
			}
		case models.RoleCoordinator:
			stats.TotalCoordinators++
		case models.RoleSupervisor:
			stats.TotalSupervisors++
		}
		if u.RegistrationDate.Month() == now.Month() && u.RegistrationDate.Year() == now.Year() {
			stats.RegistrationsThisMonth++
		}
	}
	for _, d := range documents {
		if d.Status == models.DocumentStatusPending {
			stats.PendingDocuments++
		}
	}
	for _, e := range evaluations {
		if e.Status == models.EvaluationStatusApproved {
			stats.CompletedEvaluations++
		}
	}
	return stats, nil
}

// Progress summarizes one student's standing. Only approved entries count
// toward the hour total.
func (s *StatsService) Progress(ctx context.Context, studentID string) (*models.StudentProgress, error) {
	entries, err := s.logbook.ListByUser(ctx, studentID)
	if err != nil {
		return nil, err
	}
	documents, err := s.documents.ListByUser(ctx, studentID)
	if err != nil {
		return nil, err
	}
	evaluations, err := s.evaluations.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	progress := &models.StudentProgress{
		RequiredHours: s.requiredHours,
	}
	progress.LogbookEntries.Total = len(entries)
	for _, e := range entries {
		switch e.Status {
		case models.LogbookStatusApproved:
			progress.LogbookEntries.Approved++
			progress.TotalHours += e.HoursWorked
		case models.LogbookStatusSubmitted:
			progress.LogbookEntries.Pending++
		case models.LogbookStatusRejected:
			progress.LogbookEntries.Rejected++
		}
		if progress.LastActivity == nil || e.CreatedAt.After(*progress.LastActivity) {
			created := e.CreatedAt
			progress.LastActivity = &created
		}
	}
	progress.CompletionPercentage = int(math.Round(float64(progress.TotalHours) / float64(s.requiredHours) * 100))

	progress.Documents.Required = len(requiredDocumentTypes)
	for _, required := range requiredDocumentTypes {
		for _, d := range documents {
			if d.Type == required && d.Status == models.DocumentStatusApproved {
				progress.Documents.Submitted++
				break
			}
		}
	}
	for _, d := range documents {
		if d.Status == models.DocumentStatusPending {
			progress.Documents.Pending++
		}
	}

	progress.Evaluations.Total = len(evaluations)
	for _, e := range evaluations {
		if e.Status == models.EvaluationStatusApproved {
			progress.Evaluations.Completed++
		}
	}
	return progress, nil
}
