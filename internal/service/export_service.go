package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
	"github.com/ojtrack/ojtrack-api/pkg/export"
)

type statsSource interface {
	Snapshot(ctx context.Context) (*models.SystemStats, error)
	Progress(ctx context.Context, studentID string) (*models.StudentProgress, error)
}

type exportUserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(table export.Table, title string) ([]byte, error)
}

// ReportFormat selects the rendered output type.
type ReportFormat string

const (
	ReportFormatCSV ReportFormat = "csv"
	ReportFormatPDF ReportFormat = "pdf"
)

// ReportFile is a rendered report ready to be served as a download.
type ReportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportService renders system and per-student reports. Reports are built
// fresh per request and returned inline rather than persisted.
type ExportService struct {
	stats  statsSource
	users  exportUserLookup
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(stats statsSource, users exportUserLookup, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		stats:  stats,
		users:  users,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// SystemReport renders the system-wide counter snapshot.
func (s *ExportService) SystemReport(ctx context.Context, format ReportFormat) (*ReportFile, error) {
	stats, err := s.stats.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	table := export.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Users", strconv.Itoa(stats.TotalUsers)},
			{"Active Students", strconv.Itoa(stats.ActiveStudents)},
			{"Coordinators", strconv.Itoa(stats.TotalCoordinators)},
			{"Supervisors", strconv.Itoa(stats.TotalSupervisors)},
			{"Logbook Entries", strconv.Itoa(stats.TotalLogbookEntries)},
			{"Pending Documents", strconv.Itoa(stats.PendingDocuments)},
			{"Completed Evaluations", strconv.Itoa(stats.CompletedEvaluations)},
			{"Registrations This Month", strconv.Itoa(stats.RegistrationsThisMonth)},
		},
	}
	return s.render(table, "System Overview", "system-overview", format)
}

// StudentReport renders one student's progress summary.
func (s *ExportService) StudentReport(ctx context.Context, studentID string, format ReportFormat) (*ReportFile, error) {
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrValidation, "progress reports are only available for students")
	}
	progress, err := s.stats.Progress(ctx, studentID)
	if err != nil {
		return nil, err
	}

	lastActivity := "-"
	if progress.LastActivity != nil {
		lastActivity = progress.LastActivity.Format(time.RFC3339)
	}
	table := export.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Student", student.Name},
			{"Hours Completed", strconv.Itoa(progress.TotalHours)},
			{"Hours Required", strconv.Itoa(progress.RequiredHours)},
			{"Completion", fmt.Sprintf("%d%%", progress.CompletionPercentage)},
			{"Logbook Entries", strconv.Itoa(progress.LogbookEntries.Total)},
			{"Approved Entries", strconv.Itoa(progress.LogbookEntries.Approved)},
			{"Documents Cleared", fmt.Sprintf("%d/%d", progress.Documents.Submitted, progress.Documents.Required)},
			{"Evaluations Completed", fmt.Sprintf("%d/%d", progress.Evaluations.Completed, progress.Evaluations.Total)},
			{"Last Activity", lastActivity},
		},
	}
	return s.render(table, "Internship Progress - "+student.Name, "progress-"+studentID, format)
}

func (s *ExportService) render(table export.Table, title, slug string, format ReportFormat) (*ReportFile, error) {
	stamp := time.Now().UTC().Format("20060102-150405")
	switch format {
	case ReportFormatCSV:
		data, err := s.csv.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv report")
		}
		return &ReportFile{
			Name:        fmt.Sprintf("%s-%s.csv", slug, stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case ReportFormatPDF:
		data, err := s.pdf.Render(table, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf report")
		}
		return &ReportFile{
			Name:        fmt.Sprintf("%s-%s.pdf", slug, stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}
