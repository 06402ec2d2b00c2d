package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ojtrack/ojtrack-api/internal/models"
)

type seedUserRepository interface {
	List(ctx context.Context, role *models.UserRole) ([]models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

type seedLogbookRepository interface {
	ListAll(ctx context.Context) ([]models.LogbookEntry, error)
	Create(ctx context.Context, entry *models.LogbookEntry) (*models.LogbookEntry, error)
}

type seedDocumentRepository interface {
	ListAll(ctx context.Context) ([]models.Document, error)
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
}

type seedAnnouncementRepository interface {
	ListAll(ctx context.Context) ([]models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) (*models.Announcement, error)
}

type seedEvaluationRepository interface {
	ListAll(ctx context.Context) ([]models.Evaluation, error)
	Create(ctx context.Context, evaluation *models.Evaluation) (*models.Evaluation, error)
}

// SeedServiceParams wires the bootstrap loader's repositories.
type SeedServiceParams struct {
	Users           seedUserRepository
	Logbook         seedLogbookRepository
	Documents       seedDocumentRepository
	Announcements   seedAnnouncementRepository
	Evaluations     seedEvaluationRepository
	DefaultPassword string
	Logger          *zap.Logger
}

// SeedService populates empty partitions with the canonical first-run
// dataset. Each partition is checked independently; a partition that already
// holds records is left untouched, so re-running the loader is a no-op.
type SeedService struct {
	users           seedUserRepository
	logbook         seedLogbookRepository
	documents       seedDocumentRepository
	announcements   seedAnnouncementRepository
	evaluations     seedEvaluationRepository
	defaultPassword string
	logger          *zap.Logger
}

// NewSeedService constructs a SeedService.
func NewSeedService(params SeedServiceParams) *SeedService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.DefaultPassword == "" {
		params.DefaultPassword = "ojt-dev-password"
	}
	return &SeedService{
		users:           params.Users,
		logbook:         params.Logbook,
		documents:       params.Documents,
		announcements:   params.Announcements,
		evaluations:     params.Evaluations,
		defaultPassword: params.DefaultPassword,
		logger:          params.Logger,
	}
}

// Run seeds every empty partition. It goes through the repositories rather
// than the store so server-assigned defaults and invariants still apply.
func (s *SeedService) Run(ctx context.Context) error {
	if err := s.seedUsers(ctx); err != nil {
		return err
	}
	if err := s.seedAnnouncements(ctx); err != nil {
		return err
	}
	if err := s.seedLogbook(ctx); err != nil {
		return err
	}
	if err := s.seedDocuments(ctx); err != nil {
		return err
	}
	return s.seedEvaluations(ctx)
}

func (s *SeedService) seedUsers(ctx context.Context) error {
	existing, err := s.users.List(ctx, nil)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	users := []models.User{
		{
			ID:               "1",
			Name:             "Admin User",
			Email:            "admin@msu.edu.ph",
			Role:             models.RoleAdmin,
			RegistrationDate: now,
			Status:           models.UserStatusActive,
		},
		{
			ID:               "2",
			Name:             "John Doe",
			Email:            "john.doe@student.msu.edu.ph",
			Role:             models.RoleStudent,
			StudentID:        "2021-12345",
			Department:       "Computer Science",
			RegistrationDate: now,
			Status:           models.UserStatusActive,
		},
		{
			ID:               "3",
			Name:             "Jane Smith",
			Email:            "jane.smith@msu.edu.ph",
			Role:             models.RoleCoordinator,
			Department:       "Computer Science",
			RegistrationDate: now,
			Status:           models.UserStatusActive,
		},
		{
			ID:               "4",
			Name:             "Bob Wilson",
			Email:            "bob.wilson@company.com",
			Role:             models.RoleSupervisor,
			Company:          "Tech Solutions Inc.",
			RegistrationDate: now,
			Status:           models.UserStatusActive,
		},
		{
			ID:               "5",
			Name:             "Alice Johnson",
			Email:            "alice.johnson@student.msu.edu.ph",
			Role:             models.RoleStudent,
			StudentID:        "2021-67890",
			Department:       "Computer Science",
			RegistrationDate: now,
			Status:           models.UserStatusActive,
		},
		{
			ID:               "6",
			Name:             "Mark Davis",
			Email:            "mark.davis@company2.com",
			Role:             models.RoleSupervisor,
			Company:          "Digital Innovations Corp",
			RegistrationDate: now,
			Status:           models.UserStatusActive,
		},
	}
	for i := range users {
		users[i].PasswordHash = string(hash)
		if _, err := s.users.Create(ctx, &users[i]); err != nil {
			return err
		}
	}
	s.logger.Info("seeded users", zap.Int("count", len(users)))
	return nil
}

func (s *SeedService) seedAnnouncements(ctx context.Context) error {
	// ListAll, not List: deactivated announcements still count as partition
	// content, and a reseed over them would duplicate the fixed ids.
	existing, err := s.announcements.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	announcements := []models.Announcement{
		{
			ID:          "1",
			Title:       "OJT Orientation Schedule",
			Content:     "All students must attend the orientation on January 25 at 10:00 AM via Zoom. The meeting ID will be sent by email.",
			AuthorID:    "3",
			AuthorName:  "Jane Smith",
			TargetRoles: []string{string(models.RoleStudent)},
			Priority:    models.AnnouncementPriorityHigh,
			CreatedAt:   now.Add(-48 * time.Hour),
			UpdatedAt:   now.Add(-48 * time.Hour),
			IsActive:    true,
		},
		{
			ID:          "2",
			Title:       "MOA Submission Deadline",
			Content:     "Please submit your signed Memorandum of Agreement by February 1. Late submissions will not be accepted.",
			AuthorID:    "3",
			AuthorName:  "Jane Smith",
			TargetRoles: []string{string(models.RoleStudent)},
			Priority:    models.AnnouncementPriorityUrgent,
			CreatedAt:   now.Add(-24 * time.Hour),
			UpdatedAt:   now.Add(-24 * time.Hour),
			IsActive:    true,
		},
		{
			ID:          "3",
			Title:       "System Maintenance Notice",
			Content:     "The OJT system will undergo maintenance on January 30 from 2:00 AM to 4:00 AM. Please plan accordingly.",
			AuthorID:    "1",
			AuthorName:  "Admin User",
			TargetRoles: []string{models.TargetRoleAll},
			Priority:    models.AnnouncementPriorityMedium,
			CreatedAt:   now,
			UpdatedAt:   now,
			IsActive:    true,
		},
	}
	for i := range announcements {
		if _, err := s.announcements.Create(ctx, &announcements[i]); err != nil {
			return err
		}
	}
	s.logger.Info("seeded announcements", zap.Int("count", len(announcements)))
	return nil
}

func (s *SeedService) seedLogbook(ctx context.Context) error {
	existing, err := s.logbook.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	entries := []models.LogbookEntry{
		{
			ID:          "1",
			UserID:      "2",
			Date:        now.Add(-72 * time.Hour),
			Title:       "Database Design and Implementation",
			Description: "Designed the database schema for the inventory management system, drew the ERD and implemented the initial tables in MySQL.",
			Activities:  []string{"Database design", "ERD creation", "MySQL implementation"},
			HoursWorked: 8,
			Status:      models.LogbookStatusApproved,
			Feedback:    "Excellent work on the database design. The ERD is well-structured.",
			CreatedAt:   now.Add(-72 * time.Hour),
			UpdatedAt:   now.Add(-48 * time.Hour),
		},
		{
			ID:          "2",
			UserID:      "2",
			Date:        now.Add(-48 * time.Hour),
			Title:       "Frontend Development with React",
			Description: "Built user interface components for the inventory system, wired them to the backend API and added form validation.",
			Activities:  []string{"React development", "UI/UX design", "API integration"},
			HoursWorked: 8,
			Status:      models.LogbookStatusApproved,
			Feedback:    "Great progress on the frontend. The components are well-structured and responsive.",
			CreatedAt:   now.Add(-48 * time.Hour),
			UpdatedAt:   now.Add(-24 * time.Hour),
		},
		{
			ID:          "3",
			UserID:      "2",
			Date:        now.Add(-24 * time.Hour),
			Title:       "API Development and Testing",
			Description: "Implemented RESTful endpoints for inventory items with CRUD operations, then covered them with unit tests and documented them.",
			Activities:  []string{"API development", "Testing", "Documentation"},
			HoursWorked: 8,
			Status:      models.LogbookStatusSubmitted,
			CreatedAt:   now.Add(-24 * time.Hour),
			UpdatedAt:   now.Add(-24 * time.Hour),
		},
	}
	for i := range entries {
		if _, err := s.logbook.Create(ctx, &entries[i]); err != nil {
			return err
		}
	}
	s.logger.Info("seeded logbook entries", zap.Int("count", len(entries)))
	return nil
}

func (s *SeedService) seedDocuments(ctx context.Context) error {
	existing, err := s.documents.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	threeDaysAgo := now.Add(-72 * time.Hour)
	twoDaysAgo := now.Add(-48 * time.Hour)
	documents := []models.Document{
		{
			ID:           "1",
			UserID:       "2",
			Type:         models.DocumentTypeMOA,
			Title:        "Memorandum of Agreement - Tech Solutions Inc.",
			FileName:     "MOA_TechSolutions_JohnDoe.pdf",
			FileURL:      "#",
			UploadDate:   now.Add(-120 * time.Hour),
			Status:       models.DocumentStatusApproved,
			ApprovedBy:   "3",
			ApprovalDate: &threeDaysAgo,
			Comments:     "MOA approved. All terms and conditions are acceptable.",
		},
		{
			ID:           "2",
			UserID:       "2",
			Type:         models.DocumentTypeWaiver,
			Title:        "Liability Waiver Form",
			FileName:     "Waiver_JohnDoe.pdf",
			FileURL:      "#",
			UploadDate:   now.Add(-96 * time.Hour),
			Status:       models.DocumentStatusApproved,
			ApprovedBy:   "3",
			ApprovalDate: &twoDaysAgo,
		},
		{
			ID:         "3",
			UserID:     "5",
			Type:       models.DocumentTypeMOA,
			Title:      "Memorandum of Agreement - Digital Innovations",
			FileName:   "MOA_DigitalInnovations_AliceJohnson.pdf",
			FileURL:    "#",
			UploadDate: now.Add(-24 * time.Hour),
			Status:     models.DocumentStatusPending,
		},
	}
	for i := range documents {
		if _, err := s.documents.Create(ctx, &documents[i]); err != nil {
			return err
		}
	}
	s.logger.Info("seeded documents", zap.Int("count", len(documents)))
	return nil
}

func (s *SeedService) seedEvaluations(ctx context.Context) error {
	existing, err := s.evaluations.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now().UTC()
	evaluation := models.Evaluation{
		ID:            "1",
		StudentID:     "2",
		EvaluatorID:   "4",
		EvaluatorRole: models.RoleSupervisor,
		Type:          models.EvaluationTypeMidterm,
		Scores: models.EvaluationScores{
			Technical:     85,
			Communication: 90,
			Teamwork:      88,
			Initiative:    87,
			Punctuality:   95,
			Overall:       89,
		},
		Comments:        "John has shown excellent technical skills and communicates well with the team. He takes initiative and is always punctual.",
		Recommendations: "Keep up the current performance. Consider assigning more complex tasks to stretch his technical skills.",
		DateEvaluated:   now.Add(-168 * time.Hour),
		Status:          models.EvaluationStatusApproved,
	}
	if _, err := s.evaluations.Create(ctx, &evaluation); err != nil {
		return err
	}
	s.logger.Info("seeded evaluations", zap.Int("count", 1))
	return nil
}
