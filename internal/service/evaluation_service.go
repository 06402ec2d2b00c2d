package service

import (
	"context"
	"math"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
)

type evaluationRepository interface {
	Create(ctx context.Context, evaluation *models.Evaluation) (*models.Evaluation, error)
	GetByID(ctx context.Context, id string) (*models.Evaluation, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Evaluation, error)
	ListByEvaluator(ctx context.Context, evaluatorID string) ([]models.Evaluation, error)
	Update(ctx context.Context, id string, updates models.EvaluationUpdate) (*models.Evaluation, error)
	Delete(ctx context.Context, id string) error
}

// EvaluationScoresInput holds the five graded sub-scores. The overall score
// is always derived server-side, never taken from the caller.
type EvaluationScoresInput struct {
	Technical     int `json:"technical" validate:"gte=0,lte=100"`
	Communication int `json:"communication" validate:"gte=0,lte=100"`
	Teamwork      int `json:"teamwork" validate:"gte=0,lte=100"`
	Initiative    int `json:"initiative" validate:"gte=0,lte=100"`
	Punctuality   int `json:"punctuality" validate:"gte=0,lte=100"`
}

// CreateEvaluationInput is the payload for submitting a student evaluation.
type CreateEvaluationInput struct {
	StudentID       string                  `json:"studentId" validate:"required"`
	Type            models.EvaluationType   `json:"type" validate:"required"`
	Scores          EvaluationScoresInput   `json:"scores" validate:"required"`
	Comments        string                  `json:"comments"`
	Recommendations string                  `json:"recommendations"`
	Status          models.EvaluationStatus `json:"status"`
}

// EvaluationService provides evaluation use cases.
type EvaluationService struct {
	repo      evaluationRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEvaluationService constructs an EvaluationService.
func NewEvaluationService(repo evaluationRepository, validate *validator.Validate, logger *zap.Logger) *EvaluationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EvaluationService{repo: repo, validator: validate, logger: logger}
}

// Create records an evaluation authored by the acting coordinator or
// supervisor. The overall score is the rounded mean of the five sub-scores.
func (s *EvaluationService) Create(ctx context.Context, actor *models.JWTClaims, input CreateEvaluationInput) (*models.Evaluation, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evaluation payload")
	}
	if actor.Role != models.RoleCoordinator && actor.Role != models.RoleSupervisor {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only coordinators and supervisors may evaluate")
	}

	status := input.Status
	if status == "" {
		status = models.EvaluationStatusDraft
	}

	return s.repo.Create(ctx, &models.Evaluation{
		StudentID:       input.StudentID,
		EvaluatorID:     actor.UserID,
		EvaluatorRole:   actor.Role,
		Type:            input.Type,
		Scores:          deriveScores(input.Scores),
		Comments:        input.Comments,
		Recommendations: input.Recommendations,
		Status:          status,
	})
}

// Get returns one evaluation, with students restricted to their own.
func (s *EvaluationService) Get(ctx context.Context, actor *models.JWTClaims, id string) (*models.Evaluation, error) {
	evaluation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleStudent && evaluation.StudentID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "")
	}
	return evaluation, nil
}

// ListByStudent returns a student's evaluations, newest first.
func (s *EvaluationService) ListByStudent(ctx context.Context, studentID string) ([]models.Evaluation, error) {
	return s.repo.ListByStudent(ctx, studentID)
}

// ListByEvaluator returns the evaluations authored by an evaluator.
func (s *EvaluationService) ListByEvaluator(ctx context.Context, evaluatorID string) ([]models.Evaluation, error) {
	return s.repo.ListByEvaluator(ctx, evaluatorID)
}

// Update shallow-merges fields onto an evaluation the actor authored,
// re-deriving the overall score when sub-scores change.
func (s *EvaluationService) Update(ctx context.Context, actor *models.JWTClaims, id string, updates models.EvaluationUpdate) (*models.Evaluation, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && existing.EvaluatorID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "")
	}
	if updates.Scores != nil {
		scores := *updates.Scores
		if !scoresInRange(scores) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "scores must be between 0 and 100")
		}
		scores.Overall = overallScore(scores)
		updates.Scores = &scores
	}
	return s.repo.Update(ctx, id, updates)
}

// Delete removes an evaluation the actor authored.
func (s *EvaluationService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && existing.EvaluatorID != actor.UserID {
		return appErrors.Clone(appErrors.ErrForbidden, "")
	}
	return s.repo.Delete(ctx, id)
}

func deriveScores(input EvaluationScoresInput) models.EvaluationScores {
	scores := models.EvaluationScores{
		Technical:     input.Technical,
		Communication: input.Communication,
		Teamwork:      input.Teamwork,
		Initiative:    input.Initiative,
		Punctuality:   input.Punctuality,
	}
	scores.Overall = overallScore(scores)
	return scores
}

func overallScore(scores models.EvaluationScores) int {
	sum := scores.Technical + scores.Communication + scores.Teamwork + scores.Initiative + scores.Punctuality
	return int(math.Round(float64(sum) / 5))
}

func scoresInRange(scores models.EvaluationScores) bool {
	for _, v := range []int{scores.Technical, scores.Communication, scores.Teamwork, scores.Initiative, scores.Punctuality} {
		if v < 0 || v > 100 {
			return false
		}
	}
	return true
}
