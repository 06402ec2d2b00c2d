package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
)

type fakeEvaluationRepo struct {
	evals      map[string]*models.Evaluation
	lastUpdate *models.EvaluationUpdate
}

func newFakeEvaluationRepo(evals ...*models.Evaluation) *fakeEvaluationRepo {
	repo := &fakeEvaluationRepo{evals: make(map[string]*models.Evaluation)}
	for _, e := range evals {
		repo.evals[e.ID] = e
	}
	return repo
}

func (f *fakeEvaluationRepo) Create(_ context.Context, evaluation *models.Evaluation) (*models.Evaluation, error) {
	record := *evaluation
	if record.ID == "" {
		record.ID = "eval-1"
	}
	f.evals[record.ID] = &record
	return &record, nil
}

func (f *fakeEvaluationRepo) GetByID(_ context.Context, id string) (*models.Evaluation, error) {
	e, ok := f.evals[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "evaluation not found")
	}
	return e, nil
}

func (f *fakeEvaluationRepo) ListByStudent(_ context.Context, studentID string) ([]models.Evaluation, error) {
	var result []models.Evaluation
	for _, e := range f.evals {
		if e.StudentID == studentID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (f *fakeEvaluationRepo) ListByEvaluator(_ context.Context, evaluatorID string) ([]models.Evaluation, error) {
	var result []models.Evaluation
	for _, e := range f.evals {
		if e.EvaluatorID == evaluatorID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (f *fakeEvaluationRepo) Update(_ context.Context, id string, updates models.EvaluationUpdate) (*models.Evaluation, error) {
	e, ok := f.evals[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "evaluation not found")
	}
	f.lastUpdate = &updates
	if updates.Scores != nil {
		e.Scores = *updates.Scores
	}
	return e, nil
}

func (f *fakeEvaluationRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.evals[id]; !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "evaluation not found")
	}
	delete(f.evals, id)
	return nil
}

func supervisorClaims(id string) *models.JWTClaims {
	return &models.JWTClaims{UserID: id, Role: models.RoleSupervisor}
}

func TestEvaluationCreateDerivesOverall(t *testing.T) {
	repo := newFakeEvaluationRepo()
	svc := NewEvaluationService(repo, nil, nil)

	evaluation, err := svc.Create(context.Background(), supervisorClaims("sup-1"), CreateEvaluationInput{
		StudentID: "s1",
		Type:      models.EvaluationTypeMidterm,
		Scores:    EvaluationScoresInput{Technical: 85, Communication: 90, Teamwork: 88, Initiative: 87, Punctuality: 95},
	})
	require.NoError(t, err)
	assert.Equal(t, 89, evaluation.Scores.Overall, "(85+90+88+87+95)/5 = 89")
	assert.Equal(t, "sup-1", evaluation.EvaluatorID)
	assert.Equal(t, models.RoleSupervisor, evaluation.EvaluatorRole)
	assert.Equal(t, models.EvaluationStatusDraft, evaluation.Status)
}

func TestEvaluationCreateRejectsStudents(t *testing.T) {
	svc := NewEvaluationService(newFakeEvaluationRepo(), nil, nil)

	_, err := svc.Create(context.Background(), &models.JWTClaims{UserID: "s1", Role: models.RoleStudent}, CreateEvaluationInput{
		StudentID: "s2",
		Type:      models.EvaluationTypeFinal,
		Scores:    EvaluationScoresInput{Technical: 80, Communication: 80, Teamwork: 80, Initiative: 80, Punctuality: 80},
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestEvaluationCreateRejectsOutOfRangeScores(t *testing.T) {
	svc := NewEvaluationService(newFakeEvaluationRepo(), nil, nil)

	_, err := svc.Create(context.Background(), supervisorClaims("sup-1"), CreateEvaluationInput{
		StudentID: "s1",
		Type:      models.EvaluationTypeMonthly,
		Scores:    EvaluationScoresInput{Technical: 140, Communication: 80, Teamwork: 80, Initiative: 80, Punctuality: 80},
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestEvaluationGetStudentOwnOnly(t *testing.T) {
	repo := newFakeEvaluationRepo(&models.Evaluation{ID: "e1", StudentID: "s1", EvaluatorID: "sup-1"})
	svc := NewEvaluationService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, &models.JWTClaims{UserID: "s1", Role: models.RoleStudent}, "e1")
	require.NoError(t, err)

	_, err = svc.Get(ctx, &models.JWTClaims{UserID: "s2", Role: models.RoleStudent}, "e1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}

func TestEvaluationUpdateRecomputesOverall(t *testing.T) {
	repo := newFakeEvaluationRepo(&models.Evaluation{ID: "e1", StudentID: "s1", EvaluatorID: "sup-1"})
	svc := NewEvaluationService(repo, nil, nil)

	scores := models.EvaluationScores{Technical: 70, Communication: 70, Teamwork: 70, Initiative: 70, Punctuality: 70, Overall: 100}
	updated, err := svc.Update(context.Background(), supervisorClaims("sup-1"), "e1", models.EvaluationUpdate{Scores: &scores})
	require.NoError(t, err)
	assert.Equal(t, 70, updated.Scores.Overall, "caller-supplied overall is discarded")
}

func TestEvaluationUpdateAuthorOrAdminOnly(t *testing.T) {
	repo := newFakeEvaluationRepo(&models.Evaluation{ID: "e1", StudentID: "s1", EvaluatorID: "sup-1"})
	svc := NewEvaluationService(repo, nil, nil)
	ctx := context.Background()

	comments := "revised"
	_, err := svc.Update(ctx, supervisorClaims("sup-2"), "e1", models.EvaluationUpdate{Comments: &comments})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	_, err = svc.Update(ctx, &models.JWTClaims{UserID: "a1", Role: models.RoleAdmin}, "e1", models.EvaluationUpdate{Comments: &comments})
	require.NoError(t, err)
}

func TestEvaluationDeleteAuthorOnly(t *testing.T) {
	repo := newFakeEvaluationRepo(&models.Evaluation{ID: "e1", StudentID: "s1", EvaluatorID: "sup-1"})
	svc := NewEvaluationService(repo, nil, nil)
	ctx := context.Background()

	err := svc.Delete(ctx, supervisorClaims("sup-2"), "e1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	require.NoError(t, svc.Delete(ctx, supervisorClaims("sup-1"), "e1"))
}
