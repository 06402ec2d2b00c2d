package repository

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ojtrack/ojtrack-api/internal/models"
	appErrors "github.com/ojtrack/ojtrack-api/pkg/errors"
	"github.com/ojtrack/ojtrack-api/pkg/store"
)

// EvaluationRepository provides record-store access for evaluations.
type EvaluationRepository struct {
	store *store.Store
}

// NewEvaluationRepository creates the repository.
func NewEvaluationRepository(s *store.Store) *EvaluationRepository {
	return &EvaluationRepository{store: s}
}

// Create appends a new evaluation, assigning id and evaluation date.
func (r *EvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) (*models.Evaluation, error) {
	var created models.Evaluation
	err := r.store.Do(store.PartitionEvaluations, func() error {
		var evaluations []models.Evaluation
		r.store.Read(ctx, store.PartitionEvaluations, &evaluations)

		record := *evaluation
		if record.ID == "" {
			record.ID = uuid.NewString()
		}
		if record.DateEvaluated.IsZero() {
			record.DateEvaluated = time.Now().UTC()
		}
		if record.Status == "" {
			record.Status = models.EvaluationStatusDraft
		}

		evaluations = append(evaluations, record)
		if !r.store.Write(ctx, store.PartitionEvaluations, evaluations) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to save evaluation")
		}
		created = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID returns an evaluation by identifier.
func (r *EvaluationRepository) GetByID(ctx context.Context, id string) (*models.Evaluation, error) {
	var evaluations []models.Evaluation
	r.store.Read(ctx, store.PartitionEvaluations, &evaluations)
	for i := range evaluations {
		if evaluations[i].ID == id {
			evaluation := evaluations[i]
			return &evaluation, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "evaluation not found")
}

// ListByStudent returns a student's evaluations, newest first.
func (r *EvaluationRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	r.store.Read(ctx, store.PartitionEvaluations, &evaluations)
	filtered := make([]models.Evaluation, 0, len(evaluations))
	for _, e := range evaluations {
		if e.StudentID == studentID {
			filtered = append(filtered, e)
		}
	}
	sortEvaluationsDesc(filtered)
	return filtered, nil
}

// ListByEvaluator returns evaluations written by the given evaluator.
func (r *EvaluationRepository) ListByEvaluator(ctx context.Context, evaluatorID string) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	r.store.Read(ctx, store.PartitionEvaluations, &evaluations)
	filtered := make([]models.Evaluation, 0, len(evaluations))
	for _, e := range evaluations {
		if e.EvaluatorID == evaluatorID {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}

// ListAll returns every evaluation.
func (r *EvaluationRepository) ListAll(ctx context.Context) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	r.store.Read(ctx, store.PartitionEvaluations, &evaluations)
	return evaluations, nil
}

// Update shallow-merges the provided fields onto an existing evaluation.
func (r *EvaluationRepository) Update(ctx context.Context, id string, updates models.EvaluationUpdate) (*models.Evaluation, error) {
	var updated models.Evaluation
	err := r.store.Do(store.PartitionEvaluations, func() error {
		var evaluations []models.Evaluation
		r.store.Read(ctx, store.PartitionEvaluations, &evaluations)

		idx := -1
		for i := range evaluations {
			if evaluations[i].ID == id {
				idx = i
				break
			}
		}
		if idx == -1 {
			return appErrors.Clone(appErrors.ErrNotFound, "evaluation not found")
		}

		applyEvaluationUpdate(&evaluations[idx], updates)

		if !r.store.Write(ctx, store.PartitionEvaluations, evaluations) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to update evaluation")
		}
		updated = evaluations[idx]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an evaluation permanently.
func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	return r.store.Do(store.PartitionEvaluations, func() error {
		var evaluations []models.Evaluation
		r.store.Read(ctx, store.PartitionEvaluations, &evaluations)

		filtered := evaluations[:0:0]
		for _, e := range evaluations {
			if e.ID != id {
				filtered = append(filtered, e)
			}
		}
		if len(filtered) == len(evaluations) {
			return appErrors.Clone(appErrors.ErrNotFound, "evaluation not found")
		}
		if !r.store.Write(ctx, store.PartitionEvaluations, filtered) {
			return appErrors.Clone(appErrors.ErrStorageFailure, "failed to delete evaluation")
		}
		return nil
	})
}

func applyEvaluationUpdate(evaluation *models.Evaluation, updates models.EvaluationUpdate) {
	if updates.Type != nil {
		evaluation.Type = *updates.Type
	}
	if updates.Scores != nil {
		evaluation.Scores = *updates.Scores
	}
	if updates.Comments != nil {
		evaluation.Comments = *updates.Comments
	}
	if updates.Recommendations != nil {
		evaluation.Recommendations = *updates.Recommendations
	}
	if updates.Status != nil {
		evaluation.Status = *updates.Status
	}
}

func sortEvaluationsDesc(evaluations []models.Evaluation) {
	sort.SliceStable(evaluations, func(i, j int) bool {
		return evaluations[i].DateEvaluated.After(evaluations[j].DateEvaluated)
	})
}
