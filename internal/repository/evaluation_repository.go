package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tutorhub/tutor-support-api/internal/models"
	"github.com/tutorhub/tutor-support-api/internal/store"
)

// EvaluationRepository manages session evaluations.
type EvaluationRepository struct {
	store *store.Store
}

// NewEvaluationRepository constructs the repository.
func NewEvaluationRepository(st *store.Store) *EvaluationRepository {
	return &EvaluationRepository{store: st}
}

// Create stores a new evaluation and refreshes the tutor's average rating.
func (r *EvaluationRepository) Create(ctx context.Context, ev models.Evaluation) (models.Evaluation, error) {
	if ev.ID == "" {
		ev.ID = fmt.Sprintf("eval-%s", uuid.NewString())
	}
	err := r.store.Update(ctx, func(state *store.State) error {
		state.Evaluations = append(state.Evaluations, ev)

		if tutor := state.FindProfile(ev.TutorID); tutor != nil {
			var sum, count int
			for _, e := range state.Evaluations {
				if e.TutorID == ev.TutorID {
					sum += e.Rating
					count++
				}
			}
			if count > 0 {
				tutor.Rating = float64(sum) / float64(count)
			}
		}
		return nil
	})
	if err != nil {
		return models.Evaluation{}, err
	}
	return ev, nil
}

// ListByTutor returns all evaluations received by a tutor.
func (r *EvaluationRepository) ListByTutor(ctx context.Context, tutorID string) ([]models.Evaluation, error) {
	var result []models.Evaluation
	err := r.store.View(ctx, func(state *store.State) error {
		result = make([]models.Evaluation, 0)
		for _, ev := range state.Evaluations {
			if ev.TutorID == tutorID {
				result = append(result, ev)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
