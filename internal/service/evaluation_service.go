package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tutorhub/tutor-support-api/internal/models"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
)

type evaluationRepository interface {
	Create(ctx context.Context, ev models.Evaluation) (models.Evaluation, error)
	ListByTutor(ctx context.Context, tutorID string) ([]models.Evaluation, error)
}

// EvaluationRequest is a student's rating of a session.
type EvaluationRequest struct {
	TutorID   string `json:"tutorId" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
	SessionID string `json:"sessionId"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

// EvaluationService records session evaluations. The tutor's average rating
// is refreshed in the same datastore transaction as the insert.
type EvaluationService struct {
	evaluations evaluationRepository
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewEvaluationService constructs the evaluation service.
func NewEvaluationService(evaluations evaluationRepository, logger *zap.Logger) *EvaluationService {
	return &EvaluationService{
		evaluations: evaluations,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Submit stores an evaluation.
func (s *EvaluationService) Submit(ctx context.Context, req EvaluationRequest) (models.Evaluation, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Evaluation{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "tutorId, studentId and a 1-5 rating are required")
	}

	created, err := s.evaluations.Create(ctx, models.Evaluation{
		TutorID:   req.TutorID,
		StudentID: req.StudentID,
		SessionID: req.SessionID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return models.Evaluation{}, mapRepositoryError(err)
	}

	s.logger.Info("evaluation submitted",
		zap.String("evaluation_id", created.ID),
		zap.String("tutor_id", created.TutorID),
		zap.Int("rating", created.Rating))
	return created, nil
}

// ListByTutor returns all evaluations a tutor has received.
func (s *EvaluationService) ListByTutor(ctx context.Context, tutorID string) ([]models.Evaluation, error) {
	if tutorID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "tutorId is required")
	}
	result, err := s.evaluations.ListByTutor(ctx, tutorID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return result, nil
}
