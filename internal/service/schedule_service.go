package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tutorhub/tutor-support-api/internal/models"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
)

type scheduleTemplateRepository interface {
	Weekly(ctx context.Context, tutorID string) (models.WeeklySchedule, error)
	AddSlot(ctx context.Context, tutorID string, day models.DayName, hour string) error
	RemoveSlot(ctx context.Context, tutorID string, day models.DayName, hour string) error
}

// SlotRequest identifies one weekly-template cell.
type SlotRequest struct {
	TutorID string `json:"tutorId" validate:"required"`
	Day     string `json:"day" validate:"required"`
	Slot    string `json:"slot" validate:"required"`
}

// ScheduleService manages the recurring weekly availability template. The
// template is dateless; concrete bookings never modify it.
type ScheduleService struct {
	templates scheduleTemplateRepository
	cache     *CacheService
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewScheduleService constructs the schedule service.
func NewScheduleService(templates scheduleTemplateRepository, cache *CacheService, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{
		templates: templates,
		cache:     cache,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Weekly returns a tutor's weekly template. Tutors without a template get an
// empty schedule.
func (s *ScheduleService) Weekly(ctx context.Context, tutorID string) (models.WeeklySchedule, error) {
	if tutorID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "tutorId is required")
	}
	weekly, err := s.templates.Weekly(ctx, tutorID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return weekly, nil
}

// AddSlot opens a weekly-template hour. Adding an hour that is already open
// succeeds without change.
func (s *ScheduleService) AddSlot(ctx context.Context, req SlotRequest) error {
	day, hour, err := s.checkSlot(req)
	if err != nil {
		return err
	}
	if err := s.templates.AddSlot(ctx, req.TutorID, day, hour); err != nil {
		return mapRepositoryError(err)
	}
	s.invalidateCalendar(ctx, req.TutorID)
	s.logger.Info("template slot opened",
		zap.String("tutor_id", req.TutorID),
		zap.String("day", string(day)),
		zap.String("slot", hour))
	return nil
}

// RemoveSlot closes a weekly-template hour. It reports false when the hour
// was not open; the underlying document is untouched in that case.
func (s *ScheduleService) RemoveSlot(ctx context.Context, req SlotRequest) (bool, error) {
	day, hour, err := s.checkSlot(req)
	if err != nil {
		return false, err
	}
	if err := s.templates.RemoveSlot(ctx, req.TutorID, day, hour); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == appErrors.ErrNotFound {
			return false, nil
		}
		return false, mapped
	}
	s.invalidateCalendar(ctx, req.TutorID)
	s.logger.Info("template slot closed",
		zap.String("tutor_id", req.TutorID),
		zap.String("day", string(day)),
		zap.String("slot", hour))
	return true, nil
}

func (s *ScheduleService) checkSlot(req SlotRequest) (models.DayName, string, error) {
	if err := s.validate.Struct(req); err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "tutorId, day and slot are required")
	}
	day := models.DayName(req.Day)
	if !day.Valid() {
		return "", "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown day %q", req.Day))
	}
	if !models.ValidHour(req.Slot) {
		return "", "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("slot %q is not an HH:00 hour", req.Slot))
	}
	return day, req.Slot, nil
}

func (s *ScheduleService) invalidateCalendar(ctx context.Context, tutorID string) {
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("calendar:tutor:%s:*", tutorID)); err != nil {
		s.logger.Warn("calendar cache invalidation failed", zap.String("tutor_id", tutorID), zap.Error(err))
	}
}
