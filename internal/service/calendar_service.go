package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/tutorhub/tutor-support-api/internal/models"
	"github.com/tutorhub/tutor-support-api/internal/repository"
	"github.com/tutorhub/tutor-support-api/pkg/config"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
)

type calendarScheduleRepository interface {
	Weekly(ctx context.Context, tutorID string) (models.WeeklySchedule, error)
}

type calendarAppointmentRepository interface {
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
}

type calendarProfileRepository interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
}

// CalendarService derives dated calendar views by reconciling the weekly
// availability template with concrete appointment records. The calendar is
// never stored; it is recomputed on every read.
type CalendarService struct {
	schedules    calendarScheduleRepository
	appointments calendarAppointmentRepository
	profiles     calendarProfileRepository
	cache        *CacheService
	cfg          config.CalendarConfig
	logger       *zap.Logger
}

// NewCalendarService constructs the calendar service.
func NewCalendarService(
	schedules calendarScheduleRepository,
	appointments calendarAppointmentRepository,
	profiles calendarProfileRepository,
	cache *CacheService,
	cfg config.CalendarConfig,
	logger *zap.Logger,
) *CalendarService {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = 7
	}
	return &CalendarService{
		schedules:    schedules,
		appointments: appointments,
		profiles:     profiles,
		cache:        cache,
		cfg:          cfg,
		logger:       logger,
	}
}

// TutorCalendar builds the tutor's dated week view.
//
// Each day in the window resolves its hour list from the weekly template for
// that weekday; each hour resolves to the appointment occupying the exact
// (date, hour) cell, or to a nil slot when no record matches. Template hours
// without a concrete record stay nil: the template alone never fabricates an
// appointment.
//
// When the tutor marked the schedule private and the viewer is someone else,
// the result is an empty calendar rather than an error, so callers cannot
// distinguish "private" from "nothing scheduled".
func (s *CalendarService) TutorCalendar(ctx context.Context, tutorID, viewerID, from string) ([]models.CalendarDay, error) {
	tutor, err := s.profiles.FindByID(ctx, tutorID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if tutor.ScheduleVisibility == models.VisibilityPrivate && viewerID != tutorID {
		return []models.CalendarDay{}, nil
	}

	start, err := s.windowStart(from)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid from date %q", from))
	}

	cacheKey := fmt.Sprintf("calendar:tutor:%s:%s", tutorID, start.Format(models.DateLayout))
	var cached []models.CalendarDay
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return cached, nil
	}

	weekly, err := s.schedules.Weekly(ctx, tutorID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	appointments, err := s.appointments.List(ctx, models.AppointmentFilter{TutorID: tutorID})
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	days := make([]models.CalendarDay, 0, s.cfg.WindowDays)
	for i := 0; i < s.cfg.WindowDays; i++ {
		date := start.AddDate(0, 0, i)
		dateToken := date.Format(models.DateLayout)
		dayName := models.DayNameOf(date)

		hours := normalizeHours(weekly.HoursFor(dayName))
		cells := make([]models.CalendarHour, 0, len(hours))
		for _, hour := range hours {
			cells = append(cells, models.CalendarHour{
				Hour: hour,
				Slot: resolveCell(appointments, dateToken, hour, false),
			})
		}

		days = append(days, models.CalendarDay{Day: dayName, Date: dateToken, Hours: cells})
	}

	if err := s.cache.Set(ctx, cacheKey, days, 0); err != nil && s.logger != nil {
		s.logger.Debug("calendar cache write skipped", zap.Error(err))
	}
	return days, nil
}

// StudentCalendar builds the student's dated week view over the canonical
// evening hour range. Every day carries the same hours; cells resolve to the
// student's own appointments only.
func (s *CalendarService) StudentCalendar(ctx context.Context, studentID, from string) ([]models.CalendarDay, error) {
	start, err := s.windowStart(from)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid from date %q", from))
	}

	appointments, err := s.appointments.List(ctx, models.AppointmentFilter{StudentID: studentID})
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	hours := s.canonicalHours()
	days := make([]models.CalendarDay, 0, s.cfg.WindowDays)
	for i := 0; i < s.cfg.WindowDays; i++ {
		date := start.AddDate(0, 0, i)
		dateToken := date.Format(models.DateLayout)

		cells := make([]models.CalendarHour, 0, len(hours))
		for _, hour := range hours {
			cells = append(cells, models.CalendarHour{
				Hour: hour,
				Slot: resolveCell(appointments, dateToken, hour, true),
			})
		}

		days = append(days, models.CalendarDay{Day: models.DayNameOf(date), Date: dateToken, Hours: cells})
	}
	return days, nil
}

func (s *CalendarService) windowStart(from string) (time.Time, error) {
	raw := from
	if raw == "" {
		raw = s.cfg.ReferenceDate
	}
	return models.ParseDate(raw)
}

func (s *CalendarService) canonicalHours() []string {
	start, end := s.cfg.StudentDayStart, s.cfg.StudentDayEnd
	if end <= start {
		start, end = 17, 23
	}
	hours := make([]string, 0, end-start)
	for h := start; h < end; h++ {
		hours = append(hours, models.HourToken(h))
	}
	return hours
}

// resolveCell finds the appointment occupying one (date, hour) cell. Student
// views hide the tutor's open-but-unclaimed slots.
func resolveCell(appointments []models.Appointment, date, hour string, skipAvailable bool) *models.CalendarSlot {
	for _, apt := range appointments {
		if apt.Date != date || apt.Time != hour {
			continue
		}
		if skipAvailable && apt.Status == models.StatusAvailable {
			continue
		}
		return &models.CalendarSlot{
			ID:          apt.ID,
			Subject:     apt.Subject,
			Status:      apt.Status,
			StudentName: apt.StudentName,
			TutorName:   apt.TutorName,
		}
	}
	return nil
}

// normalizeHours sorts and dedupes template hours so a day renders in a
// stable order regardless of insertion history.
func normalizeHours(hours []string) []string {
	if len(hours) == 0 {
		return nil
	}
	out := make([]string, len(hours))
	copy(out, hours)
	sort.Strings(out)
	deduped := out[:1]
	for _, h := range out[1:] {
		if h != deduped[len(deduped)-1] {
			deduped = append(deduped, h)
		}
	}
	return deduped
}

// mapRepositoryError translates repository sentinels into typed API errors.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return appErrors.ErrNotFound
	}
	if errors.Is(err, repository.ErrConflict) {
		return appErrors.ErrConflict
	}
	return appErrors.FromError(err)
}
