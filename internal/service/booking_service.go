package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tutorhub/tutor-support-api/internal/models"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
)

type bookingAppointmentRepository interface {
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	Find(ctx context.Context, id string) (*models.Appointment, error)
	Create(ctx context.Context, apt models.Appointment) (models.Appointment, error)
	Book(ctx context.Context, apt models.Appointment) (models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

type bookingProfileRepository interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
}

// AppointmentRequest carries the fields needed to create a dated appointment,
// either a tutor's open slot (no student) or a student booking.
type AppointmentRequest struct {
	TutorID   string `json:"tutorId" validate:"required"`
	StudentID string `json:"studentId"`
	Subject   string `json:"subject"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Type      string `json:"type"`
}

// ListAppointmentsQuery narrows appointment listings.
type ListAppointmentsQuery struct {
	TutorID   string
	StudentID string
	Status    string
}

// BookingService manages concrete dated appointments: open slots, bookings
// and cancellations. Conflict checks run inside the repository's critical
// section; this layer validates input, resolves display names and translates
// outcomes for the HTTP surface.
type BookingService struct {
	appointments bookingAppointmentRepository
	profiles     bookingProfileRepository
	cache        *CacheService
	validate     *validator.Validate
	logger       *zap.Logger
}

// NewBookingService constructs the booking service.
func NewBookingService(appointments bookingAppointmentRepository, profiles bookingProfileRepository, cache *CacheService, logger *zap.Logger) *BookingService {
	return &BookingService{
		appointments: appointments,
		profiles:     profiles,
		cache:        cache,
		validate:     validator.New(),
		logger:       logger,
	}
}

// List returns appointments for a tutor, a student, or both. At least one
// party must be named; an unbounded listing is not a supported query.
func (s *BookingService) List(ctx context.Context, q ListAppointmentsQuery) ([]models.Appointment, error) {
	if q.TutorID == "" && q.StudentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "tutorId or studentId is required")
	}
	status := models.AppointmentStatus(q.Status)
	if q.Status != "" && !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", q.Status))
	}
	result, err := s.appointments.List(ctx, models.AppointmentFilter{
		TutorID:   q.TutorID,
		StudentID: q.StudentID,
		Status:    status,
	})
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return result, nil
}

// Create books a session, or publishes an open slot when no student is named.
// A booking that collides with an existing session on either side surfaces a
// conflict the caller must report as such, not as a server fault.
func (s *BookingService) Create(ctx context.Context, req AppointmentRequest) (models.Appointment, error) {
	apt, err := s.buildAppointment(ctx, req)
	if err != nil {
		return models.Appointment{}, err
	}

	var created models.Appointment
	if apt.Status == models.StatusAvailable {
		created, err = s.appointments.Create(ctx, apt)
	} else {
		created, err = s.appointments.Book(ctx, apt)
	}
	if err != nil {
		return models.Appointment{}, mapRepositoryError(err)
	}

	s.invalidateTutorCalendar(ctx, created.TutorID)
	s.logger.Info("appointment created",
		zap.String("appointment_id", created.ID),
		zap.String("tutor_id", created.TutorID),
		zap.String("student_id", created.StudentID),
		zap.String("date", created.Date),
		zap.String("time", created.Time),
		zap.String("status", string(created.Status)))
	return created, nil
}

// Cancel deletes an appointment. It reports false when the id does not exist,
// so repeated cancellations stay harmless.
func (s *BookingService) Cancel(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, appErrors.Clone(appErrors.ErrValidation, "appointment id is required")
	}

	apt, err := s.appointments.Find(ctx, id)
	if err != nil {
		if mapRepositoryError(err) == appErrors.ErrNotFound {
			return false, nil
		}
		return false, mapRepositoryError(err)
	}

	if err := s.appointments.Delete(ctx, id); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == appErrors.ErrNotFound {
			return false, nil
		}
		return false, mapped
	}

	s.invalidateTutorCalendar(ctx, apt.TutorID)
	s.logger.Info("appointment cancelled",
		zap.String("appointment_id", id),
		zap.String("tutor_id", apt.TutorID))
	return true, nil
}

func (s *BookingService) buildAppointment(ctx context.Context, req AppointmentRequest) (models.Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Appointment{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "tutorId, date and time are required")
	}
	if _, err := models.ParseDate(req.Date); err != nil {
		return models.Appointment{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date %q", req.Date))
	}
	if !models.ValidHour(req.Time) {
		return models.Appointment{}, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("time %q is not an HH:00 hour", req.Time))
	}

	tutor, err := s.profiles.FindByID(ctx, req.TutorID)
	if err != nil {
		if mapRepositoryError(err) == appErrors.ErrNotFound {
			return models.Appointment{}, appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
		}
		return models.Appointment{}, mapRepositoryError(err)
	}

	apt := models.Appointment{
		TutorID:   tutor.ID,
		TutorName: tutor.Name,
		Subject:   req.Subject,
		Date:      req.Date,
		Time:      req.Time,
		Type:      models.AppointmentType(req.Type),
		Status:    models.StatusAvailable,
	}
	if apt.Type == "" {
		apt.Type = models.TypeOnline
	}

	if req.StudentID != "" {
		student, err := s.profiles.FindByID(ctx, req.StudentID)
		if err != nil {
			if mapRepositoryError(err) == appErrors.ErrNotFound {
				return models.Appointment{}, appErrors.Clone(appErrors.ErrNotFound, "student not found")
			}
			return models.Appointment{}, mapRepositoryError(err)
		}
		apt.StudentID = student.ID
		apt.StudentName = student.Name
		apt.Status = models.StatusBooked
	}
	return apt, nil
}

func (s *BookingService) invalidateTutorCalendar(ctx context.Context, tutorID string) {
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("calendar:tutor:%s:*", tutorID)); err != nil {
		s.logger.Warn("calendar cache invalidation failed", zap.String("tutor_id", tutorID), zap.Error(err))
	}
}
