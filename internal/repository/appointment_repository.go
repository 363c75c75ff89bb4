package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tutorhub/tutor-support-api/internal/models"
	"github.com/tutorhub/tutor-support-api/internal/store"
)

// AppointmentRepository manages the concrete dated appointment collection.
// The uniqueness invariants the flat file cannot enforce (at most one booked
// appointment per tutor slot and per student slot) are enforced here, inside
// a single serialized critical section per mutation.
type AppointmentRepository struct {
	store *store.Store
}

// NewAppointmentRepository constructs the repository.
func NewAppointmentRepository(st *store.Store) *AppointmentRepository {
	return &AppointmentRepository{store: st}
}

// List returns appointments matching the filter.
func (r *AppointmentRepository) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	var result []models.Appointment
	err := r.store.View(ctx, func(state *store.State) error {
		result = make([]models.Appointment, 0)
		for _, apt := range state.Appointments {
			if filter.Matches(apt) {
				result = append(result, apt)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Find returns the appointment with the given id.
func (r *AppointmentRepository) Find(ctx context.Context, id string) (*models.Appointment, error) {
	var found *models.Appointment
	err := r.store.View(ctx, func(state *store.State) error {
		if apt := state.FindAppointment(id); apt != nil {
			clone := *apt
			found = &clone
			return nil
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Create appends an appointment without conflict checks. It backs the
// tutor-side "open an available slot" flow; bookings go through Book.
// Opening the same (date, time) twice for one tutor is rejected so the
// calendar always resolves a cell to at most one record.
func (r *AppointmentRepository) Create(ctx context.Context, apt models.Appointment) (models.Appointment, error) {
	if apt.ID == "" {
		apt.ID = newAppointmentID()
	}
	err := r.store.Update(ctx, func(state *store.State) error {
		for _, existing := range state.Appointments {
			if existing.TutorID == apt.TutorID && existing.Date == apt.Date && existing.Time == apt.Time {
				return ErrConflict
			}
		}
		state.Appointments = append(state.Appointments, apt)
		return nil
	})
	if err != nil {
		return models.Appointment{}, err
	}
	return apt, nil
}

// Book creates a booked appointment as one atomic check-and-create. The
// conflict scan and the insert share a single lock acquisition; anything less
// leaves a window where two concurrent requests both pass the check.
//
// Booking an hour the tutor published as "available" claims the existing
// record in place: the student fields are filled in and the id is preserved.
func (r *AppointmentRepository) Book(ctx context.Context, apt models.Appointment) (models.Appointment, error) {
	apt.Status = models.StatusBooked
	err := r.store.Update(ctx, func(state *store.State) error {
		for _, existing := range state.Appointments {
			// Student-side: one session per (date, time) regardless of tutor.
			if existing.StudentID != "" && existing.StudentID == apt.StudentID &&
				existing.Date == apt.Date && existing.Time == apt.Time {
				return ErrConflict
			}
			// Tutor-side: a booked slot cannot be booked again.
			if existing.TutorID == apt.TutorID && existing.Date == apt.Date &&
				existing.Time == apt.Time && existing.Status == models.StatusBooked {
				return ErrConflict
			}
		}

		for i, existing := range state.Appointments {
			if existing.TutorID == apt.TutorID && existing.Date == apt.Date &&
				existing.Time == apt.Time && existing.Status == models.StatusAvailable {
				state.Appointments[i].StudentID = apt.StudentID
				state.Appointments[i].StudentName = apt.StudentName
				state.Appointments[i].Status = models.StatusBooked
				if apt.Subject != "" {
					state.Appointments[i].Subject = apt.Subject
				}
				if apt.Type != "" {
					state.Appointments[i].Type = apt.Type
				}
				apt = state.Appointments[i]
				return nil
			}
		}

		if apt.ID == "" {
			apt.ID = newAppointmentID()
		}
		state.Appointments = append(state.Appointments, apt)
		return nil
	})
	if err != nil {
		return models.Appointment{}, err
	}
	return apt, nil
}

// Delete removes an appointment. Absent ids return ErrNotFound and leave the
// document untouched, which keeps cancellation retry-safe.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(state *store.State) error {
		for i, apt := range state.Appointments {
			if apt.ID == id {
				state.Appointments = append(state.Appointments[:i], state.Appointments[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

func newAppointmentID() string {
	return fmt.Sprintf("apt-%s", uuid.NewString())
}
