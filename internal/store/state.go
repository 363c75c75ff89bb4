package store

import (
	"fmt"

	"github.com/tutorhub/tutor-support-api/internal/models"
)

// State is the entire application document persisted as one JSON file.
// Every mutation rewrites the whole document; there is no partial update.
type State struct {
	Profiles      []models.Profile                 `json:"profiles"`
	TutorSchedule map[string]models.WeeklySchedule `json:"tutorSchedule"`
	Appointments  []models.Appointment             `json:"appointments"`
	Evaluations   []models.Evaluation              `json:"evaluations"`
	Documents     []models.Document                `json:"documents"`
	Departments   []models.Department              `json:"departments"`
}

// NewState returns an empty but structurally valid document.
func NewState() *State {
	return &State{
		Profiles:      []models.Profile{},
		TutorSchedule: map[string]models.WeeklySchedule{},
		Appointments:  []models.Appointment{},
		Evaluations:   []models.Evaluation{},
		Documents:     []models.Document{},
		Departments:   []models.Department{},
	}
}

// Validate enforces the structural invariants the flat file cannot enforce on
// its own. It runs on every read so malformed documents are rejected before
// any record propagates through the call chain.
func (s *State) Validate() error {
	if s.Profiles == nil {
		return fmt.Errorf("missing profiles collection")
	}
	if s.TutorSchedule == nil {
		return fmt.Errorf("missing tutorSchedule collection")
	}
	if s.Appointments == nil {
		return fmt.Errorf("missing appointments collection")
	}

	for i, apt := range s.Appointments {
		if apt.ID == "" {
			return fmt.Errorf("appointments[%d]: missing id", i)
		}
		if apt.TutorID == "" {
			return fmt.Errorf("appointment %s: missing tutorId", apt.ID)
		}
		if !apt.Status.Valid() {
			return fmt.Errorf("appointment %s: unknown status %q", apt.ID, apt.Status)
		}
		if _, err := models.ParseDate(apt.Date); err != nil {
			return fmt.Errorf("appointment %s: %v", apt.ID, err)
		}
		if !models.ValidHour(apt.Time) {
			return fmt.Errorf("appointment %s: invalid hour token %q", apt.ID, apt.Time)
		}
	}

	for tutorID, weekly := range s.TutorSchedule {
		seen := map[models.DayName]bool{}
		for _, entry := range weekly {
			if !entry.Day.Valid() {
				return fmt.Errorf("tutorSchedule[%s]: unknown day %q", tutorID, entry.Day)
			}
			if seen[entry.Day] {
				return fmt.Errorf("tutorSchedule[%s]: duplicate day %s", tutorID, entry.Day)
			}
			seen[entry.Day] = true
			hours := map[string]bool{}
			for _, hour := range entry.Slots {
				if !models.ValidHour(hour) {
					return fmt.Errorf("tutorSchedule[%s] %s: invalid hour token %q", tutorID, entry.Day, hour)
				}
				if hours[hour] {
					return fmt.Errorf("tutorSchedule[%s] %s: duplicate hour %s", tutorID, entry.Day, hour)
				}
				hours[hour] = true
			}
		}
	}

	return nil
}

// FindProfile returns the profile with the given id, or nil.
func (s *State) FindProfile(id string) *models.Profile {
	for i := range s.Profiles {
		if s.Profiles[i].ID == id {
			return &s.Profiles[i]
		}
	}
	return nil
}

// FindAppointment returns the appointment with the given id, or nil.
func (s *State) FindAppointment(id string) *models.Appointment {
	for i := range s.Appointments {
		if s.Appointments[i].ID == id {
			return &s.Appointments[i]
		}
	}
	return nil
}
