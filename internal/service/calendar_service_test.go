package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tutorhub/tutor-support-api/internal/models"
	"github.com/tutorhub/tutor-support-api/internal/repository"
	"github.com/tutorhub/tutor-support-api/internal/store"
	"github.com/tutorhub/tutor-support-api/pkg/config"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(filepath.Join(t.TempDir(), "db.json"), nil)
}

func testCalendarConfig() config.CalendarConfig {
	return config.CalendarConfig{
		ReferenceDate:   "2025-11-24",
		WindowDays:      7,
		StudentDayStart: 17,
		StudentDayEnd:   23,
	}
}

func seedState(t *testing.T, st *store.Store, mutate func(state *store.State)) {
	t.Helper()
	require.NoError(t, st.Update(context.Background(), func(state *store.State) error {
		mutate(state)
		return nil
	}))
}

func newCalendarService(st *store.Store) *CalendarService {
	return NewCalendarService(
		repository.NewScheduleRepository(st),
		repository.NewAppointmentRepository(st),
		repository.NewProfileRepository(st),
		nil,
		testCalendarConfig(),
		zap.NewNop(),
	)
}

func TestTutorCalendarTemplateOnlyRendersEmptyCells(t *testing.T) {
	st := newTestStore(t)
	seedState(t, st, func(state *store.State) {
		state.Profiles = append(state.Profiles, models.Profile{ID: "tutor-1", Name: "Dr. Chen", Role: models.RoleTutor})
		state.TutorSchedule["tutor-1"] = models.WeeklySchedule{
			{Day: models.Monday, Slots: []string{"10:00", "09:00"}},
		}
	})
	svc := newCalendarService(st)

	days, err := svc.TutorCalendar(context.Background(), "tutor-1", "tutor-1", "")
	require.NoError(t, err)
	require.Len(t, days, 7)

	monday := days[0]
	assert.Equal(t, models.Monday, monday.Day)
	assert.Equal(t, "2025-11-24", monday.Date)
	require.Len(t, monday.Hours, 2)
	assert.Equal(t, "09:00", monday.Hours[0].Hour)
	assert.Equal(t, "10:00", monday.Hours[1].Hour)
	for _, cell := range monday.Hours {
		assert.Nil(t, cell.Slot, "a template hour with no appointment renders empty")
	}

	for _, day := range days[1:] {
		assert.Empty(t, day.Hours, "days without template entries carry no hours")
	}
}

func TestTutorCalendarOverlaysExactCellMatches(t *testing.T) {
	st := newTestStore(t)
	seedState(t, st, func(state *store.State) {
		state.Profiles = append(state.Profiles, models.Profile{ID: "tutor-1", Name: "Dr. Chen", Role: models.RoleTutor})
		state.TutorSchedule["tutor-1"] = models.WeeklySchedule{
			{Day: models.Monday, Slots: []string{"09:00", "10:00"}},
			{Day: models.Tuesday, Slots: []string{"09:00"}},
		}
		state.Appointments = append(state.Appointments,
			models.Appointment{
				ID: "apt-1", TutorID: "tutor-1", TutorName: "Dr. Chen",
				StudentID: "student-1", StudentName: "Minh", Subject: "calculus",
				Date: "2025-11-24", Time: "09:00", Status: models.StatusBooked,
			},
			// Same hour, different date: must not bleed into Monday.
			models.Appointment{
				ID: "apt-2", TutorID: "tutor-1", TutorName: "Dr. Chen",
				Subject: "algebra", Date: "2025-11-25", Time: "09:00",
				Status: models.StatusAvailable,
			},
		)
	})
	svc := newCalendarService(st)

	days, err := svc.TutorCalendar(context.Background(), "tutor-1", "tutor-1", "")
	require.NoError(t, err)

	monday := days[0]
	require.NotNil(t, monday.Hours[0].Slot)
	assert.Equal(t, "apt-1", monday.Hours[0].Slot.ID)
	assert.Equal(t, models.StatusBooked, monday.Hours[0].Slot.Status)
	assert.Equal(t, "Minh", monday.Hours[0].Slot.StudentName)
	assert.Nil(t, monday.Hours[1].Slot)

	tuesday := days[1]
	require.NotNil(t, tuesday.Hours[0].Slot)
	assert.Equal(t, "apt-2", tuesday.Hours[0].Slot.ID)
	assert.Equal(t, models.StatusAvailable, tuesday.Hours[0].Slot.Status)
}

func TestTutorCalendarIsDeterministic(t *testing.T) {
	st := newTestStore(t)
	seedState(t, st, func(state *store.State) {
		state.Profiles = append(state.Profiles, models.Profile{ID: "tutor-1", Name: "Dr. Chen", Role: models.RoleTutor})
		state.TutorSchedule["tutor-1"] = models.WeeklySchedule{
			{Day: models.Wednesday, Slots: []string{"14:00", "09:00", "11:00"}},
		}
		state.Appointments = append(state.Appointments, models.Appointment{
			ID: "apt-1", TutorID: "tutor-1", TutorName: "Dr. Chen",
			StudentID: "student-1", StudentName: "Minh",
			Date: "2025-11-26", Time: "11:00", Status: models.StatusBooked,
		})
	})
	svc := newCalendarService(st)

	first, err := svc.TutorCalendar(context.Background(), "tutor-1", "tutor-1", "")
	require.NoError(t, err)
	second, err := svc.TutorCalendar(context.Background(), "tutor-1", "tutor-1", "")
	require.NoError(t, err)
	assert.Equal(t, first, second, "repeated reads over unchanged state must agree")
}

func TestTutorCalendarPrivateHiddenFromOtherViewers(t *testing.T) {
	st := newTestStore(t)
	seedState(t, st, func(state *store.State) {
		state.Profiles = append(state.Profiles, models.Profile{
			ID: "tutor-1", Name: "Dr. Chen", Role: models.RoleTutor,
			ScheduleVisibility: models.VisibilityPrivate,
		})
		state.TutorSchedule["tutor-1"] = models.WeeklySchedule{
			{Day: models.Monday, Slots: []string{"09:00"}},
		}
	})
	svc := newCalendarService(st)
	ctx := context.Background()

	hidden, err := svc.TutorCalendar(ctx, "tutor-1", "student-1", "")
	require.NoError(t, err)
	assert.Empty(t, hidden)

	own, err := svc.TutorCalendar(ctx, "tutor-1", "tutor-1", "")
	require.NoError(t, err)
	assert.Len(t, own, 7, "owners always see their own calendar")
}

func TestTutorCalendarUnknownTutor(t *testing.T) {
	svc := newCalendarService(newTestStore(t))

	_, err := svc.TutorCalendar(context.Background(), "tutor-404", "tutor-404", "")
	require.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestTutorCalendarRejectsMalformedFromDate(t *testing.T) {
	st := newTestStore(t)
	seedState(t, st, func(state *store.State) {
		state.Profiles = append(state.Profiles, models.Profile{ID: "tutor-1", Role: models.RoleTutor})
	})
	svc := newCalendarService(st)

	_, err := svc.TutorCalendar(context.Background(), "tutor-1", "tutor-1", "24-11-2025")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestStudentCalendarUsesCanonicalHours(t *testing.T) {
	st := newTestStore(t)
	seedState(t, st, func(state *store.State) {
		state.Appointments = append(state.Appointments,
			models.Appointment{
				ID: "apt-1", TutorID: "tutor-1", TutorName: "Dr. Chen",
				StudentID: "student-1", StudentName: "Minh", Subject: "calculus",
				Date: "2025-11-24", Time: "17:00", Status: models.StatusBooked,
			},
			// Another student's session must stay invisible.
			models.Appointment{
				ID: "apt-2", TutorID: "tutor-1", TutorName: "Dr. Chen",
				StudentID: "student-2", StudentName: "Lan",
				Date: "2025-11-24", Time: "18:00", Status: models.StatusBooked,
			},
		)
	})
	svc := newCalendarService(st)

	days, err := svc.StudentCalendar(context.Background(), "student-1", "")
	require.NoError(t, err)
	require.Len(t, days, 7)

	monday := days[0]
	require.Len(t, monday.Hours, 6)
	assert.Equal(t, "17:00", monday.Hours[0].Hour)
	assert.Equal(t, "22:00", monday.Hours[5].Hour)

	require.NotNil(t, monday.Hours[0].Slot)
	assert.Equal(t, "Dr. Chen", monday.Hours[0].Slot.TutorName)
	assert.Nil(t, monday.Hours[1].Slot, "other students' sessions are not shown")
}
