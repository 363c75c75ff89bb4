package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorhub/tutor-support-api/internal/models"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "db.json"), nil)
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestStoreMissingFileYieldsEmptyState(t *testing.T) {
	s := newTestStore(t)

	err := s.View(context.Background(), func(state *State) error {
		assert.Empty(t, state.Appointments)
		assert.Empty(t, state.Profiles)
		assert.NotNil(t, state.TutorSchedule)
		return nil
	})
	require.NoError(t, err)
}

func TestStoreRejectsMissingCollections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no appointments", `{"profiles": [], "tutorSchedule": {}}`},
		{"no profiles", `{"tutorSchedule": {}, "appointments": []}`},
		{"no tutorSchedule", `{"profiles": [], "appointments": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.doc), 0o644))

			err := s.View(context.Background(), func(*State) error { return nil })
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrCorruptStore.Code, errorCode(t, err))
		})
	}
}

func TestStoreRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown status", `{"profiles": [], "tutorSchedule": {}, "appointments": [{"id": "apt-1", "tutorId": "t1", "subject": "math", "date": "2025-11-10", "time": "17:00", "status": "pending"}]}`},
		{"bad hour token", `{"profiles": [], "tutorSchedule": {}, "appointments": [{"id": "apt-1", "tutorId": "t1", "subject": "math", "date": "2025-11-10", "time": "5pm", "status": "booked"}]}`},
		{"duplicate template day", `{"profiles": [], "tutorSchedule": {"t1": [{"day": "Monday", "slots": []}, {"day": "Monday", "slots": []}]}, "appointments": []}`},
		{"not json", `{{{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.doc), 0o644))

			err := s.View(context.Background(), func(*State) error { return nil })
			require.Error(t, err)
			assert.Equal(t, appErrors.ErrCorruptStore.Code, errorCode(t, err))
		})
	}
}

func TestStoreUpdateRoundTrips(t *testing.T) {
	s := newTestStore(t)

	err := s.Update(context.Background(), func(state *State) error {
		state.Appointments = append(state.Appointments, models.Appointment{
			ID:      "apt-1",
			TutorID: "tutor-1",
			Subject: "calculus",
			Date:    "2025-11-10",
			Time:    "17:00",
			Status:  models.StatusAvailable,
		})
		return nil
	})
	require.NoError(t, err)

	err = s.View(context.Background(), func(state *State) error {
		require.Len(t, state.Appointments, 1)
		assert.Equal(t, "apt-1", state.Appointments[0].ID)
		return nil
	})
	require.NoError(t, err)
}

func TestStoreUpdateErrorLeavesFileUntouched(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Update(context.Background(), func(state *State) error {
		state.Profiles = append(state.Profiles, models.Profile{ID: "u1", Name: "Anna", Role: models.RoleStudent})
		return nil
	}))
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	sentinel := errors.New("rejected")
	err = s.Update(context.Background(), func(state *State) error {
		state.Profiles = nil
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after, "a failed mutation must not reach disk")
}

func TestStoreInterruptedWriteKeepsCanonicalReadable(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Update(context.Background(), func(state *State) error {
		state.Profiles = append(state.Profiles, models.Profile{ID: "u1", Name: "Anna", Role: models.RoleStudent})
		return nil
	}))
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	// Block the temp file path so the staged write fails before the rename.
	tmp := s.Path() + ".tmp"
	require.NoError(t, os.MkdirAll(tmp, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "blocker"), []byte("x"), 0o644))

	err = s.Update(context.Background(), func(state *State) error {
		state.Profiles[0].Name = "Changed"
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStoreIO.Code, errorCode(t, err))

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after, "canonical document must survive an interrupted write")

	require.NoError(t, os.RemoveAll(tmp))
	err = s.View(context.Background(), func(state *State) error {
		require.Len(t, state.Profiles, 1)
		assert.Equal(t, "Anna", state.Profiles[0].Name)
		return nil
	})
	require.NoError(t, err)
}

func TestStoreRemovesStaleTempFile(t *testing.T) {
	s := newTestStore(t)
	tmp := s.Path() + ".tmp"
	require.NoError(t, os.MkdirAll(filepath.Dir(tmp), 0o755))
	require.NoError(t, os.WriteFile(tmp, []byte("half-written garbage"), 0o644))

	require.NoError(t, s.Update(context.Background(), func(state *State) error {
		state.Profiles = append(state.Profiles, models.Profile{ID: "u1", Name: "Anna", Role: models.RoleStudent})
		return nil
	}))

	_, err := os.Stat(tmp)
	assert.True(t, os.IsNotExist(err), "temp file must not linger after a successful write")
}
