package repository

import (
	"context"
	"errors"

	"github.com/tutorhub/tutor-support-api/internal/models"
	"github.com/tutorhub/tutor-support-api/internal/store"
)

// ScheduleRepository manages the per-tutor weekly availability template.
type ScheduleRepository struct {
	store *store.Store
}

// NewScheduleRepository constructs the repository.
func NewScheduleRepository(st *store.Store) *ScheduleRepository {
	return &ScheduleRepository{store: st}
}

// Weekly returns the tutor's weekly template. A tutor with no template yet
// gets an empty schedule, never a not-found error.
func (r *ScheduleRepository) Weekly(ctx context.Context, tutorID string) (models.WeeklySchedule, error) {
	var weekly models.WeeklySchedule
	err := r.store.View(ctx, func(state *store.State) error {
		entries := state.TutorSchedule[tutorID]
		weekly = make(models.WeeklySchedule, len(entries))
		copy(weekly, entries)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return weekly, nil
}

// AddSlot opens a weekly-template hour. The day entry is created on first
// use. Hours form a set per day: adding an hour that is already present is a
// silent no-op and does not touch the document.
func (r *ScheduleRepository) AddSlot(ctx context.Context, tutorID string, day models.DayName, hour string) error {
	err := r.store.Update(ctx, func(state *store.State) error {
		weekly := state.TutorSchedule[tutorID]
		for i, entry := range weekly {
			if entry.Day != day {
				continue
			}
			for _, existing := range entry.Slots {
				if existing == hour {
					return errUnchanged
				}
			}
			weekly[i].Slots = append(weekly[i].Slots, hour)
			state.TutorSchedule[tutorID] = weekly
			return nil
		}
		state.TutorSchedule[tutorID] = append(weekly, models.DaySchedule{Day: day, Slots: []string{hour}})
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return nil
	}
	return err
}

// RemoveSlot closes a weekly-template hour. It returns ErrNotFound when the
// tutor has no template, the day is absent, or the hour is not open; in that
// case the document is left untouched.
func (r *ScheduleRepository) RemoveSlot(ctx context.Context, tutorID string, day models.DayName, hour string) error {
	return r.store.Update(ctx, func(state *store.State) error {
		weekly, ok := state.TutorSchedule[tutorID]
		if !ok {
			return ErrNotFound
		}
		for i, entry := range weekly {
			if entry.Day != day {
				continue
			}
			for j, existing := range entry.Slots {
				if existing == hour {
					weekly[i].Slots = append(entry.Slots[:j], entry.Slots[j+1:]...)
					state.TutorSchedule[tutorID] = weekly
					return nil
				}
			}
			return ErrNotFound
		}
		return ErrNotFound
	})
}
