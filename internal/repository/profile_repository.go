package repository

import (
	"context"
	"strings"

	"github.com/tutorhub/tutor-support-api/internal/models"
	"github.com/tutorhub/tutor-support-api/internal/store"
)

// ProfileRepository reads and mutates the canonical profiles collection.
type ProfileRepository struct {
	store *store.Store
}

// NewProfileRepository constructs the repository.
func NewProfileRepository(st *store.Store) *ProfileRepository {
	return &ProfileRepository{store: st}
}

// List returns all profiles, optionally filtered by role.
func (r *ProfileRepository) List(ctx context.Context, role models.UserRole) ([]models.Profile, error) {
	var result []models.Profile
	err := r.store.View(ctx, func(state *store.State) error {
		result = make([]models.Profile, 0, len(state.Profiles))
		for _, p := range state.Profiles {
			if role == "" || p.Role == role {
				result = append(result, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindByID returns the profile with the given id.
func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	var found *models.Profile
	err := r.store.View(ctx, func(state *store.State) error {
		if p := state.FindProfile(id); p != nil {
			clone := *p
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

// FindByEmail returns the profile with the given email, case-insensitively.
func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var found *models.Profile
	err := r.store.View(ctx, func(state *store.State) error {
		for i := range state.Profiles {
			if strings.EqualFold(state.Profiles[i].Email, email) {
				clone := state.Profiles[i]
				found = &clone
				return nil
			}
		}
		return ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// UpdateRole changes a user's role.
func (r *ProfileRepository) UpdateRole(ctx context.Context, id string, role models.UserRole) (*models.Profile, error) {
	var updated *models.Profile
	err := r.store.Update(ctx, func(state *store.State) error {
		p := state.FindProfile(id)
		if p == nil {
			return ErrNotFound
		}
		p.Role = role
		clone := *p
		updated = &clone
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a user and everything hanging off it: weekly template,
// appointments on either side, documents and evaluations.
func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(state *store.State) error {
		idx := -1
		for i := range state.Profiles {
			if state.Profiles[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}
		state.Profiles = append(state.Profiles[:idx], state.Profiles[idx+1:]...)
		delete(state.TutorSchedule, id)

		appointments := state.Appointments[:0]
		for _, apt := range state.Appointments {
			if apt.TutorID != id && apt.StudentID != id {
				appointments = append(appointments, apt)
			}
		}
		state.Appointments = appointments

		documents := state.Documents[:0]
		for _, doc := range state.Documents {
			if doc.UserID != id {
				documents = append(documents, doc)
			}
		}
		state.Documents = documents

		evaluations := state.Evaluations[:0]
		for _, ev := range state.Evaluations {
			if ev.TutorID != id && ev.StudentID != id {
				evaluations = append(evaluations, ev)
			}
		}
		state.Evaluations = evaluations
		return nil
	})
}
