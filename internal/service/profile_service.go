package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tutorhub/tutor-support-api/internal/models"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
)

type profileRepository interface {
	List(ctx context.Context, role models.UserRole) ([]models.Profile, error)
	FindByID(ctx context.Context, id string) (*models.Profile, error)
	UpdateRole(ctx context.Context, id string, role models.UserRole) (*models.Profile, error)
	Delete(ctx context.Context, id string) error
}

// ProfileService serves user profiles to the API, always through the
// credential-free projection.
type ProfileService struct {
	profiles profileRepository
	logger   *zap.Logger
}

// NewProfileService constructs the profile service.
func NewProfileService(profiles profileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

// Get returns one profile.
func (s *ProfileService) Get(ctx context.Context, id string) (models.ProfileView, error) {
	if id == "" {
		return models.ProfileView{}, appErrors.Clone(appErrors.ErrValidation, "profile id is required")
	}
	profile, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return models.ProfileView{}, mapRepositoryError(err)
	}
	return profile.View(), nil
}

// List returns all profiles, optionally filtered by role.
func (s *ProfileService) List(ctx context.Context, role string) ([]models.ProfileView, error) {
	r := models.UserRole(role)
	if role != "" && r != models.RoleStudent && r != models.RoleTutor && r != models.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role filter")
	}
	profiles, err := s.profiles.List(ctx, r)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	views := make([]models.ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, p.View())
	}
	return views, nil
}

// UpdateRole promotes or demotes a user. Admin endpoints only.
func (s *ProfileService) UpdateRole(ctx context.Context, id, role string) (models.ProfileView, error) {
	r := models.UserRole(role)
	if r != models.RoleStudent && r != models.RoleTutor && r != models.RoleAdmin {
		return models.ProfileView{}, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	updated, err := s.profiles.UpdateRole(ctx, id, r)
	if err != nil {
		return models.ProfileView{}, mapRepositoryError(err)
	}
	s.logger.Info("user role updated", zap.String("user_id", id), zap.String("role", role))
	return updated.View(), nil
}

// Delete removes a user and their dependent records.
func (s *ProfileService) Delete(ctx context.Context, id string) error {
	if err := s.profiles.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}
