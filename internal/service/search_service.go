package service

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/tutorhub/tutor-support-api/internal/models"
)

type searchProfileRepository interface {
	List(ctx context.Context, role models.UserRole) ([]models.Profile, error)
}

// SearchService finds tutors by free-text query and department filter.
type SearchService struct {
	profiles searchProfileRepository
	logger   *zap.Logger
}

// NewSearchService constructs the search service.
func NewSearchService(profiles searchProfileRepository, logger *zap.Logger) *SearchService {
	return &SearchService{profiles: profiles, logger: logger}
}

// Tutors returns tutors whose name or specialization matches the query,
// optionally restricted to a department. Results are sorted by descending
// rating, then name, so the listing is stable.
func (s *SearchService) Tutors(ctx context.Context, query, department string) ([]models.ProfileView, error) {
	tutors, err := s.profiles.List(ctx, models.RoleTutor)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	matches := make([]models.ProfileView, 0, len(tutors))
	for _, tutor := range tutors {
		if department != "" && !strings.EqualFold(tutor.Department, department) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(tutor.Name), needle) &&
			!strings.Contains(strings.ToLower(tutor.Specialization), needle) {
			continue
		}
		matches = append(matches, tutor.View())
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Rating != matches[j].Rating {
			return matches[i].Rating > matches[j].Rating
		}
		return matches[i].Name < matches[j].Name
	})
	return matches, nil
}
