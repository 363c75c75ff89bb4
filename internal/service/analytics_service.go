package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/tutorhub/tutor-support-api/internal/models"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
	"github.com/tutorhub/tutor-support-api/pkg/export"
)

type analyticsProfileRepository interface {
	List(ctx context.Context, role models.UserRole) ([]models.Profile, error)
}

type analyticsAppointmentRepository interface {
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
}

// TutorSummary aggregates one tutor's activity for the admin overview.
type TutorSummary struct {
	TutorID  string  `json:"tutorId"`
	Name     string  `json:"name"`
	Sessions int     `json:"sessions"`
	Rating   float64 `json:"rating"`
}

// AnalyticsOverview is the admin dashboard aggregate.
type AnalyticsOverview struct {
	UsersByRole          map[string]int `json:"usersByRole"`
	AppointmentsByStatus map[string]int `json:"appointmentsByStatus"`
	TopTutors            []TutorSummary `json:"topTutors"`
}

// AnalyticsService computes admin aggregates over the datastore and renders
// exportable reports.
type AnalyticsService struct {
	profiles     analyticsProfileRepository
	appointments analyticsAppointmentRepository
	cache        *CacheService
	csv          *export.CSVExporter
	pdf          *export.PDFExporter
	logger       *zap.Logger
}

// NewAnalyticsService constructs the analytics service.
func NewAnalyticsService(
	profiles analyticsProfileRepository,
	appointments analyticsAppointmentRepository,
	cache *CacheService,
	logger *zap.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		profiles:     profiles,
		appointments: appointments,
		cache:        cache,
		csv:          export.NewCSVExporter(),
		pdf:          export.NewPDFExporter(),
		logger:       logger,
	}
}

// Overview aggregates user and appointment counts plus the busiest tutors.
func (s *AnalyticsService) Overview(ctx context.Context) (*AnalyticsOverview, error) {
	const cacheKey = "analytics:overview"
	var cached AnalyticsOverview
	if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
		return &cached, nil
	}

	profiles, err := s.profiles.List(ctx, "")
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	appointments, err := s.appointments.List(ctx, models.AppointmentFilter{})
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	overview := &AnalyticsOverview{
		UsersByRole:          make(map[string]int),
		AppointmentsByStatus: make(map[string]int),
	}
	for _, p := range profiles {
		overview.UsersByRole[string(p.Role)]++
	}

	sessionsByTutor := make(map[string]int)
	for _, apt := range appointments {
		overview.AppointmentsByStatus[string(apt.Status)]++
		if apt.Status != models.StatusAvailable {
			sessionsByTutor[apt.TutorID]++
		}
	}

	for _, p := range profiles {
		if p.Role != models.RoleTutor {
			continue
		}
		overview.TopTutors = append(overview.TopTutors, TutorSummary{
			TutorID:  p.ID,
			Name:     p.Name,
			Sessions: sessionsByTutor[p.ID],
			Rating:   p.Rating,
		})
	}
	sort.SliceStable(overview.TopTutors, func(i, j int) bool {
		if overview.TopTutors[i].Sessions != overview.TopTutors[j].Sessions {
			return overview.TopTutors[i].Sessions > overview.TopTutors[j].Sessions
		}
		return overview.TopTutors[i].Name < overview.TopTutors[j].Name
	})
	if len(overview.TopTutors) > 10 {
		overview.TopTutors = overview.TopTutors[:10]
	}

	if err := s.cache.Set(ctx, cacheKey, overview, 0); err != nil && s.logger != nil {
		s.logger.Debug("analytics cache write skipped", zap.Error(err))
	}
	return overview, nil
}

// Export renders the tutor activity report as CSV or PDF.
func (s *AnalyticsService) Export(ctx context.Context, format string) ([]byte, string, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Headers: []string{"Tutor", "Sessions", "Rating"},
		Rows:    make([]map[string]string, 0, len(overview.TopTutors)),
	}
	for _, t := range overview.TopTutors {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Tutor":    t.Name,
			"Sessions": strconv.Itoa(t.Sessions),
			"Rating":   fmt.Sprintf("%.1f", t.Rating),
		})
	}

	switch format {
	case "csv":
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv export failed")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := s.pdf.Render(dataset, "Tutor Activity")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf export failed")
		}
		return payload, "application/pdf", nil
	}
	return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
}
