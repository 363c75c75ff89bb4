package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tutorhub/tutor-support-api/internal/models"
	"github.com/tutorhub/tutor-support-api/internal/repository"
	"github.com/tutorhub/tutor-support-api/internal/service"
	"github.com/tutorhub/tutor-support-api/internal/store"
	"github.com/tutorhub/tutor-support-api/pkg/config"
)

type testServer struct {
	router *gin.Engine
	store  *store.Store
	auth   *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(filepath.Join(t.TempDir(), "db.json"), nil)
	logr := zap.NewNop()

	profileRepo := repository.NewProfileRepository(st)
	scheduleRepo := repository.NewScheduleRepository(st)
	appointmentRepo := repository.NewAppointmentRepository(st)
	evaluationRepo := repository.NewEvaluationRepository(st)
	documentRepo := repository.NewDocumentRepository(st)

	jwtCfg := config.JWTConfig{Secret: "test_secret", Issuer: "tutor-support-api"}
	calendarCfg := config.CalendarConfig{
		ReferenceDate:   "2025-11-24",
		WindowDays:      7,
		StudentDayStart: 17,
		StudentDayEnd:   23,
	}

	authSvc := service.NewAuthService(profileRepo, jwtCfg, logr)
	profileSvc := service.NewProfileService(profileRepo, logr)
	searchSvc := service.NewSearchService(profileRepo, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, nil, logr)
	bookingSvc := service.NewBookingService(appointmentRepo, profileRepo, nil, logr)
	calendarSvc := service.NewCalendarService(scheduleRepo, appointmentRepo, profileRepo, nil, calendarCfg, logr)
	evaluationSvc := service.NewEvaluationService(evaluationRepo, logr)
	documentSvc := service.NewDocumentService(documentRepo, logr)
	analyticsSvc := service.NewAnalyticsService(profileRepo, appointmentRepo, nil, logr)

	r := gin.New()
	RegisterRoutes(r, "/api", Handlers{
		Auth:       NewAuthHandler(authSvc),
		Schedule:   NewScheduleHandler(scheduleSvc, bookingSvc),
		Calendar:   NewCalendarHandler(calendarSvc),
		Booking:    NewBookingHandler(bookingSvc),
		Profile:    NewProfileHandler(profileSvc, searchSvc),
		Evaluation: NewEvaluationHandler(evaluationSvc),
		Document:   NewDocumentHandler(documentSvc),
		Admin:      NewAdminHandler(profileSvc, analyticsSvc, true),
	}, authSvc)

	return &testServer{router: r, store: st, auth: authSvc}
}

func (ts *testServer) seed(t *testing.T, mutate func(state *store.State)) {
	t.Helper()
	require.NoError(t, ts.store.Update(context.Background(), func(state *store.State) error {
		mutate(state)
		return nil
	}))
}

func (ts *testServer) seedUser(t *testing.T, id, name string, role models.UserRole) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	ts.seed(t, func(state *store.State) {
		state.Profiles = append(state.Profiles, models.Profile{
			ID:           id,
			Name:         name,
			Email:        id + "@example.edu",
			PasswordHash: string(hash),
			Role:         role,
		})
	})
}

func (ts *testServer) token(t *testing.T, id string) string {
	t.Helper()
	res, err := ts.auth.Login(context.Background(), models.LoginRequest{
		Email:    id + "@example.edu",
		Password: "s3cret",
	})
	require.NoError(t, err)
	return res.AccessToken
}

func (ts *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func TestLoginEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "student-1", "Minh", models.RoleStudent)

	w := ts.do(http.MethodPost, "/api/auth/login", gin.H{
		"email":    "student-1@example.edu",
		"password": "s3cret",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var res models.LoginResponse
	decodeData(t, w, &res)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "student-1", res.User.ID)

	w = ts.do(http.MethodPost, "/api/auth/login", gin.H{
		"email":    "student-1@example.edu",
		"password": "wrong",
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresToken(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "student-1", "Minh", models.RoleStudent)

	require.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/api/auth/me", nil, "").Code)

	w := ts.do(http.MethodGet, "/api/auth/me", nil, ts.token(t, "student-1"))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestWeeklySlotLifecycle(t *testing.T) {
	ts := newTestServer(t)

	payload := gin.H{"tutorId": "tutor-1", "day": "Monday", "slot": "09:00"}
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/schedule/weekly-slots", payload, "").Code)

	w := ts.do(http.MethodGet, "/api/schedule/weekly-slots?tutorId=tutor-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var weekly models.WeeklySchedule
	decodeData(t, w, &weekly)
	assert.Equal(t, []string{"09:00"}, weekly.HoursFor(models.Monday))

	require.Equal(t, http.StatusNoContent, ts.do(http.MethodDelete, "/api/schedule/weekly-slots", payload, "").Code)
	require.Equal(t, http.StatusNotFound, ts.do(http.MethodDelete, "/api/schedule/weekly-slots", payload, "").Code)
}

func TestWeeklySlotValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodPost, "/api/schedule/weekly-slots", gin.H{
		"tutorId": "tutor-1", "day": "Funday", "slot": "09:00",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingConflictReturns409(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "tutor-1", "Dr. Chen", models.RoleTutor)
	ts.seedUser(t, "tutor-2", "Dr. Pham", models.RoleTutor)
	ts.seedUser(t, "student-1", "Minh", models.RoleStudent)

	first := gin.H{"tutorId": "tutor-1", "studentId": "student-1", "subject": "calculus", "date": "2025-11-24", "time": "17:00"}
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/booking", first, "").Code)

	// Same student, same hour, different tutor.
	second := gin.H{"tutorId": "tutor-2", "studentId": "student-1", "subject": "physics", "date": "2025-11-24", "time": "17:00"}
	w := ts.do(http.MethodPost, "/api/booking", second, "")
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "CONFLICT")
}

func TestBookingRequiresStudent(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "tutor-1", "Dr. Chen", models.RoleTutor)

	w := ts.do(http.MethodPost, "/api/booking", gin.H{
		"tutorId": "tutor-1", "date": "2025-11-24", "time": "17:00",
	}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelMissingBookingReturns404(t *testing.T) {
	ts := newTestServer(t)

	require.Equal(t, http.StatusNotFound, ts.do(http.MethodDelete, "/api/booking/apt-404", nil, "").Code)
}

func TestListAppointmentsRequiresParty(t *testing.T) {
	ts := newTestServer(t)

	require.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/schedule/appointments", nil, "").Code)
}

func TestTutorCalendarEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "tutor-1", "Dr. Chen", models.RoleTutor)
	ts.seed(t, func(state *store.State) {
		state.TutorSchedule["tutor-1"] = models.WeeklySchedule{
			{Day: models.Monday, Slots: []string{"09:00"}},
		}
	})

	w := ts.do(http.MethodGet, "/api/calendar/tutor/tutor-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var days []models.CalendarDay
	decodeData(t, w, &days)
	require.Len(t, days, 7)
	require.Len(t, days[0].Hours, 1)
	assert.Nil(t, days[0].Hours[0].Slot, "template-only hours stay empty")

	require.Equal(t, http.StatusNotFound, ts.do(http.MethodGet, "/api/calendar/tutor/tutor-404", nil, "").Code)
}

func TestTutorCalendarVisibility(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "tutor-1", "Dr. Chen", models.RoleTutor)
	ts.seedUser(t, "student-1", "Minh", models.RoleStudent)
	ts.seed(t, func(state *store.State) {
		state.Profiles[0].ScheduleVisibility = models.VisibilityPrivate
		state.TutorSchedule["tutor-1"] = models.WeeklySchedule{
			{Day: models.Monday, Slots: []string{"09:00"}},
		}
	})

	var days []models.CalendarDay

	w := ts.do(http.MethodGet, "/api/calendar/tutor/tutor-1", nil, ts.token(t, "student-1"))
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &days)
	assert.Empty(t, days, "private calendars are empty for other viewers")

	w = ts.do(http.MethodGet, "/api/calendar/tutor/tutor-1", nil, ts.token(t, "tutor-1"))
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &days)
	assert.Len(t, days, 7)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "student-1", "Minh", models.RoleStudent)
	ts.seedUser(t, "admin-1", "Root", models.RoleAdmin)

	require.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/api/admin/users", nil, "").Code)
	require.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, "/api/admin/users", nil, ts.token(t, "student-1")).Code)
	require.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/api/admin/users", nil, ts.token(t, "admin-1")).Code)
}

func TestAdminAnalyticsExport(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "admin-1", "Root", models.RoleAdmin)
	ts.seedUser(t, "tutor-1", "Dr. Chen", models.RoleTutor)
	ts.seedUser(t, "student-1", "Minh", models.RoleStudent)
	ts.seed(t, func(state *store.State) {
		state.Appointments = append(state.Appointments, models.Appointment{
			ID: "apt-1", TutorID: "tutor-1", TutorName: "Dr. Chen",
			StudentID: "student-1", StudentName: "Minh",
			Date: "2025-11-24", Time: "17:00", Status: models.StatusBooked,
		})
	})
	token := ts.token(t, "admin-1")

	w := ts.do(http.MethodGet, "/api/admin/analytics/export?format=csv", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Dr. Chen")

	require.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/admin/analytics/export?format=xml", nil, token).Code)
}

func TestDocumentVisibilityFiltering(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "tutor-1", "Dr. Chen", models.RoleTutor)
	ts.seedUser(t, "student-1", "Minh", models.RoleStudent)
	ts.seed(t, func(state *store.State) {
		state.Documents = append(state.Documents,
			models.Document{ID: "doc-1", UserID: "tutor-1", Name: "syllabus.pdf", Type: models.DocPDF, UploadDate: "2025-11-01", Visibility: models.VisibilityPublic},
			models.Document{ID: "doc-2", UserID: "tutor-1", Name: "drafts.pdf", Type: models.DocPDF, UploadDate: "2025-11-02", Visibility: models.VisibilityPrivate},
		)
	})

	var docs []models.Document

	w := ts.do(http.MethodGet, "/api/documents/user/tutor-1", nil, ts.token(t, "student-1"))
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &docs)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc-1", docs[0].ID)

	w = ts.do(http.MethodGet, "/api/documents/user/tutor-1", nil, ts.token(t, "tutor-1"))
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &docs)
	assert.Len(t, docs, 2, "owners see their private documents")
}

func TestEvaluationUpdatesTutorRating(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "tutor-1", "Dr. Chen", models.RoleTutor)
	ts.seedUser(t, "student-1", "Minh", models.RoleStudent)
	token := ts.token(t, "student-1")

	w := ts.do(http.MethodPost, "/api/evaluations", gin.H{
		"tutorId": "tutor-1", "studentId": "student-1", "rating": 4, "comment": "clear explanations",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(http.MethodPost, "/api/evaluations", gin.H{
		"tutorId": "tutor-1", "studentId": "student-1", "rating": 2,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = ts.do(http.MethodGet, "/api/profiles/tutor-1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var profile models.ProfileView
	decodeData(t, w, &profile)
	assert.InDelta(t, 3.0, profile.Rating, 0.001)
}

func TestSearchTutors(t *testing.T) {
	ts := newTestServer(t)
	ts.seed(t, func(state *store.State) {
		state.Profiles = append(state.Profiles,
			models.Profile{ID: "tutor-1", Name: "Dr. Chen", Role: models.RoleTutor, Department: "math", Specialization: "calculus", Rating: 4.5},
			models.Profile{ID: "tutor-2", Name: "Dr. Pham", Role: models.RoleTutor, Department: "physics", Specialization: "mechanics", Rating: 4.8},
			models.Profile{ID: "student-1", Name: "Chen Minh", Role: models.RoleStudent},
		)
	})

	var tutors []models.ProfileView

	w := ts.do(http.MethodGet, "/api/search/tutors?q=chen", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &tutors)
	require.Len(t, tutors, 1, "students never appear in tutor search")
	assert.Equal(t, "tutor-1", tutors[0].ID)

	w = ts.do(http.MethodGet, "/api/search/tutors?department=physics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &tutors)
	require.Len(t, tutors, 1)
	assert.Equal(t, "tutor-2", tutors[0].ID)
}

func TestScheduleAppointmentOpenSlotThenClaim(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "tutor-1", "Dr. Chen", models.RoleTutor)
	ts.seedUser(t, "student-1", "Minh", models.RoleStudent)

	w := ts.do(http.MethodPost, "/api/schedule/appointments", gin.H{
		"tutorId": "tutor-1", "subject": "calculus", "date": "2025-11-26", "time": "14:00",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var opened models.Appointment
	decodeData(t, w, &opened)
	require.Equal(t, models.StatusAvailable, opened.Status)

	w = ts.do(http.MethodPost, "/api/booking", gin.H{
		"tutorId": "tutor-1", "studentId": "student-1", "date": "2025-11-26", "time": "14:00",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var claimed models.Appointment
	decodeData(t, w, &claimed)
	assert.Equal(t, opened.ID, claimed.ID, "claiming an open slot keeps its id")
	assert.Equal(t, models.StatusBooked, claimed.Status)

	w = ts.do(http.MethodGet, fmt.Sprintf("/api/schedule/appointments?tutorId=%s", "tutor-1"), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Appointment
	decodeData(t, w, &all)
	assert.Len(t, all, 1)
}
