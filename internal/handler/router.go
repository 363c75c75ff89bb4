package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutor-support-api/internal/middleware"
	"github.com/tutorhub/tutor-support-api/internal/models"
	"github.com/tutorhub/tutor-support-api/internal/service"
)

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Auth       *AuthHandler
	Schedule   *ScheduleHandler
	Calendar   *CalendarHandler
	Booking    *BookingHandler
	Profile    *ProfileHandler
	Evaluation *EvaluationHandler
	Document   *DocumentHandler
	Admin      *AdminHandler
}

// RegisterRoutes mounts the API surface under the configured prefix.
//
// Calendar and document reads take an optional token: the endpoints stay
// reachable anonymously, but visibility rules see who is asking. Mutating
// document endpoints, evaluations and the admin group require authentication.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService) {
	api := r.Group(prefix)

	api.POST("/auth/login", h.Auth.Login)
	api.GET("/auth/me", middleware.JWT(auth), h.Auth.Me)

	api.GET("/schedule/weekly-slots", h.Schedule.WeeklySlots)
	api.POST("/schedule/weekly-slots", h.Schedule.AddWeeklySlot)
	api.DELETE("/schedule/weekly-slots", h.Schedule.RemoveWeeklySlot)
	api.GET("/schedule/appointments", h.Schedule.ListAppointments)
	api.POST("/schedule/appointments", h.Schedule.CreateAppointment)
	api.DELETE("/schedule/appointments/:id", h.Schedule.DeleteAppointment)

	api.POST("/booking", h.Booking.Create)
	api.DELETE("/booking/:id", h.Booking.Cancel)

	api.GET("/calendar/tutor/:id", middleware.OptionalJWT(auth), h.Calendar.TutorCalendar)
	api.GET("/calendar/student/:id", middleware.OptionalJWT(auth), h.Calendar.StudentCalendar)

	api.GET("/profiles", h.Profile.List)
	api.GET("/profiles/:id", h.Profile.Get)
	api.GET("/search/tutors", h.Profile.SearchTutors)

	api.POST("/evaluations", middleware.JWT(auth), h.Evaluation.Submit)
	api.GET("/evaluations/tutor/:id", h.Evaluation.ListByTutor)

	api.GET("/documents/user/:id", middleware.OptionalJWT(auth), h.Document.ListForUser)
	api.POST("/documents", middleware.JWT(auth), h.Document.Upload)
	api.PATCH("/documents/:id/visibility", middleware.JWT(auth), h.Document.SetVisibility)
	api.PATCH("/documents/:id/pin", middleware.JWT(auth), h.Document.SetPinned)
	api.DELETE("/documents/:id", middleware.JWT(auth), h.Document.Delete)

	admin := api.Group("/admin", middleware.JWT(auth), middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/users", h.Admin.ListUsers)
	admin.PATCH("/users/:id/role", h.Admin.UpdateUserRole)
	admin.DELETE("/users/:id", h.Admin.DeleteUser)
	admin.GET("/analytics", h.Admin.AnalyticsOverview)
	admin.GET("/analytics/export", h.Admin.ExportAnalytics)
}
