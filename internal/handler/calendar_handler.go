package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutor-support-api/internal/middleware"
	"github.com/tutorhub/tutor-support-api/internal/service"
	"github.com/tutorhub/tutor-support-api/pkg/response"
)

// CalendarHandler serves derived calendar views.
type CalendarHandler struct {
	service *service.CalendarService
}

// NewCalendarHandler creates a new handler.
func NewCalendarHandler(svc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: svc}
}

// TutorCalendar godoc
// @Summary Get a tutor's calendar
// @Description Reconciles the weekly template with dated appointments into a week view
// @Tags Calendar
// @Produce json
// @Param id path string true "Tutor id"
// @Param from query string false "Window start date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /calendar/tutor/{id} [get]
func (h *CalendarHandler) TutorCalendar(c *gin.Context) {
	viewerID := ""
	if claims := middleware.CurrentClaims(c); claims != nil {
		viewerID = claims.UserID
	}

	days, err := h.service.TutorCalendar(c.Request.Context(), c.Param("id"), viewerID, c.Query("from"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days)
}

// StudentCalendar godoc
// @Summary Get a student's calendar
// @Description Shows the student's sessions over the canonical evening hours
// @Tags Calendar
// @Produce json
// @Param id path string true "Student id"
// @Param from query string false "Window start date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /calendar/student/{id} [get]
func (h *CalendarHandler) StudentCalendar(c *gin.Context) {
	days, err := h.service.StudentCalendar(c.Request.Context(), c.Param("id"), c.Query("from"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, days)
}
