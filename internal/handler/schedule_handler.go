package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutor-support-api/internal/service"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
	"github.com/tutorhub/tutor-support-api/pkg/response"
)

// ScheduleHandler exposes the weekly availability template and the dated
// appointment collection tutors manage.
type ScheduleHandler struct {
	schedules *service.ScheduleService
	bookings  *service.BookingService
}

// NewScheduleHandler creates a new handler.
func NewScheduleHandler(schedules *service.ScheduleService, bookings *service.BookingService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, bookings: bookings}
}

// WeeklySlots godoc
// @Summary Get weekly availability template
// @Description Returns the tutor's recurring weekly open hours
// @Tags Schedule
// @Produce json
// @Param tutorId query string true "Tutor id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/weekly-slots [get]
func (h *ScheduleHandler) WeeklySlots(c *gin.Context) {
	weekly, err := h.schedules.Weekly(c.Request.Context(), c.Query("tutorId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, weekly)
}

// AddWeeklySlot godoc
// @Summary Open a weekly template hour
// @Description Adds an hour to the tutor's recurring availability
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body service.SlotRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/weekly-slots [post]
func (h *ScheduleHandler) AddWeeklySlot(c *gin.Context) {
	var req service.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}

	if err := h.schedules.AddSlot(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, req)
}

// RemoveWeeklySlot godoc
// @Summary Close a weekly template hour
// @Description Removes an hour from the tutor's recurring availability
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body service.SlotRequest true "Slot payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedule/weekly-slots [delete]
func (h *ScheduleHandler) RemoveWeeklySlot(c *gin.Context) {
	var req service.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot payload"))
		return
	}

	removed, err := h.schedules.RemoveSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !removed {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "slot is not open"))
		return
	}
	response.NoContent(c)
}

// ListAppointments godoc
// @Summary List appointments
// @Description Lists dated appointments for a tutor or a student
// @Tags Schedule
// @Produce json
// @Param tutorId query string false "Tutor id"
// @Param studentId query string false "Student id"
// @Param status query string false "Status filter"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule/appointments [get]
func (h *ScheduleHandler) ListAppointments(c *gin.Context) {
	result, err := h.bookings.List(c.Request.Context(), service.ListAppointmentsQuery{
		TutorID:   c.Query("tutorId"),
		StudentID: c.Query("studentId"),
		Status:    c.Query("status"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// CreateAppointment godoc
// @Summary Create an appointment
// @Description Publishes an open slot, or books a session when a student is named
// @Tags Schedule
// @Accept json
// @Produce json
// @Param payload body service.AppointmentRequest true "Appointment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /schedule/appointments [post]
func (h *ScheduleHandler) CreateAppointment(c *gin.Context) {
	var req service.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid appointment payload"))
		return
	}

	apt, err := h.bookings.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, apt)
}

// DeleteAppointment godoc
// @Summary Delete an appointment
// @Description Removes a dated appointment by id
// @Tags Schedule
// @Produce json
// @Param id path string true "Appointment id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedule/appointments/{id} [delete]
func (h *ScheduleHandler) DeleteAppointment(c *gin.Context) {
	removed, err := h.bookings.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if !removed {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "appointment not found"))
		return
	}
	response.NoContent(c)
}
