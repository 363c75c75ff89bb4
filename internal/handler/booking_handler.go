package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutor-support-api/internal/service"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
	"github.com/tutorhub/tutor-support-api/pkg/response"
)

// BookingHandler exposes the student-facing booking endpoints.
type BookingHandler struct {
	service *service.BookingService
}

// NewBookingHandler creates a new handler.
func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{service: svc}
}

// Create godoc
// @Summary Book a session
// @Description Books a session with a tutor; collisions on either side return 409
// @Tags Booking
// @Accept json
// @Produce json
// @Param payload body service.AppointmentRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /booking [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req service.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid booking payload"))
		return
	}
	if req.StudentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId is required"))
		return
	}

	apt, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, apt)
}

// Cancel godoc
// @Summary Cancel a booking
// @Description Deletes a booked session by id
// @Tags Booking
// @Produce json
// @Param id path string true "Appointment id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /booking/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	removed, err := h.service.Cancel(c.Request.Context(), c.Param("id"))
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
