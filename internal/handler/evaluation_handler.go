package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutor-support-api/internal/service"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
	"github.com/tutorhub/tutor-support-api/pkg/response"
)

// EvaluationHandler records and lists session evaluations.
type EvaluationHandler struct {
	service *service.EvaluationService
}

// NewEvaluationHandler creates a new handler.
func NewEvaluationHandler(svc *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{service: svc}
}

// Submit godoc
// @Summary Submit an evaluation
// @Description Stores a session rating and refreshes the tutor's average
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param payload body service.EvaluationRequest true "Evaluation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /evaluations [post]
func (h *EvaluationHandler) Submit(c *gin.Context) {
	var req service.EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid evaluation payload"))
		return
	}

	created, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// ListByTutor godoc
// @Summary List a tutor's evaluations
// @Tags Evaluations
// @Produce json
// @Param id path string true "Tutor id"
// @Success 200 {object} response.Envelope
// @Router /evaluations/tutor/{id} [get]
func (h *EvaluationHandler) ListByTutor(c *gin.Context) {
	result, err := h.service.ListByTutor(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
