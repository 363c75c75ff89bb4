package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutor-support-api/internal/middleware"
	"github.com/tutorhub/tutor-support-api/internal/service"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
	"github.com/tutorhub/tutor-support-api/pkg/response"
)

// DocumentHandler manages shared-document metadata.
type DocumentHandler struct {
	service *service.DocumentService
}

// NewDocumentHandler creates a new handler.
func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: svc}
}

// ListForUser godoc
// @Summary List a user's documents
// @Description Private documents are hidden from viewers other than the owner
// @Tags Documents
// @Produce json
// @Param id path string true "Owner id"
// @Success 200 {object} response.Envelope
// @Router /documents/user/{id} [get]
func (h *DocumentHandler) ListForUser(c *gin.Context) {
	viewerID := ""
	if claims := middleware.CurrentClaims(c); claims != nil {
		viewerID = claims.UserID
	}

	docs, err := h.service.ListForUser(c.Request.Context(), c.Param("id"), viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docs)
}

// Upload godoc
// @Summary Upload document metadata
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body service.DocumentRequest true "Document payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	var req service.DocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document payload"))
		return
	}

	created, err := h.service.Upload(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// SetVisibility godoc
// @Summary Change document visibility
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Document id"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents/{id}/visibility [patch]
func (h *DocumentHandler) SetVisibility(c *gin.Context) {
	var payload struct {
		Visibility string `json:"visibility" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "visibility is required"))
		return
	}

	if err := h.service.SetVisibility(c.Request.Context(), c.Param("id"), payload.Visibility); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetPinned godoc
// @Summary Pin or unpin a document
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path string true "Document id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents/{id}/pin [patch]
func (h *DocumentHandler) SetPinned(c *gin.Context) {
	var payload struct {
		Pinned bool `json:"pinned"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid pin payload"))
		return
	}

	if err := h.service.SetPinned(c.Request.Context(), c.Param("id"), payload.Pinned); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete document metadata
// @Tags Documents
// @Produce json
// @Param id path string true "Document id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
