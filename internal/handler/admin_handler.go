package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutor-support-api/internal/service"
	appErrors "github.com/tutorhub/tutor-support-api/pkg/errors"
	"github.com/tutorhub/tutor-support-api/pkg/response"
)

// AdminHandler exposes user administration and analytics.
type AdminHandler struct {
	profiles       *service.ProfileService
	analytics      *service.AnalyticsService
	exportsEnabled bool
}

// NewAdminHandler creates a new handler.
func NewAdminHandler(profiles *service.ProfileService, analytics *service.AnalyticsService, exportsEnabled bool) *AdminHandler {
	return &AdminHandler{profiles: profiles, analytics: analytics, exportsEnabled: exportsEnabled}
}

// ListUsers godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Param role query string false "Role filter"
// @Success 200 {object} response.Envelope
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.profiles.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// UpdateUserRole godoc
// @Summary Change a user's role
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User id"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/users/{id}/role [patch]
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	var payload struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "role is required"))
		return
	}

	updated, err := h.profiles.UpdateRole(c.Request.Context(), c.Param("id"), payload.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Removes the user and every dependent record
// @Tags Admin
// @Produce json
// @Param id path string true "User id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AnalyticsOverview godoc
// @Summary Admin analytics overview
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/analytics [get]
func (h *AdminHandler) AnalyticsOverview(c *gin.Context) {
	overview, err := h.analytics.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview)
}

// ExportAnalytics godoc
// @Summary Export tutor activity report
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/analytics/export [get]
func (h *AdminHandler) ExportAnalytics(c *gin.Context) {
	if !h.exportsEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "exports are disabled"))
		return
	}

	payload, contentType, err := h.analytics.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("tutor-activity-%s", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, payload)
}
