package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tutorhub/tutor-support-api/internal/service"
	"github.com/tutorhub/tutor-support-api/pkg/response"
)

// ProfileHandler serves user profiles.
type ProfileHandler struct {
	profiles *service.ProfileService
	search   *service.SearchService
}

// NewProfileHandler creates a new handler.
func NewProfileHandler(profiles *service.ProfileService, search *service.SearchService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, search: search}
}

// Get godoc
// @Summary Get a profile
// @Description Returns one user profile without credentials
// @Tags Profiles
// @Produce json
// @Param id path string true "Profile id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /profiles/{id} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}

// List godoc
// @Summary List profiles
// @Description Lists user profiles, optionally filtered by role
// @Tags Profiles
// @Produce json
// @Param role query string false "Role filter"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /profiles [get]
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profiles)
}

// SearchTutors godoc
// @Summary Search tutors
// @Description Finds tutors by name or specialization, optionally within a department
// @Tags Profiles
// @Produce json
// @Param q query string false "Free-text query"
// @Param department query string false "Department filter"
// @Success 200 {object} response.Envelope
// @Router /search/tutors [get]
func (h *ProfileHandler) SearchTutors(c *gin.Context) {
	tutors, err := h.search.Tutors(c.Request.Context(), c.Query("q"), c.Query("department"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tutors)
}
