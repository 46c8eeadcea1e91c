package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educore-id/educore-api/internal/models"
	"github.com/educore-id/educore-api/internal/service"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
	"github.com/educore-id/educore-api/pkg/response"
)

// ProfileHandler serves the role-shaped profile endpoints.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler creates a new handler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// Get godoc
// @Summary Get own profile
// @Description Return the caller's profile, shaped by role
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security SessionToken
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	switch identity.Role {
	case models.RoleStudent:
		profile, err := h.service.GetStudent(c.Request.Context(), identity.AccountID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "profile", profile)
	case models.RoleTeacher:
		profile, err := h.service.GetTeacher(c.Request.Context(), identity.AccountID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "profile", profile)
	default:
		response.Error(c, appErrors.ErrForbidden)
	}
}

// Update godoc
// @Summary Update own profile
// @Description Partially update the caller's profile, shaped by role
// @Tags Profile
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security SessionToken
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	switch identity.Role {
	case models.RoleStudent:
		var req service.UpdateStudentProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
			return
		}
		profile, err := h.service.UpdateStudent(c.Request.Context(), identity.AccountID, req)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "profile updated", profile)
	case models.RoleTeacher:
		var req service.UpdateTeacherProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid profile payload"))
			return
		}
		profile, err := h.service.UpdateTeacher(c.Request.Context(), identity.AccountID, req)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.OK(c, "profile updated", profile)
	default:
		response.Error(c, appErrors.ErrForbidden)
	}
}
