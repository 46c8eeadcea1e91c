package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/educore-id/educore-api/internal/service"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
	"github.com/educore-id/educore-api/pkg/response"
)

// CatalogHandler serves the subject and class reference data.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler creates a new handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Security SessionToken
// @Router /subjects [get]
func (h *CatalogHandler) ListSubjects(c *gin.Context) {
	subjects, err := h.service.ListSubjects(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "subjects", subjects)
}

// ListClasses godoc
// @Summary List classes
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Security SessionToken
// @Router /classes [get]
func (h *CatalogHandler) ListClasses(c *gin.Context) {
	classes, err := h.service.ListClasses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "classes", classes)
}

// ListEnrollments godoc
// @Summary List own enrollments for a subject
// @Tags Catalog
// @Produce json
// @Param subject query string true "Subject id or name"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security SessionToken
// @Router /enrollments [get]
func (h *CatalogHandler) ListEnrollments(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	enrollments, err := h.service.ListStudentEnrollments(c.Request.Context(), identity.ProfileID, c.Query("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "enrollments", enrollments)
}
