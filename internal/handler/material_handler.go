package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educore-id/educore-api/internal/service"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
	"github.com/educore-id/educore-api/pkg/response"
)

// MaterialHandler serves the learning material endpoints.
type MaterialHandler struct {
	service *service.MaterialService
}

// NewMaterialHandler creates a new handler.
func NewMaterialHandler(svc *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{service: svc}
}

// Create godoc
// @Summary Create a material
// @Description Create a material owned by the calling teacher
// @Tags Materials
// @Accept json
// @Produce json
// @Param payload body service.CreateMaterialRequest true "Material payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security SessionToken
// @Router /materials [post]
func (h *MaterialHandler) Create(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req service.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid material payload"))
		return
	}

	material, err := h.service.Create(c.Request.Context(), identity.ProfileID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "material created", material)
}

// List godoc
// @Summary List materials of a class
// @Tags Materials
// @Produce json
// @Param class query string true "Class id or name"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security SessionToken
// @Router /materials [get]
func (h *MaterialHandler) List(c *gin.Context) {
	materials, err := h.service.ListByClass(c.Request.Context(), c.Query("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "materials", materials)
}

// Get godoc
// @Summary Get a material
// @Tags Materials
// @Produce json
// @Param id path string true "Material id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security SessionToken
// @Router /materials/{id} [get]
func (h *MaterialHandler) Get(c *gin.Context) {
	material, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "material", material)
}

// Update godoc
// @Summary Update a material
// @Description Partially update a material; only its owner may do so
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Material id"
// @Param payload body service.UpdateMaterialRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security SessionToken
// @Router /materials/{id} [put]
func (h *MaterialHandler) Update(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	var req service.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid material payload"))
		return
	}

	material, err := h.service.Update(c.Request.Context(), c.Param("id"), identity.ProfileID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "material updated", material)
}

// Delete godoc
// @Summary Delete a material
// @Description Delete a material; only its owner may do so
// @Tags Materials
// @Produce json
// @Param id path string true "Material id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security SessionToken
// @Router /materials/{id} [delete]
func (h *MaterialHandler) Delete(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), identity.ProfileID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "material deleted", nil)
}

// Download godoc
// @Summary Download a material attachment
// @Description Redirect to external media or return a signed file token
// @Tags Materials
// @Produce json
// @Param id path string true "Material id"
// @Success 200 {object} response.Envelope
// @Success 302
// @Failure 404 {object} response.Envelope
// @Security SessionToken
// @Router /materials/{id}/download [get]
func (h *MaterialHandler) Download(c *gin.Context) {
	download, err := h.service.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	if download.RedirectURL != "" {
		c.Redirect(http.StatusFound, download.RedirectURL)
		return
	}
	response.OK(c, "download ready", download)
}

// Complete godoc
// @Summary Mark a material as completed
// @Description Idempotently record that the calling student finished a material
// @Tags Materials
// @Produce json
// @Param id path string true "Material id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security SessionToken
// @Router /materials/{id}/complete [post]
func (h *MaterialHandler) Complete(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	mark, err := h.service.MarkComplete(c.Request.Context(), identity.ProfileID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "material completed", mark)
}

// CompletionStatus godoc
// @Summary Check completion of a material
// @Tags Materials
// @Produce json
// @Param id path string true "Material id"
// @Success 200 {object} response.Envelope
// @Security SessionToken
// @Router /materials/{id}/completion [get]
func (h *MaterialHandler) CompletionStatus(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	done, err := h.service.CompletionStatus(c.Request.Context(), identity.ProfileID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "completion status", gin.H{"done": done})
}
