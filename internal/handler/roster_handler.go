package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/educore-id/educore-api/internal/service"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
	"github.com/educore-id/educore-api/pkg/response"
)

// RosterHandler serves the teacher-facing student views.
type RosterHandler struct {
	service *service.RosterService
}

// NewRosterHandler creates a new handler.
func NewRosterHandler(svc *service.RosterService) *RosterHandler {
	return &RosterHandler{service: svc}
}

// ListStudents godoc
// @Summary List all registered students
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Security SessionToken
// @Router /teacher/students [get]
func (h *RosterHandler) ListStudents(c *gin.Context) {
	rows, err := h.service.ListStudents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "students", rows)
}

// ListActiveStudents godoc
// @Summary List students with an active session
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Security SessionToken
// @Router /teacher/students/active [get]
func (h *RosterHandler) ListActiveStudents(c *gin.Context) {
	rows, err := h.service.ListActiveStudents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "active students", rows)
}

// ListCompletions godoc
// @Summary List completions on own materials
// @Tags Roster
// @Produce json
// @Success 200 {object} response.Envelope
// @Security SessionToken
// @Router /teacher/completions [get]
func (h *RosterHandler) ListCompletions(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthenticated)
		return
	}

	entries, err := h.service.ListCompletions(c.Request.Context(), identity.ProfileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "completions", entries)
}

// ExportStudents godoc
// @Summary Export the student roster
// @Tags Roster
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Security SessionToken
// @Router /teacher/students/export [get]
func (h *RosterHandler) ExportStudents(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))

	payload, contentType, err := h.service.ExportStudents(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	fileName := fmt.Sprintf("students-%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, contentType, payload)
}
