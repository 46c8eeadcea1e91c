package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/educore-id/educore-api/internal/service"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
	"github.com/educore-id/educore-api/pkg/response"
)

// UploadHandler serves the teacher-facing attachment management endpoints.
type UploadHandler struct {
	service *service.UploadService
	metrics *service.MetricsService
}

// NewUploadHandler creates a new handler.
func NewUploadHandler(svc *service.UploadService, metrics *service.MetricsService) *UploadHandler {
	return &UploadHandler{service: svc, metrics: metrics}
}

// Upload godoc
// @Summary Upload a file
// @Description Store a multipart file under a folder
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param folder formData string true "Target folder"
// @Param file formData file true "File"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security SessionToken
// @Router /uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read file"))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read file"))
		return
	}

	stored, err := h.service.Store(c.Request.Context(), c.PostForm("folder"), fileHeader.Filename, data)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.metrics.IncUpload()
	response.Created(c, "file uploaded", stored)
}

// ListFolders godoc
// @Summary List upload folders
// @Tags Uploads
// @Produce json
// @Success 200 {object} response.Envelope
// @Security SessionToken
// @Router /uploads [get]
func (h *UploadHandler) ListFolders(c *gin.Context) {
	folders, err := h.service.ListFolders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "folders", folders)
}

// ListFiles godoc
// @Summary List files in a folder
// @Tags Uploads
// @Produce json
// @Param folder path string true "Folder"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security SessionToken
// @Router /uploads/{folder} [get]
func (h *UploadHandler) ListFiles(c *gin.Context) {
	files, err := h.service.ListFiles(c.Request.Context(), c.Param("folder"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "files", files)
}

// DownloadFile godoc
// @Summary Download a stored file
// @Tags Uploads
// @Produce octet-stream
// @Param folder path string true "Folder"
// @Param file path string true "File name"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Security SessionToken
// @Router /uploads/{folder}/{file} [get]
func (h *UploadHandler) DownloadFile(c *gin.Context) {
	name := c.Param("file")
	data, contentType, err := h.service.Fetch(c.Request.Context(), c.Param("folder"), name)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, data)
}

// DeleteFile godoc
// @Summary Delete a stored file
// @Tags Uploads
// @Produce json
// @Param folder path string true "Folder"
// @Param file path string true "File name"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security SessionToken
// @Router /uploads/{folder}/{file} [delete]
func (h *UploadHandler) DeleteFile(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("folder"), c.Param("file")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "file deleted", nil)
}

// DeleteFolder godoc
// @Summary Delete a folder and its files
// @Tags Uploads
// @Produce json
// @Param folder path string true "Folder"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security SessionToken
// @Router /uploads/{folder} [delete]
func (h *UploadHandler) DeleteFolder(c *gin.Context) {
	if err := h.service.DeleteFolder(c.Request.Context(), c.Param("folder")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "folder deleted", nil)
}
