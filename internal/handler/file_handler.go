package handler

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/educore-id/educore-api/internal/service"
	appErrors "github.com/educore-id/educore-api/pkg/errors"
	"github.com/educore-id/educore-api/pkg/response"
	"github.com/educore-id/educore-api/pkg/storage"
)

// FileHandler serves stored files to holders of a signed download token.
type FileHandler struct {
	uploads *service.UploadService
	signer  *storage.DownloadTokenSigner
}

// NewFileHandler creates a new handler.
func NewFileHandler(uploads *service.UploadService, signer *storage.DownloadTokenSigner) *FileHandler {
	return &FileHandler{uploads: uploads, signer: signer}
}

// Download godoc
// @Summary Download a file by signed token
// @Description Serve the file referenced by a short-lived signed token
// @Tags Files
// @Produce application/octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /files/download [get]
func (h *FileHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	relPath, err := h.signer.Parse(token)
	if err != nil {
		response.Error(c, err)
		return
	}

	folder, name := path.Split(relPath)
	data, contentType, err := h.uploads.Fetch(c.Request.Context(), path.Clean(folder), name)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, data)
}
