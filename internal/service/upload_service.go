package service

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/educore-id/educore-api/pkg/errors"
	"github.com/educore-id/educore-api/pkg/storage"
)

// maxUploadSize bounds a single attachment at 25 MiB.
const maxUploadSize = 25 << 20

var allowedUploadExtensions = map[string]struct{}{
	".pdf":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".mp4":  {},
	".mp3":  {},
	".doc":  {},
	".docx": {},
	".ppt":  {},
	".pptx": {},
	".xls":  {},
	".xlsx": {},
	".txt":  {},
	".zip":  {},
}

// UploadedFile describes a stored attachment.
type UploadedFile struct {
	Folder string `json:"folder"`
	Name   string `json:"name"`
	Ref    string `json:"ref"`
}

// UploadService manages teacher attachments on top of the blob store.
type UploadService struct {
	blob   storage.Blob
	logger *zap.Logger
}

// NewUploadService creates a new upload service.
func NewUploadService(blob storage.Blob, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{blob: blob, logger: logger}
}

// Store validates and persists an uploaded file under the given folder.
// The stored name is prefixed with a timestamp so repeated uploads of
// the same file never overwrite each other.
func (s *UploadService) Store(ctx context.Context, folder, fileName string, data []byte) (*UploadedFile, error) {
	folder = strings.TrimSpace(folder)
	fileName = strings.TrimSpace(fileName)
	if folder == "" || fileName == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "folder and file name are required")
	}
	if len(data) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is empty")
	}
	if len(data) > maxUploadSize {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file exceeds the 25 MiB limit")
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedUploadExtensions[ext]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file type %q is not allowed", ext))
	}

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	stored := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeFileName(fileName))
	ref, err := s.blob.Put(ctx, folder, stored, data, contentType)
	if err != nil {
		return nil, err
	}

	s.logger.Info("stored upload",
		zap.String("folder", folder),
		zap.String("name", stored),
		zap.Int("size", len(data)))
	return &UploadedFile{Folder: folder, Name: stored, Ref: ref}, nil
}

// ListFolders returns the top-level upload folders.
func (s *UploadService) ListFolders(ctx context.Context) ([]string, error) {
	return s.blob.ListFolders(ctx)
}

// ListFiles returns the file names directly under a folder.
func (s *UploadService) ListFiles(ctx context.Context, folder string) ([]string, error) {
	if strings.TrimSpace(folder) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "folder is required")
	}
	return s.blob.List(ctx, folder)
}

// Delete removes a single stored file. Deleting an absent file succeeds.
func (s *UploadService) Delete(ctx context.Context, folder, name string) error {
	if strings.TrimSpace(folder) == "" || strings.TrimSpace(name) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "folder and file name are required")
	}
	return s.blob.Delete(ctx, folder, name)
}

// DeleteFolder removes a folder and everything under it.
func (s *UploadService) DeleteFolder(ctx context.Context, folder string) error {
	if strings.TrimSpace(folder) == "" {
		return appErrors.Clone(appErrors.ErrValidation, "folder is required")
	}
	return s.blob.DeleteRecursive(ctx, folder)
}

// Fetch returns the stored bytes along with a guessed content type.
func (s *UploadService) Fetch(ctx context.Context, folder, name string) ([]byte, string, error) {
	data, err := s.blob.Get(ctx, folder, name)
	if err != nil {
		return nil, "", err
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}

// sanitizeFileName strips path separators and whitespace from a client
// supplied file name.
func sanitizeFileName(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	return name
}
