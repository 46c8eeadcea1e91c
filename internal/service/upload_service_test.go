package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/educore-id/educore-api/pkg/errors"
	"github.com/educore-id/educore-api/pkg/storage"
)

func newUploadService(t *testing.T) *UploadService {
	t.Helper()
	blob, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return NewUploadService(blob, nil)
}

func TestUploadServiceStoreAndFetch(t *testing.T) {
	svc := newUploadService(t)

	stored, err := svc.Store(context.Background(), "math", "lesson 1.pdf", []byte("%PDF-1.4 fake"))
	require.NoError(t, err)
	assert.Equal(t, "math", stored.Folder)
	assert.Contains(t, stored.Name, "lesson_1.pdf")

	data, contentType, err := svc.Fetch(context.Background(), "math", stored.Name)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), data)
	assert.Equal(t, "application/pdf", contentType)
}

func TestUploadServiceStoreRejectsUnknownExtension(t *testing.T) {
	svc := newUploadService(t)

	_, err := svc.Store(context.Background(), "math", "malware.exe", []byte("MZ"))
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestUploadServiceStoreRejectsEmptyFile(t *testing.T) {
	svc := newUploadService(t)

	_, err := svc.Store(context.Background(), "math", "empty.pdf", nil)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestUploadServiceStoreRejectsTraversalFolder(t *testing.T) {
	svc := newUploadService(t)

	_, err := svc.Store(context.Background(), "../outside", "file.pdf", []byte("data"))
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestUploadServiceListAndDelete(t *testing.T) {
	svc := newUploadService(t)

	stored, err := svc.Store(context.Background(), "physics", "notes.txt", []byte("hello"))
	require.NoError(t, err)

	folders, err := svc.ListFolders(context.Background())
	require.NoError(t, err)
	assert.Contains(t, folders, "physics")

	files, err := svc.ListFiles(context.Background(), "physics")
	require.NoError(t, err)
	assert.Contains(t, files, stored.Name)

	require.NoError(t, svc.Delete(context.Background(), "physics", stored.Name))
	// deleting again is a no-op
	require.NoError(t, svc.Delete(context.Background(), "physics", stored.Name))

	require.NoError(t, svc.DeleteFolder(context.Background(), "physics"))
	folders, err = svc.ListFolders(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, folders, "physics")
}
