package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	appErrors "github.com/educore-id/educore-api/pkg/errors"
)

// LocalStorage persists blobs on disk under a base directory. All paths
// pass through the PathGuard; no method accepts a pre-resolved path.
type LocalStorage struct {
	guard *PathGuard
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	guard, err := NewPathGuard(baseDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(guard.Root(), 0o755); err != nil {
		return nil, fmt.Errorf("create uploads directory: %w", err)
	}
	return &LocalStorage{guard: guard}, nil
}

// Guard exposes the path guard for callers that resolve paths stored as
// relative references (e.g. material media paths).
func (s *LocalStorage) Guard() *PathGuard {
	return s.guard
}

// Put writes the given bytes under folder/name.
func (s *LocalStorage) Put(ctx context.Context, folder, name string, data []byte, contentType string) (string, error) {
	path, err := s.guard.Resolve(folder, name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare upload directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	rel, err := filepath.Rel(s.guard.Root(), path)
	if err != nil {
		rel = filepath.Join(folder, name)
	}
	return rel, nil
}

// Get returns the stored bytes for folder/name.
func (s *LocalStorage) Get(ctx context.Context, folder, name string) ([]byte, error) {
	path, err := s.guard.Resolve(folder, name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "file not found")
		}
		return nil, fmt.Errorf("read upload file: %w", err)
	}
	return data, nil
}

// List returns the file names directly under folder.
func (s *LocalStorage) List(ctx context.Context, folder string) ([]string, error) {
	path, err := s.guard.Resolve(folder)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "folder not found")
		}
		return nil, fmt.Errorf("read upload folder: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// ListFolders returns the top-level folder names under the storage root.
func (s *LocalStorage) ListFolders(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.guard.Root())
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read uploads root: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Delete removes a single file if present.
func (s *LocalStorage) Delete(ctx context.Context, folder, name string) error {
	path, err := s.guard.Resolve(folder, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

// DeleteRecursive removes a folder and its contents.
func (s *LocalStorage) DeleteRecursive(ctx context.Context, folder string) error {
	path, err := s.guard.Resolve(folder)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("delete upload folder: %w", err)
	}
	return nil
}
