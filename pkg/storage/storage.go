package storage

import "context"

// Blob is the backend-agnostic attachment store. Paths are hierarchical
// strings (folder plus file name); implementations are responsible for
// guarding them against traversal before touching the backend.
type Blob interface {
	// Put stores the bytes under folder/name and returns the stored
	// relative reference.
	Put(ctx context.Context, folder, name string, data []byte, contentType string) (string, error)
	// Get returns the stored bytes, or ErrNotFound.
	Get(ctx context.Context, folder, name string) ([]byte, error)
	// List returns the file names directly under folder.
	List(ctx context.Context, folder string) ([]string, error)
	// ListFolders returns the top-level folder names.
	ListFolders(ctx context.Context) ([]string, error)
	// Delete removes a single file; absent files are not an error.
	Delete(ctx context.Context, folder, name string) error
	// DeleteRecursive removes a folder and everything under it.
	DeleteRecursive(ctx context.Context, folder string) error
}
