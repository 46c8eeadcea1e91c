package storage

import (
	"path/filepath"
	"strings"

	appErrors "github.com/educore-id/educore-api/pkg/errors"
)

// PathGuard resolves caller-supplied folder and file names against a fixed
// root and rejects anything that escapes it. Every blob operation goes
// through Resolve; there is no other way to produce a storage path.
type PathGuard struct {
	root string
}

// NewPathGuard canonicalises the root once at startup.
func NewPathGuard(root string) (*PathGuard, error) {
	if strings.TrimSpace(root) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "storage root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "resolve storage root")
	}
	return &PathGuard{root: filepath.Clean(abs)}, nil
}

// Root returns the canonical absolute storage root.
func (g *PathGuard) Root() string {
	return g.root
}

// Resolve joins the given relative components onto the root, normalises the
// result and verifies it stays inside the root. The containment check is a
// separator-aware prefix match, so a sibling such as "uploads-evil" never
// passes for root "uploads".
func (g *PathGuard) Resolve(parts ...string) (string, error) {
	if len(parts) == 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "path is required")
	}
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			return "", appErrors.Clone(appErrors.ErrValidation, "path is required")
		}
		if filepath.IsAbs(part) {
			return "", appErrors.Clone(appErrors.ErrForbidden, "access to path denied")
		}
	}

	joined := filepath.Join(append([]string{g.root}, parts...)...)
	resolved := filepath.Clean(joined)

	if !g.contains(resolved) {
		return "", appErrors.Clone(appErrors.ErrForbidden, "access to path denied")
	}
	return resolved, nil
}

func (g *PathGuard) contains(path string) bool {
	if path == g.root {
		return true
	}
	return strings.HasPrefix(path, g.root+string(filepath.Separator))
}
