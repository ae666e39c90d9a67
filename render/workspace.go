package render

import (
	"fmt"
	"os"
)

// NewWorkspace creates a fresh scratch directory for one run.
func NewWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "vcut_")
	if err != nil {
		return "", fmt.Errorf("create workspace: %w", err)
	}
	return dir, nil
}

// RemoveWorkspace deletes a workspace after a successful run. Failed runs
// should keep theirs for inspection.
func RemoveWorkspace(dir string) error {
	if dir == "" {
		return nil
	}
	return os.RemoveAll(dir)
}
