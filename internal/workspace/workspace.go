package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/aepsite/internal/logfields"
	"git.home.luguber.info/inful/aepsite/internal/observability"
)

// Manager handles workspace operations (both temporary and persistent)
type Manager struct {
	baseDir    string
	dir        string
	persistent bool
}

// NewManager creates a manager for an ephemeral directory below baseDir
// (the system temp directory when empty).
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// NewPersistentManager creates a manager for the fixed directory dir.
func NewPersistentManager(dir string) *Manager {
	return &Manager{baseDir: filepath.Dir(dir), dir: dir, persistent: true}
}

// ForDir returns a persistent manager for dir, or an ephemeral one when dir
// is empty.
func ForDir(dir string) *Manager {
	if dir == "" {
		return NewManager("")
	}
	return NewPersistentManager(dir)
}

// Create makes the workspace directory. Calling it again on a persistent
// workspace keeps the existing contents.
func (m *Manager) Create(ctx context.Context) error {
	if m.persistent {
		if err := os.MkdirAll(m.dir, 0o750); err != nil {
			return fmt.Errorf("failed to create persistent workspace directory: %w", err)
		}
		observability.DebugContext(ctx, "Using persistent workspace", logfields.Path(m.dir))
		return nil
	}
	if m.dir != "" {
		return nil
	}

	if err := os.MkdirAll(m.baseDir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace base directory: %w", err)
	}
	dir, err := os.MkdirTemp(m.baseDir, "aepsite-")
	if err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}
	m.dir = dir
	observability.DebugContext(ctx, "Created workspace", logfields.Path(dir))
	return nil
}

// Path returns the workspace directory, empty before Create.
func (m *Manager) Path() string {
	return m.dir
}

// Persistent reports whether Cleanup keeps the directory.
func (m *Manager) Persistent() bool { return m.persistent }

// Cleanup removes an ephemeral workspace.
func (m *Manager) Cleanup(ctx context.Context) error {
	if m.dir == "" || m.persistent {
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return fmt.Errorf("failed to cleanup workspace: %w", err)
	}
	observability.DebugContext(ctx, "Cleaned up workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}

// Subdir returns the path of name inside the workspace without creating it.
func (m *Manager) Subdir(name string) (string, error) {
	if m.dir == "" {
		return "", fmt.Errorf("workspace not created")
	}
	return filepath.Join(m.dir, name), nil
}
