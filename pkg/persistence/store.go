package persistence

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/advancedknx/ets-proj-parser/pkg/project"
)

// ProjectStore manages persistence of a project to a single file.
type ProjectStore struct {
	mu     sync.Mutex
	path   string
	format Format
	indent bool
}

// NewProjectStore creates a store writing path in the given format.
func NewProjectStore(path string, format Format, indent bool) *ProjectStore {
	return &ProjectStore{path: path, format: format, indent: indent}
}

// OpenProjectStore creates a store whose format follows the file extension.
func OpenProjectStore(path string) (*ProjectStore, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	return NewProjectStore(path, format, true), nil
}

// Path returns the file the store writes.
func (s *ProjectStore) Path() string {
	return s.path
}

// Save persists the project to disk. The file is replaced atomically, so
// readers never observe a partial export.
func (s *ProjectStore) Save(p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, p, s.format, s.indent); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load reads the project from disk.
// Returns nil, nil if the file doesn't exist.
func (s *ProjectStore) Load() (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f, s.format)
}

// Clear removes the project file.
func (s *ProjectStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
