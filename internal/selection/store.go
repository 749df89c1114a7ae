// Package selection persists the name of the currently selected tunnel
// between invocations.
package selection

import (
	"fmt"
	"os"
	"strings"
)

// FileStore keeps the selection as one line of raw text in a single file.
// Concurrent invocations are not coordinated; the last writer wins.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the persisted selection, or def when it is missing, unreadable or blank
func (s *FileStore) Load(def string) string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return def
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return def
	}
	return name
}

// Save writes the selection. Callers are free to ignore the error.
func (s *FileStore) Save(name string) error {
	if err := os.WriteFile(s.path, []byte(name), 0o644); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}
