// Package store persists each project's action items as one human-readable
// JSON document on disk.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/LazyWizBrains/Stateful-Action-Tracker/internal/item"
)

// fallbackProject names the document for identifiers that sanitize to nothing.
const fallbackProject = "default_project"

// FileStore reads and writes one <project>.json document per project.
type FileStore struct {
	dir string
	log *zap.Logger
}

// New creates the storage directory if needed and returns a store rooted
// there. Directory creation is an explicit construction step so a bad path
// fails the run up front instead of at the first save.
func New(dir string, log *zap.Logger) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("storage directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

// Path returns the document path for a project identifier.
func (s *FileStore) Path(projectID string) string {
	return filepath.Join(s.dir, sanitize(projectID)+".json")
}

// sanitize keeps letters, digits, '_' and '-' so a project identifier can
// never escape the storage directory or produce an unusable filename.
func sanitize(projectID string) string {
	var b strings.Builder
	for _, r := range projectID {
		if r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fallbackProject
	}
	return b.String()
}

// Load returns the project's items. A missing or malformed document is not
// an error: the store recovers with an empty list and logs what happened.
func (s *FileStore) Load(projectID string) []item.ActionItem {
	path := s.Path(projectID)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("could not read project document",
				zap.String("path", path), zap.Error(err))
		}
		return []item.ActionItem{}
	}

	var items []item.ActionItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warn("project document is malformed, starting empty",
			zap.String("path", path), zap.Error(err))
		return []item.ActionItem{}
	}
	if items == nil {
		items = []item.ActionItem{}
	}

	s.log.Debug("loaded project document",
		zap.String("path", path), zap.Int("items", len(items)))
	return items
}

// Save overwrites the project document with the full list. The write goes
// through a temp file and rename so a failed run cannot leave a truncated
// document behind.
func (s *FileStore) Save(projectID string, items []item.ActionItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode action items: %w", err)
	}

	path := s.Path(projectID)
	tmp, err := os.CreateTemp(s.dir, ".tracker-*.json")
	if err != nil {
		return fmt.Errorf("create temp document: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp document: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace project document: %w", err)
	}

	s.log.Debug("saved project document",
		zap.String("path", path), zap.Int("items", len(items)))
	return nil
}
