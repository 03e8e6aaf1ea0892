package fooddb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const dateLayout = "2006-01-02"

// FileStore owns the JSON file that holds the food database.
// There is no cross-process locking: concurrent writers overwrite each other, last rename wins.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore creates a store persisting to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		now:  time.Now,
	}
}

func (s *FileStore) Path() string {
	return s.path
}

// Today returns the store's current date in ISO form.
func (s *FileStore) Today() string {
	return s.now().Format(dateLayout)
}

// Load returns the persisted database. A missing or unparsable file is replaced
// by a freshly seeded catalog database, which is persisted before returning.
func (s *FileStore) Load() (*Database, error) {
	db, err := s.read()
	if err == nil {
		return db, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		slog.Default().Debug("food database not found, seeding", "path", s.path)
	} else {
		slog.Default().Warn("food database unreadable, reseeding", "path", s.path, "error", err)
	}

	db, err = SeedDatabase(s.Today())
	if err != nil {
		return nil, fmt.Errorf("SeedDatabase() > %w", err)
	}
	if err := s.Save(db); err != nil {
		return nil, fmt.Errorf("s.Save() > %w", err)
	}
	return db, nil
}

func (s *FileStore) read() (*Database, error) {
	contents, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", s.path, err)
	}

	var db Database
	if err := json.Unmarshal(contents, &db); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(%s) > %w", s.path, err)
	}
	db.normalize()
	return &db, nil
}

// Save writes db to a temporary file next to the target and renames it into place,
// so readers see either the previous file or the new one, never a partial write.
func (s *FileStore) Save(db *Database) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(db); err != nil {
		return fmt.Errorf("encoder.Encode() > %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("os.CreateTemp(%s) > %w", dir, err)
	}
	tmpPath := tmp.Name()
	removeTmp := func() {
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		removeTmp()
		return fmt.Errorf("tmp.Write > %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		removeTmp()
		return fmt.Errorf("tmp.Sync > %w", err)
	}
	if err := tmp.Close(); err != nil {
		removeTmp()
		return fmt.Errorf("tmp.Close > %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		removeTmp()
		return fmt.Errorf("os.Chmod(%s) > %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		removeTmp()
		return fmt.Errorf("os.Rename(%s, %s) > %w", tmpPath, s.path, err)
	}
	return nil
}
