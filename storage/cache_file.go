package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"athens-cinema-scraper/models"
	"athens-cinema-scraper/utils"
)

// FileStore keeps the cinema cache in a single JSON file. A missing or
// corrupt file is not fatal: the run starts with an empty cache and the
// file is rewritten wholesale at the end.
type FileStore struct {
	path   string
	logger *utils.Logger
}

// NewFileStore creates a FileStore for the given path.
func NewFileStore(path string, logger *utils.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

// Load reads the cache file. Missing file and unparsable content both
// degrade to an empty mapping with a log line.
func (s *FileStore) Load() (map[string]models.CinemaInfo, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("[cache] no existing %s, starting fresh", s.path)
			return make(map[string]models.CinemaInfo), nil
		}
		return nil, fmt.Errorf("cache: read %q: %w", s.path, err)
	}

	db := make(map[string]models.CinemaInfo)
	if err := json.Unmarshal(b, &db); err != nil {
		s.logger.Warn("[cache] %s is empty or corrupted, starting fresh: %v", s.path, err)
		return make(map[string]models.CinemaInfo), nil
	}
	return db, nil
}

// Save overwrites the cache file with the full mapping, creating the
// parent directory if needed. Greek text is written as-is, not escaped.
func (s *FileStore) Save(db map[string]models.CinemaInfo) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cache: create dir %q: %w", dir, err)
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(db); err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}

	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("cache: write %q: %w", s.path, err)
	}
	s.logger.Info("[cache] saved %d entries to %s", len(db), s.path)
	return nil
}

// Close is a no-op for the file backend.
func (s *FileStore) Close() error { return nil }
