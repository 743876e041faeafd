package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"athens-cinema-scraper/models"
)

// WriteFeeds writes the two top-level data feeds consumed by the frontend:
// movies.json and cinemas.json. Both keep the nested per-scrape-pass shape
// (one inner list per guide movie) and preserve Greek text unescaped.
func WriteFeeds(dir string, movies [][]models.Movie, cinemas [][]models.MovieCinema) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("feeds: create output dir: %w", err)
	}

	if err := writeJSON(filepath.Join(dir, "movies.json"), movies); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, "cinemas.json"), cinemas)
}

func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("feeds: encode %q: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("feeds: write %q: %w", path, err)
	}
	return nil
}
