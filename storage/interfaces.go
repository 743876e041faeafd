package storage

import "athens-cinema-scraper/models"

// CinemaStore is the interface any cinema-cache backend must satisfy.
// The full mapping is loaded once at process start and written back once
// at the end of the run, as a whole; there is no incremental update.
type CinemaStore interface {
	Load() (map[string]models.CinemaInfo, error)
	Save(db map[string]models.CinemaInfo) error
	Close() error
}
