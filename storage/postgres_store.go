package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"athens-cinema-scraper/models"
)

// PostgresStore keeps the cinema cache in PostgreSQL, for deployments
// where several hosts want to share one enrichment cache. Semantics match
// the file backend: Load reads everything once, Save replaces everything.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresStore. An unreachable
// database is fatal at startup.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS cinema_cache (
			key               TEXT PRIMARY KEY,
			lat               DOUBLE PRECISION,
			lon               DOUBLE PRECISION,
			area              TEXT NOT NULL DEFAULT '',
			suburb            TEXT NOT NULL DEFAULT '',
			neighbourhood     TEXT NOT NULL DEFAULT '',
			formatted_address TEXT,
			website           TEXT,
			updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_cinema_cache_area ON cinema_cache(area);
	`)
	return err
}

// Load retrieves the full cache mapping.
func (ps *PostgresStore) Load() (map[string]models.CinemaInfo, error) {
	rows, err := ps.db.Query(`
		SELECT key, lat, lon, area, suburb, neighbourhood, formatted_address, website
		FROM cinema_cache
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: load: %w", err)
	}
	defer rows.Close()

	db := make(map[string]models.CinemaInfo)
	for rows.Next() {
		var (
			key       string
			lat, lon  sql.NullFloat64
			info      models.CinemaInfo
			addr, web sql.NullString
		)
		if err := rows.Scan(&key, &lat, &lon, &info.Area, &info.Suburb,
			&info.Neighbourhood, &addr, &web); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		if lat.Valid {
			info.Lat = &lat.Float64
		}
		if lon.Valid {
			info.Lon = &lon.Float64
		}
		if addr.Valid {
			info.FormattedAddress = &addr.String
		}
		if web.Valid {
			info.Website = &web.String
		}
		db[key] = info
	}
	return db, rows.Err()
}

// Save replaces the stored mapping with db, in batches.
func (ps *PostgresStore) Save(db map[string]models.CinemaInfo) error {
	if _, err := ps.db.Exec("DELETE FROM cinema_cache"); err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}

	keys := make([]string, 0, len(db))
	for k := range db {
		keys = append(keys, k)
	}

	const batchSize = 50
	for i := 0; i < len(keys); i += batchSize {
		end := i + batchSize
		if end > len(keys) {
			end = len(keys)
		}
		if err := ps.insertBatch(keys[i:end], db); err != nil {
			return err
		}
	}
	return nil
}

func (ps *PostgresStore) insertBatch(keys []string, db map[string]models.CinemaInfo) error {
	valueStrings := make([]string, 0, len(keys))
	valueArgs := make([]interface{}, 0, len(keys)*8)

	for idx, k := range keys {
		info := db[k]
		base := idx * 8
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		valueArgs = append(valueArgs,
			k, nullableFloat(info.Lat), nullableFloat(info.Lon),
			info.Area, info.Suburb, info.Neighbourhood,
			nullableString(info.FormattedAddress), nullableString(info.Website))
	}

	query := fmt.Sprintf(`
		INSERT INTO cinema_cache (key, lat, lon, area, suburb, neighbourhood, formatted_address, website)
		VALUES %s
		ON CONFLICT (key) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := ps.db.Exec(query, valueArgs...)
	return err
}

func nullableFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
