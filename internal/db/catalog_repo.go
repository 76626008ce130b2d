package db

import (
	"database/sql"
	"time"
)

// CatalogRepository persists raw catalog payloads so a battle doesn't
// re-download the set database on every command. It implements
// catalog.Cache.
type CatalogRepository struct {
	db *DB
}

// NewCatalogRepository creates a new catalog cache repository
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Fresh returns the cached payload for a format if it was stored within ttl.
func (r *CatalogRepository) Fresh(format string, ttl time.Duration) ([]byte, bool, error) {
	payload, fetchedAt, ok, err := r.get(format)
	if err != nil || !ok {
		return nil, false, err
	}
	if time.Since(fetchedAt) > ttl {
		return nil, false, nil
	}
	return payload, true, nil
}

// Any returns the cached payload for a format regardless of age.
func (r *CatalogRepository) Any(format string) ([]byte, bool, error) {
	payload, _, ok, err := r.get(format)
	return payload, ok, err
}

func (r *CatalogRepository) get(format string) ([]byte, time.Time, bool, error) {
	var row struct {
		FetchedAt int64  `db:"fetched_at"`
		Payload   []byte `db:"payload"`
	}
	query := `SELECT fetched_at, payload FROM catalog_cache WHERE format = ?`
	err := r.db.Get(&row, query, format)
	if err == sql.ErrNoRows {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, err
	}
	return row.Payload, time.Unix(row.FetchedAt, 0), true, nil
}

// Store saves a payload for a format, replacing any previous entry.
func (r *CatalogRepository) Store(format string, payload []byte) error {
	query := `
		INSERT INTO catalog_cache (format, fetched_at, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(format) DO UPDATE SET fetched_at = excluded.fetched_at, payload = excluded.payload
	`
	_, err := r.db.Exec(query, format, time.Now().Unix(), payload)
	return err
}
