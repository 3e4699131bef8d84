package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CacheSQLite stores opaque cache objects in a single key-value table,
// upserted by key. It stands in for any durable object store; the
// service layer never sees more than Get/Put semantics.
type CacheSQLite struct {
	db *sql.DB
}

func NewCacheSQLite(db *sql.DB) *CacheSQLite {
	return &CacheSQLite{db: db}
}

var _ CacheStore = (*CacheSQLite)(nil)

const (
	upsertObjectSQL = `
		INSERT INTO cache_objects (key, body, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			body=excluded.body,
			updated_at=excluded.updated_at
	`

	selectObjectSQL = `SELECT body FROM cache_objects WHERE key=?`
)

// Get returns the stored payload for key, or ErrNotFound.
func (r *CacheSQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var body []byte
	err := r.db.QueryRowContext(ctx, selectObjectSQL, key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("get object %q: %w", key, err)
	}
	return body, nil
}

// Put writes the payload for key, replacing any previous object.
func (r *CacheSQLite) Put(ctx context.Context, key string, body []byte) error {
	_, err := r.db.ExecContext(ctx, upsertObjectSQL, key, body, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("put object %q: %w", key, err)
	}
	return nil
}
