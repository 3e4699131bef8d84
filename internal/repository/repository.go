package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"stationwatch/internal/models"
)

// ErrNotFound is returned by CacheStore.Get when no object exists for
// the key. Callers treat it as an empty cache, not a failure.
var ErrNotFound = errors.New("object not found")

// CacheStore is an opaque key-value persistence provider. Payloads are
// raw bytes; keys are namespaced per account by the caller.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
}

// EventRepo is the append-only audit log of transitions and alerts.
type EventRepo interface {
	Append(ctx context.Context, e models.MonitorEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.MonitorEvent, error)
}

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

type Repository struct {
	Cache  CacheStore
	Events EventRepo
	Auth   Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Cache:  NewCacheSQLite(db),
		Events: NewEventSQLite(db),
		Auth:   NewUserRepository(db),
	}
}
