// Package storage is the durable key-value port behind the in-memory
// stores. State is serialized as a named JSON blob — one entry per store —
// so the loader never deals with per-field schema, only whole snapshots.
package storage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned by Load when no snapshot has been saved yet under
// the given name. First launch hits this path and falls back to defaults.
var ErrNotFound = errors.New("app state entry not found")

// BlobStore persists named state snapshots. Implementations must make Save
// an atomic replace of the previous snapshot.
type BlobStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
}

type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresBlobStore keeps snapshots in the app_state table, one row per
// store name.
type PostgresBlobStore struct {
	db DBTX
}

func NewPostgresBlobStore(db DBTX) *PostgresBlobStore {
	return &PostgresBlobStore{db: db}
}

func (s *PostgresBlobStore) Load(ctx context.Context, name string) ([]byte, error) {
	query := `
		SELECT data
		FROM app_state
		WHERE name = $1
	`

	var data []byte
	err := s.db.QueryRow(ctx, query, name).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return data, nil
}

func (s *PostgresBlobStore) Save(ctx context.Context, name string, data []byte) error {
	query := `
		INSERT INTO app_state (name, data)
		VALUES ($1, $2)
		ON CONFLICT (name)
		DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`

	_, err := s.db.Exec(ctx, query, name, data)
	return err
}
