package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"feedhaven/reader/internal/database"
)

// SQLiteStore implements Store over the records table.
type SQLiteStore struct {
	db *database.DB
}

// NewSQLiteStore creates a store backed by an open reader database.
func NewSQLiteStore(db *database.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Read returns the value stored under key, or ok=false if absent.
func (s *SQLiteStore) Read(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.GetContext(ctx, &value, "SELECT value FROM records WHERE key = ?", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, &StorageError{Op: "read", Key: key, Err: err}
	}
	return value, true, nil
}

// Write upserts the value under key.
func (s *SQLiteStore) Write(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	if err != nil {
		return &StorageError{Op: "write", Key: key, Err: err}
	}
	return nil
}

// Clear removes the given keys. Missing keys are not an error.
func (s *SQLiteStore) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM records WHERE key IN (?)", keys)
	if err != nil {
		return &StorageError{Op: "clear", Key: keys[0], Err: err}
	}
	if _, err := s.db.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return &StorageError{Op: "clear", Key: keys[0], Err: err}
	}
	return nil
}
