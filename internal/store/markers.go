package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetMarker returns the value stored under key.
// ok is false when the key has never been set.
func (s *Store) GetMarker(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT value FROM markers WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get marker %s: %w", key, err)
	}
	return value, true, nil
}

// SetMarker stores value under key, replacing any previous value.
func (s *Store) SetMarker(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO markers (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, s.now())
	if err != nil {
		return fmt.Errorf("set marker %s: %w", key, err)
	}
	return nil
}
