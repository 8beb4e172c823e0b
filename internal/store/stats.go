package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/forge/internal/model"
)

// FindStatByDate returns the stat for date, or ErrNotFound.
func (s *Store) FindStatByDate(ctx context.Context, date string) (model.DailyStat, error) {
	st, err := scanStat(s.db.QueryRowContext(ctx, `SELECT `+statColumns+` FROM daily_stats WHERE date = ?`, date))
	if errors.Is(err, sql.ErrNoRows) {
		return model.DailyStat{}, fmt.Errorf("find stat %s: %w", date, ErrNotFound)
	}
	if err != nil {
		return model.DailyStat{}, fmt.Errorf("find stat %s: %w", date, err)
	}
	return st, nil
}

// CreateStat creates the stat for date with score 0 and no focus minutes.
//
// Uses ON CONFLICT(date) DO NOTHING for idempotency: if a stat for date
// already exists, it is returned unchanged. At most one row per date can
// ever exist.
func (s *Store) CreateStat(ctx context.Context, date string) (model.DailyStat, error) {
	if _, err := model.ParseDateKey(date, nil); err != nil {
		return model.DailyStat{}, fmt.Errorf("create stat: %w", err)
	}

	now := s.now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_stats (`+statColumns+`)
		VALUES (?, ?, 0, 0, ?, ?)
		ON CONFLICT(date) DO NOTHING
	`, s.ids.Generate(), date, now, now)
	if err != nil {
		return model.DailyStat{}, fmt.Errorf("create stat %s: %w", date, err)
	}
	return s.FindStatByDate(ctx, date)
}

// UpdateStatScore overwrites a stat's score.
func (s *Store) UpdateStatScore(ctx context.Context, id string, score int) error {
	if err := validScore(score); err != nil {
		return fmt.Errorf("update stat score: %w", err)
	}
	return s.execStat(ctx, "update stat score", id,
		`UPDATE daily_stats SET score = ?, updated_at = ? WHERE id = ?`, score, s.now(), id)
}

// AddFocusMinutes adds minutes to a stat's focus counter.
// The addition happens in SQL so concurrent calls never lose minutes.
func (s *Store) AddFocusMinutes(ctx context.Context, id string, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("add focus minutes: minutes must be positive, got %d", minutes)
	}
	return s.execStat(ctx, "add focus minutes", id,
		`UPDATE daily_stats SET focus_minutes = focus_minutes + ?, updated_at = ? WHERE id = ?`, minutes, s.now(), id)
}

func (s *Store) execStat(ctx context.Context, op, id, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}
	return nil
}

// ListRecentStats returns up to n stats ordered by date, newest first.
func (s *Store) ListRecentStats(ctx context.Context, n int) ([]model.DailyStat, error) {
	if n <= 0 {
		return []model.DailyStat{}, nil
	}
	return s.queryStats(ctx, `SELECT `+statColumns+` FROM daily_stats ORDER BY date DESC LIMIT ?`, n)
}

// ListStats returns every stat ordered by date, oldest first.
func (s *Store) ListStats(ctx context.Context) ([]model.DailyStat, error) {
	return s.queryStats(ctx, `SELECT `+statColumns+` FROM daily_stats ORDER BY date ASC`)
}

func (s *Store) queryStats(ctx context.Context, query string, args ...any) ([]model.DailyStat, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	stats := []model.DailyStat{}
	for rows.Next() {
		st, err := scanStat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stat: %w", err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats: %w", err)
	}
	return stats, nil
}
