package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/forge/internal/model"
)

// ImportResult counts the rows an import actually inserted.
type ImportResult struct {
	Tasks    int `json:"tasks"`
	Stats    int `json:"stats"`
	Projects int `json:"projects"`
}

// ImportSnapshot restores records in a single transaction.
//
// Uses ON CONFLICT DO NOTHING throughout: tasks and projects whose id
// exists, and stats whose date exists, are left untouched.
func (s *Store) ImportSnapshot(ctx context.Context, tasks []model.Task, stats []model.DailyStat, projects []model.Project) (ImportResult, error) {
	var res ImportResult
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for _, p := range projects {
			n, err := execCount(ctx, tx, `
				INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?)
				ON CONFLICT DO NOTHING
			`, p.ID, p.Name, p.Color, p.CreatedAt.UnixMilli(), p.UpdatedAt.UnixMilli())
			if err != nil {
				return fmt.Errorf("project %s: %w", p.ID, err)
			}
			res.Projects += n
		}

		for _, t := range tasks {
			n, err := execCount(ctx, tx, `
				INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT DO NOTHING
			`, t.ID, t.Title, t.IsNonNegotiable, string(t.EnergyLevel), string(t.Status),
				t.SnoozeCount, t.DidCommit, t.ProjectID, t.CreatedAt.UnixMilli(), t.UpdatedAt.UnixMilli())
			if err != nil {
				return fmt.Errorf("task %s: %w", t.ID, err)
			}
			res.Tasks += n
		}

		for _, st := range stats {
			n, err := execCount(ctx, tx, `
				INSERT INTO daily_stats (`+statColumns+`) VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT DO NOTHING
			`, st.ID, st.Date, st.Score, st.FocusMinutes, st.CreatedAt.UnixMilli(), st.UpdatedAt.UnixMilli())
			if err != nil {
				return fmt.Errorf("stat %s: %w", st.Date, err)
			}
			res.Stats += n
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, fmt.Errorf("import snapshot: %w", err)
	}
	return res, nil
}

func execCount(ctx context.Context, tx *sql.Tx, query string, args ...any) (int, error) {
	r, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := r.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
