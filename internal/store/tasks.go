package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/forge/internal/model"
)

// CreateTask inserts a new pending task.
// The title is normalized and the energy level defaults to medium.
func (s *Store) CreateTask(ctx context.Context, n model.NewTask) (model.Task, error) {
	n, err := n.Normalize()
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}

	now := s.now()
	t := model.Task{
		ID:              s.ids.Generate(),
		Title:           n.Title,
		IsNonNegotiable: n.IsNonNegotiable,
		EnergyLevel:     n.EnergyLevel,
		Status:          model.StatusPending,
		ProjectID:       n.ProjectID,
		CreatedAt:       fromMillis(now),
		UpdatedAt:       fromMillis(now),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, 0, 0, ?, ?, ?)
	`, t.ID, t.Title, t.IsNonNegotiable, string(t.EnergyLevel), string(t.Status), t.ProjectID, now, now)
	if err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

// GetTask returns the task with the given id, or ErrNotFound.
func (s *Store) GetTask(ctx context.Context, id string) (model.Task, error) {
	t, err := scanTask(s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, fmt.Errorf("get task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// ListTasks returns every task, newest first.
// Returns an empty slice (not nil) if there are no tasks.
func (s *Store) ListTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies mutate to the current task inside a transaction and
// persists the result. The mutation is validated with
// model.CheckUserTransition, so it can never fail a task.
func (s *Store) UpdateTask(ctx context.Context, id string, mutate func(*model.Task) error) (model.Task, error) {
	var updated model.Task
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		before, err := scanTask(tx.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		after := before
		if err := mutate(&after); err != nil {
			return err
		}
		if err := model.CheckUserTransition(before, after); err != nil {
			return err
		}
		after.Title, _ = model.NormalizeTitle(after.Title)
		after.UpdatedAt = fromMillis(s.now())

		_, err = tx.ExecContext(ctx, `
			UPDATE tasks
			SET title = ?, is_non_negotiable = ?, energy_level = ?, status = ?,
			    snooze_count = ?, did_commit = ?, project_id = ?, updated_at = ?
			WHERE id = ?
		`, after.Title, after.IsNonNegotiable, string(after.EnergyLevel), string(after.Status),
			after.SnoozeCount, after.DidCommit, after.ProjectID, after.UpdatedAt.UnixMilli(), id)
		if err != nil {
			return err
		}
		updated = after
		return nil
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}
	return updated, nil
}

// ToggleTask flips a task between pending and completed.
func (s *Store) ToggleTask(ctx context.Context, id string) (model.Task, error) {
	return s.UpdateTask(ctx, id, model.ToggleStatus)
}

// SnoozeTask increments a task's snooze count.
func (s *Store) SnoozeTask(ctx context.Context, id string) (model.Task, error) {
	return s.UpdateTask(ctx, id, model.Snooze)
}

// CommitTask marks a task as committed.
func (s *Store) CommitTask(ctx context.Context, id string) (model.Task, error) {
	return s.UpdateTask(ctx, id, model.Commit)
}

// DeleteTask removes a task. Returns ErrNotFound if it does not exist.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete task %s: %w", id, ErrNotFound)
	}
	return nil
}

// FailTasks transitions the given tasks to failed in a single transaction.
//
// Each row is re-checked at write time: only tasks that are still pending
// and committed are failed. Unknown IDs and tasks that were completed or
// already failed in the meantime are skipped, so the call is safe to repeat.
// Returns the number of tasks transitioned.
func (s *Store) FailTasks(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	failed := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			UPDATE tasks
			SET status = 'failed', updated_at = ?
			WHERE id = ? AND status = 'pending' AND did_commit = 1
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		now := s.now()
		for _, id := range ids {
			res, err := stmt.ExecContext(ctx, now, id)
			if err != nil {
				return fmt.Errorf("task %s: %w", id, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("task %s: %w", id, err)
			}
			failed += int(n)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("fail tasks: %w", err)
	}
	return failed, nil
}
