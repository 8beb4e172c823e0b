package store

import (
	"fmt"
	"time"

	"github.com/roach88/forge/internal/model"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// fromMillis converts stored unix milliseconds to UTC time.
func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

const taskColumns = `id, title, is_non_negotiable, energy_level, status, snooze_count, did_commit, project_id, created_at, updated_at`

func scanTask(row rowScanner) (model.Task, error) {
	var (
		t                  model.Task
		energy, status     string
		createdAt, updated int64
	)
	err := row.Scan(&t.ID, &t.Title, &t.IsNonNegotiable, &energy, &status,
		&t.SnoozeCount, &t.DidCommit, &t.ProjectID, &createdAt, &updated)
	if err != nil {
		return model.Task{}, err
	}
	t.EnergyLevel = model.EnergyLevel(energy)
	t.Status = model.TaskStatus(status)
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updated)
	return t, nil
}

const statColumns = `id, date, score, focus_minutes, created_at, updated_at`

func scanStat(row rowScanner) (model.DailyStat, error) {
	var (
		st                 model.DailyStat
		createdAt, updated int64
	)
	if err := row.Scan(&st.ID, &st.Date, &st.Score, &st.FocusMinutes, &createdAt, &updated); err != nil {
		return model.DailyStat{}, err
	}
	st.CreatedAt = fromMillis(createdAt)
	st.UpdatedAt = fromMillis(updated)
	return st, nil
}

const projectColumns = `id, name, color, created_at, updated_at`

func scanProject(row rowScanner) (model.Project, error) {
	var (
		p                  model.Project
		createdAt, updated int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Color, &createdAt, &updated); err != nil {
		return model.Project{}, err
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updated)
	return p, nil
}

// validScore reports an error for scores outside [0, 100].
func validScore(score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("score %d out of range [0, 100]", score)
	}
	return nil
}
