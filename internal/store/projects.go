package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/forge/internal/model"
)

// ErrEmptyProjectName is returned when creating a project without a name.
var ErrEmptyProjectName = errors.New("project name must not be empty")

// CreateProject inserts a project.
func (s *Store) CreateProject(ctx context.Context, name, color string) (model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Project{}, fmt.Errorf("create project: %w", ErrEmptyProjectName)
	}

	now := s.now()
	p := model.Project{
		ID:        s.ids.Generate(),
		Name:      name,
		Color:     color,
		CreatedAt: fromMillis(now),
		UpdatedAt: fromMillis(now),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Color, now, now)
	if err != nil {
		return model.Project{}, fmt.Errorf("create project: %w", err)
	}
	return p, nil
}

// ListProjects returns every project ordered by name.
func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}
