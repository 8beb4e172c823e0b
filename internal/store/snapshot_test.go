package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/forge/internal/model"
)

func TestImportSnapshot_SkipsExisting(t *testing.T) {
	src, _ := createTestStore(t)
	ctx := context.Background()

	p, err := src.CreateProject(ctx, "Work", "")
	require.NoError(t, err)
	task, err := src.CreateTask(ctx, model.NewTask{Title: "Ship", ProjectID: p.ID})
	require.NoError(t, err)
	_, err = src.CommitTask(ctx, task.ID)
	require.NoError(t, err)
	st, err := src.CreateStat(ctx, "2026-06-10")
	require.NoError(t, err)
	require.NoError(t, src.AddFocusMinutes(ctx, st.ID, 30))

	tasks, err := src.ListTasks(ctx)
	require.NoError(t, err)
	stats, err := src.ListStats(ctx)
	require.NoError(t, err)
	projects, err := src.ListProjects(ctx)
	require.NoError(t, err)

	dst, _ := createTestStore(t)
	res, err := dst.ImportSnapshot(ctx, tasks, stats, projects)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Tasks: 1, Stats: 1, Projects: 1}, res)

	got, err := dst.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, tasks[0], got)

	gotStat, err := dst.FindStatByDate(ctx, "2026-06-10")
	require.NoError(t, err)
	assert.Equal(t, 30, gotStat.FocusMinutes)

	res, err = dst.ImportSnapshot(ctx, tasks, stats, projects)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{}, res)
}

func TestImportSnapshot_RollsBackOnInvalidRow(t *testing.T) {
	s, _ := createTestStore(t)
	ctx := context.Background()

	good := model.Task{ID: "a", Title: "ok", EnergyLevel: model.EnergyLow, Status: model.StatusPending}
	bad := model.Task{ID: "b", Title: "bad", EnergyLevel: "turbo", Status: model.StatusPending}

	_, err := s.ImportSnapshot(ctx, []model.Task{good, bad}, nil, nil)
	assert.Error(t, err)

	tasks, err := s.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}
