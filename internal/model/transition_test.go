package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseTask() Task {
	return Task{
		ID:          "t1",
		Title:       "Read",
		EnergyLevel: EnergyLow,
		Status:      StatusPending,
		CreatedAt:   time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestToggleStatus(t *testing.T) {
	tk := baseTask()
	require.NoError(t, ToggleStatus(&tk))
	assert.Equal(t, StatusCompleted, tk.Status)
	require.NoError(t, ToggleStatus(&tk))
	assert.Equal(t, StatusPending, tk.Status)

	tk.Status = StatusFailed
	assert.ErrorIs(t, ToggleStatus(&tk), ErrTaskFailed)
	assert.Equal(t, StatusFailed, tk.Status)
}

func TestSnoozeAndCommit(t *testing.T) {
	tk := baseTask()
	require.NoError(t, Snooze(&tk))
	require.NoError(t, Snooze(&tk))
	assert.Equal(t, 2, tk.SnoozeCount)

	require.NoError(t, Commit(&tk))
	require.NoError(t, Commit(&tk))
	assert.True(t, tk.DidCommit)

	tk.Status = StatusFailed
	assert.ErrorIs(t, Snooze(&tk), ErrTaskFailed)
	assert.ErrorIs(t, Commit(&tk), ErrTaskFailed)
}

func TestCheckUserTransition(t *testing.T) {
	before := baseTask()
	before.DidCommit = true
	before.SnoozeCount = 1

	ok := before
	ok.Status = StatusCompleted
	ok.SnoozeCount = 2
	assert.NoError(t, CheckUserTransition(before, ok))

	tests := []struct {
		name   string
		mutate func(*Task)
	}{
		{"id", func(t *Task) { t.ID = "other" }},
		{"created_at", func(t *Task) { t.CreatedAt = t.CreatedAt.Add(time.Hour) }},
		{"to failed", func(t *Task) { t.Status = StatusFailed }},
		{"unknown status", func(t *Task) { t.Status = "archived" }},
		{"revoke commit", func(t *Task) { t.DidCommit = false }},
		{"unsnooze", func(t *Task) { t.SnoozeCount = 0 }},
		{"energy", func(t *Task) { t.EnergyLevel = "none" }},
		{"blank title", func(t *Task) { t.Title = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after := before
			tt.mutate(&after)
			assert.ErrorIs(t, CheckUserTransition(before, after), ErrIllegalTransition)
		})
	}

	failed := before
	failed.Status = StatusFailed
	revived := failed
	revived.Status = StatusPending
	assert.ErrorIs(t, CheckUserTransition(failed, revived), ErrIllegalTransition)
}
