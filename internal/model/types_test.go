package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFieldNaming(t *testing.T) {
	task := Task{ID: "t1", Title: "Run", EnergyLevel: EnergyHigh, Status: StatusPending}
	data, err := json.Marshal(task)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"is_non_negotiable"`)
	assert.Contains(t, string(data), `"energy_level":"high"`)
	assert.Contains(t, string(data), `"snooze_count"`)
	assert.Contains(t, string(data), `"did_commit"`)
	assert.NotContains(t, string(data), `"project_id"`)
}

func TestParseEnergyLevel(t *testing.T) {
	for _, s := range []string{"high", "medium", "low"} {
		e, err := ParseEnergyLevel(s)
		require.NoError(t, err)
		assert.Equal(t, EnergyLevel(s), e)
	}

	_, err := ParseEnergyLevel("extreme")
	assert.ErrorIs(t, err, ErrInvalidEnergy)
}

func TestNewTaskNormalize(t *testing.T) {
	n, err := NewTask{Title: "  Deep work  "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "Deep work", n.Title)
	assert.Equal(t, EnergyMedium, n.EnergyLevel)

	_, err = NewTask{Title: "   "}.Normalize()
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = NewTask{Title: "x", EnergyLevel: "turbo"}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidEnergy)
}

func TestBrokenCommitment(t *testing.T) {
	assert.True(t, Task{DidCommit: true, Status: StatusPending}.BrokenCommitment())
	assert.True(t, Task{DidCommit: true, Status: StatusFailed}.BrokenCommitment())
	assert.False(t, Task{DidCommit: true, Status: StatusCompleted}.BrokenCommitment())
	assert.False(t, Task{Status: StatusPending}.BrokenCommitment())
}

func TestDateKeys(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:00 UTC on the 15th is still the 14th in New York.
	ts := time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-15", DayOf(ts, time.UTC))
	assert.Equal(t, "2026-03-14", DayOf(ts, ny))
	assert.Equal(t, "2026-03-15", DayOf(ts, nil))

	assert.True(t, DayBefore("2026-03-14", "2026-03-15"))
	assert.True(t, DayBefore("2025-12-31", "2026-01-01"))
	assert.False(t, DayBefore("2026-03-15", "2026-03-15"))

	day, err := ParseDateKey("2026-03-15", ny)
	require.NoError(t, err)
	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, ny, day.Location())

	_, err = ParseDateKey("2026-3-15", nil)
	assert.ErrorIs(t, err, ErrInvalidDateKey)
}

func TestSnapshotChecksumStable(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	tasks := []Task{{ID: "a", Title: "A", EnergyLevel: EnergyLow, Status: StatusPending, CreatedAt: created, UpdatedAt: created}}
	stats := []DailyStat{{ID: "s", Date: "2026-01-02", Score: 70, CreatedAt: created, UpdatedAt: created}}

	sum1, err := SnapshotChecksum(tasks, stats, nil)
	require.NoError(t, err)
	sum2, err := SnapshotChecksum(tasks, stats, nil)
	require.NoError(t, err)
	assert.Equal(t, sum1, sum2)
	assert.Len(t, sum1, 64)

	stats[0].Score = 71
	sum3, err := SnapshotChecksum(tasks, stats, nil)
	require.NoError(t, err)
	assert.NotEqual(t, sum1, sum3)
}
