package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("..", "..", "testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)
			assert.NotEmpty(t, s.Description)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Trace, len(s.Steps))
		})
	}
}

func TestRunWithGolden_BrokenCommitment(t *testing.T) {
	s := loadTestScenario(t, "broken_commitment")

	result, err := RunWithGolden(t, s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_EnergyBonusTrace(t *testing.T) {
	s := loadTestScenario(t, "energy_bonus")

	result, err := Run(s)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)

	assert.Equal(t, 52, result.Trace[3].Detail["score"])
	assert.Equal(t, 50, result.Trace[4].Detail["score"])
}

func TestRun_ExpectedErrorMarkedInTrace(t *testing.T) {
	s := loadTestScenario(t, "timezone_rollover")

	result, err := Run(s)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)

	toggle := result.Trace[7]
	assert.Equal(t, StepToggle, toggle.Action)
	assert.True(t, toggle.Error)
	assert.Equal(t, "2026-06-11", toggle.Date)
}

func TestRun_ReportsFailures(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: failing
start: 2026-06-10T09:00:00Z
steps:
  - action: add_task
    ref: a
    title: A
  - action: toggle
    ref: a
    expect_error: true
  - action: focus
    minutes: -1
assertions:
  - type: score
    score: 42
  - type: task_status
    ref: a
    status: pending
  - type: marker
    value: "2026-06-10"
`))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "expected an error")
	assert.Contains(t, result.Errors[1], "focus minutes must be positive")
	assert.Contains(t, result.Errors[2], "expected score 42, got 100")
	assert.Contains(t, result.Errors[3], "expected status pending, got completed")
	assert.Contains(t, result.Errors[4], `expected marker "2026-06-10", got ""`)
}

func TestResult_AddError(t *testing.T) {
	r := NewResult()
	assert.True(t, r.Pass)
	r.AddError("boom")
	assert.False(t, r.Pass)
	assert.Equal(t, []string{"boom"}, r.Errors)
}
