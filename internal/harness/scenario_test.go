package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalScenario = `
name: minimal
start: 2026-06-10T09:00:00Z
steps:
  - action: add_task
    ref: a
    title: A
assertions:
  - type: task_status
    ref: a
    status: pending
`

func TestParseScenario_Minimal(t *testing.T) {
	s, err := ParseScenario([]byte(minimalScenario))
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)
	assert.Equal(t, 2026, s.Start.Year())
	require.Len(t, s.Steps, 1)
	assert.Equal(t, StepAddTask, s.Steps[0].Action)
	require.Len(t, s.Assertions, 1)
}

func TestLoadScenario_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalScenario), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)
}

func TestLoadScenario_Missing(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "unknown field",
			doc:     "name: x\nstart: 2026-06-10T09:00:00Z\nstep: []\n",
			wantErr: "field step not found",
		},
		{
			name:    "missing name",
			doc:     "start: 2026-06-10T09:00:00Z\nsteps: [{action: review}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing start",
			doc:     "name: x\nsteps: [{action: review}]\n",
			wantErr: "start is required",
		},
		{
			name:    "no steps",
			doc:     "name: x\nstart: 2026-06-10T09:00:00Z\n",
			wantErr: "at least one step",
		},
		{
			name:    "unknown action",
			doc:     "name: x\nstart: 2026-06-10T09:00:00Z\nsteps: [{action: dance}]\n",
			wantErr: `unknown action "dance"`,
		},
		{
			name:    "undefined ref",
			doc:     "name: x\nstart: 2026-06-10T09:00:00Z\nsteps: [{action: toggle, ref: ghost}]\n",
			wantErr: `unknown ref "ghost"`,
		},
		{
			name:    "duplicate ref",
			doc:     "name: x\nstart: 2026-06-10T09:00:00Z\nsteps: [{action: add_task, ref: a, title: A}, {action: add_task, ref: a, title: B}]\n",
			wantErr: "already defined",
		},
		{
			name:    "bad duration",
			doc:     "name: x\nstart: 2026-06-10T09:00:00Z\nsteps: [{action: advance, duration: tomorrow}]\n",
			wantErr: "positive duration",
		},
		{
			name:    "bad timezone",
			doc:     "name: x\nstart: 2026-06-10T09:00:00Z\ntimezone: Nowhere/Land\nsteps: [{action: review}]\n",
			wantErr: "timezone",
		},
		{
			name:    "score assertion without score",
			doc:     "name: x\nstart: 2026-06-10T09:00:00Z\nsteps: [{action: review}]\nassertions: [{type: score}]\n",
			wantErr: "score is required",
		},
		{
			name:    "bad stat date",
			doc:     "name: x\nstart: 2026-06-10T09:00:00Z\nsteps: [{action: review}]\nassertions: [{type: stat, date: today, score: 1}]\n",
			wantErr: "invalid date key",
		},
		{
			name:    "unknown assertion",
			doc:     "name: x\nstart: 2026-06-10T09:00:00Z\nsteps: [{action: review}]\nassertions: [{type: vibes}]\n",
			wantErr: `unknown assertion type "vibes"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
