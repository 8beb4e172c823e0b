package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "forge", cmd.Use)
	assert.Contains(t, cmd.Long, "audit")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"task", "add"}, {"task", "list"}, {"task", "toggle"}, {"task", "snooze"},
		{"task", "commit"}, {"task", "rm"}, {"score"}, {"focus"}, {"stats"},
		{"audit"}, {"export"}, {"import"}, {"project", "add"}, {"project", "list"},
	}

	for _, path := range commands {
		name := path[len(path)-1]
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "Command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	for _, name := range []string{"db", "config"} {
		f := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "", f.DefValue)
	}
}

func TestScoreCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	scoreCmd, _, err := cmd.Find([]string{"score"})
	require.NoError(t, err)

	assert.NotNil(t, scoreCmd.Flags().Lookup("energy"))
	assert.NotNil(t, scoreCmd.Flags().Lookup("day"))
}

func TestExportCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	exportCmd, _, err := cmd.Find([]string{"export"})
	require.NoError(t, err)

	outputFlag := exportCmd.Flags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)
	assert.NotNil(t, exportCmd.Flags().Lookup("as"))
}

func TestStatsCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	statsCmd, _, err := cmd.Find([]string{"stats"})
	require.NoError(t, err)

	daysFlag := statsCmd.Flags().Lookup("days")
	require.NotNil(t, daysFlag)
	assert.Equal(t, "n", daysFlag.Shorthand)
}

func TestIsValidFormat(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))
	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
}
