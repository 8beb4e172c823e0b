// Package cli implements the forge command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/forge/internal/clock"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Database   string // overrides the config file and FORGE_DB when set
	ConfigPath string // defaults to $FORGE_CONFIG

	// Clock overrides the wall clock (for testing).
	// If nil, a system clock in the configured timezone is used.
	Clock clock.Clock
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

var errInvalidArgs = errors.New("invalid arguments")

// NewRootCommand creates the root command for the forge CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forge",
		Short: "Forge - discipline tracker",
		Long: `Track tasks, pledge commitments, and watch a daily integrity score.

Every command first runs the once-per-day audit: committed tasks left
pending from an earlier day are marked failed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return WrapExitError(ExitCommandError, "invalid flags",
					fmt.Errorf("%w: format %q must be one of %v", errInvalidArgs, opts.Format, ValidFormats))
			}
			return nil
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", fmt.Errorf("%w: %v", errInvalidArgs, err))
	})

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config, else forge.db)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file (default $FORGE_CONFIG)")

	cmd.AddCommand(NewTaskCommand(opts))
	cmd.AddCommand(NewScoreCommand(opts))
	cmd.AddCommand(NewFocusCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewAuditCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewProjectCommand(opts))

	return cmd
}

// Execute runs the command tree with args and reports any error in the
// selected output format. It returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	return execute(&RootOptions{}, args, stdout, stderr)
}

func execute(opts *RootOptions, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitSuccess
	}

	f := &OutputFormatter{Format: opts.Format, Writer: stdout, ErrWriter: stderr, Verbose: opts.Verbose}
	if !isValidFormat(opts.Format) {
		f.Format = "text"
	}
	_ = f.Error(errorCode(err), err.Error(), nil)
	return GetExitCode(err)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// exactArgs is cobra.ExactArgs reporting a command error exit code.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", fmt.Errorf("%w: %v", errInvalidArgs, err))
		}
		return nil
	}
}

// minimumArgs is cobra.MinimumNArgs reporting a command error exit code.
func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", fmt.Errorf("%w: %v", errInvalidArgs, err))
		}
		return nil
	}
}

func configPath(opts *RootOptions) string {
	if opts.ConfigPath != "" {
		return opts.ConfigPath
	}
	return os.Getenv("FORGE_CONFIG")
}
