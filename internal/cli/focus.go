package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

// NewFocusCommand creates the focus command.
func NewFocusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "focus <minutes>",
		Short: "Log a completed focus session",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid arguments",
					fmt.Errorf("%w: minutes %q is not a number", errInvalidArgs, args[0]))
			}

			return runWithApp(cmd, rootOpts, appOptions{}, func(ctx context.Context, a *app) error {
				if err := a.stats.LogFocusSession(ctx, minutes); err != nil {
					return wrapOpError("failed to log focus session", err)
				}
				st, err := a.stats.GetOrCreateToday(ctx)
				if err != nil {
					return wrapOpError("failed to read today", err)
				}
				return a.format.Render(st, func(w io.Writer) {
					fmt.Fprintf(w, "Logged %dm of focus (%dm today)\n", minutes, st.FocusMinutes)
				})
			})
		},
	}
}
