package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show recent daily scores and focus time",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, rootOpts, appOptions{}, func(ctx context.Context, a *app) error {
				n := days
				if n <= 0 {
					n = a.cfg.RecentDays
				}
				recent, err := a.stats.RecentStats(ctx, n)
				if err != nil {
					return wrapOpError("failed to read stats", err)
				}
				return a.format.Render(recent, func(w io.Writer) {
					if len(recent) == 0 {
						fmt.Fprintln(w, "No history yet.")
						return
					}
					for _, s := range recent {
						writeStat(w, s)
					}
				})
			})
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 0, "number of days (default recent_days from config)")
	return cmd
}
