package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/forge/internal/audit"
)

// NewAuditCommand creates the audit command.
func NewAuditCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Run the end-of-day review",
		Long: `Run the end-of-day review if it has not run today.

The review ensures today's stat exists and marks failed every committed
task still pending from an earlier day. --force runs it even if it already
ran today.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, rootOpts, appOptions{skipReview: true}, func(ctx context.Context, a *app) error {
				var rep audit.Report
				var err error
				if force {
					rep, err = a.audit.ForceReview(ctx)
				} else {
					rep, err = a.audit.PerformReviewIfNeeded(ctx)
				}
				if err != nil {
					return wrapOpError("audit failed", err)
				}
				if rep.Failed > 0 {
					a.resync(ctx)
				}
				return a.format.Render(rep, func(w io.Writer) {
					if !rep.Ran {
						fmt.Fprintf(w, "Audit already ran for %s\n", rep.Date)
						return
					}
					fmt.Fprintf(w, "Audit for %s: %d task(s) failed\n", rep.Date, rep.Failed)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "run even if already run today")
	return cmd
}
