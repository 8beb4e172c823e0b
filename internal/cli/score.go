package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/forge/internal/model"
	"github.com/roach88/forge/internal/scoring"
)

// ScoreOptions holds flags for the score command.
type ScoreOptions struct {
	*RootOptions
	Energy string
	Day    bool
}

// ScoreResult is the score command's output.
type ScoreResult struct {
	Score       int               `json:"score"`
	Status      scoring.Status    `json:"status"`
	Color       scoring.Color     `json:"color"`
	Hex         string            `json:"hex"`
	Energy      model.EnergyLevel `json:"energy,omitempty"`
	EnergyBonus bool              `json:"energy_bonus"`
	Scope       string            `json:"scope"`
	Breakdown   scoring.Breakdown `json:"breakdown"`
}

// NewScoreCommand creates the score command.
func NewScoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute and record today's integrity score",
		Long: `Compute the integrity score over all tasks (or only today's with --day),
classify it, and record it on today's stat.

Completed tasks earn their weight (3 for non-negotiables, 1 otherwise).
Each snooze costs 5 points and each committed task that is not completed
costs 10. With energy_bonus enabled in config, completed tasks matching
--energy earn 2 extra points.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Energy, "energy", "", "current energy level (high|medium|low)")
	cmd.Flags().BoolVar(&opts.Day, "day", false, "score only tasks created today")

	return cmd
}

func runScore(cmd *cobra.Command, opts *ScoreOptions) error {
	energy := model.EnergyLevel(opts.Energy)
	if energy != "" {
		parsed, err := model.ParseEnergyLevel(opts.Energy)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid flags", err)
		}
		energy = parsed
	}

	return runWithApp(cmd, opts.RootOptions, appOptions{}, func(ctx context.Context, a *app) error {
		tasks, err := a.store.ListTasks(ctx)
		if err != nil {
			return wrapOpError("failed to list tasks", err)
		}
		scope := "all"
		if opts.Day {
			now := a.clock.Now()
			tasks = scoring.TasksForDay(tasks, model.DateKey(now), now.Location())
			scope = "today"
		}

		score := a.calc.Compute(tasks, energy)
		a.stats.SyncScore(score)

		c := scoring.Classify(score)
		res := ScoreResult{
			Score:       score,
			Status:      c.Status,
			Color:       c.Color,
			Hex:         c.Color.Hex(),
			Energy:      energy,
			EnergyBonus: a.calc.EnergyBonusEnabled(),
			Scope:       scope,
			Breakdown:   scoring.Summarize(tasks),
		}
		return a.format.Render(res, func(w io.Writer) {
			fmt.Fprintf(w, "Score: %s\n", formatScore(score))
			writeBreakdown(w, res.Breakdown)
		})
	})
}
