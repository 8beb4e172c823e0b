package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/forge/internal/model"
	"github.com/roach88/forge/internal/scoring"
)

// TaskAddOptions holds flags for the task add command.
type TaskAddOptions struct {
	*RootOptions
	NonNegotiable bool
	Energy        string
	Project       string
}

// NewTaskCommand creates the task command group.
func NewTaskCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}
	cmd.AddCommand(newTaskAddCommand(rootOpts))
	cmd.AddCommand(newTaskListCommand(rootOpts))
	cmd.AddCommand(newTaskMutateCommand(rootOpts, "toggle", "Flip a task between pending and completed", "toggled",
		func(ctx context.Context, a *app, id string) (model.Task, error) { return a.store.ToggleTask(ctx, id) }))
	cmd.AddCommand(newTaskMutateCommand(rootOpts, "snooze", "Defer a task (costs 5 points)", "snoozed",
		func(ctx context.Context, a *app, id string) (model.Task, error) { return a.store.SnoozeTask(ctx, id) }))
	cmd.AddCommand(newTaskMutateCommand(rootOpts, "commit", "Pledge a task; failing it costs 10 points", "committed",
		func(ctx context.Context, a *app, id string) (model.Task, error) { return a.store.CommitTask(ctx, id) }))
	cmd.AddCommand(newTaskRemoveCommand(rootOpts))
	return cmd
}

func newTaskAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TaskAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Example: `  forge task add "Run 5k" --nn --energy high
  forge task add Inbox zero`,
		Args: minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, opts.RootOptions, appOptions{}, func(ctx context.Context, a *app) error {
				task, err := a.store.CreateTask(ctx, model.NewTask{
					Title:           strings.Join(args, " "),
					IsNonNegotiable: opts.NonNegotiable,
					EnergyLevel:     model.EnergyLevel(opts.Energy),
					ProjectID:       opts.Project,
				})
				if err != nil {
					return wrapOpError("failed to add task", err)
				}
				a.resync(ctx)
				return a.format.Render(task, func(w io.Writer) {
					fmt.Fprintf(w, "Added %s\n", task.ID)
					writeTask(w, task)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&opts.NonNegotiable, "nn", false, "mark as non-negotiable (weight 3)")
	cmd.Flags().StringVar(&opts.Energy, "energy", "", "energy level (high|medium|low, default medium)")
	cmd.Flags().StringVar(&opts.Project, "project", "", "project id")

	return cmd
}

func newTaskListCommand(rootOpts *RootOptions) *cobra.Command {
	var today bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, newest first",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, rootOpts, appOptions{}, func(ctx context.Context, a *app) error {
				tasks, err := a.store.ListTasks(ctx)
				if err != nil {
					return wrapOpError("failed to list tasks", err)
				}
				if today {
					now := a.clock.Now()
					tasks = scoring.TasksForDay(tasks, model.DateKey(now), now.Location())
				}
				if tasks == nil {
					tasks = []model.Task{}
				}
				return a.format.Render(tasks, func(w io.Writer) {
					if len(tasks) == 0 {
						fmt.Fprintln(w, "No tasks.")
						return
					}
					for _, t := range tasks {
						writeTask(w, t)
					}
				})
			})
		},
	}

	cmd.Flags().BoolVar(&today, "day", false, "only tasks created today")
	return cmd
}

func newTaskMutateCommand(rootOpts *RootOptions, use, short, verb string,
	mutate func(ctx context.Context, a *app, id string) (model.Task, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, rootOpts, appOptions{}, func(ctx context.Context, a *app) error {
				task, err := mutate(ctx, a, args[0])
				if err != nil {
					return wrapOpError("failed to "+use+" task", err)
				}
				a.resync(ctx)
				return a.format.Render(task, func(w io.Writer) {
					fmt.Fprintf(w, "Task %s\n", verb)
					writeTask(w, task)
				})
			})
		},
	}
}

func newTaskRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, rootOpts, appOptions{}, func(ctx context.Context, a *app) error {
				if err := a.store.DeleteTask(ctx, args[0]); err != nil {
					return wrapOpError("failed to delete task", err)
				}
				a.resync(ctx)
				return a.format.Render(map[string]string{"deleted": args[0]}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted %s\n", args[0])
				})
			})
		},
	}
}
