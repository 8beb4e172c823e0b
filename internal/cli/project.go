package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewProjectCommand creates the project command group.
func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(newProjectAddCommand(rootOpts))
	cmd.AddCommand(newProjectListCommand(rootOpts))
	return cmd
}

func newProjectAddCommand(rootOpts *RootOptions) *cobra.Command {
	var hex string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project",
		Args:  minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, rootOpts, appOptions{}, func(ctx context.Context, a *app) error {
				p, err := a.store.CreateProject(ctx, strings.Join(args, " "), hex)
				if err != nil {
					return wrapOpError("failed to add project", err)
				}
				return a.format.Render(p, func(w io.Writer) {
					fmt.Fprintf(w, "Added project %s  %s\n", p.Name, gray(p.ID))
				})
			})
		},
	}

	cmd.Flags().StringVar(&hex, "color", "", "display color, e.g. #00FF94")
	return cmd
}

func newProjectListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithApp(cmd, rootOpts, appOptions{}, func(ctx context.Context, a *app) error {
				projects, err := a.store.ListProjects(ctx)
				if err != nil {
					return wrapOpError("failed to list projects", err)
				}
				return a.format.Render(projects, func(w io.Writer) {
					if len(projects) == 0 {
						fmt.Fprintln(w, "No projects.")
						return
					}
					for _, p := range projects {
						fmt.Fprintf(w, "%s  %s  %s\n", color.New(color.Bold).Sprint(p.Name), p.Color, gray(p.ID))
					}
				})
			})
		},
	}
}
