package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/roach88/forge/internal/model"
	"github.com/roach88/forge/internal/scoring"
)

var (
	bold = color.New(color.Bold).SprintFunc()
	gray = color.New(color.FgHiBlack).SprintFunc()
)

// scoreColor returns the terminal color for a classification color token.
func scoreColor(c scoring.Color) func(a ...any) string {
	switch c {
	case scoring.ColorGreen:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	case scoring.ColorOrange:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// formatScore renders "70 DISCIPLINED" in the score's color.
func formatScore(score int) string {
	c := scoring.Classify(score)
	paint := scoreColor(c.Color)
	return paint(fmt.Sprintf("%d %s", score, c.Status))
}

func statusMark(s model.TaskStatus) string {
	switch s {
	case model.StatusCompleted:
		return color.GreenString("[x]")
	case model.StatusFailed:
		return color.RedString("[!]")
	default:
		return "[ ]"
	}
}

func writeTask(w io.Writer, t model.Task) {
	var flags []string
	if t.IsNonNegotiable {
		flags = append(flags, "non-negotiable")
	}
	if t.DidCommit {
		flags = append(flags, "committed")
	}
	if t.SnoozeCount > 0 {
		flags = append(flags, fmt.Sprintf("snoozed %dx", t.SnoozeCount))
	}
	flags = append(flags, string(t.EnergyLevel))

	title := t.Title
	if t.IsNonNegotiable {
		title = bold(title)
	}
	fmt.Fprintf(w, "%s %s  %s  %s\n", statusMark(t.Status), title, gray(t.ID), gray(strings.Join(flags, ", ")))
}

func writeBreakdown(w io.Writer, b scoring.Breakdown) {
	fmt.Fprintf(w, "  tasks: %d total, %d completed, %d pending, %d failed\n", b.Total, b.Completed, b.Pending, b.Failed)
	fmt.Fprintf(w, "  non-negotiables: %d/%d completed\n", b.NonNegotiablesCompleted, b.NonNegotiables)
	fmt.Fprintf(w, "  penalties: %d snoozes, %d broken commitments\n", b.TotalSnoozes, b.BrokenCommitments)
}

func writeStat(w io.Writer, s model.DailyStat) {
	fmt.Fprintf(w, "%s  %s  focus %dm\n", s.Date, formatScore(s.Score), s.FocusMinutes)
}
