package harness

import (
	"context"
	"fmt"

	"github.com/roach88/forge/internal/audit"
	"github.com/roach88/forge/internal/scoring"
)

// check evaluates one assertion against the final state.
func (h *Harness) check(ctx context.Context, a Assertion) error {
	switch a.Type {
	case AssertScore, AssertClassification:
		tasks, err := h.store.ListTasks(ctx)
		if err != nil {
			return err
		}
		score := h.calc.Compute(tasks, "")
		if a.Type == AssertScore {
			return expectInt("score", *a.Score, score)
		}
		if got := string(scoring.Classify(score).Status); got != a.Status {
			return fmt.Errorf("expected classification %s, got %s (score %d)", a.Status, got, score)
		}
		return nil

	case AssertTaskStatus:
		task, err := h.store.GetTask(ctx, h.refs[a.Ref])
		if err != nil {
			return err
		}
		if string(task.Status) != a.Status {
			return fmt.Errorf("task %s: expected status %s, got %s", a.Ref, a.Status, task.Status)
		}
		return nil

	case AssertStat:
		st, err := h.store.FindStatByDate(ctx, a.Date)
		if err != nil {
			return err
		}
		if a.Score != nil {
			if err := expectInt("score", *a.Score, st.Score); err != nil {
				return fmt.Errorf("stat %s: %w", a.Date, err)
			}
		}
		if a.FocusMinutes != nil {
			if err := expectInt("focus_minutes", *a.FocusMinutes, st.FocusMinutes); err != nil {
				return fmt.Errorf("stat %s: %w", a.Date, err)
			}
		}
		return nil

	case AssertStatCount:
		all, err := h.store.ListStats(ctx)
		if err != nil {
			return err
		}
		return expectInt("stat count", *a.Count, len(all))

	case AssertAuditFailed:
		return expectInt("audit failed", *a.Count, h.failed)

	case AssertMarker:
		got, _, err := h.store.GetMarker(ctx, audit.MarkerKey)
		if err != nil {
			return err
		}
		if got != a.Value {
			return fmt.Errorf("expected marker %q, got %q", a.Value, got)
		}
		return nil
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

func expectInt(what string, want, got int) error {
	if want != got {
		return fmt.Errorf("expected %s %d, got %d", what, want, got)
	}
	return nil
}
