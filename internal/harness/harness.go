package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/forge/internal/audit"
	"github.com/roach88/forge/internal/clock"
	"github.com/roach88/forge/internal/model"
	"github.com/roach88/forge/internal/scoring"
	"github.com/roach88/forge/internal/stats"
	"github.com/roach88/forge/internal/store"
	"github.com/roach88/forge/internal/testutil"
)

// Harness holds the components a scenario drives.
type Harness struct {
	store  *store.Store
	clock  *testutil.FakeClock
	stats  *stats.Manager
	audit  *audit.Engine
	calc   *scoring.Calculator
	refs   map[string]string
	failed int
}

// Run executes a scenario and returns the result.
//
// A step error that the scenario did not expect is recorded and the
// remaining steps still run. Setup failures (store, timezone) are returned
// as errors.
func Run(scenario *Scenario) (*Result, error) {
	loc := time.UTC
	if scenario.Timezone != "" {
		l, err := time.LoadLocation(scenario.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone: %w", err)
		}
		loc = l
	}

	clk := testutil.NewFakeClock(scenario.Start.In(loc))
	st, err := store.Open(":memory:",
		store.WithClock(clk),
		store.WithIDGenerator(testutil.NewSequentialIDs("rec")))
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mgr := stats.NewManager(st, clk, stats.WithLogger(logger))
	defer mgr.Close()

	h := &Harness{
		store: st,
		clock: clk,
		stats: mgr,
		audit: audit.NewEngine(st, st, mgr, clk, audit.WithLogger(logger)),
		calc:  scoring.NewCalculator(scoring.WithEnergyBonus(scenario.EnergyBonus)),
		refs:  map[string]string{},
	}

	ctx := context.Background()
	result := NewResult()
	for i, step := range scenario.Steps {
		ev := TraceEvent{Step: i, Action: step.Action, Date: clock.Today(clk), Ref: step.Ref}
		detail, err := h.execute(ctx, step)
		ev.Detail = detail
		switch {
		case err != nil && !step.ExpectError:
			ev.Error = true
			result.AddError(fmt.Sprintf("steps[%d] %s: %v", i, step.Action, err))
		case err != nil:
			ev.Error = true
		case step.ExpectError:
			result.AddError(fmt.Sprintf("steps[%d] %s: expected an error", i, step.Action))
		}
		result.AddTrace(ev)
	}

	for i, a := range scenario.Assertions {
		if err := h.check(ctx, a); err != nil {
			result.AddError(fmt.Sprintf("assertions[%d] %s: %v", i, a.Type, err))
		}
	}
	return result, nil
}

func (h *Harness) execute(ctx context.Context, step Step) (map[string]any, error) {
	switch step.Action {
	case StepAddTask:
		task, err := h.store.CreateTask(ctx, model.NewTask{
			Title:           step.Title,
			IsNonNegotiable: step.NonNegotiable,
			EnergyLevel:     step.Energy,
		})
		if err != nil {
			return nil, err
		}
		h.refs[step.Ref] = task.ID
		return nil, nil

	case StepToggle, StepSnooze, StepCommit:
		task, err := h.taskAction(ctx, step)
		if err != nil {
			return nil, err
		}
		return map[string]any{"status": string(task.Status)}, nil

	case StepDelete:
		return nil, h.store.DeleteTask(ctx, h.refs[step.Ref])

	case StepAdvance:
		d, err := time.ParseDuration(step.Duration)
		if err != nil {
			return nil, err
		}
		h.clock.Advance(d)
		return nil, nil

	case StepReview:
		rep, err := h.audit.PerformReviewIfNeeded(ctx)
		h.failed += rep.Failed
		if err != nil {
			return nil, err
		}
		return map[string]any{"ran": rep.Ran, "failed": rep.Failed}, nil

	case StepScore:
		tasks, err := h.store.ListTasks(ctx)
		if err != nil {
			return nil, err
		}
		score := h.calc.Compute(tasks, step.Energy)
		h.stats.SyncScore(score)
		return map[string]any{"score": score, "status": string(scoring.Classify(score).Status)}, nil

	case StepFlush:
		return nil, h.stats.Flush(ctx)

	case StepFocus:
		return nil, h.stats.LogFocusSession(ctx, step.Minutes)
	}
	return nil, fmt.Errorf("unknown action %q", step.Action)
}

func (h *Harness) taskAction(ctx context.Context, step Step) (model.Task, error) {
	id := h.refs[step.Ref]
	switch step.Action {
	case StepToggle:
		return h.store.ToggleTask(ctx, id)
	case StepSnooze:
		return h.store.SnoozeTask(ctx, id)
	default:
		return h.store.CommitTask(ctx, id)
	}
}
