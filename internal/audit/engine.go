package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/roach88/forge/internal/clock"
	"github.com/roach88/forge/internal/model"
)

// MarkerKey is the marker store key holding the date of the last
// successful audit.
const MarkerKey = "last_audit_date"

// TaskStore is the task access the sweep needs.
type TaskStore interface {
	ListTasks(ctx context.Context) ([]model.Task, error)

	// FailTasks transitions the given tasks to failed in one batch,
	// skipping any that are no longer committed and pending, and returns
	// how many were transitioned.
	FailTasks(ctx context.Context, ids []string) (int, error)
}

// MarkerStore persists single string values by key.
type MarkerStore interface {
	GetMarker(ctx context.Context, key string) (value string, ok bool, err error)
	SetMarker(ctx context.Context, key, value string) error
}

// StatEnsurer creates today's DailyStat if it is missing.
type StatEnsurer interface {
	GetOrCreateToday(ctx context.Context) (model.DailyStat, error)
}

// Report describes the outcome of a review.
type Report struct {
	// Date is the day the review ran for.
	Date string `json:"date"`

	// LastAudit is the marker value found before the review, empty if the
	// audit never ran.
	LastAudit string `json:"last_audit,omitempty"`

	// Ran is false when the audit had already run for Date.
	Ran bool `json:"ran"`

	// Candidates is the number of stale commitments the sweep found.
	Candidates int `json:"candidates"`

	// Failed is the number of tasks transitioned to failed.
	Failed int `json:"failed"`
}

// Engine runs the end-of-day audit.
//
// Thread-safety: reviews are serialized by an internal mutex so two callers
// on the same day never both sweep.
type Engine struct {
	tasks   TaskStore
	markers MarkerStore
	stats   StatEnsurer
	clock   clock.Clock
	log     *slog.Logger
	mu      sync.Mutex
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// NewEngine creates an audit engine.
func NewEngine(tasks TaskStore, markers MarkerStore, stats StatEnsurer, c clock.Clock, opts ...Option) *Engine {
	e := &Engine{
		tasks:   tasks,
		markers: markers,
		stats:   stats,
		clock:   c,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PerformReviewIfNeeded runs the audit unless it already ran today.
//
// The marker is written last, only after the sweep succeeded; on error it
// keeps its previous value so the next call retries. Errors are logged and
// returned. Callers must not treat them as fatal.
func (e *Engine) PerformReviewIfNeeded(ctx context.Context) (Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	rep := Report{Date: model.DateKey(now)}

	last, _, err := e.markers.GetMarker(ctx, MarkerKey)
	if err != nil {
		e.log.Error("audit review failed", "date", rep.Date, "error", err)
		return rep, fmt.Errorf("perform review: %w", err)
	}
	rep.LastAudit = last
	if last == rep.Date {
		e.log.Debug("audit already run", "date", rep.Date)
		return rep, nil
	}

	if err := e.review(ctx, now, &rep); err != nil {
		e.log.Error("audit review failed", "date", rep.Date, "error", err)
		return rep, fmt.Errorf("perform review: %w", err)
	}
	return rep, nil
}

// ForceReview runs the audit even if the marker says it already ran today.
func (e *Engine) ForceReview(ctx context.Context) (Report, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	rep := Report{Date: model.DateKey(now)}
	if last, _, err := e.markers.GetMarker(ctx, MarkerKey); err == nil {
		rep.LastAudit = last
	}
	if err := e.review(ctx, now, &rep); err != nil {
		e.log.Error("audit review failed", "date", rep.Date, "error", err)
		return rep, fmt.Errorf("force review: %w", err)
	}
	return rep, nil
}

// RunEndOfDayAudit ensures today's stat exists and fails stale
// commitments. It does not read or write the marker.
func (e *Engine) RunEndOfDayAudit(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	rep := Report{Date: model.DateKey(now)}
	if err := e.sweep(ctx, now, &rep); err != nil {
		return 0, err
	}
	return rep.Failed, nil
}

func (e *Engine) review(ctx context.Context, now time.Time, rep *Report) error {
	e.log.Info("running audit", "date", rep.Date, "last_audit", rep.LastAudit)
	if err := e.sweep(ctx, now, rep); err != nil {
		return err
	}
	if err := e.markers.SetMarker(ctx, MarkerKey, rep.Date); err != nil {
		return fmt.Errorf("advance audit marker: %w", err)
	}
	rep.Ran = true
	return nil
}

func (e *Engine) sweep(ctx context.Context, now time.Time, rep *Report) error {
	if _, err := e.stats.GetOrCreateToday(ctx); err != nil {
		return fmt.Errorf("end of day audit: %w", err)
	}

	tasks, err := e.tasks.ListTasks(ctx)
	if err != nil {
		return fmt.Errorf("end of day audit: %w", err)
	}

	stale := StaleCommitments(tasks, rep.Date, now.Location())
	rep.Candidates = len(stale)
	if len(stale) == 0 {
		e.log.Info("audit complete", "date", rep.Date, "failed", 0)
		return nil
	}

	ids := make([]string, len(stale))
	for i, t := range stale {
		ids[i] = t.ID
		e.log.Debug("task failed by audit", "id", t.ID, "title", t.Title)
	}
	n, err := e.tasks.FailTasks(ctx, ids)
	if err != nil {
		return fmt.Errorf("end of day audit: %w", err)
	}
	rep.Failed = n
	e.log.Info("audit complete", "date", rep.Date, "failed", n, "candidates", len(stale))
	return nil
}

// StaleCommitments returns the committed, pending tasks created on a day
// before today, with days observed in loc.
func StaleCommitments(tasks []model.Task, today string, loc *time.Location) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if !t.DidCommit || t.Status != model.StatusPending {
			continue
		}
		if model.DayBefore(model.DayOf(t.CreatedAt, loc), today) {
			out = append(out, t)
		}
	}
	return out
}
