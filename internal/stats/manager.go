package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/roach88/forge/internal/clock"
	"github.com/roach88/forge/internal/model"
	"github.com/roach88/forge/internal/store"
)

const (
	// DefaultSyncDebounce is the window in which SyncScore calls coalesce.
	DefaultSyncDebounce = 500 * time.Millisecond

	// DefaultRecentDays is the history length RecentStats returns for n <= 0.
	DefaultRecentDays = 7
)

// ErrInvalidMinutes is returned when logging a non-positive focus session.
var ErrInvalidMinutes = errors.New("focus minutes must be positive")

// Store is the daily aggregate persistence the Manager needs.
// Implemented by *store.Store.
type Store interface {
	FindStatByDate(ctx context.Context, date string) (model.DailyStat, error)
	CreateStat(ctx context.Context, date string) (model.DailyStat, error)
	UpdateStatScore(ctx context.Context, id string, score int) error
	AddFocusMinutes(ctx context.Context, id string, minutes int) error
	ListRecentStats(ctx context.Context, n int) ([]model.DailyStat, error)
}

// Manager owns the DailyStat record of the current day.
//
// Thread-safety: all methods are safe for concurrent use. Concurrent
// GetOrCreateToday calls for the same date share one store round trip.
type Manager struct {
	store    Store
	clock    clock.Clock
	log      *slog.Logger
	debounce time.Duration
	group    singleflight.Group
	sync     *debouncer
}

// Option configures a Manager.
type Option func(*Manager)

// WithDebounce sets the SyncScore coalescing window.
// Default: DefaultSyncDebounce.
func WithDebounce(d time.Duration) Option {
	return func(m *Manager) {
		m.debounce = d
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.log = l
	}
}

// NewManager creates a Manager over s, reading dates from c.
func NewManager(s Store, c clock.Clock, opts ...Option) *Manager {
	m := &Manager{
		store:    s,
		clock:    c,
		log:      slog.Default(),
		debounce: DefaultSyncDebounce,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.sync = newDebouncer(c, m.debounce, m.syncFromTimer)
	return m
}

// GetOrCreateToday returns today's stat, creating it with score 0 and no
// focus minutes on first access.
func (m *Manager) GetOrCreateToday(ctx context.Context) (model.DailyStat, error) {
	today := clock.Today(m.clock)
	v, err, _ := m.group.Do(today, func() (any, error) {
		st, err := m.store.FindStatByDate(ctx, today)
		if err == nil {
			return st, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		st, err = m.store.CreateStat(ctx, today)
		if err != nil {
			return nil, err
		}
		m.log.Debug("daily stat created", "date", today, "id", st.ID)
		return st, nil
	})
	if err != nil {
		return model.DailyStat{}, fmt.Errorf("get today stat: %w", err)
	}
	return v.(model.DailyStat), nil
}

// SyncScore schedules score to be written to today's stat.
//
// Calls within the debounce window replace each other; only the last value
// is written, and only if it differs from the stored score. Out-of-range
// scores are clamped to [0, 100].
func (m *Manager) SyncScore(score int) {
	m.sync.Schedule(min(100, max(0, score)))
}

// Flush writes a pending SyncScore value now instead of waiting for the
// timer. It is a no-op when nothing is pending.
func (m *Manager) Flush(ctx context.Context) error {
	score, ok := m.sync.Take()
	if !ok {
		return nil
	}
	return m.writeScore(ctx, score)
}

// Pending reports whether a debounced score is waiting to be written.
func (m *Manager) Pending() bool {
	return m.sync.Pending()
}

// Close drops any pending SyncScore value without writing it.
func (m *Manager) Close() {
	if _, ok := m.sync.Take(); ok {
		m.log.Debug("pending score sync dropped")
	}
}

func (m *Manager) syncFromTimer(score int) {
	if err := m.writeScore(context.Background(), score); err != nil {
		m.log.Error("score sync failed", "score", score, "error", err)
	}
}

// writeScore updates today's score if it changed.
func (m *Manager) writeScore(ctx context.Context, score int) error {
	st, err := m.GetOrCreateToday(ctx)
	if err != nil {
		return fmt.Errorf("sync score: %w", err)
	}
	if st.Score == score {
		m.log.Debug("score unchanged", "date", st.Date, "score", score)
		return nil
	}
	if err := m.store.UpdateStatScore(ctx, st.ID, score); err != nil {
		return fmt.Errorf("sync score: %w", err)
	}
	m.log.Info("score synced", "date", st.Date, "score", score)
	return nil
}

// LogFocusSession adds minutes to today's focus counter.
func (m *Manager) LogFocusSession(ctx context.Context, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("log focus session: %w: %d", ErrInvalidMinutes, minutes)
	}
	st, err := m.GetOrCreateToday(ctx)
	if err != nil {
		return fmt.Errorf("log focus session: %w", err)
	}
	if err := m.store.AddFocusMinutes(ctx, st.ID, minutes); err != nil {
		return fmt.Errorf("log focus session: %w", err)
	}
	m.log.Info("focus session logged", "date", st.Date, "minutes", minutes)
	return nil
}

// RecentStats returns up to n stats, newest date first.
// n <= 0 means DefaultRecentDays.
func (m *Manager) RecentStats(ctx context.Context, n int) ([]model.DailyStat, error) {
	if n <= 0 {
		n = DefaultRecentDays
	}
	stats, err := m.store.ListRecentStats(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("recent stats: %w", err)
	}
	return stats, nil
}
