package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/forge/internal/audit"
	"github.com/roach88/forge/internal/clock"
	"github.com/roach88/forge/internal/config"
	"github.com/roach88/forge/internal/scoring"
	"github.com/roach88/forge/internal/stats"
	"github.com/roach88/forge/internal/store"
)

// app wires the core components for one command invocation.
type app struct {
	cfg    config.Config
	clock  clock.Clock
	store  *store.Store
	stats  *stats.Manager
	audit  *audit.Engine
	calc   *scoring.Calculator
	log    *slog.Logger
	format *OutputFormatter
}

// appOptions controls openApp.
type appOptions struct {
	// skipReview disables the automatic daily audit.
	skipReview bool
}

// runWithApp opens the app, runs fn, then flushes the pending score sync
// and closes the store.
func runWithApp(cmd *cobra.Command, opts *RootOptions, aopts appOptions, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := openApp(ctx, cmd, opts, aopts)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	return fn(ctx, a)
}

func openApp(ctx context.Context, cmd *cobra.Command, opts *RootOptions, aopts appOptions) (*app, error) {
	cfg, err := config.Load(configPath(opts))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg, opts.Verbose)
	slog.SetDefault(logger)

	clk := opts.Clock
	if clk == nil {
		clk = clock.NewSystem(cfg.Location())
	}

	dbPath := cfg.Database
	if opts.Database != "" {
		dbPath = opts.Database
	}
	logger.Debug("opening database", "path", dbPath)
	st, err := store.Open(dbPath, store.WithClock(clk))
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to open database", err)
	}

	mgr := stats.NewManager(st, clk, stats.WithDebounce(cfg.Debounce()), stats.WithLogger(logger))
	a := &app{
		cfg:    cfg,
		clock:  clk,
		store:  st,
		stats:  mgr,
		audit:  audit.NewEngine(st, st, mgr, clk, audit.WithLogger(logger)),
		calc:   scoring.NewCalculator(scoring.WithEnergyBonus(cfg.EnergyBonus)),
		log:    logger,
		format: &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose},
	}

	if !aopts.skipReview {
		// Audit failures never block the command; the marker stays put and
		// the next invocation retries.
		if _, err := a.audit.PerformReviewIfNeeded(ctx); err != nil {
			logger.Warn("daily review skipped", "error", err)
		}
	}
	return a, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.stats.Flush(ctx); err != nil {
		a.log.Error("score sync failed", "error", err)
	}
	a.stats.Close()
	if err := a.store.Close(); err != nil {
		a.log.Error("error closing database", "error", err)
	}
}

// resync recomputes the live score over all tasks and hands it to the
// debounced sync, as every task mutation does.
func (a *app) resync(ctx context.Context) {
	tasks, err := a.store.ListTasks(ctx)
	if err != nil {
		a.log.Error("score recompute failed", "error", err)
		return
	}
	a.stats.SyncScore(a.calc.Compute(tasks, ""))
}

// newLogger builds the process logger: text or JSON on w, with --verbose
// lowering the configured level to Debug.
func newLogger(w io.Writer, cfg config.Config, verbose bool) *slog.Logger {
	level := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}
