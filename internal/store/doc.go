// Package store provides SQLite-backed persistence for forge.
//
// The store holds four tables:
//   - tasks: the task store (create, query, update, delete, audit batch)
//   - daily_stats: one aggregate row per calendar date
//   - markers: single-value keys such as the last audit date
//   - projects: optional task grouping
//
// # Critical Patterns
//
// One stat per date:
//   - UNIQUE(date) on daily_stats plus INSERT ... ON CONFLICT(date) DO NOTHING
//   - CreateStat is idempotent; concurrent callers observe the same row
//
// Live re-check on audit writes:
//   - FailTasks re-evaluates status = 'pending' AND did_commit = 1 per row
//     inside its transaction, so a task completed after the audit read its
//     snapshot is never failed
//
// User updates cannot fail tasks:
//   - UpdateTask validates every mutation with model.CheckUserTransition
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
