// Package stats manages the one-per-date DailyStat aggregate.
//
// A Manager owns today's record: it creates it lazily, persists the live
// score through a debounced sync, accumulates focus minutes, and reads
// recent history.
//
// Debounced sync: SyncScore may be called on every score recomputation.
// Calls arriving within the debounce window collapse into one write of the
// last value, and the write is skipped entirely when the stored score
// already matches. The pending value lives in memory only; it is lost if
// the process exits before the timer fires unless Flush is called.
package stats
