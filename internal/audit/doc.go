// Package audit implements the once-per-day reconciliation pass.
//
// On the first review of a calendar day the engine ensures today's
// DailyStat exists, then fails every committed task that is still pending
// and was created on an earlier day. A persisted marker holding the date of
// the last successful run makes the review idempotent per day.
//
// State machine (per calendar day):
//
//	not-run --PerformReviewIfNeeded ok--> run
//	not-run --PerformReviewIfNeeded err--> not-run (marker untouched, retried next time)
//	run     --PerformReviewIfNeeded-->     run (no-op)
package audit
