// Package harness plays scripted multi-day scenarios against the full core.
//
// Each scenario runs on a fresh in-memory store driven by a fake clock, so
// date rollovers, audit reviews and debounced score syncs happen exactly
// where the script moves time. The resulting trace is deterministic and
// can be compared against golden files.
//
// # Scenario format
//
// Scenarios are YAML documents with a start time, an optional timezone, a
// list of steps and a list of assertions:
//
//	name: broken_commitment
//	start: 2026-06-10T09:00:00Z
//	steps:
//	  - action: add_task
//	    ref: run
//	    title: Run 5k
//	  - action: commit
//	    ref: run
//	  - action: advance
//	    duration: 24h
//	  - action: review
//	assertions:
//	  - type: task_status
//	    ref: run
//	    status: failed
//
// Steps refer to tasks by the ref given in add_task, never by id. The
// advance step fires any debounced score sync whose deadline it passes,
// after the clock has moved.
package harness
