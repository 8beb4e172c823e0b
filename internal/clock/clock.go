// Package clock abstracts wall time so date-boundary behavior and debounce
// timers can be driven deterministically in tests.
package clock

import (
	"time"

	"github.com/roach88/forge/internal/model"
)

// Clock is a source of "now" and of cancelable timers.
//
// Implemented by System (production) and testutil.FakeClock (tests).
type Clock interface {
	// Now returns the current time in the clock's location.
	Now() time.Time

	// AfterFunc calls f once d has elapsed. The returned Timer cancels it.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc call.
type Timer interface {
	// Stop prevents the call from firing. It returns false if the call
	// already fired or was already stopped.
	Stop() bool
}

// Today returns the current date key of c.
func Today(c Clock) string {
	return model.DateKey(c.Now())
}

// System is the wall clock observed in a fixed location.
//
// Thread-safety: System is immutable and safe for concurrent use.
type System struct {
	loc *time.Location
}

// NewSystem creates a wall clock that reports time in loc.
// A nil loc means UTC.
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.UTC
	}
	return &System{loc: loc}
}

// Now returns time.Now in the clock's location.
func (s *System) Now() time.Time {
	return time.Now().In(s.loc)
}

// Location returns the clock's location.
func (s *System) Location() *time.Location {
	return s.loc
}

// AfterFunc wraps time.AfterFunc.
func (s *System) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
