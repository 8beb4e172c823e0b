package testutil

import (
	"slices"
	"sync"
	"time"

	"github.com/roach88/forge/internal/clock"
)

// FakeClock is a manually driven clock.Clock for tests.
//
// Time only moves through Set and Advance. Timers registered with AfterFunc
// fire synchronously, in due order, on the goroutine that moves time past
// their deadline. This lets debounce and date-boundary behavior be asserted
// without sleeping.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
// Callbacks run without the mutex held, so they may register new timers.
type FakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int64
	timers []*fakeTimer
}

type fakeTimer struct {
	clock *FakeClock
	at    time.Time
	seq   int64
	f     func()
	done  bool
}

// NewFakeClock creates a fake clock set to start.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{now: start}
}

// Now returns the fake current time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// AfterFunc registers f to run once the clock has advanced by d.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) clock.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{clock: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

// Advance moves the clock forward by d and fires every timer now due.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
	c.fireDue()
}

// Set moves the clock to t and fires every timer now due.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
	c.fireDue()
}

// Pending returns the number of timers that have not fired or been stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

// fireDue runs due timers until none remain, including timers that
// callbacks register with a deadline already reached.
func (c *FakeClock) fireDue() {
	for {
		c.mu.Lock()
		var due *fakeTimer
		for _, t := range c.timers {
			if t.at.After(c.now) {
				continue
			}
			if due == nil || t.at.Before(due.at) || (t.at.Equal(due.at) && t.seq < due.seq) {
				due = t
			}
		}
		if due == nil {
			c.mu.Unlock()
			return
		}
		due.done = true
		c.removeLocked(due)
		c.mu.Unlock()

		due.f()
	}
}

func (c *FakeClock) removeLocked(t *fakeTimer) {
	c.timers = slices.DeleteFunc(c.timers, func(x *fakeTimer) bool { return x == t })
}

// Stop cancels the timer. Returns false if it already fired or was stopped.
func (t *fakeTimer) Stop() bool {
	c := t.clock
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	c.removeLocked(t)
	return true
}
