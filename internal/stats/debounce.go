package stats

import (
	"sync"
	"time"

	"github.com/roach88/forge/internal/clock"
)

// debouncer coalesces rapid values into one call of fn with the latest value.
//
// Each Schedule cancels the pending timer and starts a new one. The
// generation counter guards against a timer that fired concurrently with a
// reschedule: only the newest generation may deliver.
type debouncer struct {
	mu      sync.Mutex
	clock   clock.Clock
	delay   time.Duration
	fn      func(int)
	timer   clock.Timer
	gen     uint64
	value   int
	pending bool
}

func newDebouncer(c clock.Clock, delay time.Duration, fn func(int)) *debouncer {
	return &debouncer{clock: c, delay: delay, fn: fn}
}

// Schedule replaces any pending value with v and restarts the delay.
func (d *debouncer) Schedule(v int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.value = v
	d.pending = true
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.fn(v)
}

// Take cancels the pending timer and returns its value, if any.
func (d *debouncer) Take() (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	v, ok := d.value, d.pending
	d.pending = false
	return v, ok
}

// Pending reports whether a value is waiting for its timer.
func (d *debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}
