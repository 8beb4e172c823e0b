package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/forge/internal/testutil"
)

func TestDebouncer_DeliversLast(t *testing.T) {
	clk := testutil.NewFakeClock(testEpoch)
	var mu sync.Mutex
	var got []int
	d := newDebouncer(clk, time.Second, func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
	})

	d.Schedule(1)
	d.Schedule(2)
	d.Schedule(3)
	assert.Equal(t, 1, clk.Pending(), "earlier timers stopped")

	clk.Advance(time.Second)
	assert.Equal(t, []int{3}, got)
	assert.False(t, d.Pending())
}

func TestDebouncer_RescheduleResetsWindow(t *testing.T) {
	clk := testutil.NewFakeClock(testEpoch)
	var got []int
	d := newDebouncer(clk, time.Second, func(v int) { got = append(got, v) })

	d.Schedule(1)
	clk.Advance(900 * time.Millisecond)
	d.Schedule(2)
	clk.Advance(900 * time.Millisecond)
	assert.Empty(t, got)

	clk.Advance(100 * time.Millisecond)
	assert.Equal(t, []int{2}, got)
}

func TestDebouncer_Take(t *testing.T) {
	clk := testutil.NewFakeClock(testEpoch)
	calls := 0
	d := newDebouncer(clk, time.Second, func(int) { calls++ })

	_, ok := d.Take()
	assert.False(t, ok)

	d.Schedule(7)
	v, ok := d.Take()
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	clk.Advance(time.Second)
	assert.Equal(t, 0, calls)
}
