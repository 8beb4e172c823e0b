package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_NowUsesLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	c := NewSystem(tokyo)
	assert.Equal(t, tokyo, c.Now().Location())
	assert.Equal(t, tokyo, c.Location())
}

func TestSystem_NilLocationIsUTC(t *testing.T) {
	c := NewSystem(nil)
	assert.Equal(t, time.UTC, c.Now().Location())
	assert.Len(t, Today(c), len("2006-01-02"))
}

func TestSystem_AfterFuncCanBeStopped(t *testing.T) {
	c := NewSystem(nil)
	fired := make(chan struct{}, 1)

	timer := c.AfterFunc(time.Hour, func() { fired <- struct{}{} })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	select {
	case <-fired:
		t.Fatal("stopped timer fired")
	default:
	}
}

func TestSystem_AfterFuncFires(t *testing.T) {
	c := NewSystem(nil)
	fired := make(chan struct{})

	c.AfterFunc(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("timer did not fire")
	}
}
