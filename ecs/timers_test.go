package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimersFireInDueOrder(t *testing.T) {
	timers := NewTimers()
	var fired []string

	timers.ScheduleOnce("late", 0.3, func() { fired = append(fired, "late") })
	timers.ScheduleOnce("early", 0.1, func() { fired = append(fired, "early") })
	timers.ScheduleOnce("tie", 0.1, func() { fired = append(fired, "tie") })
	require.Equal(t, 3, timers.Len())

	timers.Advance(0.05)
	assert.Empty(t, fired)

	timers.Advance(0.3)
	assert.Equal(t, []string{"early", "tie", "late"}, fired)
	assert.Zero(t, timers.Len())
	assert.InDelta(t, 0.35, timers.Now(), 1e-12)
}

func TestTimersRescheduleRestarts(t *testing.T) {
	timers := NewTimers()
	count := 0

	timers.ScheduleOnce("combo", 1, func() { count++ })
	timers.Advance(0.8)
	timers.ScheduleOnce("combo", 1, func() { count++ })

	remaining, ok := timers.Pending("combo")
	require.True(t, ok)
	assert.InDelta(t, 1.0, remaining, 1e-12)

	timers.Advance(0.5)
	assert.Zero(t, count, "first schedule was replaced")

	timers.Advance(0.5)
	assert.Equal(t, 1, count)

	_, ok = timers.Pending("combo")
	assert.False(t, ok)
}

func TestTimersCancel(t *testing.T) {
	timers := NewTimers()
	fired := false
	timers.ScheduleOnce("slot/crate", 3, func() { fired = true })
	timers.Cancel("slot/crate")
	timers.Cancel("missing")

	timers.Advance(5)
	assert.False(t, fired)
}

func TestTimersCallbackMayCancelAnother(t *testing.T) {
	timers := NewTimers()
	var fired []string

	timers.ScheduleOnce("a", 0.1, func() {
		fired = append(fired, "a")
		timers.Cancel("b")
		timers.ScheduleOnce("c", 0, func() { fired = append(fired, "c") })
	})
	timers.ScheduleOnce("b", 0.2, func() { fired = append(fired, "b") })

	timers.Advance(0.5)
	assert.Equal(t, []string{"a"}, fired, "timers scheduled by a callback wait for the next advance")

	timers.Advance(0)
	assert.Equal(t, []string{"a", "c"}, fired)
}

func TestTimersFrameDrift(t *testing.T) {
	timers := NewTimers()
	fired := false
	timers.ScheduleOnce("second", 1, func() { fired = true })

	for i := 0; i < 60; i++ {
		timers.Advance(1.0 / 60)
	}
	assert.True(t, fired, "sixty frame deltas reach one second")
}

func TestTimerSystemUsesFrameDelta(t *testing.T) {
	w := NewWorld()
	timers := NewTimers()
	fired := false
	timers.ScheduleOnce("t", 0.5, func() { fired = true })

	s := NewScheduler(NewTimerSystem(timers))
	s.Update(w, 0.25)
	assert.False(t, fired)
	s.Update(w, 0.25)
	assert.True(t, fired)

	timers.ScheduleOnce("negative", -1, func() {})
	remaining, ok := timers.Pending("negative")
	require.True(t, ok)
	assert.Zero(t, remaining)
}
