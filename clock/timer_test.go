package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerFiresOncePerInterval(t *testing.T) {
	timer := NewTimer(0.5)

	fired := 0
	for i := 0; i < 70; i++ {
		timer.Tick(1.0 / 60)
		if timer.JustFinished() {
			fired++
		}
	}

	// 70 frames at 60 Hz cross two half-second intervals
	assert.Equal(t, 2, fired)
}

func TestTimerWrapsAccumulator(t *testing.T) {
	timer := NewTimer(0.5)

	timer.Tick(0.7)
	assert.True(t, timer.JustFinished())
	assert.InDelta(t, 0.2, timer.Elapsed(), 1e-9)

	timer.Tick(0.1)
	assert.False(t, timer.JustFinished())
	assert.InDelta(t, 0.3, timer.Elapsed(), 1e-9)
}

func TestTimerMultipleIntervalsInOneTick(t *testing.T) {
	timer := NewTimer(0.5)
	timer.Tick(1.6)

	assert.True(t, timer.JustFinished())
	assert.Equal(t, 3, timer.TimesFinished())
	assert.InDelta(t, 0.1, timer.Elapsed(), 1e-9)
}

func TestTimerPauseKeepsProgress(t *testing.T) {
	timer := NewTimer(0.5)
	timer.Tick(0.4)

	timer.Pause()
	timer.Tick(10)
	assert.False(t, timer.JustFinished())
	assert.True(t, timer.Paused())
	assert.InDelta(t, 0.4, timer.Elapsed(), 1e-9)

	timer.Resume()
	timer.Tick(0.1)
	assert.True(t, timer.JustFinished())
}

func TestTimerPausedTickClearsFinish(t *testing.T) {
	timer := NewTimer(0.5)
	timer.Tick(0.5)
	assert.True(t, timer.JustFinished())

	timer.Pause()
	timer.Tick(0.1)
	assert.False(t, timer.JustFinished())
}

func TestTimerReset(t *testing.T) {
	timer := NewTimer(0.5)
	timer.Tick(0.3)
	timer.Pause()
	timer.Reset()

	assert.Zero(t, timer.Elapsed())
	assert.True(t, timer.Paused(), "reset leaves the paused flag alone")
	assert.InDelta(t, 0.5, timer.Remaining(), 1e-9)
}

func TestTimerIgnoresBadInput(t *testing.T) {
	tests := []struct {
		name     string
		interval float64
		dt       float64
	}{
		{"zero interval", 0, 1},
		{"negative interval", -1, 1},
		{"negative delta", 0.5, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			timer := NewTimer(tc.interval)
			timer.Tick(tc.dt)
			assert.False(t, timer.JustFinished())
			assert.Zero(t, timer.Elapsed())
		})
	}
}

func TestClockAdvance(t *testing.T) {
	var c Clock
	c.Advance(0.25)
	c.Advance(-1)
	c.Advance(0.5)

	assert.Equal(t, uint64(3), c.Frame())
	assert.InDelta(t, 0.75, c.Elapsed(), 1e-9)
	assert.InDelta(t, 0.5, c.Delta(), 1e-9)
}
