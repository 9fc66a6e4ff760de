// Package clock provides the frame clock and the pausable repeating timers
// that gate spawning and difficulty escalation.
package clock

// Timer is a repeating timer with an independent paused flag.
// The accumulator wraps on every interval crossing, so progress carries over.
type Timer struct {
	interval float64
	elapsed  float64
	paused   bool

	finished int // intervals crossed by the most recent Tick
}

// NewTimer creates a running repeating timer. Non-positive intervals never fire.
func NewTimer(interval float64) *Timer {
	return &Timer{interval: interval}
}

// Tick advances the timer by dt seconds. A paused timer keeps its progress
// and reports no finish for this tick.
func (t *Timer) Tick(dt float64) {
	t.finished = 0
	if t.paused || dt <= 0 || t.interval <= 0 {
		return
	}
	t.elapsed += dt
	for t.elapsed >= t.interval {
		t.elapsed -= t.interval
		t.finished++
	}
}

// JustFinished reports whether the last Tick crossed at least one interval.
func (t *Timer) JustFinished() bool { return t.finished > 0 }

// TimesFinished returns how many intervals the last Tick crossed.
func (t *Timer) TimesFinished() int { return t.finished }

// Pause stops accumulation without discarding progress.
func (t *Timer) Pause() { t.paused = true }

// Resume restarts accumulation.
func (t *Timer) Resume() { t.paused = false }

// Paused reports the paused flag.
func (t *Timer) Paused() bool { return t.paused }

// Reset zeroes progress. The paused flag is untouched.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.finished = 0
}

// Interval returns the configured interval in seconds.
func (t *Timer) Interval() float64 { return t.interval }

// Elapsed returns progress into the current interval.
func (t *Timer) Elapsed() float64 { return t.elapsed }

// Remaining returns the seconds until the next finish.
func (t *Timer) Remaining() float64 { return t.interval - t.elapsed }
