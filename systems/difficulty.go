package systems

import "github.com/pthm-cable/escape/clock"

// MaxDifficultyLevel is the saturation point of the difficulty scalar.
const MaxDifficultyLevel = 100

// Difficulty is a monotonically increasing scalar that widens hostile size variance.
type Difficulty struct {
	Level int
}

// Increment raises the level by one, saturating at MaxDifficultyLevel.
// Returns true if the level changed.
func (d *Difficulty) Increment() bool {
	if d.Level >= MaxDifficultyLevel {
		d.Level = MaxDifficultyLevel
		return false
	}
	d.Level++
	return true
}

// AtMax reports whether the level has saturated.
func (d *Difficulty) AtMax() bool { return d.Level >= MaxDifficultyLevel }

// Reset returns the level to zero.
func (d *Difficulty) Reset() { d.Level = 0 }

// Progress returns the level as a fraction of MaxDifficultyLevel.
func (d *Difficulty) Progress() float64 {
	return clampFloat(float64(d.Level)/MaxDifficultyLevel, 0, 1)
}

// DifficultySystem raises the difficulty on its own repeating timer.
type DifficultySystem struct {
	Difficulty *Difficulty
	Timer      *clock.Timer
}

// NewDifficultySystem creates a system that increments once per interval seconds.
func NewDifficultySystem(interval float64) *DifficultySystem {
	return &DifficultySystem{
		Difficulty: &Difficulty{},
		Timer:      clock.NewTimer(interval),
	}
}

// Update ticks the timer and increments once per crossed interval.
// Returns the number of increments applied.
func (s *DifficultySystem) Update(dt float64) int {
	s.Timer.Tick(dt)
	applied := 0
	for i := 0; i < s.Timer.TimesFinished(); i++ {
		if s.Difficulty.Increment() {
			applied++
		}
	}
	return applied
}

// Reset zeroes the level and restarts the timer.
func (s *DifficultySystem) Reset() {
	s.Difficulty.Reset()
	s.Timer.Reset()
	s.Timer.Resume()
}

// Level returns the current level.
func (s *DifficultySystem) Level() int { return s.Difficulty.Level }
