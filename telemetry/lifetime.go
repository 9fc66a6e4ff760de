package telemetry

import "log/slog"

// LifeStats tracks statistics for one life of the player, from start or reset to death.
type LifeStats struct {
	RunID         string  `csv:"run_id" json:"run_id"`
	Life          int     `csv:"life" json:"life"`
	StartSec      float64 `csv:"start" json:"start"`
	SurvivalSec   float64 `csv:"survival" json:"survival"`
	PeakHostiles  int     `csv:"peak_hostiles" json:"peak_hostiles"`
	Damage        int     `csv:"damage" json:"damage"`
	Heals         int     `csv:"heals" json:"heals"`
	MaxDifficulty int     `csv:"max_difficulty" json:"max_difficulty"`
	RareSeen      int     `csv:"rare_seen" json:"rare_seen"`
	CloseCalls    int     `csv:"close_calls" json:"close_calls"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s LifeStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("life", s.Life),
		slog.Float64("survival", s.SurvivalSec),
		slog.Int("peak_hostiles", s.PeakHostiles),
		slog.Int("damage", s.Damage),
		slog.Int("heals", s.Heals),
		slog.Int("max_difficulty", s.MaxDifficulty),
		slog.Int("rare_seen", s.RareSeen),
	)
}

// LifeTracker accumulates statistics for the current life and archives finished ones.
type LifeTracker struct {
	runID   string
	current LifeStats
	alive   bool
	done    []LifeStats
}

// NewLifeTracker creates a tracker with the first life starting at start.
func NewLifeTracker(start float64) *LifeTracker {
	lt := &LifeTracker{}
	lt.Begin(start)
	return lt
}

// SetRunID stamps subsequent lives with a run identifier.
func (lt *LifeTracker) SetRunID(id string) {
	lt.runID = id
	lt.current.RunID = id
}

// Begin starts a new life. Any life in progress is discarded.
func (lt *LifeTracker) Begin(now float64) {
	lt.current = LifeStats{
		RunID:    lt.runID,
		Life:     len(lt.done) + 1,
		StartSec: now,
	}
	lt.alive = true
}

// Alive reports whether a life is in progress.
func (lt *LifeTracker) Alive() bool { return lt.alive }

// Current returns the life in progress with survival measured up to now.
func (lt *LifeTracker) Current(now float64) LifeStats {
	s := lt.current
	if lt.alive {
		s.SurvivalSec = now - s.StartSec
	}
	return s
}

// Observe records per-frame state of the current life.
func (lt *LifeTracker) Observe(hostiles, difficulty int) {
	if !lt.alive {
		return
	}
	lt.current.PeakHostiles = max(lt.current.PeakHostiles, hostiles)
	lt.current.MaxDifficulty = max(lt.current.MaxDifficulty, difficulty)
}

// Record applies an event to the current life.
func (lt *LifeTracker) Record(ev Event) {
	if !lt.alive {
		return
	}
	switch ev.Type {
	case EventDamage:
		lt.current.Damage += ev.Amount
	case EventHeal:
		lt.current.Heals += ev.Amount
	case EventSpawn:
		if ev.Rare {
			lt.current.RareSeen++
		}
	}
}

// RecordCloseCall counts a recovery from one health point.
func (lt *LifeTracker) RecordCloseCall() {
	if lt.alive {
		lt.current.CloseCalls++
	}
}

// End finishes the current life at now and archives it.
// Returns false if no life was in progress.
func (lt *LifeTracker) End(now float64) (LifeStats, bool) {
	if !lt.alive {
		return LifeStats{}, false
	}
	s := lt.Current(now)
	lt.current = s
	lt.done = append(lt.done, s)
	lt.alive = false
	return s, true
}

// Completed returns all finished lives in order.
func (lt *LifeTracker) Completed() []LifeStats {
	return lt.done
}

// Count returns the number of lives started so far.
func (lt *LifeTracker) Count() int {
	if lt.alive {
		return len(lt.done) + 1
	}
	return len(lt.done)
}

// MeanSurvival returns the mean survival time of finished lives.
func (lt *LifeTracker) MeanSurvival() float64 {
	if len(lt.done) == 0 {
		return 0
	}
	var sum float64
	for _, s := range lt.done {
		sum += s.SurvivalSec
	}
	return sum / float64(len(lt.done))
}
