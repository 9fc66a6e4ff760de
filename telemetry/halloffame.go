package telemetry

import (
	"encoding/json"
	"log/slog"
	"sort"
)

// HallOfFame keeps the longest lives of a run, sorted by survival time descending.
type HallOfFame struct {
	entries []LifeStats
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize lives.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]LifeStats, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider evaluates a finished life for entry.
// Returns true if the life was added to the hall.
func (hof *HallOfFame) Consider(life LifeStats) bool {
	// Find insertion point (sorted descending by survival); ties keep the earlier life first
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].SurvivalSec < life.SurvivalSec
	})

	// If hall is full and entry would be last (lowest), skip it
	if len(hof.entries) >= hof.maxSize && idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, LifeStats{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = life

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}

	if idx == 0 {
		slog.Info("hall_of_fame_record", "life", life)
	}
	return true
}

// Entries returns the hall in rank order.
func (hof *HallOfFame) Entries() []LifeStats {
	return hof.entries
}

// Best returns the longest life, if any.
func (hof *HallOfFame) Best() (LifeStats, bool) {
	if len(hof.entries) == 0 {
		return LifeStats{}, false
	}
	return hof.entries[0], true
}

// Size returns the number of lives in the hall.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// MarshalJSON serializes the hall as a ranked list.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	type rankedLife struct {
		Rank int `json:"rank"`
		LifeStats
	}
	export := make([]rankedLife, len(hof.entries))
	for i, e := range hof.entries {
		export[i] = rankedLife{Rank: i + 1, LifeStats: e}
	}
	return json.MarshalIndent(export, "", "  ")
}
