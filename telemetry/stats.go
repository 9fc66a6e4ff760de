package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	RunID       string  `csv:"run_id"`
	WindowStart float64 `csv:"-"`
	WindowEnd   float64 `csv:"window_end"`
	Frames      uint64  `csv:"frames"`

	// State at window end
	Hostiles   int `csv:"hostiles"`
	Difficulty int `csv:"difficulty"`
	Health     int `csv:"health"`
	Lives      int `csv:"lives"`

	// Events during window
	Spawns        int `csv:"spawns"`
	RareSpawns    int `csv:"rare_spawns"`
	CappedSpawns  int `csv:"capped_spawns"`
	ContactsBegan int `csv:"contacts_began"`
	ContactsEnded int `csv:"contacts_ended"`
	Damage        int `csv:"damage"`
	Heals         int `csv:"heals"`
	Deaths        int `csv:"deaths"`
	Resets        int `csv:"resets"`
	Pauses        int `csv:"pauses"`

	// Size scale of hostiles spawned during the window
	ScaleMean float64 `csv:"scale_mean"`
	ScaleStd  float64 `csv:"scale_std"`
	ScaleP50  float64 `csv:"scale_p50"`
	ScaleP90  float64 `csv:"scale_p90"`
	ScaleMax  float64 `csv:"scale_max"`

	// Hostile speed distribution at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Distance from the player to the nearest hostile at window end
	NearestHostile float64 `csv:"nearest_hostile"`
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Summarize computes mean, population std, percentiles and max of values.
// The input is not modified. An empty sample yields zeros.
func Summarize(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, variance := stat.PopMeanVariance(sorted, nil)
	return Distribution{
		Mean: mean,
		Std:  math.Sqrt(math.Max(variance, 0)),
		P10:  stat.Quantile(0.10, stat.LinInterp, sorted, nil),
		P50:  stat.Quantile(0.50, stat.LinInterp, sorted, nil),
		P90:  stat.Quantile(0.90, stat.LinInterp, sorted, nil),
		Max:  sorted[len(sorted)-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("window_start", s.WindowStart),
		slog.Float64("window_end", s.WindowEnd),
		slog.Int("hostiles", s.Hostiles),
		slog.Int("difficulty", s.Difficulty),
		slog.Int("health", s.Health),
		slog.Int("lives", s.Lives),
		slog.Int("spawns", s.Spawns),
		slog.Int("rare_spawns", s.RareSpawns),
		slog.Int("capped_spawns", s.CappedSpawns),
		slog.Int("contacts_began", s.ContactsBegan),
		slog.Int("contacts_ended", s.ContactsEnded),
		slog.Int("damage", s.Damage),
		slog.Int("heals", s.Heals),
		slog.Int("deaths", s.Deaths),
		slog.Int("resets", s.Resets),
		slog.Float64("scale_mean", s.ScaleMean),
		slog.Float64("scale_p90", s.ScaleP90),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("nearest_hostile", s.NearestHostile),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
