package telemetry

// WindowSample is the state sampled at the end of a window.
type WindowSample struct {
	Frames         uint64
	Hostiles       int
	Difficulty     int
	Health         int
	Lives          int
	Speeds         []float64 // hostile speeds
	NearestHostile float64
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64
	windowStart       float64
	runID             string

	// Event counters for current window
	spawns        int
	rareSpawns    int
	cappedSpawns  int
	contactsBegan int
	contactsEnded int
	damage        int
	heals         int
	deaths        int
	resets        int
	pauses        int
	scales        []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// SetRunID stamps subsequent windows with a run identifier.
func (c *Collector) SetRunID(id string) { c.runID = id }

// Record counts one event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventSpawn:
		c.spawns++
		if ev.Rare {
			c.rareSpawns++
		}
		c.scales = append(c.scales, ev.Scale)
	case EventCapped:
		c.cappedSpawns++
	case EventContactBegan:
		c.contactsBegan++
	case EventContactEnded:
		c.contactsEnded++
	case EventDamage:
		c.damage += ev.Amount
	case EventHeal:
		c.heals += ev.Amount
	case EventDeath:
		c.deaths++
	case EventReset:
		c.resets++
	case EventPause:
		c.pauses++
	}
}

// ShouldFlush returns true if enough simulated time has passed to flush the window.
func (c *Collector) ShouldFlush(now float64) bool {
	return now-c.windowStart >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(now float64, sample WindowSample) WindowStats {
	scale := Summarize(c.scales)
	speed := Summarize(sample.Speeds)

	stats := WindowStats{
		RunID:       c.runID,
		WindowStart: c.windowStart,
		WindowEnd:   now,
		Frames:      sample.Frames,

		Hostiles:   sample.Hostiles,
		Difficulty: sample.Difficulty,
		Health:     sample.Health,
		Lives:      sample.Lives,

		Spawns:        c.spawns,
		RareSpawns:    c.rareSpawns,
		CappedSpawns:  c.cappedSpawns,
		ContactsBegan: c.contactsBegan,
		ContactsEnded: c.contactsEnded,
		Damage:        c.damage,
		Heals:         c.heals,
		Deaths:        c.deaths,
		Resets:        c.resets,
		Pauses:        c.pauses,

		ScaleMean: scale.Mean,
		ScaleStd:  scale.Std,
		ScaleP50:  scale.P50,
		ScaleP90:  scale.P90,
		ScaleMax:  scale.Max,

		SpeedMean: speed.Mean,
		SpeedP90:  speed.P90,

		NearestHostile: sample.NearestHostile,
	}

	// Reset for next window
	c.windowStart = now
	c.spawns = 0
	c.rareSpawns = 0
	c.cappedSpawns = 0
	c.contactsBegan = 0
	c.contactsEnded = 0
	c.damage = 0
	c.heals = 0
	c.deaths = 0
	c.resets = 0
	c.pauses = 0
	c.scales = c.scales[:0]

	return stats
}

// WindowDuration returns the window length in seconds.
func (c *Collector) WindowDuration() float64 {
	return c.windowDurationSec
}
