// Package telemetry provides run statistics, per-life records, bookmarks and CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventSpawn EventType = iota
	EventContactBegan
	EventContactEnded
	EventDamage
	EventHeal
	EventDeath
	EventReset
	EventPause
	EventResume
	EventCapped // spawn refused at the population cap
)

var eventNames = [...]string{
	EventSpawn:        "spawn",
	EventContactBegan: "contact_began",
	EventContactEnded: "contact_ended",
	EventDamage:       "damage",
	EventHeal:         "heal",
	EventDeath:        "death",
	EventReset:        "reset",
	EventPause:        "pause",
	EventResume:       "resume",
	EventCapped:       "capped",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event represents a single telemetry event.
type Event struct {
	Type EventType
	Time float64 // simulation seconds

	// Optional fields depending on event type
	Amount int     // health points for damage/heal
	Scale  float64 // size scale for spawns
	Rare   bool    // rare variant for spawns
}

// NewSpawnEvent creates a spawn event.
func NewSpawnEvent(t, scale float64, rare bool) Event {
	return Event{Type: EventSpawn, Time: t, Scale: scale, Rare: rare}
}

// NewHealthEvent creates a damage or heal event for a non-zero delta.
func NewHealthEvent(t float64, delta int) Event {
	if delta < 0 {
		return Event{Type: EventDamage, Time: t, Amount: -delta}
	}
	return Event{Type: EventHeal, Time: t, Amount: delta}
}
