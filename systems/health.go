package systems

import "github.com/pthm-cable/escape/components"

// ClassifyContact reports whether an event is between the player and a hostile.
// Each side must belong to exactly one of the two groups; order does not matter.
func ClassifyContact(a, b components.CollisionLayers) bool {
	return (a.IsPlayer() && b.IsHostile()) || (a.IsHostile() && b.IsPlayer())
}

// HealthResult summarizes one batch of collision events.
type HealthResult struct {
	Relevant int  // player-hostile events applied
	Ignored  int  // events that were not player-hostile contacts or came after death
	Damage   int  // health actually lost
	Heals    int  // health actually regained
	Died     bool // health reached zero during this batch
}

// HealthSystem applies collision events to player health.
// Contact begin costs one point and contact end restores one, both clamped to [0, MaxHealth].
type HealthSystem struct{}

// NewHealthSystem creates a health system.
func NewHealthSystem() *HealthSystem {
	return &HealthSystem{}
}

// Apply processes events in order against health. Once health reaches zero the
// remaining events of the batch are ignored.
func (s *HealthSystem) Apply(health *int, events []components.CollisionEvent) HealthResult {
	var res HealthResult
	for _, ev := range events {
		if res.Died || *health <= 0 || !ClassifyContact(ev.A, ev.B) {
			res.Ignored++
			continue
		}
		res.Relevant++

		before := *health
		switch ev.Phase {
		case components.ContactBegan:
			*health = clampInt(before-1, 0, components.MaxHealth)
			res.Damage += before - *health
		case components.ContactEnded:
			*health = clampInt(before+1, 0, components.MaxHealth)
			res.Heals += *health - before
		}

		if *health == 0 {
			res.Died = true
		}
	}
	return res
}

// Hearts returns the indicator states: slot i is full iff i < health.
func Hearts(health int) [components.MaxHealth]bool {
	var hearts [components.MaxHealth]bool
	for i := range hearts {
		hearts[i] = i < health
	}
	return hearts
}
