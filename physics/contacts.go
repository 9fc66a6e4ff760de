package physics

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/escape/components"
)

type pairKey struct {
	a, b ecs.Entity
}

type contact struct {
	key    pairKey
	la, lb components.CollisionLayers
	ia, ib int // body indices for the current step
}

// contactTracker diffs the touching pairs of consecutive steps.
// Both lists keep detection order so event order is stable.
type contactTracker struct {
	active []contact
	next   []contact
	seen   map[pairKey]int // index into next
	events []components.CollisionEvent
}

func newContactTracker() *contactTracker {
	return &contactTracker{seen: make(map[pairKey]int)}
}

func (t *contactTracker) len() int { return len(t.active) }

// observe records a touching pair for the current step.
func (t *contactTracker) observe(a, b ecs.Entity, la, lb components.CollisionLayers, ia, ib int) {
	key := pairKey{a, b}
	if _, ok := t.seen[key]; ok {
		return
	}
	if _, ok := t.seen[pairKey{b, a}]; ok {
		return
	}
	t.seen[key] = len(t.next)
	t.next = append(t.next, contact{key: key, la: la, lb: lb, ia: ia, ib: ib})
}

// commit emits ended events for pairs that stopped touching and began events for new pairs,
// then makes the current step's pairs the active set. Pairs with a despawned side vanish silently.
func (t *contactTracker) commit(w *ecs.World) []components.CollisionEvent {
	t.events = t.events[:0]

	for _, c := range t.active {
		if t.found(c.key) {
			continue
		}
		if !w.Alive(c.key.a) || !w.Alive(c.key.b) {
			continue
		}
		t.events = append(t.events, components.CollisionEvent{Phase: components.ContactEnded, A: c.la, B: c.lb})
	}

	prev := make(map[pairKey]struct{}, len(t.active))
	for _, c := range t.active {
		prev[c.key] = struct{}{}
	}
	for _, c := range t.next {
		_, ok := prev[c.key]
		if !ok {
			_, ok = prev[pairKey{c.key.b, c.key.a}]
		}
		if !ok {
			t.events = append(t.events, components.CollisionEvent{Phase: components.ContactBegan, A: c.la, B: c.lb})
		}
	}

	t.active, t.next = t.next, t.active[:0]
	clear(t.seen)

	out := make([]components.CollisionEvent, len(t.events))
	copy(out, t.events)
	return out
}

func (t *contactTracker) found(k pairKey) bool {
	if _, ok := t.seen[k]; ok {
		return true
	}
	_, ok := t.seen[pairKey{k.b, k.a}]
	return ok
}
