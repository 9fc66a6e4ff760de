package components

// ContactPhase distinguishes the start and the end of a contact.
type ContactPhase uint8

const (
	ContactBegan ContactPhase = iota
	ContactEnded
)

func (p ContactPhase) String() string {
	if p == ContactBegan {
		return "began"
	}
	return "ended"
}

// CollisionEvent is one contact transition reported by the physics backend.
// Only the layer configuration of each side is carried; the health model needs nothing else.
type CollisionEvent struct {
	Phase ContactPhase
	A, B  CollisionLayers
}
