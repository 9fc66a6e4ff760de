package components

import "strings"

// Layer is a single collision group.
type Layer uint8

const (
	LayerWorld Layer = iota
	LayerPlayer
	LayerHostile
)

// String returns the display name for a Layer.
func (l Layer) String() string {
	switch l {
	case LayerWorld:
		return "world"
	case LayerPlayer:
		return "player"
	case LayerHostile:
		return "hostile"
	}
	return "unknown"
}

// LayerSet is a bitmask of layers.
type LayerSet uint32

// AllLayers contains every group. It is the value of unconfigured collision layers.
const AllLayers LayerSet = ^LayerSet(0)

// Layers builds a set from individual layers.
func Layers(ls ...Layer) LayerSet {
	var s LayerSet
	for _, l := range ls {
		s |= 1 << l
	}
	return s
}

// Has reports whether l is in the set.
func (s LayerSet) Has(l Layer) bool {
	return s&(1<<l) != 0
}

func (s LayerSet) String() string {
	if s == AllLayers {
		return "all"
	}
	var names []string
	for _, l := range []Layer{LayerWorld, LayerPlayer, LayerHostile} {
		if s.Has(l) {
			names = append(names, l.String())
		}
	}
	return strings.Join(names, "|")
}

// CollisionLayers holds the groups an entity belongs to and the groups it can collide with.
type CollisionLayers struct {
	Groups LayerSet
	Mask   LayerSet
}

// DefaultLayers is what an entity without an explicit configuration carries.
var DefaultLayers = CollisionLayers{Groups: AllLayers, Mask: AllLayers}

// PlayerLayers is the player's configuration: in the player group, colliding with hostiles.
var PlayerLayers = CollisionLayers{
	Groups: Layers(LayerPlayer),
	Mask:   Layers(LayerHostile),
}

// HostileLayers puts hostiles in the hostile group, colliding with the player and each other.
var HostileLayers = CollisionLayers{
	Groups: Layers(LayerHostile),
	Mask:   Layers(LayerPlayer, LayerHostile),
}

// Interacts reports whether two layer configurations generate contacts.
func (c CollisionLayers) Interacts(o CollisionLayers) bool {
	return c.Groups&o.Mask != 0 && o.Groups&c.Mask != 0
}

// IsPlayer reports whether c belongs to the player group and not the hostile group.
func (c CollisionLayers) IsPlayer() bool {
	return c.Groups.Has(LayerPlayer) && !c.Groups.Has(LayerHostile)
}

// IsHostile reports whether c belongs to the hostile group and not the player group.
func (c CollisionLayers) IsHostile() bool {
	return c.Groups.Has(LayerHostile) && !c.Groups.Has(LayerPlayer)
}
