package components

// MaxHealth is the player's full health and the number of heart indicators.
const MaxHealth = 5

// Player marks the single player-controlled entity.
type Player struct {
	Speed  float64 // velocity added per frame per held direction
	Health int     // 0..MaxHealth
}

// Variant selects the hostile sprite.
type Variant uint8

const (
	VariantCommon Variant = iota
	VariantRare
)

func (v Variant) String() string {
	if v == VariantRare {
		return "rare"
	}
	return "common"
}

// Hostile marks an entity that pursues the player.
// SizeScale and Variant are fixed at spawn.
type Hostile struct {
	ID        uint32
	Speed     float64 // steering impulse per frame per axis
	SizeScale float64
	Variant   Variant
}
