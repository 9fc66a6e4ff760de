package game

import (
	"github.com/pthm-cable/escape/components"
	"github.com/pthm-cable/escape/systems"
)

// EntityView is the read-only transform and shape of an entity.
type EntityView struct {
	X, Y       float64
	VelX, VelY float64
	Radius     float64
}

// HostileView is what a renderer needs to draw one hostile.
type HostileView struct {
	EntityView
	ID      uint32
	Scale   float64
	Variant components.Variant
}

// View is a snapshot of everything the HUD displays.
type View struct {
	State        State
	Health       int
	Hearts       [components.MaxHealth]bool
	HostileCount int
	MaxHostiles  int
	Difficulty   int
	Message      string
	SubMessage   string
	Player       EntityView

	Elapsed          float64 // total simulated seconds
	LifeSeconds      float64 // survival time of the current or last life
	SpawnTimerPaused bool
}

// View returns the current observable state.
func (g *Game) View() View {
	pos, vel, body, _, player := g.playerMapper.Get(g.player)

	return View{
		State:        g.state,
		Health:       player.Health,
		Hearts:       systems.Hearts(player.Health),
		HostileCount: g.population.Current,
		MaxHostiles:  g.population.Max,
		Difficulty:   g.difficulty.Level(),
		Message:      g.message,
		SubMessage:   g.subMessage,
		Player: EntityView{
			X: pos.X, Y: pos.Y,
			VelX: vel.X, VelY: vel.Y,
			Radius: body.Radius,
		},
		Elapsed:          g.clock.Elapsed(),
		LifeSeconds:      g.lives.Current(g.clock.Elapsed()).SurvivalSec,
		SpawnTimerPaused: g.spawner.Timer.Paused(),
	}
}

// EachHostile calls fn for every live hostile.
func (g *Game) EachHostile(fn func(HostileView)) {
	query := g.hostileFilter.Query()
	for query.Next() {
		pos, vel, body, h := query.Get()
		fn(HostileView{
			EntityView: EntityView{
				X: pos.X, Y: pos.Y,
				VelX: vel.X, VelY: vel.Y,
				Radius: body.Radius,
			},
			ID:      h.ID,
			Scale:   h.SizeScale,
			Variant: h.Variant,
		})
	}
}
