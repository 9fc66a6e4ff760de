// Package driver couples the game core with the bundled physics backend and
// steps them together, one frame at a time.
package driver

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/escape/config"
	"github.com/pthm-cable/escape/game"
	"github.com/pthm-cable/escape/physics"
	"github.com/pthm-cable/escape/systems"
)

// Controller produces the input for the next frame.
type Controller interface {
	Decide(g *game.Game, dt float64) game.Input
}

// Idle is a controller that never presses anything.
type Idle struct{}

// Decide implements Controller.
func (Idle) Decide(*game.Game, float64) game.Input { return game.Input{} }

// Runner owns one world with a game and its physics engine.
type Runner struct {
	Game    *game.Game
	Physics *physics.Engine

	dt    float64
	ticks int
}

// New creates a world, attaches the physics engine and builds the game in it.
// Any Physics set in opts is replaced by the engine.
func New(cfg *config.Config, opts game.Options) *Runner {
	w := ecs.NewWorld()
	engine := physics.NewEngine(w, cfg.Physics)
	opts.Physics = engine

	return &Runner{
		Game:    game.New(w, cfg, opts),
		Physics: engine,
		dt:      cfg.Physics.DT,
	}
}

// Step runs one frame: physics first, then the core with the contacts physics reported.
func (r *Runner) Step(dt float64, in game.Input) {
	perf := r.Game.Perf()
	perf.StartTick()

	perf.StartPhase(systems.SystemPhysics)
	events := r.Physics.Step(dt)
	r.Game.Advance(dt, events, in)

	perf.EndTick()
	r.ticks++
}

// Ticks returns the number of frames stepped.
func (r *Runner) Ticks() int { return r.ticks }

// RunHeadless steps at the fixed physics dt with inputs from ctrl until maxTicks
// frames have run (0 means no limit) or stop returns true. stop may be nil.
func (r *Runner) RunHeadless(maxTicks int, ctrl Controller, stop func(r *Runner) bool) {
	if ctrl == nil {
		ctrl = Idle{}
	}
	for maxTicks <= 0 || r.ticks < maxTicks {
		r.Step(r.dt, ctrl.Decide(r.Game, r.dt))
		if stop != nil && stop(r) {
			return
		}
	}
}

// Close flushes the game's output.
func (r *Runner) Close() error {
	return r.Game.Close()
}
