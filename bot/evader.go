// Package bot provides a scripted player for headless runs and tuning.
package bot

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/escape/config"
	"github.com/pthm-cable/escape/game"
)

// deadzone is the minimum flee component that presses a key.
const deadzone = 0.2

// Evader flees the hostiles near the player and restarts after dying.
type Evader struct {
	cfg     config.BotConfig
	deadFor float64
}

// NewEvader creates an evader with the given parameters.
func NewEvader(cfg config.BotConfig) *Evader {
	return &Evader{cfg: cfg}
}

// Decide returns the input for the next frame.
func (e *Evader) Decide(g *game.Game, dt float64) game.Input {
	v := g.View()

	switch v.State {
	case game.StateDead:
		if !e.cfg.AutoRestart {
			return game.Input{}
		}
		e.deadFor += dt
		if e.deadFor >= e.cfg.RestartDelay {
			e.deadFor = 0
			return game.Input{Reset: true}
		}
		return game.Input{}
	case game.StatePaused:
		return game.Input{}
	}
	e.deadFor = 0

	player := r2.Vec{X: v.Player.X, Y: v.Player.Y}
	var threats []r2.Vec
	g.EachHostile(func(h game.HostileView) {
		threats = append(threats, r2.Vec{X: h.X, Y: h.Y})
	})

	return Steer(FleeDirection(player, threats, e.cfg.FleeRadius))
}

// FleeDirection returns the unit direction away from the inverse-distance weighted
// centroid of threats within radius. Zero when nothing is in range.
func FleeDirection(player r2.Vec, threats []r2.Vec, radius float64) r2.Vec {
	radiusSq := radius * radius

	var away r2.Vec
	for _, t := range threats {
		d := r2.Sub(player, t)
		distSq := r2.Norm2(d)
		if distSq > radiusSq {
			continue
		}
		if distSq < 1e-9 {
			// On top of the player; any direction is as good as another
			d, distSq = r2.Vec{X: 1}, 1
		}
		// d/|d| weighted by 1/|d|
		away = r2.Add(away, r2.Scale(1/distSq, d))
	}

	n := r2.Norm(away)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/n, away)
}

// Steer maps a direction onto held movement keys. Screen-down is positive Y.
func Steer(dir r2.Vec) game.Input {
	return game.Input{
		Left:  dir.X < -deadzone,
		Right: dir.X > deadzone,
		Up:    dir.Y < -deadzone,
		Down:  dir.Y > deadzone,
	}
}
