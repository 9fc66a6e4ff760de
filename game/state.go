package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/escape/clock"
	"github.com/pthm-cable/escape/components"
	"github.com/pthm-cable/escape/telemetry"
)

// State is the top-level game mode.
type State uint8

const (
	StateRunning State = iota
	StatePaused
	StateDead
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// On-screen messages for each state.
const (
	MessagePaused     = "Paused"
	MessageDied       = "You Died"
	MessageRestartTip = "Press R to restart"
)

// togglePause flips between Running and Paused. Ignored while Dead.
// Returns true if the state changed.
func (g *Game) togglePause() bool {
	switch g.state {
	case StateRunning:
		g.state = StatePaused
		g.physics.Pause()
		g.spawner.Timer.Pause()
		g.difficulty.Timer.Pause()
		g.camera.Following = false
		g.message = MessagePaused
		g.record(telemetry.Event{Type: telemetry.EventPause, Time: g.clock.Elapsed()})
		slog.Info("game_paused", "time", g.clock.Elapsed())
		return true
	case StatePaused:
		g.state = StateRunning
		g.physics.Resume()
		g.spawner.Timer.Resume()
		g.difficulty.Timer.Resume()
		g.camera.Following = true
		g.message = ""
		g.record(telemetry.Event{Type: telemetry.EventResume, Time: g.clock.Elapsed()})
		slog.Info("game_resumed", "time", g.clock.Elapsed())
		return true
	default:
		return false
	}
}

// die enters the Dead state. Hostiles stay where they are until Reset.
func (g *Game) die() {
	if g.state == StateDead {
		return
	}
	g.state = StateDead
	g.spawner.Timer.Pause()
	g.difficulty.Timer.Pause()
	g.message = MessageDied
	g.subMessage = MessageRestartTip

	now := g.clock.Elapsed()
	g.record(telemetry.Event{Type: telemetry.EventDeath, Time: now})
	slog.Info("player_died",
		"time", now,
		"hostiles", g.population.Current,
		"difficulty", g.difficulty.Level(),
	)
	g.endLife(now)
}

// reset restores a fresh round. Only valid while Dead.
// Returns true if the reset happened.
func (g *Game) reset() bool {
	if g.state != StateDead {
		return false
	}

	var doomed []ecs.Entity
	query := g.hostileFilter.Query()
	for query.Next() {
		doomed = append(doomed, query.Entity())
	}
	for _, e := range doomed {
		g.spawner.Remove(e)
	}
	g.population.Reset()

	pos, vel, _, _, player := g.playerMapper.Get(g.player)
	pos.X, pos.Y = 0, 0
	vel.X, vel.Y = 0, 0
	player.Health = components.MaxHealth

	g.spawner.Timer = clock.NewTimer(g.cfg.Timers.SpawnInterval)
	if g.cfg.Difficulty.ResetOnRestart {
		g.difficulty.Reset()
	} else {
		g.difficulty.Timer.Resume()
	}

	g.physics.Resume()
	g.camera.Following = true
	g.message = ""
	g.subMessage = ""
	g.state = StateRunning

	now := g.clock.Elapsed()
	g.record(telemetry.Event{Type: telemetry.EventReset, Time: now})
	g.lives.Begin(now)
	slog.Info("game_reset",
		"time", now,
		"despawned", len(doomed),
		"life", g.lives.Count(),
	)
	return true
}
