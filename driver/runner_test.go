package driver

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/escape/bot"
	"github.com/pthm-cable/escape/components"
	"github.com/pthm-cable/escape/config"
	"github.com/pthm-cable/escape/game"
	"github.com/pthm-cable/escape/systems"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestLongRunKeepsInvariants(t *testing.T) {
	cfg := loadConfig(t)
	cfg.Population.Max = 25

	r := New(cfg, game.Options{Seed: 42})
	evader := bot.NewEvader(cfg.Bot)

	lastDifficulty := 0
	lastLives := 1
	r.RunHeadless(60*60, evader, func(r *Runner) bool {
		v := r.Game.View()
		require.LessOrEqual(t, v.HostileCount, 25)
		require.GreaterOrEqual(t, v.Health, 0)
		require.LessOrEqual(t, v.Health, components.MaxHealth)
		require.LessOrEqual(t, v.Difficulty, systems.MaxDifficultyLevel)

		// Difficulty only falls back when a new life starts
		lives := r.Game.Lives().Count()
		if lives == lastLives {
			require.GreaterOrEqual(t, v.Difficulty, lastDifficulty)
		}
		lastDifficulty, lastLives = v.Difficulty, lives
		return false
	})

	assert.Equal(t, 3600, r.Ticks())
	n := 0
	r.Game.EachHostile(func(game.HostileView) { n++ })
	assert.Equal(t, r.Game.View().HostileCount, n)
}

func TestSameSeedSameRun(t *testing.T) {
	cfg := loadConfig(t)

	a := New(cfg, game.Options{Seed: 9})
	b := New(cfg, game.Options{Seed: 9})
	a.RunHeadless(900, bot.NewEvader(cfg.Bot), nil)
	b.RunHeadless(900, bot.NewEvader(cfg.Bot), nil)

	assert.Equal(t, a.Game.View(), b.Game.View())

	var ha, hb []game.HostileView
	a.Game.EachHostile(func(h game.HostileView) { ha = append(ha, h) })
	b.Game.EachHostile(func(h game.HostileView) { hb = append(hb, h) })
	assert.Equal(t, ha, hb)
}

func TestPauseStopsPhysics(t *testing.T) {
	cfg := loadConfig(t)
	r := New(cfg, game.Options{Seed: 1})

	r.RunHeadless(120, Idle{}, nil)
	r.Step(cfg.Physics.DT, game.Input{TogglePause: true})
	require.True(t, r.Physics.Paused())

	var before []game.HostileView
	r.Game.EachHostile(func(h game.HostileView) { before = append(before, h) })
	require.NotEmpty(t, before)

	r.RunHeadless(240, Idle{}, nil)

	var after []game.HostileView
	r.Game.EachHostile(func(h game.HostileView) { after = append(after, h) })
	assert.Equal(t, before, after)

	r.Step(cfg.Physics.DT, game.Input{TogglePause: true})
	assert.False(t, r.Physics.Paused())
}

func TestContactsDriveHealth(t *testing.T) {
	cfg := loadConfig(t)
	r := New(cfg, game.Options{Seed: 1})

	mapper := ecs.NewMap5[
		components.Position,
		components.Velocity,
		components.Body,
		components.CollisionLayers,
		components.Hostile,
	](r.Game.World())
	layers := components.HostileLayers
	hostile := mapper.NewEntity(
		&components.Position{X: 10},
		&components.Velocity{},
		&components.Body{Radius: 15, Density: 10},
		&layers,
		&components.Hostile{ID: 99, SizeScale: 1},
	)

	r.Step(cfg.Physics.DT, game.Input{})
	assert.Equal(t, components.MaxHealth-1, r.Game.View().Health)

	pos, vel, _, _, _ := mapper.Get(hostile)
	pos.X, pos.Y = 5000, 5000
	vel.X, vel.Y = 0, 0

	r.Step(cfg.Physics.DT, game.Input{})
	assert.Equal(t, components.MaxHealth, r.Game.View().Health)
}

func TestResetAfterDeathWithPhysics(t *testing.T) {
	cfg := loadConfig(t)
	r := New(cfg, game.Options{Seed: 5})
	r.RunHeadless(120, Idle{}, nil)

	kill := components.CollisionEvent{Phase: components.ContactBegan, A: components.PlayerLayers, B: components.HostileLayers}
	r.Game.Advance(cfg.Physics.DT, []components.CollisionEvent{kill, kill, kill, kill, kill}, game.Input{})
	require.Equal(t, game.StateDead, r.Game.State())

	r.Step(cfg.Physics.DT, game.Input{Reset: true})
	// Contacts of despawned hostiles are dropped on the following step
	r.Step(cfg.Physics.DT, game.Input{})

	v := r.Game.View()
	assert.Equal(t, game.StateRunning, v.State)
	assert.Equal(t, 0, v.HostileCount)
	assert.Equal(t, components.MaxHealth, v.Health)
	assert.False(t, r.Physics.Paused())
	assert.Zero(t, r.Physics.ActiveContacts())
}
