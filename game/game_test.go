package game

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/escape/components"
	"github.com/pthm-cable/escape/config"
	"github.com/pthm-cable/escape/telemetry"
)

type fakePhysics struct {
	paused  bool
	pauses  int
	resumes int
}

func (f *fakePhysics) Pause()  { f.paused = true; f.pauses++ }
func (f *fakePhysics) Resume() { f.paused = false; f.resumes++ }

func newTestGame(t *testing.T, mutate func(cfg *config.Config)) (*Game, *fakePhysics) {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}
	phys := &fakePhysics{}
	return New(ecs.NewWorld(), cfg, Options{Physics: phys, Seed: 7}), phys
}

// run advances n frames of dt seconds with the same input and no collisions.
func run(g *Game, n int, dt float64, in Input) {
	for i := 0; i < n; i++ {
		g.Advance(dt, nil, in)
	}
}

func began() components.CollisionEvent {
	return components.CollisionEvent{
		Phase: components.ContactBegan,
		A:     components.PlayerLayers,
		B:     components.HostileLayers,
	}
}

func ended() components.CollisionEvent {
	return components.CollisionEvent{
		Phase: components.ContactEnded,
		A:     components.HostileLayers,
		B:     components.PlayerLayers,
	}
}

func setHealth(g *Game, h int) {
	_, _, _, _, p := g.playerMapper.Get(g.player)
	p.Health = h
}

func countHostiles(g *Game) int {
	n := 0
	g.EachHostile(func(HostileView) { n++ })
	return n
}

func TestNewGameStartsRunning(t *testing.T) {
	g, _ := newTestGame(t, nil)
	v := g.View()

	assert.Equal(t, StateRunning, v.State)
	assert.Equal(t, components.MaxHealth, v.Health)
	assert.Equal(t, [5]bool{true, true, true, true, true}, v.Hearts)
	assert.Equal(t, 0, v.HostileCount)
	assert.Equal(t, 1000, v.MaxHostiles)
	assert.Empty(t, v.Message)
	assert.Empty(t, v.SubMessage)
	assert.InDelta(t, 30.0, v.Player.Radius, 1e-9)
}

func TestSpawnsOnTimer(t *testing.T) {
	g, _ := newTestGame(t, nil)

	run(g, 4, 0.5, Input{})

	assert.Equal(t, 4, g.View().HostileCount)
	assert.Equal(t, 4, countHostiles(g))
}

func TestPopulationNeverExceedsCap(t *testing.T) {
	g, _ := newTestGame(t, func(cfg *config.Config) { cfg.Population.Max = 3 })

	for i := 0; i < 20; i++ {
		g.Advance(0.5, nil, Input{})
		require.LessOrEqual(t, g.View().HostileCount, 3)
	}
	assert.Equal(t, 3, countHostiles(g))
}

func TestDeathWithinFrame(t *testing.T) {
	g, _ := newTestGame(t, nil)
	setHealth(g, 1)

	g.Advance(0.1, []components.CollisionEvent{began()}, Input{})

	v := g.View()
	assert.Equal(t, StateDead, v.State)
	assert.Equal(t, 0, v.Health)
	assert.Equal(t, [5]bool{}, v.Hearts)
	assert.True(t, v.SpawnTimerPaused)
	assert.Equal(t, MessageDied, v.Message)
	assert.Equal(t, MessageRestartTip, v.SubMessage)
}

func TestEventsAfterDeathIgnored(t *testing.T) {
	g, _ := newTestGame(t, nil)
	setHealth(g, 1)

	g.Advance(0.1, []components.CollisionEvent{began(), ended(), ended()}, Input{})

	v := g.View()
	assert.Equal(t, StateDead, v.State)
	assert.Equal(t, 0, v.Health)

	// Contacts while dead do nothing
	g.Advance(0.1, []components.CollisionEvent{ended()}, Input{})
	assert.Equal(t, 0, g.View().Health)
}

func TestDeadFreezesDifficultyAndSpawn(t *testing.T) {
	g, _ := newTestGame(t, nil)
	run(g, 12, 0.5, Input{})

	before := g.View()
	require.GreaterOrEqual(t, before.Difficulty, 1)
	require.Positive(t, before.HostileCount)

	setHealth(g, 1)
	g.Advance(0.5, []components.CollisionEvent{began()}, Input{})
	require.Equal(t, StateDead, g.View().State)
	atDeath := g.View()

	run(g, 40, 0.5, Input{})

	after := g.View()
	assert.Equal(t, StateDead, after.State)
	assert.Equal(t, atDeath.Difficulty, after.Difficulty)
	assert.Equal(t, atDeath.HostileCount, after.HostileCount)
	assert.True(t, after.SpawnTimerPaused)
}

func TestBatchAppliedInOrder(t *testing.T) {
	g, _ := newTestGame(t, nil)
	setHealth(g, 1)

	// 1 -> 2 -> 1 -> 0
	g.Advance(0.1, []components.CollisionEvent{ended(), began(), began()}, Input{})

	assert.Equal(t, StateDead, g.View().State)
}

func TestIrrelevantEventsIgnored(t *testing.T) {
	g, _ := newTestGame(t, nil)

	events := []components.CollisionEvent{
		{Phase: components.ContactBegan, A: components.HostileLayers, B: components.HostileLayers},
		{Phase: components.ContactBegan, A: components.DefaultLayers, B: components.HostileLayers},
		{Phase: components.ContactBegan, A: components.PlayerLayers, B: components.DefaultLayers},
	}
	g.Advance(0.1, events, Input{})

	assert.Equal(t, components.MaxHealth, g.View().Health)
}

func TestHealthClampedAtMax(t *testing.T) {
	g, _ := newTestGame(t, nil)

	g.Advance(0.1, []components.CollisionEvent{ended(), ended()}, Input{})

	assert.Equal(t, components.MaxHealth, g.View().Health)
}

func TestHeartsTrackHealth(t *testing.T) {
	g, _ := newTestGame(t, nil)

	g.Advance(0.1, []components.CollisionEvent{began(), began()}, Input{})

	assert.Equal(t, [5]bool{true, true, true, false, false}, g.View().Hearts)
}

func TestResetOnlyWhileDead(t *testing.T) {
	g, phys := newTestGame(t, nil)
	run(g, 4, 0.5, Input{})
	require.Equal(t, 4, countHostiles(g))

	g.Advance(0.1, nil, Input{Reset: true})

	assert.Equal(t, StateRunning, g.State())
	assert.Equal(t, 4, countHostiles(g))
	assert.Zero(t, phys.resumes)

	// Paused is not Dead either
	g.Advance(0.1, nil, Input{TogglePause: true})
	g.Advance(0.1, nil, Input{Reset: true})
	assert.Equal(t, StatePaused, g.State())
	assert.Equal(t, 4, countHostiles(g))
}

func TestResetRestoresRound(t *testing.T) {
	g, phys := newTestGame(t, nil)
	run(g, 4, 0.5, Input{Right: true})
	require.Equal(t, 4, countHostiles(g))
	require.NotZero(t, g.View().Player.VelX)

	// Move the player off the origin so the reset is observable
	pos, _, _, _, _ := g.playerMapper.Get(g.player)
	pos.X, pos.Y = 120, -40

	setHealth(g, 1)
	g.Advance(0.1, []components.CollisionEvent{began()}, Input{})
	require.Equal(t, StateDead, g.State())

	g.Advance(0.1, nil, Input{Reset: true})

	v := g.View()
	assert.Equal(t, StateRunning, v.State)
	assert.Equal(t, 0, v.HostileCount)
	assert.Equal(t, 0, countHostiles(g))
	assert.Equal(t, components.MaxHealth, v.Health)
	assert.Equal(t, 0.0, v.Player.X)
	assert.Equal(t, 0.0, v.Player.Y)
	assert.Equal(t, 0.0, v.Player.VelX)
	assert.Equal(t, 0.0, v.Player.VelY)
	assert.Empty(t, v.Message)
	assert.Empty(t, v.SubMessage)
	assert.False(t, v.SpawnTimerPaused)
	assert.Equal(t, 0.0, g.spawner.Timer.Elapsed())
	assert.InDelta(t, 0.5, g.spawner.Timer.Interval(), 1e-9)
	assert.Equal(t, 0, v.Difficulty)
	assert.Equal(t, 1, phys.resumes)
	assert.True(t, g.Camera().Following)

	// Spawning resumes at the configured interval
	g.Advance(0.5, nil, Input{})
	assert.Equal(t, 1, g.View().HostileCount)
}

func TestResetStartsNewLife(t *testing.T) {
	g, _ := newTestGame(t, nil)
	run(g, 10, 0.5, Input{})

	setHealth(g, 1)
	g.Advance(0.1, []components.CollisionEvent{began()}, Input{})
	g.Advance(0.1, nil, Input{Reset: true})

	require.Len(t, g.Lives().Completed(), 1)
	assert.InDelta(t, 5.1, g.Lives().Completed()[0].SurvivalSec, 1e-9)
	assert.Equal(t, 2, g.Lives().Count())
	assert.Equal(t, 1, g.HallOfFame().Size())
}

func TestPauseFreezesSpawnAndPursuit(t *testing.T) {
	g, phys := newTestGame(t, nil)
	run(g, 2, 0.5, Input{})
	require.Equal(t, 2, countHostiles(g))

	g.Advance(0.1, nil, Input{TogglePause: true})
	require.Equal(t, StatePaused, g.State())
	assert.True(t, phys.paused)
	assert.True(t, g.spawner.Timer.Paused())
	assert.Equal(t, MessagePaused, g.View().Message)
	assert.False(t, g.Camera().Following)

	velocities := map[uint32][2]float64{}
	g.EachHostile(func(h HostileView) { velocities[h.ID] = [2]float64{h.VelX, h.VelY} })

	run(g, 20, 0.5, Input{Up: true})

	assert.Equal(t, 2, countHostiles(g))
	g.EachHostile(func(h HostileView) {
		assert.Equal(t, velocities[h.ID], [2]float64{h.VelX, h.VelY})
	})
	assert.Equal(t, 0.0, g.View().Player.VelY)

	g.Advance(0.1, nil, Input{TogglePause: true})
	assert.Equal(t, StateRunning, g.State())
	assert.False(t, phys.paused)
	assert.Empty(t, g.View().Message)

	run(g, 2, 0.5, Input{})
	assert.Greater(t, countHostiles(g), 2)
}

func TestPauseRejectedWhileDead(t *testing.T) {
	g, phys := newTestGame(t, nil)
	setHealth(g, 1)
	g.Advance(0.1, []components.CollisionEvent{began()}, Input{})
	require.Equal(t, StateDead, g.State())

	g.Advance(0.1, nil, Input{TogglePause: true})

	assert.Equal(t, StateDead, g.State())
	assert.Zero(t, phys.pauses)
	assert.Equal(t, MessageDied, g.View().Message)
}

func TestDeadPlayerCannotMove(t *testing.T) {
	g, _ := newTestGame(t, nil)
	setHealth(g, 1)
	g.Advance(0.1, []components.CollisionEvent{began()}, Input{})

	run(g, 5, 0.1, Input{Left: true, Down: true})

	v := g.View()
	assert.Equal(t, 0.0, v.Player.VelX)
	assert.Equal(t, 0.0, v.Player.VelY)
}

func TestMovementAddsSpeedPerFrame(t *testing.T) {
	g, _ := newTestGame(t, nil)

	run(g, 3, 0.1, Input{Right: true, Up: true})

	v := g.View()
	assert.InDelta(t, 15.0, v.Player.VelX, 1e-9)
	assert.InDelta(t, -15.0, v.Player.VelY, 1e-9)
}

func TestDifficultyMonotoneAndFrozenWhilePaused(t *testing.T) {
	g, _ := newTestGame(t, nil)

	last := 0
	check := func(n int, in Input) {
		for i := 0; i < n; i++ {
			g.Advance(0.5, nil, in)
			level := g.View().Difficulty
			require.GreaterOrEqual(t, level, last)
			last = level
		}
	}

	check(24, Input{})
	assert.Equal(t, 2, g.View().Difficulty)

	check(1, Input{TogglePause: true})
	require.Equal(t, StatePaused, g.State())
	check(40, Input{})
	assert.Equal(t, 2, g.View().Difficulty)

	check(1, Input{TogglePause: true})
	check(6, Input{})
	assert.Equal(t, 3, g.View().Difficulty)
}

func TestDifficultyKeptWhenConfigured(t *testing.T) {
	g, _ := newTestGame(t, func(cfg *config.Config) { cfg.Difficulty.ResetOnRestart = false })
	run(g, 20, 0.5, Input{})
	require.Equal(t, 2, g.View().Difficulty)

	setHealth(g, 1)
	g.Advance(0.1, []components.CollisionEvent{began()}, Input{})
	g.Advance(0.1, nil, Input{Reset: true})

	assert.Equal(t, 2, g.View().Difficulty)
	assert.False(t, g.difficulty.Timer.Paused())
}

func TestResize(t *testing.T) {
	g, _ := newTestGame(t, nil)
	run(g, 2, 0.5, Input{})

	g.Resize(1600, 900)
	assert.InDelta(t, 40.0, g.View().Player.Radius, 1e-9)
	assert.InDelta(t, 1600.0, g.Camera().ViewportW, 1e-9)
	g.EachHostile(func(h HostileView) {
		assert.InDelta(t, 1600.0/40*h.Scale/2, h.Radius, 1e-9)
	})

	// Below the minimum size clamps
	g.Resize(100, 50)
	assert.InDelta(t, 10.0, g.View().Player.Radius, 1e-9)
	assert.InDelta(t, 400.0, g.Camera().ViewportW, 1e-9)
	assert.InDelta(t, 400.0, g.Camera().ViewportH, 1e-9)
}

func TestSnapshotCapturesArena(t *testing.T) {
	g, _ := newTestGame(t, nil)
	run(g, 3, 0.5, Input{})

	snap := g.Snapshot(nil)

	assert.Equal(t, int64(7), snap.Seed)
	assert.Equal(t, "running", snap.State)
	assert.Len(t, snap.Hostiles, 3)
	assert.Equal(t, components.MaxHealth, snap.Health)
}

func TestStatsCallbackPerWindow(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	var windows []telemetry.WindowStats
	g := New(ecs.NewWorld(), cfg, Options{
		Seed:          3,
		StatsWindow:   2,
		StatsCallback: func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	run(g, 8, 0.5, Input{})

	require.Len(t, windows, 2)
	assert.Equal(t, 4, windows[0].Spawns)
	assert.Equal(t, 8, windows[1].Hostiles)
}
