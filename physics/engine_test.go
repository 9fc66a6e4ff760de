package physics

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/escape/components"
	"github.com/pthm-cable/escape/config"
)

type fixture struct {
	world  *ecs.World
	engine *Engine
	mapper *ecs.Map4[components.Position, components.Velocity, components.Body, components.CollisionLayers]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	w := ecs.NewWorld()
	return &fixture{
		world:  w,
		engine: NewEngine(w, cfg.Physics),
		mapper: ecs.NewMap4[components.Position, components.Velocity, components.Body, components.CollisionLayers](w),
	}
}

func (f *fixture) add(x, y, radius float64, layers components.CollisionLayers) ecs.Entity {
	return f.mapper.NewEntity(
		&components.Position{X: x, Y: y},
		&components.Velocity{},
		&components.Body{Radius: radius, Density: 10},
		&layers,
	)
}

func (f *fixture) pos(e ecs.Entity) *components.Position {
	p, _, _, _ := f.mapper.Get(e)
	return p
}

func (f *fixture) vel(e ecs.Entity) *components.Velocity {
	_, v, _, _ := f.mapper.Get(e)
	return v
}

const frame = 1.0 / 60

func TestContactBeginAndEnd(t *testing.T) {
	f := newFixture(t)
	f.add(0, 0, 10, components.PlayerLayers)
	hostile := f.add(15, 0, 10, components.HostileLayers)

	events := f.engine.Step(frame)
	require.Len(t, events, 1)
	assert.Equal(t, components.ContactBegan, events[0].Phase)
	assert.ElementsMatch(t,
		[]components.CollisionLayers{components.PlayerLayers, components.HostileLayers},
		[]components.CollisionLayers{events[0].A, events[0].B})
	assert.Equal(t, 1, f.engine.ActiveContacts())

	// Resting contact persists without new events
	assert.Empty(t, f.engine.Step(frame))

	f.pos(hostile).X = 1000
	events = f.engine.Step(frame)
	require.Len(t, events, 1)
	assert.Equal(t, components.ContactEnded, events[0].Phase)
	assert.Zero(t, f.engine.ActiveContacts())
}

func TestOverlapIsSeparated(t *testing.T) {
	f := newFixture(t)
	a := f.add(0, 0, 10, components.HostileLayers)
	b := f.add(5, 0, 10, components.HostileLayers)

	f.engine.Step(frame)

	d := r2.Norm(r2.Sub(f.pos(b).Vec(), f.pos(a).Vec()))
	assert.InDelta(t, 20, d, 1e-6)
}

func TestLayerFilteringSuppressesContacts(t *testing.T) {
	f := newFixture(t)
	a := f.add(0, 0, 10, components.PlayerLayers)
	b := f.add(5, 0, 10, components.PlayerLayers)

	assert.Empty(t, f.engine.Step(frame))
	// Non-interacting bodies pass through each other
	assert.InDelta(t, 0, f.pos(a).X, 1e-9)
	assert.InDelta(t, 5, f.pos(b).X, 1e-9)
}

func TestPauseFreezesIntegration(t *testing.T) {
	f := newFixture(t)
	e := f.add(0, 0, 10, components.PlayerLayers)
	f.vel(e).X = 100

	f.engine.Pause()
	assert.True(t, f.engine.Paused())
	assert.Nil(t, f.engine.Step(frame))
	assert.Zero(t, f.pos(e).X)
	assert.InDelta(t, 100, f.vel(e).X, 1e-9, "velocity is kept while paused")

	f.engine.Resume()
	f.engine.Step(frame)
	assert.Greater(t, f.pos(e).X, 0.0)
}

func TestIntegrationUsesTimeScale(t *testing.T) {
	f := newFixture(t)
	e := f.add(0, 0, 10, components.HostileLayers)
	f.vel(e).X = 60

	f.engine.Step(frame)
	assert.InDelta(t, 60*frame*f.engine.TimeScale(), f.pos(e).X, 1e-9)
}

func TestDampingAndSpeedClamp(t *testing.T) {
	f := newFixture(t)
	e := f.mapper.NewEntity(
		&components.Position{},
		&components.Velocity{X: 1e6},
		&components.Body{Radius: 5, Density: 1, Damping: 0.5},
		&components.PlayerLayers,
	)

	f.engine.Step(frame)
	assert.LessOrEqual(t, r2.Norm(f.vel(e).Vec()), f.engine.cfg.MaxSpeed+1e-9)

	f.vel(e).X = 100
	f.engine.Step(frame)
	assert.Less(t, f.vel(e).X, 100.0)
}

func TestDespawnDropsContactSilently(t *testing.T) {
	f := newFixture(t)
	f.add(0, 0, 10, components.PlayerLayers)
	hostile := f.add(15, 0, 10, components.HostileLayers)

	require.Len(t, f.engine.Step(frame), 1)

	f.world.RemoveEntity(hostile)
	assert.Empty(t, f.engine.Step(frame))
	assert.Zero(t, f.engine.ActiveContacts())
}

func TestHeadOnCollisionStopsApproach(t *testing.T) {
	f := newFixture(t)
	a := f.add(-9, 0, 10, components.HostileLayers)
	b := f.add(9, 0, 10, components.HostileLayers)
	f.vel(a).X = 50
	f.vel(b).X = -50

	f.engine.Step(frame)

	rel := f.vel(b).X - f.vel(a).X
	assert.GreaterOrEqual(t, rel, -1e-9, "bodies no longer approach")
}

func TestEventOrderIsStable(t *testing.T) {
	run := func() []components.CollisionEvent {
		f := newFixture(t)
		f.add(0, 0, 10, components.PlayerLayers)
		for i := 0; i < 5; i++ {
			f.add(float64(15+i), float64(i), 10, components.HostileLayers)
		}
		return f.engine.Step(frame)
	}

	first := run()
	assert.NotEmpty(t, first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, run())
	}
}
