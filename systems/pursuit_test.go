package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/escape/components"
)

func TestPursuitSigns(t *testing.T) {
	tests := []struct {
		name   string
		pos    components.Position
		target r2.Vec
		want   components.Velocity
	}{
		{"hostile right and below", components.Position{X: 10, Y: 10}, r2.Vec{}, components.Velocity{X: -2.5, Y: -2.5}},
		{"hostile left and above", components.Position{X: -10, Y: -10}, r2.Vec{}, components.Velocity{X: 2.5, Y: 2.5}},
		{"mixed", components.Position{X: 10, Y: -10}, r2.Vec{}, components.Velocity{X: -2.5, Y: 2.5}},
		{"equal coordinate pushes positive", components.Position{X: 0, Y: 0}, r2.Vec{}, components.Velocity{X: 2.5, Y: 2.5}},
		{"magnitude ignores distance", components.Position{X: 1e6, Y: 1e-3}, r2.Vec{}, components.Velocity{X: -2.5, Y: -2.5}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			mapper := ecs.NewMap3[components.Position, components.Velocity, components.Hostile](w)
			pos := tc.pos
			e := mapper.NewEntity(&pos, &components.Velocity{}, &components.Hostile{Speed: 2.5})

			s := NewPursuitSystem(w)
			assert.Equal(t, 1, s.Update(tc.target))

			_, vel, _ := mapper.Get(e)
			assert.Equal(t, tc.want, *vel)
		})
	}
}

func TestPursuitAccumulates(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap3[components.Position, components.Velocity, components.Hostile](w)
	e := mapper.NewEntity(&components.Position{X: 5, Y: 5}, &components.Velocity{}, &components.Hostile{Speed: 1})

	s := NewPursuitSystem(w)
	for i := 0; i < 3; i++ {
		s.Update(r2.Vec{})
	}

	_, vel, _ := mapper.Get(e)
	assert.Equal(t, components.Velocity{X: -3, Y: -3}, *vel)
}

func TestPursuitNoHostiles(t *testing.T) {
	s := NewPursuitSystem(ecs.NewWorld())
	assert.Zero(t, s.Update(r2.Vec{}))
}
