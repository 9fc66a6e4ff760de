package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/escape/components"
)

// PursuitSystem steers every hostile toward the player with a fixed per-axis impulse.
type PursuitSystem struct {
	filter ecs.Filter3[components.Position, components.Velocity, components.Hostile]
}

// NewPursuitSystem creates a pursuit system over w.
func NewPursuitSystem(w *ecs.World) *PursuitSystem {
	return &PursuitSystem{
		filter: *ecs.NewFilter3[components.Position, components.Velocity, components.Hostile](w),
	}
}

// Update adds or subtracts each hostile's speed on both axes so it homes toward target.
// The impulse does not scale with distance. Returns the number of hostiles steered.
func (s *PursuitSystem) Update(target r2.Vec) int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		pos, vel, h := query.Get()
		vel.X += axisToward(pos.X, target.X) * h.Speed
		vel.Y += axisToward(pos.Y, target.Y) * h.Speed
		n++
	}
	return n
}

// Nearest returns the distance from target to the closest hostile center.
// ok is false when there are no hostiles.
func (s *PursuitSystem) Nearest(target r2.Vec) (dist float64, ok bool) {
	best := math.Inf(1)
	query := s.filter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		best = math.Min(best, distanceSq(pos.Vec(), target))
		ok = true
	}
	if !ok {
		return 0, false
	}
	return math.Sqrt(best), true
}
