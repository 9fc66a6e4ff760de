package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/escape/components"
)

// Direction holds the held movement keys for one frame.
type Direction struct {
	Up, Down, Left, Right bool
}

// Vec returns the unnormalized direction with screen-down positive Y.
// Opposite keys cancel.
func (d Direction) Vec() r2.Vec {
	var v r2.Vec
	if d.Up {
		v.Y--
	}
	if d.Down {
		v.Y++
	}
	if d.Left {
		v.X--
	}
	if d.Right {
		v.X++
	}
	return v
}

// ApplyMovement adds speed along each held axis to the player's velocity.
func ApplyMovement(vel *components.Velocity, speed float64, dir Direction) {
	vel.Set(r2.Add(vel.Vec(), r2.Scale(speed, dir.Vec())))
}
