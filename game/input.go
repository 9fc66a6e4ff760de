package game

import "github.com/pthm-cable/escape/systems"

// Input holds one frame of player intents.
// Movement fields are held state; TogglePause and Reset are edge-triggered presses.
type Input struct {
	Up, Down, Left, Right bool

	TogglePause bool
	Reset       bool
}

// Direction returns the held movement keys.
func (in Input) Direction() systems.Direction {
	return systems.Direction{Up: in.Up, Down: in.Down, Left: in.Left, Right: in.Right}
}
