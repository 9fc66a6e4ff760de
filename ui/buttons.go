package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/escape/game"
)

// OverlayButtons draws the clickable alternatives to the pause and restart keys.
type OverlayButtons struct {
	Width, Height float32
}

// NewOverlayButtons creates the button set.
func NewOverlayButtons() *OverlayButtons {
	return &OverlayButtons{Width: 160, Height: 36}
}

// ButtonResult is what the player clicked this frame.
type ButtonResult struct {
	Intent game.Input
	Zoom   float32 // new camera zoom from the pause slider, 0 when unchanged
}

// Draw renders the buttons for the current state and returns the clicked intents.
func (b *OverlayButtons) Draw(v game.View, screenW, screenH int32, zoom float32) ButtonResult {
	var res ButtonResult
	x := float32(screenW)/2 - b.Width/2
	y := float32(screenH)/2 + 30

	switch v.State {
	case game.StatePaused:
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: b.Width, Height: b.Height}, "Resume") {
			res.Intent.TogglePause = true
		}
		bounds := rl.Rectangle{X: x, Y: y + b.Height + 12, Width: b.Width, Height: 20}
		if z := gui.SliderBar(bounds, "Zoom", "", zoom, 0.25, 4); z != zoom {
			res.Zoom = z
		}
	case game.StateDead:
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: b.Width, Height: b.Height}, "Restart") {
			res.Intent.Reset = true
		}
	}
	return res
}
