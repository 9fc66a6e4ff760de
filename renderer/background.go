// Package renderer draws the arena with raylib primitives.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/escape/camera"
)

// BackgroundRenderer draws a world-anchored grid so movement is visible on an empty field.
type BackgroundRenderer struct {
	Spacing   float64
	BaseColor rl.Color
	LineColor rl.Color
	AxisColor rl.Color
}

// NewBackgroundRenderer creates a background with the given grid spacing in world units.
func NewBackgroundRenderer(spacing float64) *BackgroundRenderer {
	return &BackgroundRenderer{
		Spacing:   spacing,
		BaseColor: rl.Color{R: 12, G: 16, B: 28, A: 255},
		LineColor: rl.Color{R: 28, G: 36, B: 56, A: 255},
		AxisColor: rl.Color{R: 50, G: 64, B: 96, A: 255},
	}
}

// Draw clears the screen and draws the grid lines inside the camera bounds.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	rl.ClearBackground(b.BaseColor)
	if b.Spacing <= 0 {
		return
	}

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	w, h := int32(cam.ViewportW), int32(cam.ViewportH)

	for x := math.Floor(minX/b.Spacing) * b.Spacing; x <= maxX; x += b.Spacing {
		sx, _ := cam.WorldToScreen(x, 0)
		rl.DrawLine(int32(sx), 0, int32(sx), h, b.lineColor(x))
	}
	for y := math.Floor(minY/b.Spacing) * b.Spacing; y <= maxY; y += b.Spacing {
		_, sy := cam.WorldToScreen(0, y)
		rl.DrawLine(0, int32(sy), w, int32(sy), b.lineColor(y))
	}
}

func (b *BackgroundRenderer) lineColor(coord float64) rl.Color {
	if math.Abs(coord) < b.Spacing/2 {
		return b.AxisColor
	}
	return b.LineColor
}
