package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/escape/game"
	"github.com/pthm-cable/escape/systems"
	"github.com/pthm-cable/escape/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	View         game.View
	FPS          int32
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// CountTint returns the enemy counter color: white fading to red as the count reaches 255.
func CountTint(n int) rl.Color {
	gb := uint8(max(255-n, 0))
	if n < 0 {
		gb = 255
	}
	return rl.Color{R: 255, G: gb, B: gb, A: 255}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	v := data.View

	rl.DrawText(fmt.Sprintf("Enemies: %d", v.HostileCount), 10, 10, 24, CountTint(v.HostileCount))
	rl.DrawText(
		fmt.Sprintf("Difficulty: %d | Alive: %.1fs | FPS: %d", v.Difficulty, v.LifeSeconds, data.FPS),
		10, 40, 16, rl.LightGray,
	)

	h.drawHearts(data.ScreenWidth, v.Hearts)
	h.drawMessages(data.ScreenWidth, data.ScreenHeight, v.Message, v.SubMessage)
}

// drawHearts draws the health slots right-aligned along the top edge.
func (h *HUD) drawHearts(screenWidth int32, hearts [5]bool) {
	const size, gap = 26, 8
	x := screenWidth - int32(len(hearts))*(size+gap) - 10
	for i, full := range hearts {
		color := h.renderer.Theme.HeartEmpty
		if full {
			color = h.renderer.Theme.HeartFull
		}
		cx := x + int32(i)*(size+gap)
		drawHeart(cx, 12, size, color)
	}
}

// drawHeart draws a heart shape from two circles and a triangle.
func drawHeart(x, y, size int32, color rl.Color) {
	r := float32(size) / 4
	left := rl.Vector2{X: float32(x) + r, Y: float32(y) + r}
	right := rl.Vector2{X: float32(x) + 3*r, Y: float32(y) + r}
	rl.DrawCircleV(left, r, color)
	rl.DrawCircleV(right, r, color)
	rl.DrawTriangle(
		rl.Vector2{X: float32(x), Y: float32(y) + r*1.2},
		rl.Vector2{X: float32(x) + 2*r, Y: float32(y + size)},
		rl.Vector2{X: float32(x + size), Y: float32(y) + r*1.2},
		color,
	)
}

// drawMessages draws the state message centered with the sub message below it.
func (h *HUD) drawMessages(w, ht int32, msg, sub string) {
	if msg != "" {
		tw := rl.MeasureText(msg, 48)
		rl.DrawText(msg, (w-tw)/2, ht/2-60, 48, h.renderer.Theme.MessageColor)
	}
	if sub != "" {
		tw := rl.MeasureText(sub, 20)
		rl.DrawText(sub, (w-tw)/2, ht/2-5, 20, rl.LightGray)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-system frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the timings in frame order using the registry's display names.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *systems.SystemRegistry) {
	ids := registry.IDs()
	width := int32(260)
	height := int32(len(ids)+2)*14 + 30
	p.renderer.DrawPanel(p.x, p.y, width, height)

	x := p.x + p.renderer.Theme.Padding
	y := p.y + p.renderer.Theme.Padding

	rl.DrawText("System Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s (%.0f/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for _, id := range ids {
		avg := stats.PhaseAvg[id]
		pct := stats.PhasePct[id]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", registry.GetName(id), avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
