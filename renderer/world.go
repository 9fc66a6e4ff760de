package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/escape/camera"
	"github.com/pthm-cable/escape/components"
	"github.com/pthm-cable/escape/game"
)

// DrawOptions toggles the debug layers drawn on top of the entities.
type DrawOptions struct {
	Grid       bool // draw the background grid
	Colliders  bool // outline every collision circle
	Velocities bool // draw velocity vectors
}

// WorldRenderer draws the player and the hostiles through the follow camera.
type WorldRenderer struct {
	Background *BackgroundRenderer

	PlayerColor  rl.Color
	CommonColor  rl.Color
	RareColor    rl.Color
	ColliderLine rl.Color
	VectorColor  rl.Color

	// VectorScale converts velocity to on-screen length
	VectorScale float64

	drawn int
}

// NewWorldRenderer creates a renderer with the default palette.
func NewWorldRenderer() *WorldRenderer {
	return &WorldRenderer{
		Background:   NewBackgroundRenderer(100),
		PlayerColor:  rl.Color{R: 90, G: 170, B: 255, A: 255},
		CommonColor:  rl.Color{R: 220, G: 80, B: 70, A: 255},
		RareColor:    rl.Color{R: 255, G: 200, B: 40, A: 255},
		ColliderLine: rl.Color{R: 255, G: 255, B: 255, A: 90},
		VectorColor:  rl.Color{R: 120, G: 255, B: 140, A: 200},
		VectorScale:  0.25,
	}
}

// Draw renders the background, the visible hostiles and the player.
func (r *WorldRenderer) Draw(g *game.Game, opts DrawOptions) {
	cam := g.Camera()
	if opts.Grid {
		r.Background.Draw(cam)
	} else {
		rl.ClearBackground(r.Background.BaseColor)
	}

	r.drawn = 0
	g.EachHostile(func(h game.HostileView) {
		if !cam.IsVisible(h.X, h.Y, h.Radius) {
			return
		}
		color := r.CommonColor
		if h.Variant == components.VariantRare {
			color = r.RareColor
		}
		r.drawEntity(cam, h.EntityView, color, opts)
		r.drawn++
	})

	r.drawEntity(cam, g.View().Player, r.PlayerColor, opts)
}

// Drawn returns how many hostiles survived culling in the last frame.
func (r *WorldRenderer) Drawn() int { return r.drawn }

func (r *WorldRenderer) drawEntity(cam *camera.Camera, e game.EntityView, color rl.Color, opts DrawOptions) {
	sx, sy := cam.WorldToScreen(e.X, e.Y)
	radius := float32(e.Radius * cam.Zoom)
	center := rl.Vector2{X: float32(sx), Y: float32(sy)}

	rl.DrawCircleV(center, radius, color)

	if opts.Colliders {
		rl.DrawCircleLines(int32(sx), int32(sy), radius, r.ColliderLine)
	}
	if opts.Velocities {
		tip := rl.Vector2{
			X: center.X + float32(e.VelX*r.VectorScale*cam.Zoom),
			Y: center.Y + float32(e.VelY*r.VectorScale*cam.Zoom),
		}
		rl.DrawLineV(center, tip, r.VectorColor)
	}
}
