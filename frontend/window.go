// Package frontend runs the game in a raylib window.
package frontend

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/escape/driver"
	"github.com/pthm-cable/escape/game"
	"github.com/pthm-cable/escape/renderer"
	"github.com/pthm-cable/escape/ui"
)

const controlsText = "WASD/Arrows: Move | Space: Pause | R: Restart | F11: Fullscreen | G/C/V: Overlays | P/I: Panels | H: Help"

// Window owns the raylib window and everything drawn into it.
type Window struct {
	runner *driver.Runner

	world    *renderer.WorldRenderer
	hud      *ui.HUD
	overlays *ui.OverlayRegistry
	controls *ui.ControlsPanel
	perf     *ui.PerfPanel
	stats    *ui.StatsPanel
	buttons  *ui.OverlayButtons

	ctrl driver.Controller // nil means the keyboard steers

	width, height int32
	pending       game.Input // intents from buttons, applied next frame
}

// Open creates the window sized from the runner's config.
func Open(r *driver.Runner) *Window {
	cfg := r.Game.Config()

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	rl.SetWindowMinSize(cfg.Screen.MinWidth, cfg.Screen.MinHeight)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	w := &Window{
		runner:   r,
		world:    renderer.NewWorldRenderer(),
		hud:      ui.NewHUD(),
		overlays: ui.NewOverlayRegistry(),
		controls: ui.NewControlsPanel(10, 70, 220),
		perf:     ui.NewPerfPanel(10, 70),
		stats:    ui.NewStatsPanel(10, 70, 220),
		buttons:  ui.NewOverlayButtons(),
		width:    int32(cfg.Screen.Width),
		height:   int32(cfg.Screen.Height),
	}
	return w
}

// SetController hands steering to ctrl. Pause and overlay keys still work.
func (w *Window) SetController(ctrl driver.Controller) {
	w.ctrl = ctrl
}

// Run loops until the window closes or maxTicks frames have run (0 means no limit).
func (w *Window) Run(maxTicks int) {
	for !rl.WindowShouldClose() {
		w.handleResize()
		dt := float64(rl.GetFrameTime())
		in := w.readInput()
		if w.ctrl != nil {
			bot := w.ctrl.Decide(w.runner.Game, dt)
			bot.TogglePause = in.TogglePause
			bot.Reset = bot.Reset || in.Reset
			in = bot
		}

		w.runner.Step(dt, in)
		w.runner.Game.Perf().RecordFrame()

		w.draw()

		if maxTicks > 0 && w.runner.Ticks() >= maxTicks {
			slog.Info("max ticks reached", "ticks", w.runner.Ticks())
			return
		}
	}
}

// Close shuts the window.
func (w *Window) Close() {
	rl.CloseWindow()
}

// readInput samples the keyboard and merges in last frame's button intents.
func (w *Window) readInput() game.Input {
	in := game.Input{
		Up:          rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp),
		Down:        rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown),
		Left:        rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft),
		Right:       rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight),
		TogglePause: rl.IsKeyPressed(rl.KeySpace) || w.pending.TogglePause,
		Reset:       rl.IsKeyPressed(rl.KeyR) || w.pending.Reset,
	}
	w.pending = game.Input{}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyH) {
		w.controls.Toggle()
	}
	for _, desc := range w.overlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			w.overlays.HandleKeyPress(desc.Key)
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam := w.runner.Game.Camera()
		cam.ZoomBy(1 + float64(wheel)*0.1)
	}

	return in
}

// handleResize propagates a changed window size to the game.
func (w *Window) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	width, height := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if width == w.width && height == w.height {
		return
	}
	w.width, w.height = width, height
	w.runner.Game.Resize(int(width), int(height))
}

func (w *Window) draw() {
	g := w.runner.Game
	view := g.View()

	rl.BeginDrawing()

	w.world.Draw(g, renderer.DrawOptions{
		Grid:       w.overlays.IsEnabled(ui.OverlayGrid),
		Colliders:  w.overlays.IsEnabled(ui.OverlayColliders),
		Velocities: w.overlays.IsEnabled(ui.OverlayVelocities),
	})

	w.hud.Draw(ui.HUDData{
		View:         view,
		FPS:          rl.GetFPS(),
		ScreenWidth:  w.width,
		ScreenHeight: w.height,
	})
	w.hud.DrawControls(w.height, controlsText)

	panelY := w.controls.Draw(w.overlays)
	if w.controls.IsVisible() {
		panelY += 10
	}
	if w.overlays.IsEnabled(ui.OverlayPerf) {
		w.perf.SetPosition(10, panelY)
		w.perf.Draw(g.Perf().Stats(), g.Registry())
	}
	if w.overlays.IsEnabled(ui.OverlayStats) {
		w.stats.SetPosition(10, panelY)
		w.stats.Draw(w.statsData(view))
	}

	cam := g.Camera()
	res := w.buttons.Draw(view, w.width, w.height, float32(cam.Zoom))
	w.pending = res.Intent
	if res.Zoom > 0 {
		cam.SetZoom(float64(res.Zoom))
	}

	rl.EndDrawing()
}

func (w *Window) statsData(v game.View) ui.StatsData {
	g := w.runner.Game
	data := ui.StatsData{
		Current:    g.Lives().Current(v.Elapsed),
		Lives:      g.Lives().Count(),
		Difficulty: v.Difficulty,
		Drawn:      w.world.Drawn(),
	}
	data.Best, data.HasBest = g.HallOfFame().Best()
	return data
}
