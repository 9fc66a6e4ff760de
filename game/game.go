// Package game owns the simulation context: the entity world, the player,
// the timers and registries, and the state machine that gates them.
package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/escape/camera"
	"github.com/pthm-cable/escape/clock"
	"github.com/pthm-cable/escape/components"
	"github.com/pthm-cable/escape/config"
	"github.com/pthm-cable/escape/systems"
	"github.com/pthm-cable/escape/telemetry"
)

// PhysicsClock is the time control the core needs from the physics backend.
type PhysicsClock interface {
	Pause()
	Resume()
}

type noopPhysics struct{}

func (noopPhysics) Pause()  {}
func (noopPhysics) Resume() {}

// Options configures a new Game.
type Options struct {
	Physics PhysicsClock // may be nil when no backend is attached
	Seed    int64

	Output        *telemetry.OutputManager          // nil disables file output
	LogStats      bool                              // log window stats and bookmarks with slog
	StatsWindow   float64                           // seconds per stats window, 0 uses the config
	StatsCallback func(stats telemetry.WindowStats) // called once per flushed window
}

// playerMapper creates and reads the player entity.
type playerMapper = ecs.Map5[
	components.Position,
	components.Velocity,
	components.Body,
	components.CollisionLayers,
	components.Player,
]

// Game holds the complete simulation state. It is not safe for concurrent use.
type Game struct {
	cfg     *config.Config
	world   *ecs.World
	physics PhysicsClock

	playerMapper  *playerMapper
	player        ecs.Entity
	hostileFilter ecs.Filter4[components.Position, components.Velocity, components.Body, components.Hostile]

	// Systems
	rng        *systems.RNG
	population *systems.Population
	difficulty *systems.DifficultySystem
	spawner    *systems.SpawnDirector
	pursuit    *systems.PursuitSystem
	health     *systems.HealthSystem
	registry   *systems.SystemRegistry

	// Frame state
	clock      clock.Clock
	camera     *camera.Camera
	viewport   systems.Viewport
	state      State
	message    string
	subMessage string

	// Telemetry
	collector     *telemetry.Collector
	lives         *telemetry.LifeTracker
	hallOfFame    *telemetry.HallOfFame
	bookmarks     *telemetry.BookmarkDetector
	perf          *telemetry.PerfCollector
	output        *telemetry.OutputManager
	logStats      bool
	statsCallback func(stats telemetry.WindowStats)
}

// New creates a game in world w with the player at the origin.
// The world is shared with the physics backend, which must already be attached to it.
func New(w *ecs.World, cfg *config.Config, opts Options) *Game {
	phys := opts.Physics
	if phys == nil {
		phys = noopPhysics{}
	}
	window := opts.StatsWindow
	if window <= 0 {
		window = cfg.Telemetry.StatsWindow
	}

	g := &Game{
		cfg:     cfg,
		world:   w,
		physics: phys,
		playerMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.CollisionLayers,
			components.Player,
		](w),
		hostileFilter: *ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Hostile,
		](w),
		rng:        systems.NewRNG(opts.Seed),
		population: systems.NewPopulation(cfg.Population.Max),
		difficulty: systems.NewDifficultySystem(cfg.Timers.DifficultyInterval),
		pursuit:    systems.NewPursuitSystem(w),
		health:     systems.NewHealthSystem(),
		registry:   systems.NewSystemRegistry(),
		camera:     camera.New(cfg.Derived.ScreenW, cfg.Derived.ScreenH),
		viewport:   systems.Viewport{W: cfg.Derived.ScreenW, H: cfg.Derived.ScreenH},
		state:      StateRunning,

		collector:     telemetry.NewCollector(window),
		lives:         telemetry.NewLifeTracker(0),
		hallOfFame:    telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize),
		bookmarks:     telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkMilestones),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:        opts.Output,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	g.spawner = systems.NewSpawnDirector(w, cfg.Hostile, cfg.Timers.SpawnInterval, g.rng, g.population, g.difficulty.Difficulty)

	if runID := g.output.RunID(); runID != "" {
		g.collector.SetRunID(runID)
		g.lives.SetRunID(runID)
	}

	g.spawnPlayer()
	return g
}

// spawnPlayer creates the player entity at the origin with full health.
func (g *Game) spawnPlayer() {
	layers := components.PlayerLayers
	g.player = g.playerMapper.NewEntity(
		&components.Position{},
		&components.Velocity{},
		&components.Body{
			Radius:  systems.PlayerRadius(g.cfg.Player, g.viewport.W),
			Density: g.cfg.Player.Density,
			Damping: g.cfg.Player.Damping,
		},
		&layers,
		&components.Player{
			Speed:  g.cfg.Player.Speed,
			Health: components.MaxHealth,
		},
	)
}

// Advance runs one frame of the core, in order: movement, pursuit, spawn,
// difficulty, health, then the pause and reset transitions.
// events is the collision batch the physics backend reported for this frame.
func (g *Game) Advance(dt float64, events []components.CollisionEvent, in Input) {
	dt = g.clock.Advance(dt)
	now := g.clock.Elapsed()

	g.perf.StartPhase(systems.SystemMovement)
	pos, vel, _, _, player := g.playerMapper.Get(g.player)
	if g.state != StatePaused {
		g.camera.Follow(pos.Vec())
		if g.state != StateDead {
			systems.ApplyMovement(vel, player.Speed, in.Direction())
		}
	}
	target := pos.Vec()

	running := g.state == StateRunning

	g.perf.StartPhase(systems.SystemPursuit)
	if running {
		g.pursuit.Update(target)
	}

	g.perf.StartPhase(systems.SystemSpawn)
	if running {
		g.updateSpawn(dt, now, target)
	}

	g.perf.StartPhase(systems.SystemDifficulty)
	if running {
		g.difficulty.Update(dt)
	}

	g.perf.StartPhase(systems.SystemHealth)
	if g.state != StateDead {
		// Spawning may have moved storage; fetch the player again
		_, _, _, _, player = g.playerMapper.Get(g.player)
		g.applyContacts(now, events, &player.Health)
	}

	if in.TogglePause {
		g.togglePause()
	}
	if in.Reset {
		g.reset()
	}

	g.perf.StartPhase(systems.SystemTelemetry)
	g.observe(now)
}

// updateSpawn ticks the spawn timer and records the outcome.
func (g *Game) updateSpawn(dt, now float64, player r2.Vec) {
	atMax := g.population.AtMax()
	spawn, ok := g.spawner.Update(dt, player, g.viewport)
	switch {
	case ok:
		g.record(telemetry.NewSpawnEvent(now, spawn.Scale, spawn.Variant == components.VariantRare))
	case atMax && g.spawner.Timer.JustFinished():
		g.record(telemetry.Event{Type: telemetry.EventCapped, Time: now})
	}
}

// applyContacts feeds the collision batch to the health model and enters Dead on zero.
func (g *Game) applyContacts(now float64, events []components.CollisionEvent, health *int) {
	for _, ev := range events {
		if !systems.ClassifyContact(ev.A, ev.B) {
			continue
		}
		t := telemetry.EventContactBegan
		if ev.Phase == components.ContactEnded {
			t = telemetry.EventContactEnded
		}
		g.record(telemetry.Event{Type: t, Time: now})
	}

	res := g.health.Apply(health, events)
	if res.Damage > 0 {
		g.record(telemetry.NewHealthEvent(now, -res.Damage))
	}
	if res.Heals > 0 {
		g.record(telemetry.NewHealthEvent(now, res.Heals))
	}
	if res.Died {
		g.die()
	}
}

// Resize adapts the viewport, camera and collision radii to a new window size.
// Sizes below the configured minimum are clamped.
func (g *Game) Resize(w, h int) {
	w = max(w, g.cfg.Screen.MinWidth)
	h = max(h, g.cfg.Screen.MinHeight)
	g.viewport = systems.Viewport{W: float64(w), H: float64(h)}
	g.camera.Resize(g.viewport.W, g.viewport.H)

	_, _, body, _, _ := g.playerMapper.Get(g.player)
	body.Radius = systems.PlayerRadius(g.cfg.Player, g.viewport.W)

	query := g.hostileFilter.Query()
	for query.Next() {
		_, _, body, hostile := query.Get()
		body.Radius = systems.HostileRadius(g.cfg.Hostile, g.viewport.W, hostile.SizeScale)
	}
}

// Close finalizes output: the hall of fame is written and files are flushed.
func (g *Game) Close() error {
	if g.output == nil {
		return nil
	}
	if err := g.output.WriteHallOfFame(g.hallOfFame); err != nil {
		return err
	}
	return g.output.Close()
}

// State returns the current mode.
func (g *Game) State() State { return g.state }

// Camera returns the follow camera.
func (g *Game) Camera() *camera.Camera { return g.camera }

// World returns the entity world shared with the physics backend.
func (g *Game) World() *ecs.World { return g.world }

// Registry returns the per-frame system registry.
func (g *Game) Registry() *systems.SystemRegistry { return g.registry }

// Perf returns the per-phase timing collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }

// HallOfFame returns the longest lives so far.
func (g *Game) HallOfFame() *telemetry.HallOfFame { return g.hallOfFame }

// Lives returns the per-life tracker.
func (g *Game) Lives() *telemetry.LifeTracker { return g.lives }

// Seed returns the RNG seed the game was created with.
func (g *Game) Seed() int64 { return g.rng.Seed() }

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config { return g.cfg }
