package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/escape/clock"
	"github.com/pthm-cable/escape/components"
	"github.com/pthm-cable/escape/config"
)

// Viewport is the visible area size in world units.
type Viewport struct {
	W, H float64
}

// HostileMapper creates hostile entities with their full component set.
type HostileMapper = ecs.Map5[
	components.Position,
	components.Velocity,
	components.Body,
	components.CollisionLayers,
	components.Hostile,
]

// Spawn describes one hostile created by the director.
type Spawn struct {
	Entity   ecs.Entity
	ID       uint32
	Position r2.Vec
	Scale    float64
	Variant  components.Variant
}

// SpawnDirector creates hostiles just outside the viewport on a repeating timer.
type SpawnDirector struct {
	world      *ecs.World
	cfg        config.HostileConfig
	mapper     *HostileMapper
	rng        *RNG
	population *Population
	difficulty *Difficulty

	Timer  *clock.Timer
	nextID uint32
}

// NewSpawnDirector creates a director spawning into w.
func NewSpawnDirector(w *ecs.World, cfg config.HostileConfig, interval float64, rng *RNG, pop *Population, diff *Difficulty) *SpawnDirector {
	return &SpawnDirector{
		world: w,
		cfg:   cfg,
		mapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Body,
			components.CollisionLayers,
			components.Hostile,
		](w),
		rng:        rng,
		population: pop,
		difficulty: diff,
		Timer:      clock.NewTimer(interval),
		nextID:     1,
	}
}

// Update ticks the spawn timer and attempts one spawn when it finishes.
func (s *SpawnDirector) Update(dt float64, player r2.Vec, view Viewport) (Spawn, bool) {
	s.Timer.Tick(dt)
	if !s.Timer.JustFinished() {
		return Spawn{}, false
	}
	return s.TrySpawn(player, view)
}

// TrySpawn creates one hostile unless the population is at its cap.
// RNG draw order: scale, rare flag, x side, x offset, y side, y offset.
func (s *SpawnDirector) TrySpawn(player r2.Vec, view Viewport) (Spawn, bool) {
	if s.population.AtMax() {
		return Spawn{}, false
	}

	scale := s.drawScale()
	variant := components.VariantCommon
	if s.rng.Bool(s.cfg.RareChance) {
		variant = components.VariantRare
	}
	pos := r2.Vec{
		X: s.drawAxis(player.X, view.W),
		Y: s.drawAxis(player.Y, view.H),
	}

	id := s.nextID
	s.nextID++
	layers := components.HostileLayers

	e := s.mapper.NewEntity(
		&components.Position{X: pos.X, Y: pos.Y},
		&components.Velocity{},
		&components.Body{
			Radius:  HostileRadius(s.cfg, view.W, scale),
			Density: s.cfg.Density * scale,
			Damping: s.cfg.Damping,
		},
		&layers,
		&components.Hostile{
			ID:        id,
			Speed:     s.cfg.Speed,
			SizeScale: scale,
			Variant:   variant,
		},
	)
	s.population.TryIncrement()

	return Spawn{Entity: e, ID: id, Position: pos, Scale: scale, Variant: variant}, true
}

// OutlierCeiling returns the upper bound of the outlier scale range at the current difficulty.
func (s *SpawnDirector) OutlierCeiling() float64 {
	return s.cfg.OutlierScaleMax + float64(s.difficulty.Level)/s.cfg.DifficultyDivisor
}

// Remove despawns a hostile. Dead handles are ignored.
func (s *SpawnDirector) Remove(e ecs.Entity) {
	if s.world.Alive(e) {
		s.world.RemoveEntity(e)
	}
}

func (s *SpawnDirector) drawScale() float64 {
	if s.rng.Bool(s.cfg.CommonChance) {
		return s.rng.Range(s.cfg.CommonScaleMin, s.cfg.CommonScaleMax)
	}
	return s.rng.Range(s.cfg.OutlierScaleMin, s.OutlierCeiling())
}

// drawAxis places a coordinate in the band one viewport extent plus margin away.
func (s *SpawnDirector) drawAxis(center, extent float64) float64 {
	if s.rng.Bool(0.5) {
		return s.rng.Range(center+extent, center+extent+s.cfg.SpawnMargin)
	}
	return s.rng.Range(center-extent-s.cfg.SpawnMargin, center-extent)
}

// HostileRadius returns the collision radius of a hostile of the given scale.
func HostileRadius(cfg config.HostileConfig, viewportW, scale float64) float64 {
	return viewportW / cfg.SizeDivisor * scale / 2
}

// PlayerRadius returns the player's collision radius for a viewport width.
func PlayerRadius(cfg config.PlayerConfig, viewportW float64) float64 {
	return viewportW / cfg.SizeDivisor / 2
}
