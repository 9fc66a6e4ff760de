// Package physics is the bundled rigid-body backend: damped integration of circle
// bodies, layer-filtered contact detection and begin/end contact events.
package physics

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/escape/components"
	"github.com/pthm-cable/escape/config"
	"github.com/pthm-cable/escape/systems"
)

// bodyState is a per-step snapshot of one body, resolved in place before write-back.
type bodyState struct {
	e      ecs.Entity
	pos    r2.Vec
	vel    r2.Vec
	radius float64
	invM   float64
	layers components.CollisionLayers
}

// Engine integrates every entity that has a position, velocity, body and collision layers.
type Engine struct {
	cfg    config.PhysicsConfig
	world  *ecs.World
	filter ecs.Filter4[components.Position, components.Velocity, components.Body, components.CollisionLayers]
	posMap *ecs.Map1[components.Position]
	velMap *ecs.Map1[components.Velocity]

	grid     *systems.SpatialGrid
	bodies   []bodyState
	index    map[ecs.Entity]int
	contacts *contactTracker
	scratch  []systems.Neighbor

	paused    bool
	timeScale float64
}

// NewEngine creates an engine over w.
func NewEngine(w *ecs.World, cfg config.PhysicsConfig) *Engine {
	grid := systems.NewSpatialGrid(cfg.GridCellSize)
	grid.MaxResults = 0 // every overlap must be seen

	return &Engine{
		cfg:       cfg,
		world:     w,
		filter:    *ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.CollisionLayers](w),
		posMap:    ecs.NewMap1[components.Position](w),
		velMap:    ecs.NewMap1[components.Velocity](w),
		grid:      grid,
		index:     make(map[ecs.Entity]int),
		contacts:  newContactTracker(),
		timeScale: cfg.TimeScale,
	}
}

// Pause suspends physics time. Bodies keep their velocities.
func (e *Engine) Pause() { e.paused = true }

// Resume restarts physics time.
func (e *Engine) Resume() { e.paused = false }

// Paused reports whether physics time is suspended.
func (e *Engine) Paused() bool { return e.paused }

// TimeScale returns the multiplier applied to frame deltas.
func (e *Engine) TimeScale() float64 { return e.timeScale }

// ActiveContacts returns the number of touching pairs after the last step.
func (e *Engine) ActiveContacts() int { return e.contacts.len() }

// Step advances the simulation by dt seconds of frame time and returns the contact
// transitions it produced. A paused engine does nothing and reports no events.
func (e *Engine) Step(dt float64) []components.CollisionEvent {
	if e.paused || dt <= 0 {
		return nil
	}
	h := dt * e.timeScale

	e.integrate(h)
	e.detect()
	e.resolve()
	e.writeBack()

	return e.contacts.commit(e.world)
}

// integrate applies damping, clamps speed and advances positions, snapshotting each body.
func (e *Engine) integrate(h float64) {
	e.bodies = e.bodies[:0]
	clear(e.index)

	query := e.filter.Query()
	for query.Next() {
		pos, vel, body, layers := query.Get()

		v := vel.Vec()
		if body.Damping > 0 {
			v = r2.Scale(1/(1+h*body.Damping), v)
		}
		if limit := e.cfg.MaxSpeed; limit > 0 {
			if speed := r2.Norm(v); speed > limit {
				v = r2.Scale(limit/speed, v)
			}
		}
		p := r2.Add(pos.Vec(), r2.Scale(h, v))

		vel.Set(v)
		pos.Set(p)

		ent := query.Entity()
		e.index[ent] = len(e.bodies)
		e.bodies = append(e.bodies, bodyState{
			e:      ent,
			pos:    p,
			vel:    v,
			radius: body.Radius,
			invM:   1 / body.Mass(),
			layers: *layers,
		})
	}
}

// detect finds touching pairs through the spatial grid and hands them to the contact tracker.
func (e *Engine) detect() {
	e.grid.Clear()
	maxR := 0.0
	for i := range e.bodies {
		b := &e.bodies[i]
		e.grid.Insert(b.e, b.pos)
		maxR = math.Max(maxR, b.radius)
	}

	for i := range e.bodies {
		a := &e.bodies[i]
		reach := a.radius + maxR + e.cfg.ContactSlop
		e.scratch = e.grid.QueryRadiusInto(e.scratch[:0], a.pos, reach, a.e, e.posMap)
		for _, n := range e.scratch {
			j, ok := e.index[n.E]
			if !ok || j <= i {
				continue
			}
			b := &e.bodies[j]
			if !a.layers.Interacts(b.layers) {
				continue
			}
			touch := a.radius + b.radius + e.cfg.ContactSlop
			if n.DistSq <= touch*touch {
				e.contacts.observe(a.e, b.e, a.layers, b.layers, i, j)
			}
		}
	}
}

// resolve separates overlapping pairs and removes their approaching normal velocity,
// both weighted by inverse mass.
func (e *Engine) resolve() {
	for _, c := range e.contacts.next {
		a, b := &e.bodies[c.ia], &e.bodies[c.ib]

		d := r2.Sub(b.pos, a.pos)
		dist := r2.Norm(d)
		n := r2.Vec{X: 1}
		if dist > 1e-9 {
			n = r2.Scale(1/dist, d)
		}
		wSum := a.invM + b.invM

		if pen := a.radius + b.radius - dist; pen > 0 {
			a.pos = r2.Sub(a.pos, r2.Scale(pen*a.invM/wSum, n))
			b.pos = r2.Add(b.pos, r2.Scale(pen*b.invM/wSum, n))
		}

		vn := r2.Dot(r2.Sub(b.vel, a.vel), n)
		if vn < 0 {
			j := -vn / wSum
			a.vel = r2.Sub(a.vel, r2.Scale(j*a.invM, n))
			b.vel = r2.Add(b.vel, r2.Scale(j*b.invM, n))
		}
	}
}

func (e *Engine) writeBack() {
	for i := range e.bodies {
		b := &e.bodies[i]
		e.posMap.Get(b.e).Set(b.pos)
		e.velMap.Get(b.e).Set(b.vel)
	}
}
