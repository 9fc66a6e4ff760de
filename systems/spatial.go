package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/escape/components"
)

// Neighbor holds a nearby entity with precomputed spatial data.
type Neighbor struct {
	E      ecs.Entity
	Delta  r2.Vec  // from query origin to the neighbor
	DistSq float64 // squared distance (avoid sqrt in hot path)
}

type cellKey struct {
	col, row int
}

// SpatialGrid provides neighbor lookups on an unbounded plane.
// Cells are hashed so the grid follows the player without a fixed world size.
type SpatialGrid struct {
	cellSize float64
	cells    map[cellKey][]ecs.Entity
	used     []cellKey // cells touched since the last Clear
	count    int

	// MaxResults caps QueryRadiusInto. Zero means unlimited.
	MaxResults int
}

// MaxQueryResults is the default cap on neighbors returned by spatial queries.
// This prevents density spikes from causing unbounded work.
const MaxQueryResults = 128

// NewSpatialGrid creates a grid with the given cell size.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &SpatialGrid{
		cellSize:   cellSize,
		cells:      make(map[cellKey][]ecs.Entity),
		MaxResults: MaxQueryResults,
	}
}

// Clear removes all entities while keeping cell storage for reuse.
func (g *SpatialGrid) Clear() {
	for _, k := range g.used {
		g.cells[k] = g.cells[k][:0]
	}
	g.used = g.used[:0]
	g.count = 0
}

// Len returns the number of inserted entities.
func (g *SpatialGrid) Len() int { return g.count }

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, p r2.Vec) {
	k := g.key(p)
	list := g.cells[k]
	if len(list) == 0 {
		g.used = append(g.used, k)
	}
	g.cells[k] = append(list, e)
	g.count++
}

// QueryRadiusInto finds entities within radius of center and appends them to dst.
// Reuse dst across calls to avoid allocations.
func (g *SpatialGrid) QueryRadiusInto(dst []Neighbor, center r2.Vec, radius float64, exclude ecs.Entity, posMap *ecs.Map1[components.Position]) []Neighbor {
	lo := g.key(r2.Vec{X: center.X - radius, Y: center.Y - radius})
	hi := g.key(r2.Vec{X: center.X + radius, Y: center.Y + radius})
	radiusSq := radius * radius

	for col := lo.col; col <= hi.col; col++ {
		for row := lo.row; row <= hi.row; row++ {
			for _, e := range g.cells[cellKey{col, row}] {
				if e == exclude {
					continue
				}
				pos := posMap.Get(e)
				if pos == nil {
					continue
				}
				d := r2.Sub(pos.Vec(), center)
				distSq := r2.Norm2(d)
				if distSq > radiusSq {
					continue
				}
				dst = append(dst, Neighbor{E: e, Delta: d, DistSq: distSq})
				if g.MaxResults > 0 && len(dst) >= g.MaxResults {
					return dst
				}
			}
		}
	}
	return dst
}

func (g *SpatialGrid) key(p r2.Vec) cellKey {
	return cellKey{
		col: int(math.Floor(p.X / g.cellSize)),
		row: int(math.Floor(p.Y / g.cellSize)),
	}
}
