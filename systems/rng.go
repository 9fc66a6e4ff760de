package systems

import "math/rand"

// RNG is the single seeded random source injected into the spawn director.
// A fixed seed reproduces the exact spawn sequence.
type RNG struct {
	r    *rand.Rand
	seed int64
}

// NewRNG creates a generator seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed)), seed: seed}
}

// Seed returns the seed the generator was created with.
func (g *RNG) Seed() int64 { return g.seed }

// Bool returns true with probability p. One draw.
func (g *RNG) Bool(p float64) bool {
	return g.r.Float64() < p
}

// Range returns a uniform value in [lo, hi). One draw.
// An empty or inverted range yields lo, still consuming the draw to keep sequences aligned.
func (g *RNG) Range(lo, hi float64) float64 {
	f := g.r.Float64()
	if hi <= lo {
		return lo
	}
	return lo + f*(hi-lo)
}

// Float64 returns a uniform value in [0, 1).
func (g *RNG) Float64() float64 { return g.r.Float64() }
