package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/escape/components"
	"github.com/pthm-cable/escape/config"
)

var testView = Viewport{W: 1200, H: 800}

func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

type spawnFixture struct {
	world    *ecs.World
	cfg      *config.Config
	pop      *Population
	diff     *Difficulty
	director *SpawnDirector
}

func newSpawnFixture(t *testing.T, seed int64) *spawnFixture {
	t.Helper()
	cfg := loadTestConfig(t)
	w := ecs.NewWorld()
	pop := NewPopulation(cfg.Population.Max)
	diff := &Difficulty{}
	return &spawnFixture{
		world:    w,
		cfg:      cfg,
		pop:      pop,
		diff:     diff,
		director: NewSpawnDirector(w, cfg.Hostile, cfg.Timers.SpawnInterval, NewRNG(seed), pop, diff),
	}
}

func countHostiles(w *ecs.World) int {
	n := 0
	query := ecs.NewFilter1[components.Hostile](w).Query()
	for query.Next() {
		n++
	}
	return n
}

func TestSpawnRefusedAtCap(t *testing.T) {
	f := newSpawnFixture(t, 1)
	f.pop.Current = f.pop.Max

	_, ok := f.director.TrySpawn(r2.Vec{}, testView)

	assert.False(t, ok)
	assert.Equal(t, 1000, f.pop.Current)
	assert.Zero(t, countHostiles(f.world))
}

func TestSpawnNeverExceedsCap(t *testing.T) {
	f := newSpawnFixture(t, 7)
	f.pop.Max = 25

	for i := 0; i < 100; i++ {
		f.director.TrySpawn(r2.Vec{}, testView)
	}

	assert.Equal(t, 25, f.pop.Current)
	assert.Equal(t, 25, countHostiles(f.world))
}

func TestSpawnSequenceIsReproducible(t *testing.T) {
	const seed = 42
	f := newSpawnFixture(t, seed)
	hc := f.cfg.Hostile
	player := r2.Vec{X: 10, Y: -20}

	// Mirror the draw order with an independent generator on the same seed
	ref := NewRNG(seed)
	for i := 0; i < 50; i++ {
		var wantScale float64
		if ref.Bool(hc.CommonChance) {
			wantScale = ref.Range(hc.CommonScaleMin, hc.CommonScaleMax)
		} else {
			wantScale = ref.Range(hc.OutlierScaleMin, hc.OutlierScaleMax)
		}
		wantRare := ref.Bool(hc.RareChance)
		var wantX, wantY float64
		if ref.Bool(0.5) {
			wantX = ref.Range(player.X+testView.W, player.X+testView.W+hc.SpawnMargin)
		} else {
			wantX = ref.Range(player.X-testView.W-hc.SpawnMargin, player.X-testView.W)
		}
		if ref.Bool(0.5) {
			wantY = ref.Range(player.Y+testView.H, player.Y+testView.H+hc.SpawnMargin)
		} else {
			wantY = ref.Range(player.Y-testView.H-hc.SpawnMargin, player.Y-testView.H)
		}

		got, ok := f.director.TrySpawn(player, testView)
		require.True(t, ok)
		assert.Equal(t, wantScale, got.Scale, "spawn %d scale", i)
		assert.Equal(t, wantRare, got.Variant == components.VariantRare, "spawn %d variant", i)
		assert.Equal(t, wantX, got.Position.X, "spawn %d x", i)
		assert.Equal(t, wantY, got.Position.Y, "spawn %d y", i)
		assert.Equal(t, uint32(i+1), got.ID)
	}
}

func TestSpawnPlacementBands(t *testing.T) {
	f := newSpawnFixture(t, 3)
	margin := f.cfg.Hostile.SpawnMargin
	player := r2.Vec{X: 500, Y: 300}

	inBand := func(v, center, extent float64) bool {
		hi := v >= center+extent && v < center+extent+margin
		lo := v >= center-extent-margin && v < center-extent
		return hi || lo
	}

	for i := 0; i < 500; i++ {
		s, ok := f.director.TrySpawn(player, testView)
		require.True(t, ok)
		assert.True(t, inBand(s.Position.X, player.X, testView.W), "x=%v", s.Position.X)
		assert.True(t, inBand(s.Position.Y, player.Y, testView.H), "y=%v", s.Position.Y)
	}
}

func TestSpawnScaleRangeWidensWithDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		level   int
		ceiling float64
	}{
		{"level 0", 0, 2.5},
		{"level 50", 50, 3.5},
		{"level 100", 100, 4.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newSpawnFixture(t, 11)
			f.diff.Level = tc.level
			assert.InDelta(t, tc.ceiling, f.director.OutlierCeiling(), 1e-9)

			maxSeen := 0.0
			for i := 0; i < 1000; i++ {
				s, ok := f.director.TrySpawn(r2.Vec{}, testView)
				require.True(t, ok)
				assert.GreaterOrEqual(t, s.Scale, 0.75)
				assert.Less(t, s.Scale, tc.ceiling)
				if s.Scale > maxSeen {
					maxSeen = s.Scale
				}
			}
			// With ~250 outlier draws the top of the range is well covered
			assert.Greater(t, maxSeen, tc.ceiling-0.5)
		})
	}
}

func TestSpawnRareProbability(t *testing.T) {
	f := newSpawnFixture(t, 5)
	f.pop.Max = 20000

	rare := 0
	const n = 20000
	for i := 0; i < n; i++ {
		s, _ := f.director.TrySpawn(r2.Vec{}, testView)
		if s.Variant == components.VariantRare {
			rare++
		}
	}

	rate := float64(rare) / n
	assert.InDelta(t, 0.01, rate, 0.004)
}

func TestSpawnCreatesHostileComponents(t *testing.T) {
	f := newSpawnFixture(t, 9)
	s, ok := f.director.TrySpawn(r2.Vec{}, testView)
	require.True(t, ok)

	body := ecs.NewMap1[components.Body](f.world).Get(s.Entity)
	vel := ecs.NewMap1[components.Velocity](f.world).Get(s.Entity)
	layers := ecs.NewMap1[components.CollisionLayers](f.world).Get(s.Entity)
	hostile := ecs.NewMap1[components.Hostile](f.world).Get(s.Entity)

	assert.InDelta(t, 1200.0/40*s.Scale/2, body.Radius, 1e-9)
	assert.InDelta(t, 10*s.Scale, body.Density, 1e-9)
	assert.Zero(t, vel.X)
	assert.Zero(t, vel.Y)
	assert.Equal(t, components.HostileLayers, *layers)
	assert.InDelta(t, 2.5, hostile.Speed, 1e-9)
	assert.Equal(t, 1, f.pop.Current)
}

func TestSpawnTimerGatesUpdate(t *testing.T) {
	f := newSpawnFixture(t, 13)

	_, ok := f.director.Update(0.25, r2.Vec{}, testView)
	assert.False(t, ok)
	_, ok = f.director.Update(0.25, r2.Vec{}, testView)
	assert.True(t, ok)

	f.director.Timer.Pause()
	for i := 0; i < 10; i++ {
		_, ok = f.director.Update(1, r2.Vec{}, testView)
		assert.False(t, ok)
	}
	assert.Equal(t, 1, f.pop.Current)
}

func TestSpawnRemove(t *testing.T) {
	f := newSpawnFixture(t, 17)
	s, _ := f.director.TrySpawn(r2.Vec{}, testView)

	f.director.Remove(s.Entity)
	assert.False(t, f.world.Alive(s.Entity))
	// Removing twice is a no-op
	f.director.Remove(s.Entity)
}
