package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(99), NewRNG(99)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Range(-5, 5), b.Range(-5, 5))
		assert.Equal(t, a.Bool(0.3), b.Bool(0.3))
	}
	assert.Equal(t, int64(99), a.Seed())
}

func TestRNGRange(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 1000; i++ {
		v := r.Range(0.8, 1.2)
		assert.GreaterOrEqual(t, v, 0.8)
		assert.Less(t, v, 1.2)
	}
	assert.Equal(t, 3.0, r.Range(3, 3))
	assert.Equal(t, 3.0, r.Range(3, 1))
}

func TestRNGBoolExtremes(t *testing.T) {
	r := NewRNG(1)
	for i := 0; i < 100; i++ {
		assert.False(t, r.Bool(0))
		assert.True(t, r.Bool(1))
	}
}

func TestPopulation(t *testing.T) {
	p := NewPopulation(2)
	assert.True(t, p.TryIncrement())
	assert.True(t, p.TryIncrement())
	assert.False(t, p.TryIncrement())
	assert.True(t, p.AtMax())
	assert.Equal(t, 2, p.Current)

	p.Reset()
	assert.Zero(t, p.Current)
	assert.False(t, p.AtMax())

	assert.True(t, NewPopulation(-3).AtMax(), "negative cap clamps to zero")
}

func TestDifficultySaturates(t *testing.T) {
	var d Difficulty
	for i := 0; i < 150; i++ {
		d.Increment()
	}
	assert.Equal(t, MaxDifficultyLevel, d.Level)
	assert.True(t, d.AtMax())
	assert.False(t, d.Increment())
	assert.InDelta(t, 1.0, d.Progress(), 1e-9)

	d.Reset()
	assert.Zero(t, d.Level)
	assert.Zero(t, d.Progress())
}

func TestDifficultySystemTimer(t *testing.T) {
	s := NewDifficultySystem(5)

	prev := 0
	for i := 0; i < 60*30; i++ {
		s.Update(1.0 / 60)
		assert.GreaterOrEqual(t, s.Level(), prev, "level never decreases")
		prev = s.Level()
	}
	// 30 seconds at one step per 5 seconds, allowing for float accumulation at the boundary
	assert.InDelta(t, 6, s.Level(), 1)

	s.Timer.Pause()
	s.Update(100)
	assert.Equal(t, prev, s.Level(), "paused timer freezes difficulty")

	s.Reset()
	assert.Zero(t, s.Level())
	assert.False(t, s.Timer.Paused())
}

func TestDifficultySystemLargeStep(t *testing.T) {
	s := NewDifficultySystem(5)
	assert.Equal(t, 3, s.Update(15.5))
	assert.Equal(t, 3, s.Level())
}

func TestRegistry(t *testing.T) {
	reg := NewSystemRegistry()

	info, ok := reg.Get(SystemPursuit)
	assert.True(t, ok)
	assert.Equal(t, "Pursuit", info.Name)
	assert.Equal(t, "unknown", reg.GetName("unknown"))
	assert.Equal(t, SystemPhysics, reg.IDs()[0])
	assert.Len(t, reg.ByCategory("ai"), 1)

	n := len(reg.All())
	reg.Register(SystemInfo{ID: SystemPursuit, Name: "Chase", Category: "ai"})
	assert.Len(t, reg.All(), n)
	assert.Equal(t, "Chase", reg.GetName(SystemPursuit))
}
