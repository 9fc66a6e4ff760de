package components

import "math"

// Body holds the collision footprint and physics material of an entity.
type Body struct {
	Radius  float64
	Density float64
	Damping float64 // linear damping coefficient
}

// Mass returns density times disc area. Zero-density bodies are treated as unit mass.
func (b Body) Mass() float64 {
	m := b.Density * math.Pi * b.Radius * b.Radius
	if m <= 0 {
		return 1
	}
	return m
}
