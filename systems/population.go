package systems

// Population counts live hostiles against the cap.
// Current never exceeds Max.
type Population struct {
	Current int
	Max     int
}

// NewPopulation creates an empty registry with the given cap. Negative caps clamp to zero.
func NewPopulation(max int) *Population {
	if max < 0 {
		max = 0
	}
	return &Population{Max: max}
}

// AtMax reports whether no more hostiles may be spawned.
func (p *Population) AtMax() bool { return p.Current >= p.Max }

// TryIncrement counts one more hostile, refusing at the cap.
func (p *Population) TryIncrement() bool {
	if p.AtMax() {
		return false
	}
	p.Current++
	return true
}

// Reset zeroes the count.
func (p *Population) Reset() { p.Current = 0 }
