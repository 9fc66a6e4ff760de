package clock

// Clock tracks frame deltas and total simulated time.
type Clock struct {
	delta   float64
	elapsed float64
	frame   uint64
}

// Advance records a frame of dt seconds. Negative deltas are treated as zero.
func (c *Clock) Advance(dt float64) float64 {
	if dt < 0 {
		dt = 0
	}
	c.delta = dt
	c.elapsed += dt
	c.frame++
	return dt
}

// Delta returns the last recorded frame delta.
func (c *Clock) Delta() float64 { return c.delta }

// Elapsed returns the sum of all recorded deltas.
func (c *Clock) Elapsed() float64 { return c.elapsed }

// Frame returns the number of Advance calls.
func (c *Clock) Frame() uint64 { return c.frame }
