// Package camera provides a 2D follow camera over an unbounded world.
package camera

import "gonum.org/v1/gonum/spatial/r2"

// Camera controls the viewport into the world.
// It follows a target and supports zoom; the world has no edges.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float64

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Zoom constraints
	MinZoom, MaxZoom float64

	// Following is cleared to freeze the camera in place
	Following bool
}

// New creates a camera centered on the origin with 1:1 zoom.
func New(viewportW, viewportH float64) *Camera {
	return &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.25,
		MaxZoom:   4.0,
		Following: true,
	}
}

// Follow centers the camera on a world position unless following is suspended.
func (c *Camera) Follow(target r2.Vec) {
	if !c.Following {
		return
	}
	c.X, c.Y = target.X, target.Y
}

// Center returns the camera position.
func (c *Camera) Center() r2.Vec {
	return r2.Vec{X: c.X, Y: c.Y}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float64) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return abs(wx-c.X) <= halfW && abs(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the origin at 1:1 zoom and resumes following.
func (c *Camera) Reset() {
	c.X, c.Y = 0, 0
	c.Zoom = 1.0
	c.Following = true
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY) in world coordinates.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
