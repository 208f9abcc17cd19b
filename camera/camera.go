// Package camera provides a pan and zoom viewport onto the toroidal world.
package camera

import (
	"github.com/pthm-cable/predprey/geom"
)

// Camera controls the viewport into the simulation world.
// At zoom 1 the whole world fits the viewport. Panning wraps.
type Camera struct {
	// Center is the world point shown at the middle of the viewport.
	Center geom.Vec2

	// Zoom is the magnification over the fit-to-window scale.
	Zoom float64

	// Viewport dimensions in pixels.
	ViewportW, ViewportH float64

	World geom.Bounds

	MinZoom, MaxZoom float64
}

// New creates a camera centered on the world with the whole world visible.
func New(viewportW, viewportH float64, world geom.Bounds) *Camera {
	return &Camera{
		Center:    geom.Vec2{X: world.Width / 2, Y: world.Height / 2},
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		World:     world,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
}

// fitScale is the pixels-per-unit that fits the whole world in the viewport.
func (c *Camera) fitScale() float64 {
	return min(c.ViewportW/c.World.Width, c.ViewportH/c.World.Height)
}

// Scale returns the current pixels per world unit.
func (c *Camera) Scale() float64 {
	return c.fitScale() * c.Zoom
}

// WorldToScreen converts a world point to screen coordinates, taking the
// wrap-aware path from the camera center.
func (c *Camera) WorldToScreen(p geom.Vec2) (sx, sy float32) {
	d := c.World.ShortestDisplacement(c.Center, p)
	s := c.Scale()
	return float32(c.ViewportW/2 + d.X*s), float32(c.ViewportH/2 + d.Y*s)
}

// ScreenToWorld converts screen coordinates to a wrapped world point.
func (c *Camera) ScreenToWorld(sx, sy float32) geom.Vec2 {
	s := c.Scale()
	d := geom.Vec2{
		X: (float64(sx) - c.ViewportW/2) / s,
		Y: (float64(sy) - c.ViewportH/2) / s,
	}
	return c.World.Wrap(c.Center.Add(d))
}

// IsVisible reports whether a circle at p with the given world radius could
// be on screen. Conservative, for culling.
func (c *Camera) IsVisible(p geom.Vec2, radius float64) bool {
	d := c.World.ShortestDisplacement(c.Center, p)
	s := c.Scale()
	halfW := c.ViewportW/(2*s) + radius
	halfH := c.ViewportH/(2*s) + radius
	return abs(d.X) <= halfW && abs(d.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	s := c.Scale()
	c.Center = c.World.Wrap(c.Center.Add(geom.Vec2{X: dx / s, Y: dy / s}))
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = max(c.MinZoom, min(c.MaxZoom, zoom))
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.Center = geom.Vec2{X: c.World.Width / 2, Y: c.World.Height / 2}
	c.Zoom = 1.0
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
