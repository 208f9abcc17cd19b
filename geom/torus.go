package geom

import "math"

// Bounds is the size of the toroidal world. Opposite edges are identified.
type Bounds struct {
	Width, Height float64
}

// ShortestDisplacement returns the vector pointing from `from` to `to` along
// the shorter wrap-aware path. Each axis is minimized independently.
func (b Bounds) ShortestDisplacement(from, to Vec2) Vec2 {
	return Vec2{
		X: shortestAxis(to.X-from.X, b.Width),
		Y: shortestAxis(to.Y-from.Y, b.Height),
	}
}

// DistanceSq returns the squared toroidal distance between a and c.
func (b Bounds) DistanceSq(a, c Vec2) float64 {
	return b.ShortestDisplacement(a, c).LenSq()
}

// Wrap maps p into [0, Width) x [0, Height).
func (b Bounds) Wrap(p Vec2) Vec2 {
	return Vec2{X: wrapAxis(p.X, b.Width), Y: wrapAxis(p.Y, b.Height)}
}

// Contains reports whether p lies inside [0, Width) x [0, Height).
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// shortestAxis compares d with d shifted by one span toward zero and keeps
// whichever has the smaller magnitude.
func shortestAxis(d, span float64) float64 {
	if d < 0 {
		return absMin(d, d+span)
	}
	return absMin(d, d-span)
}

func absMin(a, b float64) float64 {
	if math.Abs(a) < math.Abs(b) {
		return a
	}
	return b
}

func wrapAxis(x, span float64) float64 {
	if span <= 0 {
		return x
	}
	r := math.Mod(x, span)
	if r < 0 {
		r += span
	}
	// -tiny + span can round up to span itself
	if r >= span {
		r = 0
	}
	return r
}
