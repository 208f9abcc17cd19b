// Package geom provides the 2D vector and toroidal geometry primitives used by
// the simulation core.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec2 is an immutable 2D vector. Every operation returns a new value.
type Vec2 struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vec2{}

// FromAngle returns the vector of the given length pointing at angle theta.
func FromAngle(theta, length float64) Vec2 {
	return Vec2{X: math.Cos(theta) * length, Y: math.Sin(theta) * length}
}

func (v Vec2) r2() r2.Vec { return r2.Vec(v) }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2(r2.Add(v.r2(), o.r2()))
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2(r2.Sub(v.r2(), o.r2()))
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2(r2.Scale(k, v.r2()))
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return r2.Norm(v.r2())
}

// LenSq returns the squared length of v.
func (v Vec2) LenSq() float64 {
	return r2.Norm2(v.r2())
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns the unit vector colinear with v.
// The zero vector normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	if v.IsZero() {
		return v
	}
	return Vec2(r2.Unit(v.r2()))
}

// Angle returns atan2(y, x) in (-Pi, Pi].
func (v Vec2) Angle() float64 {
	a := math.Atan2(v.Y, v.X)
	if a == -math.Pi {
		return math.Pi
	}
	return a
}

// IsFinite reports whether neither component is NaN or infinite.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
