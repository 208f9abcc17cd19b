package systems

import (
	"math"

	"github.com/pthm-cable/predprey/geom"
)

// Turn rotates current toward desired by at most maxTurn radians, always the
// shorter way around, and returns the new velocity with magnitude speed.
// A zero desired heading keeps the current heading.
func Turn(current, desired geom.Vec2, maxTurn, speed float64) geom.Vec2 {
	angle := current.Angle()
	if !desired.IsZero() {
		angle = TurnAngle(angle, desired.Angle(), maxTurn)
	}
	return geom.FromAngle(angle, speed)
}

// TurnAngle returns the heading reached by turning from current toward
// desired by at most maxTurn radians.
func TurnAngle(current, desired, maxTurn float64) float64 {
	delta := math.Min(geom.DiffAngle(current, desired), math.Max(maxTurn, 0))

	// Whichever direction lands closer to desired is the shorter way.
	if geom.DiffAngle(current+delta, desired) > geom.DiffAngle(current-delta, desired) {
		return geom.NormalizeAngle(current - delta)
	}
	return geom.NormalizeAngle(current + delta)
}
