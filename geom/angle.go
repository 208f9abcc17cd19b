package geom

import "math"

// NormalizeAngle wraps an angle to [-Pi, Pi].
func NormalizeAngle(a float64) float64 {
	return math.Remainder(a, 2*math.Pi)
}

// DiffAngle returns the absolute angular distance between a and b in [0, Pi].
func DiffAngle(a, b float64) float64 {
	return math.Abs(NormalizeAngle(b - a))
}
