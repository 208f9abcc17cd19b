package systems

import (
	"math"

	"github.com/pthm-cable/predprey/geom"
)

// NeighborStats is one prey's view of the rest of the flock.
type NeighborStats struct {
	TooClose []geom.Vec2 // unit vectors pointing away from each too-close neighbor
	TooFar   []geom.Vec2 // unit vectors pointing toward each other neighbor
	AvgDist  float64     // mean toroidal distance to every other prey
}

// AnalyzeNeighbors scans every pair of prey and classifies each neighbor as
// too close or too far. The result is aligned with prey.
func AnalyzeNeighbors(prey []Creature, b geom.Bounds, minSeparation float64) []NeighborStats {
	out := make([]NeighborStats, len(prey))
	minSepSq := minSeparation * minSeparation
	for i := range prey {
		out[i] = analyzeNeighbor(i, prey, b, minSepSq)
	}
	return out
}

// analyzeNeighbor computes the stats for prey[i]. It only reads prey.
func analyzeNeighbor(i int, prey []Creature, b geom.Bounds, minSepSq float64) NeighborStats {
	var ns NeighborStats
	if len(prey) < 2 {
		return ns
	}

	self := prey[i].Pos
	var sum float64
	for j := range prey {
		if i == j {
			continue
		}
		other := prey[j].Pos
		d := b.DistanceSq(self, other)
		sum += math.Sqrt(d)

		if d < minSepSq {
			ns.TooClose = append(ns.TooClose, b.ShortestDisplacement(other, self).Normalize())
		} else {
			ns.TooFar = append(ns.TooFar, b.ShortestDisplacement(self, other).Normalize())
		}
	}
	ns.AvgDist = sum / float64(len(prey)-1)
	return ns
}

// MeanHeading returns the normalized sum of all prey velocities,
// or the zero vector if they cancel out.
func MeanHeading(prey []Creature) geom.Vec2 {
	var sum geom.Vec2
	for _, p := range prey {
		sum = sum.Add(p.Vel)
	}
	return sum.Normalize()
}

func sumVecs(vs []geom.Vec2) geom.Vec2 {
	var sum geom.Vec2
	for _, v := range vs {
		sum = sum.Add(v)
	}
	return sum
}
