package systems

import "github.com/pthm-cable/predprey/geom"

// Steering holds the four weighted components behind a prey's desired heading.
type Steering struct {
	Cohesion   geom.Vec2
	Alignment  geom.Vec2
	Separation geom.Vec2
	Flee       geom.Vec2
}

// Sum returns the unnormalized sum of the components.
func (s Steering) Sum() geom.Vec2 {
	return s.Cohesion.Add(s.Alignment).Add(s.Separation).Add(s.Flee)
}

// Desired returns the unit desired heading, or zero for "keep heading".
func (s Steering) Desired() geom.Vec2 {
	return s.Sum().Normalize()
}

// ComposeSteering computes the steering components for one prey.
// Each component is normalized before weighting so neighbor count does not
// change its strength.
func ComposeSteering(self Creature, ns NeighborStats, meanHeading geom.Vec2, predators []Creature, p Params, b geom.Bounds) Steering {
	var s Steering

	if ns.AvgDist > p.MinFlockDist {
		s.Cohesion = sumVecs(ns.TooFar).Normalize().Scale(p.Weights.Cohesion)
	}
	s.Alignment = meanHeading.Normalize().Scale(p.Weights.Alignment)
	s.Separation = sumVecs(ns.TooClose).Normalize().Scale(p.Weights.Separation)
	s.Flee = FleeVector(self, predators, p, b)

	return s
}

// FleeVector points from the nearest visible predator toward self. Its length
// is Weights.Flee at zero distance and falls linearly (in squared distance) to
// zero at the sight boundary. A non-positive sight distance disables fleeing.
func FleeVector(self Creature, predators []Creature, p Params, b geom.Bounds) geom.Vec2 {
	if p.PredatorSightDist <= 0 {
		return geom.Zero
	}
	idx, distSq, ok := FindNearest(self.Pos, predators, b)
	if !ok {
		return geom.Zero
	}
	sightSq := p.PredatorSightDist * p.PredatorSightDist
	if distSq >= sightSq {
		return geom.Zero
	}

	factor := 1 - distSq/sightSq
	away := b.ShortestDisplacement(predators[idx].Pos, self.Pos)
	return away.Normalize().Scale(p.Weights.Flee * factor)
}

// movePrey applies steering and turn limiting to one prey.
func movePrey(self Creature, ns NeighborStats, meanHeading geom.Vec2, predators []Creature, p Params, b geom.Bounds) Creature {
	desired := ComposeSteering(self, ns, meanHeading, predators, p, b).Desired()
	vel := Turn(self.Vel, desired, p.Prey.MaxTurnAngle, p.Prey.Speed)
	return Creature{
		ID:  self.ID,
		Pos: b.Wrap(self.Pos.Add(vel)),
		Vel: vel,
	}
}
