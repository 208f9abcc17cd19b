package systems

import (
	"math"

	"github.com/pthm-cable/predprey/geom"
)

// FindNearest returns the index and squared toroidal distance of the target
// closest to pos. Ties go to the first target in scan order.
// ok is false when targets is empty.
func FindNearest(pos geom.Vec2, targets []Creature, b geom.Bounds) (idx int, distSq float64, ok bool) {
	idx = -1
	distSq = math.Inf(1)
	for i, t := range targets {
		d := b.DistanceSq(pos, t.Pos)
		if d < distSq {
			idx, distSq = i, d
		}
	}
	return idx, distSq, idx >= 0
}

// PursuitResult is one predator's move for a tick.
type PursuitResult struct {
	Predator  Creature // updated predator
	TargetID  uint32   // prey pursued this tick, valid when HasTarget
	HasTarget bool
	Captured  bool // target is within kill range of the new position
}

// Pursue steers a predator toward its nearest prey, moves it, and tests for
// capture. prey is only read; removing captured prey is the caller's job.
func Pursue(pred Creature, prey []Creature, p Params, b geom.Bounds) PursuitResult {
	idx, _, ok := FindNearest(pred.Pos, prey, b)
	if !ok {
		// Nothing to chase: drift.
		pred.Pos = b.Wrap(pred.Pos.Add(pred.Vel))
		return PursuitResult{Predator: pred}
	}

	target := prey[idx]
	desired := b.ShortestDisplacement(pred.Pos, target.Pos).Normalize()
	vel := Turn(pred.Vel, desired, p.Predator.MaxTurnAngle, p.Predator.Speed)
	pos := b.Wrap(pred.Pos.Add(vel))

	return PursuitResult{
		Predator:  Creature{ID: pred.ID, Pos: pos, Vel: vel},
		TargetID:  target.ID,
		HasTarget: true,
		Captured:  b.DistanceSq(pos, target.Pos) < p.KillDist*p.KillDist,
	}
}
