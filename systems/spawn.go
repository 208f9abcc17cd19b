package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/predprey/geom"
)

// Population is the initial creature set of a run.
type Population struct {
	Prey      []Creature
	Predators []Creature
	NextID    uint32 // first unused creature ID
}

// Initialize places numPrey prey and numPredators predators at uniformly
// random positions in [0,width) x [0,height), each with a uniformly random
// heading scaled to its species' speed. IDs start at 1; prey are numbered
// before predators.
func Initialize(p Params, b geom.Bounds, numPrey, numPredators int, rng *rand.Rand) Population {
	pop := Population{
		Prey:      make([]Creature, 0, max(numPrey, 0)),
		Predators: make([]Creature, 0, max(numPredators, 0)),
		NextID:    1,
	}
	for i := 0; i < numPrey; i++ {
		pop.Prey = append(pop.Prey, Spawn(pop.NextID, p.Prey.Speed, b, rng))
		pop.NextID++
	}
	for i := 0; i < numPredators; i++ {
		pop.Predators = append(pop.Predators, Spawn(pop.NextID, p.Predator.Speed, b, rng))
		pop.NextID++
	}
	return pop
}

// Spawn creates one creature at a random position and heading.
func Spawn(id uint32, speed float64, b geom.Bounds, rng *rand.Rand) Creature {
	pos := b.Wrap(geom.Vec2{
		X: rng.Float64() * b.Width,
		Y: rng.Float64() * b.Height,
	})
	heading := rng.Float64()*2*math.Pi - math.Pi
	return Creature{
		ID:  id,
		Pos: pos,
		Vel: geom.FromAngle(heading, speed),
	}
}
