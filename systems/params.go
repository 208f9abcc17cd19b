// Package systems implements the per-tick motion model: neighbor analysis and
// steering for prey, pursuit for predators, turn-rate limiting, and capture.
package systems

import (
	"github.com/pthm-cable/predprey/config"
	"github.com/pthm-cable/predprey/geom"
)

// Weights scales each steering component before the components are summed.
type Weights struct {
	Separation float64
	Alignment  float64
	Cohesion   float64
	Flee       float64
}

// Species holds the motion limits shared by every creature of one kind.
type Species struct {
	Speed        float64 // fixed velocity magnitude
	MaxTurnAngle float64 // radians per tick
}

// Params is the immutable per-tick configuration of the core.
// It is passed by value into every call; the core keeps no global state.
type Params struct {
	Weights  Weights
	Prey     Species
	Predator Species

	MinSeparation     float64 // prey closer than this are too close
	MinFlockDist      float64 // cohesion is suppressed at or below this average neighbor distance
	PredatorSightDist float64 // prey sense predators strictly inside this radius
	KillDist          float64 // predators capture prey strictly inside this radius
}

// ParamsFromConfig copies the tick-relevant values out of the loaded config.
func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		Weights: Weights{
			Separation: cfg.Weights.Separation,
			Alignment:  cfg.Weights.Alignment,
			Cohesion:   cfg.Weights.Cohesion,
			Flee:       cfg.Weights.Flee,
		},
		Prey: Species{
			Speed:        cfg.Prey.Speed,
			MaxTurnAngle: cfg.Prey.MaxTurnAngle,
		},
		Predator: Species{
			Speed:        cfg.Predator.Speed,
			MaxTurnAngle: cfg.Predator.MaxTurnAngle,
		},
		MinSeparation:     cfg.Prey.MinSeparation,
		MinFlockDist:      cfg.Prey.MinFlockDist,
		PredatorSightDist: cfg.Prey.PredatorSightDist,
		KillDist:          cfg.Predator.KillDist,
	}
}

// BoundsFromConfig returns the effective world bounds.
func BoundsFromConfig(cfg *config.Config) geom.Bounds {
	return geom.Bounds{Width: cfg.Derived.WorldWidth, Height: cfg.Derived.WorldHeight}
}

// Creature is the shared shape of prey and predators.
// ID is the creature's identity; it is stable for the creature's lifetime and
// is what captures are keyed by.
type Creature struct {
	ID  uint32
	Pos geom.Vec2
	Vel geom.Vec2
}

// Heading returns the creature's heading angle in (-Pi, Pi].
func (c Creature) Heading() float64 {
	return c.Vel.Angle()
}
