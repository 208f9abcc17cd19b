// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/predprey/geom"

// Kind distinguishes the two creature species.
type Kind uint8

const (
	KindPrey Kind = iota
	KindPredator
)

func (k Kind) String() string {
	switch k {
	case KindPrey:
		return "prey"
	case KindPredator:
		return "predator"
	default:
		return "unknown"
	}
}

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p Position) Vec() geom.Vec2 { return geom.Vec2{X: p.X, Y: p.Y} }

// Velocity represents an entity's velocity. Its magnitude is the species speed.
type Velocity struct {
	X, Y float64
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() geom.Vec2 { return geom.Vec2{X: v.X, Y: v.Y} }

// Organism holds the identity of a creature.
type Organism struct {
	ID   uint32 // stable creature ID, shared with the simulation core
	Kind Kind
}
