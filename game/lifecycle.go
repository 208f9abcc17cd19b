package game

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/predprey/components"
	"github.com/pthm-cable/predprey/systems"
)

// spawnInitialPopulation creates the configured prey and predators.
func (g *Game) spawnInitialPopulation() {
	pop := systems.Initialize(g.params, g.bounds, g.cfg.Prey.Number, g.cfg.Predator.Number, g.rng)
	for _, c := range pop.Prey {
		g.spawnCreature(c, components.KindPrey)
	}
	for _, c := range pop.Predators {
		g.spawnCreature(c, components.KindPredator)
	}
	g.nextID = pop.NextID
}

// spawnCreature adds a creature entity and registers its lifetime stats.
func (g *Game) spawnCreature(c systems.Creature, kind components.Kind) ecs.Entity {
	pos := components.Position{X: c.Pos.X, Y: c.Pos.Y}
	vel := components.Velocity{X: c.Vel.X, Y: c.Vel.Y}
	org := components.Organism{ID: c.ID, Kind: kind}

	entity := g.creatureMap.NewEntity(&pos, &vel, &org)
	g.entities[c.ID] = entity
	g.lifetimeTracker.Register(c.ID, g.tick, kind)
	if c.ID >= g.nextID {
		g.nextID = c.ID + 1
	}
	return entity
}

// collectCreatures fills the reused prey and predator buffers from the
// world, sorted by ID so every run with the same seed steps identically.
func (g *Game) collectCreatures() {
	g.prey = g.prey[:0]
	g.predators = g.predators[:0]

	query := g.creatureFilter.Query()
	for query.Next() {
		pos, vel, org := query.Get()
		c := systems.Creature{
			ID:  org.ID,
			Pos: pos.Vec(),
			Vel: vel.Vec(),
		}
		if org.Kind == components.KindPredator {
			g.predators = append(g.predators, c)
		} else {
			g.prey = append(g.prey, c)
		}
	}

	byID := func(a, b systems.Creature) int { return cmp.Compare(a.ID, b.ID) }
	slices.SortFunc(g.prey, byID)
	slices.SortFunc(g.predators, byID)
}

// applyTick writes moved creatures back to their entities and removes the
// captured prey.
func (g *Game) applyTick(t systems.Tick) {
	write := func(cs []systems.Creature) {
		for _, c := range cs {
			entity, ok := g.entities[c.ID]
			if !ok {
				continue
			}
			pos, vel, _ := g.creatureMap.Get(entity)
			pos.X, pos.Y = c.Pos.X, c.Pos.Y
			vel.X, vel.Y = c.Vel.X, c.Vel.Y
		}
	}
	write(t.Prey)
	write(t.Predators)

	for _, capt := range t.Captures {
		g.removeCreature(capt.PreyID)
	}
}

// removeCreature deletes a creature entity. Must not be called while a
// query is iterating.
func (g *Game) removeCreature(id uint32) {
	entity, ok := g.entities[id]
	if !ok {
		return
	}
	if g.world.Alive(entity) {
		g.world.RemoveEntity(entity)
	}
	delete(g.entities, id)
}
