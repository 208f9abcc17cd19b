package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/predprey/components"
	"github.com/pthm-cable/predprey/geom"
	"github.com/pthm-cable/predprey/systems"
	"github.com/pthm-cable/predprey/ui"
)

// Max hover distance in pixels.
const hoverRadius = 20

// hoveredCreature is the creature under the cursor.
type hoveredCreature struct {
	Creature systems.Creature
	Kind     components.Kind
}

// findCreatureAtMouse returns the creature nearest the cursor within
// hoverRadius pixels, measured in the world so the wrap seam is honored.
func (g *Game) findCreatureAtMouse() (hoveredCreature, bool) {
	mouse := rl.GetMousePosition()
	at := g.cam.ScreenToWorld(mouse.X, mouse.Y)
	return pickCreature(at, hoverRadius/g.cam.Scale(), g.prey, g.predators, g.bounds)
}

// pickCreature returns the creature nearest at within radius world units.
// Predators win ties.
func pickCreature(at geom.Vec2, radius float64, prey, predators []systems.Creature, b geom.Bounds) (hoveredCreature, bool) {
	var picked hoveredCreature
	best := radius * radius
	found := false

	if i, d, ok := systems.FindNearest(at, predators, b); ok && d <= best {
		picked, best, found = hoveredCreature{Creature: predators[i], Kind: components.KindPredator}, d, true
	}
	if i, d, ok := systems.FindNearest(at, prey, b); ok && d < best {
		picked, found = hoveredCreature{Creature: prey[i], Kind: components.KindPrey}, true
	}
	return picked, found
}

// drawTooltip shows identity and lifetime stats of the hovered creature.
func (g *Game) drawTooltip() {
	hovered, ok := g.findCreatureAtMouse()
	if !ok {
		return
	}
	c := hovered.Creature

	lines := []string{
		fmt.Sprintf("%s #%d", hovered.Kind, c.ID),
		"",
		fmt.Sprintf("Pos: %.0f, %.0f", c.Pos.X, c.Pos.Y),
		fmt.Sprintf("Heading: %.0f deg", c.Heading()*180/math.Pi),
		fmt.Sprintf("Speed: %.2f", c.Vel.Len()),
	}

	if ls := g.lifetimeTracker.Get(c.ID); ls != nil {
		lines = append(lines, fmt.Sprintf("Age: %d ticks", g.tick-ls.BirthTick))
		if hovered.Kind == components.KindPredator {
			lines = append(lines, fmt.Sprintf("Captures: %d", ls.Captures))
		} else {
			lines = append(lines, fmt.Sprintf("Targeted: %d ticks", ls.TicksTargeted))
		}
	}

	if hovered.Kind == components.KindPredator {
		if preyID, ok := g.targets[c.ID]; ok {
			lines = append(lines, fmt.Sprintf("Chasing: #%d", preyID))
		}
	}

	mouse := rl.GetMousePosition()
	ui.DrawTooltip(int32(mouse.X), int32(mouse.Y), lines, kindColor(hovered.Kind),
		int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
}
