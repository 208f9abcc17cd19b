package game

import (
	"testing"

	"github.com/pthm-cable/predprey/components"
	"github.com/pthm-cable/predprey/geom"
	"github.com/pthm-cable/predprey/systems"
)

func TestPickCreature(t *testing.T) {
	b := geom.Bounds{Width: 1000, Height: 1000}
	prey := []systems.Creature{
		{ID: 1, Pos: geom.Vec2{X: 100, Y: 100}},
		{ID: 2, Pos: geom.Vec2{X: 995, Y: 500}},
	}
	preds := []systems.Creature{
		{ID: 3, Pos: geom.Vec2{X: 112, Y: 100}},
	}

	tests := []struct {
		name   string
		at     geom.Vec2
		wantID uint32
		kind   components.Kind
		found  bool
	}{
		{"nearest prey", geom.Vec2{X: 102, Y: 100}, 1, components.KindPrey, true},
		{"nearest predator", geom.Vec2{X: 110, Y: 100}, 3, components.KindPredator, true},
		{"predator wins tie", geom.Vec2{X: 106, Y: 100}, 3, components.KindPredator, true},
		{"across the seam", geom.Vec2{X: 3, Y: 500}, 2, components.KindPrey, true},
		{"nothing in reach", geom.Vec2{X: 500, Y: 500}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickCreature(tt.at, 10, prey, preds, b)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if !ok {
				return
			}
			if got.Creature.ID != tt.wantID || got.Kind != tt.kind {
				t.Errorf("picked %s #%d, want %s #%d", got.Kind, got.Creature.ID, tt.kind, tt.wantID)
			}
		})
	}
}

func TestPickCreatureEmpty(t *testing.T) {
	if _, ok := pickCreature(geom.Vec2{}, 10, nil, nil, geom.Bounds{Width: 10, Height: 10}); ok {
		t.Error("empty world should pick nothing")
	}
}
