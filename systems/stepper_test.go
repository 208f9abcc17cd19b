package systems

import (
	"errors"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/pthm-cable/predprey/config"
	"github.com/pthm-cable/predprey/geom"
)

func TestStepConservesPrey(t *testing.T) {
	p := testParams()
	b := geom.Bounds{Width: 400, Height: 300}
	pop := Initialize(p, b, 40, 0, rand.New(rand.NewSource(1)))

	prey := pop.Prey
	for tick := 0; tick < 300; tick++ {
		res := Step(prey, nil, p, b)
		if len(res.Prey) != 40 {
			t.Fatalf("tick %d: %d prey, want 40", tick, len(res.Prey))
		}
		if len(res.Captures) != 0 {
			t.Fatalf("tick %d: captures without predators", tick)
		}
		for _, c := range res.Prey {
			if !b.Contains(c.Pos) {
				t.Fatalf("tick %d: prey %d out of bounds at %+v", tick, c.ID, c.Pos)
			}
			if math.Abs(c.Vel.Len()-p.Prey.Speed) > eps {
				t.Fatalf("tick %d: prey %d speed %v", tick, c.ID, c.Vel.Len())
			}
		}
		prey = res.Prey
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	p := testParams()
	pop := Initialize(p, testBounds, 10, 2, rand.New(rand.NewSource(2)))
	preyBefore := slices.Clone(pop.Prey)
	predBefore := slices.Clone(pop.Predators)

	Step(pop.Prey, pop.Predators, p, testBounds)

	if !slices.Equal(pop.Prey, preyBefore) || !slices.Equal(pop.Predators, predBefore) {
		t.Error("Step modified its input slices")
	}
}

func TestStepCapture(t *testing.T) {
	p := testParams()
	p.KillDist = 5
	p.Predator = Species{Speed: 1, MaxTurnAngle: 0.1}

	prey := []Creature{
		{ID: 1, Pos: geom.Vec2{X: 3, Y: 0}, Vel: geom.Vec2{X: 0, Y: 2}},
		{ID: 2, Pos: geom.Vec2{X: 50, Y: 50}, Vel: geom.Vec2{X: 2, Y: 0}},
	}
	preds := []Creature{{ID: 10, Pos: geom.Vec2{X: 0, Y: 0}, Vel: geom.Vec2{X: 1, Y: 0}}}

	res := Step(prey, preds, p, testBounds)

	if len(res.Prey) != 1 || res.Prey[0].ID != 2 {
		t.Fatalf("surviving prey = %+v, want only ID 2", res.Prey)
	}
	if len(res.Captures) != 1 {
		t.Fatalf("captures = %d, want 1", len(res.Captures))
	}
	c := res.Captures[0]
	if c.PredatorID != 10 || c.PreyID != 1 || !vecNear(c.Pos, prey[0].Pos) {
		t.Errorf("capture = %+v", c)
	}
	if res.Targets[10] != 1 {
		t.Errorf("target of predator 10 = %d, want 1", res.Targets[10])
	}
}

func TestStepDuplicateCaptureRemovedOnce(t *testing.T) {
	p := testParams()
	p.KillDist = 5
	p.Predator = Species{Speed: 1, MaxTurnAngle: 0.1}

	prey := []Creature{
		{ID: 1, Pos: geom.Vec2{X: 50, Y: 50}, Vel: geom.Vec2{X: 0, Y: 2}},
		{ID: 2, Pos: geom.Vec2{X: 10, Y: 10}, Vel: geom.Vec2{X: 2, Y: 0}},
	}
	preds := []Creature{
		{ID: 10, Pos: geom.Vec2{X: 47, Y: 50}, Vel: geom.Vec2{X: 1, Y: 0}},
		{ID: 11, Pos: geom.Vec2{X: 53, Y: 50}, Vel: geom.Vec2{X: -1, Y: 0}},
	}

	res := Step(prey, preds, p, testBounds)

	if len(res.Captures) != 1 {
		t.Fatalf("captures = %d, want 1", len(res.Captures))
	}
	if res.Captures[0].PredatorID != 10 {
		t.Errorf("credited predator %d, want first in order (10)", res.Captures[0].PredatorID)
	}
	if len(res.Prey) != 1 || res.Prey[0].ID != 2 {
		t.Errorf("surviving prey = %+v, want only ID 2", res.Prey)
	}
	if len(res.Predators) != 2 {
		t.Errorf("predators = %d, want 2", len(res.Predators))
	}
}

func TestStepEmpty(t *testing.T) {
	res := Step(nil, nil, testParams(), testBounds)
	if len(res.Prey) != 0 || len(res.Predators) != 0 || len(res.Captures) != 0 {
		t.Errorf("Step on empty world = %+v", res)
	}
}

func TestStepEmptyPreyOverManyTicks(t *testing.T) {
	b := geom.Bounds{Width: 400, Height: 300}
	preds := []Creature{
		{ID: 1, Pos: geom.Vec2{X: 10, Y: 20}, Vel: geom.Vec2{X: 2.5, Y: -1.5}},
		{ID: 2, Pos: geom.Vec2{X: 390, Y: 290}, Vel: geom.Vec2{X: -3, Y: 0.5}},
	}
	start := slices.Clone(preds)

	for tick := 0; tick < 500; tick++ {
		res := Step(nil, preds, testParams(), b)
		if len(res.Captures) != 0 || len(res.Targets) != 0 {
			t.Fatalf("tick %d: captures %v targets %v with no prey", tick, res.Captures, res.Targets)
		}
		preds = res.Predators
		for i, c := range preds {
			if c.Vel != start[i].Vel {
				t.Fatalf("tick %d: predator %d velocity %v, want %v", tick, c.ID, c.Vel, start[i].Vel)
			}
			if !c.Pos.IsFinite() || !b.Contains(c.Pos) {
				t.Fatalf("tick %d: predator %d at %v", tick, c.ID, c.Pos)
			}
		}
	}
}

func TestStepPreyFleeNearbyPredator(t *testing.T) {
	p := testParams()
	p.Weights = Weights{Flee: 1}
	p.Prey.MaxTurnAngle = math.Pi

	prey := []Creature{{ID: 1, Pos: geom.Vec2{X: 50, Y: 50}, Vel: geom.Vec2{X: 0, Y: 2}}}
	preds := []Creature{{ID: 10, Pos: geom.Vec2{X: 40, Y: 50}, Vel: geom.Vec2{X: 0, Y: 2.5}}}

	res := Step(prey, preds, p, testBounds)
	if !vecNear(res.Prey[0].Vel, geom.Vec2{X: 2, Y: 0}) {
		t.Errorf("prey vel = %+v, want (2, 0)", res.Prey[0].Vel)
	}

	p.PredatorSightDist = 0
	res = Step(prey, preds, p, testBounds)
	if !vecNear(res.Prey[0].Vel, prey[0].Vel) {
		t.Errorf("prey vel with zero sight = %+v, want unchanged %+v", res.Prey[0].Vel, prey[0].Vel)
	}
}

func TestStepperParallelMatchesSerial(t *testing.T) {
	p := testParams()
	b := geom.Bounds{Width: 800, Height: 600}
	pop := Initialize(p, b, 300, 4, rand.New(rand.NewSource(42)))

	s := NewStepper(b, WithParallel(64, 4))
	defer s.Stop()

	serialPrey, serialPred := pop.Prey, pop.Predators
	parPrey, parPred := pop.Prey, pop.Predators
	for tick := 0; tick < 50; tick++ {
		want := Step(serialPrey, serialPred, p, b)
		got, err := s.Step(parPrey, parPred, p)
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if !slices.Equal(got.Prey, want.Prey) || !slices.Equal(got.Predators, want.Predators) {
			t.Fatalf("tick %d: parallel result differs from serial", tick)
		}
		if !slices.Equal(got.Captures, want.Captures) {
			t.Fatalf("tick %d: parallel captures differ", tick)
		}
		serialPrey, serialPred = want.Prey, want.Predators
		parPrey, parPred = got.Prey, got.Predators
	}
}

func TestStepperLifecycle(t *testing.T) {
	s := NewStepper(testBounds)
	if s.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want idle", s.Phase())
	}

	if _, err := s.Step(nil, nil, testParams()); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if s.Phase() != PhaseRunning {
		t.Errorf("phase = %v, want running", s.Phase())
	}
	if s.Ticks() != 1 {
		t.Errorf("ticks = %d, want 1", s.Ticks())
	}

	s.Stop()
	s.Stop()
	if s.Phase() != PhaseStopped {
		t.Errorf("phase = %v, want stopped", s.Phase())
	}
	if _, err := s.Step(nil, nil, testParams()); !errors.Is(err, ErrStopped) {
		t.Errorf("Step after Stop: err = %v, want ErrStopped", err)
	}
}

func TestInitialize(t *testing.T) {
	p := testParams()
	b := geom.Bounds{Width: 640, Height: 480}
	pop := Initialize(p, b, 20, 3, rand.New(rand.NewSource(9)))

	if len(pop.Prey) != 20 || len(pop.Predators) != 3 {
		t.Fatalf("counts = %d/%d, want 20/3", len(pop.Prey), len(pop.Predators))
	}
	if pop.NextID != 24 {
		t.Errorf("NextID = %d, want 24", pop.NextID)
	}

	seen := make(map[uint32]bool)
	check := func(c Creature, speed float64) {
		if seen[c.ID] {
			t.Errorf("duplicate ID %d", c.ID)
		}
		seen[c.ID] = true
		if !b.Contains(c.Pos) {
			t.Errorf("creature %d out of bounds: %+v", c.ID, c.Pos)
		}
		if math.Abs(c.Vel.Len()-speed) > eps {
			t.Errorf("creature %d speed = %v, want %v", c.ID, c.Vel.Len(), speed)
		}
	}
	for _, c := range pop.Prey {
		check(c, p.Prey.Speed)
	}
	for _, c := range pop.Predators {
		check(c, p.Predator.Speed)
	}
}

func TestParamsFromConfig(t *testing.T) {
	cfg := config.Defaults()
	p := ParamsFromConfig(cfg)

	if p.Weights.Flee != cfg.Weights.Flee || p.Weights.Separation != cfg.Weights.Separation {
		t.Errorf("weights not copied: %+v", p.Weights)
	}
	if p.Prey.Speed != cfg.Prey.Speed || p.Predator.MaxTurnAngle != cfg.Predator.MaxTurnAngle {
		t.Errorf("species not copied: %+v / %+v", p.Prey, p.Predator)
	}
	if p.KillDist != cfg.Predator.KillDist || p.PredatorSightDist != cfg.Prey.PredatorSightDist {
		t.Errorf("distances not copied: %+v", p)
	}

	b := BoundsFromConfig(cfg)
	if b.Width != cfg.Derived.WorldWidth || b.Height != cfg.Derived.WorldHeight {
		t.Errorf("bounds = %+v", b)
	}
}
