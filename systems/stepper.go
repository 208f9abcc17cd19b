package systems

import (
	"errors"
	"slices"

	"github.com/pthm-cable/predprey/geom"
)

// ErrStopped is returned by Stepper.Step once the stepper has been stopped.
var ErrStopped = errors.New("stepper stopped")

// Capture records one prey removed by a predator.
type Capture struct {
	PredatorID uint32
	PreyID     uint32
	Pos        geom.Vec2 // prey position at the start of the tick
}

// Tick is the result of one simulation step.
type Tick struct {
	Prey      []Creature
	Predators []Creature
	Captures  []Capture         // in predator order, one per removed prey
	Targets   map[uint32]uint32 // predator ID -> prey ID pursued this tick
}

// Step advances the simulation by one tick. The inputs are treated as the
// pre-tick snapshot and are not modified. Every new position is computed from
// that snapshot.
func Step(prey, predators []Creature, p Params, b geom.Bounds) Tick {
	return step(prey, predators, p, b, runSerial)
}

func step(prey, predators []Creature, p Params, b geom.Bounds, run func(n int, fn func(start, end int))) Tick {
	preySnap := slices.Clone(prey)
	predSnap := slices.Clone(predators)

	t := Tick{
		Predators: make([]Creature, len(predSnap)),
		Targets:   make(map[uint32]uint32, len(predSnap)),
	}

	// Pursuit: capture marks are keyed by prey ID and applied after all
	// creatures have moved.
	captured := make(map[uint32]struct{})
	for i, pred := range predSnap {
		r := Pursue(pred, preySnap, p, b)
		t.Predators[i] = r.Predator
		if !r.HasTarget {
			continue
		}
		t.Targets[pred.ID] = r.TargetID
		if !r.Captured {
			continue
		}
		if _, dup := captured[r.TargetID]; dup {
			continue
		}
		captured[r.TargetID] = struct{}{}
		t.Captures = append(t.Captures, Capture{
			PredatorID: pred.ID,
			PreyID:     r.TargetID,
			Pos:        preyPos(preySnap, r.TargetID),
		})
	}

	// Flocking: each prey reads only the snapshot and writes only moved[i].
	meanHeading := MeanHeading(preySnap)
	minSepSq := p.MinSeparation * p.MinSeparation
	moved := make([]Creature, len(preySnap))
	run(len(preySnap), func(start, end int) {
		for i := start; i < end; i++ {
			ns := analyzeNeighbor(i, preySnap, b, minSepSq)
			moved[i] = movePrey(preySnap[i], ns, meanHeading, predSnap, p, b)
		}
	})

	if len(captured) == 0 {
		t.Prey = moved
		return t
	}
	t.Prey = slices.DeleteFunc(moved, func(c Creature) bool {
		_, dead := captured[c.ID]
		return dead
	})
	return t
}

func preyPos(prey []Creature, id uint32) geom.Vec2 {
	for _, c := range prey {
		if c.ID == id {
			return c.Pos
		}
	}
	return geom.Zero
}

// Phase is the lifecycle state of a Stepper.
type Phase uint8

const (
	PhaseIdle     Phase = iota // created, no tick run yet
	PhaseRunning               // between ticks
	PhaseStepping              // inside Step
	PhaseStopped               // Stop called; Step returns ErrStopped
)

func (ph Phase) String() string {
	switch ph {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseStepping:
		return "stepping"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Stepper drives Step for a fixed world, spreading the per-prey work over a
// worker pool once the prey count reaches the threshold. It is not safe for
// concurrent use; callers run one Step at a time.
type Stepper struct {
	bounds    geom.Bounds
	threshold int
	pool      *workerPool
	phase     Phase
	ticks     uint64
}

// StepperOption configures a Stepper.
type StepperOption func(*Stepper)

// WithParallel sets the prey count at which work is split across workers and
// the worker count (0 = GOMAXPROCS). A threshold <= 0 disables parallelism.
func WithParallel(threshold, workers int) StepperOption {
	return func(s *Stepper) {
		s.threshold = threshold
		s.pool = newWorkerPool(workers)
	}
}

// NewStepper creates a stepper for the given world bounds.
func NewStepper(b geom.Bounds, opts ...StepperOption) *Stepper {
	s := &Stepper{
		bounds:    b,
		threshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pool == nil {
		s.pool = newWorkerPool(0)
	}
	return s
}


// Phase returns the current lifecycle state.
func (s *Stepper) Phase() Phase { return s.phase }

// Ticks returns the number of completed steps.
func (s *Stepper) Ticks() uint64 { return s.ticks }

// Step runs one tick. Params may differ between calls; they are fixed for the
// duration of the tick.
func (s *Stepper) Step(prey, predators []Creature, p Params) (Tick, error) {
	if s.phase == PhaseStopped {
		return Tick{}, ErrStopped
	}
	s.phase = PhaseStepping

	run := runSerial
	if s.threshold > 0 && len(prey) >= s.threshold {
		run = s.pool.run
	}
	t := step(prey, predators, p, s.bounds, run)

	s.ticks++
	s.phase = PhaseRunning
	return t, nil
}

// Stop releases the worker pool. Later calls to Step return ErrStopped.
func (s *Stepper) Stop() {
	if s.phase == PhaseStopped {
		return
	}
	s.pool.stop()
	s.phase = PhaseStopped
}
