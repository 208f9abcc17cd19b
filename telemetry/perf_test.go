package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTimer(window int) (*TickTimer, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	tt := NewTickTimer(window)
	tt.now = clock.now
	return tt, clock
}

// runTick times one tick whose phases take the given durations in order.
func runTick(tt *TickTimer, clock *fakeClock, durs ...time.Duration) {
	tt.Begin()
	for i, d := range durs {
		tt.Enter(Phase(i))
		clock.advance(d)
	}
	tt.End()
}

func TestTickTimerAverages(t *testing.T) {
	tt, clock := newTestTimer(10)

	for i := 0; i < 4; i++ {
		runTick(tt, clock, 100*time.Microsecond, 800*time.Microsecond, 50*time.Microsecond, 50*time.Microsecond)
	}

	s := tt.Stats()
	if s.Ticks != 4 {
		t.Errorf("ticks = %d, want 4", s.Ticks)
	}
	if s.AvgTick != time.Millisecond {
		t.Errorf("avg tick = %v, want 1ms", s.AvgTick)
	}
	if s.PhaseAvg[PhaseStep] != 800*time.Microsecond {
		t.Errorf("step avg = %v, want 800us", s.PhaseAvg[PhaseStep])
	}
	if s.Shares[PhaseStep] != 80 || s.Shares[PhaseCollect] != 10 {
		t.Errorf("shares = %v", s.Shares)
	}
	if s.TicksPerSecond != 1000 {
		t.Errorf("ticks/s = %v, want 1000", s.TicksPerSecond)
	}
}

func TestTickTimerEvictsOldTicks(t *testing.T) {
	tt, clock := newTestTimer(3)

	// Three slow ticks, then three fast ones push them out.
	for i := 0; i < 3; i++ {
		runTick(tt, clock, 0, 10*time.Millisecond)
	}
	for i := 0; i < 3; i++ {
		runTick(tt, clock, 0, time.Millisecond)
	}

	s := tt.Stats()
	if s.Ticks != 3 {
		t.Errorf("ticks = %d, want 3", s.Ticks)
	}
	if s.AvgTick != time.Millisecond {
		t.Errorf("avg tick = %v, want 1ms after eviction", s.AvgTick)
	}
}

func TestTickTimerUntimedGap(t *testing.T) {
	tt, clock := newTestTimer(5)

	// Time before the first phase counts toward the tick but no phase.
	tt.Begin()
	clock.advance(time.Millisecond)
	tt.Enter(PhaseApply)
	clock.advance(time.Millisecond)
	tt.End()

	s := tt.Stats()
	if s.AvgTick != 2*time.Millisecond {
		t.Errorf("avg tick = %v, want 2ms", s.AvgTick)
	}
	if s.Shares[PhaseApply] != 50 {
		t.Errorf("apply share = %v, want 50", s.Shares[PhaseApply])
	}
}

func TestTickTimerEmpty(t *testing.T) {
	s := NewTickTimer(0).Stats()
	if s.Ticks != 0 || s.AvgTick != 0 || s.TicksPerSecond != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestPhaseOrder(t *testing.T) {
	want := []string{"collect", "step", "apply", "telemetry"}
	phases := Phases()
	if len(phases) != len(want) {
		t.Fatalf("got %d phases, want %d", len(phases), len(want))
	}
	for i, ph := range phases {
		if ph.String() != want[i] {
			t.Errorf("phase %d = %q, want %q", i, ph, want[i])
		}
	}
}

func TestPerfRecord(t *testing.T) {
	tt, clock := newTestTimer(10)
	runTick(tt, clock, 0, 1500*time.Microsecond)

	row := tt.Stats().Record(400)
	if row.WindowEnd != 400 || row.Ticks != 1 || row.AvgTickUS != 1500 {
		t.Errorf("row = %+v", row)
	}
	if row.PhasePct != "collect=0.0 step=100.0 apply=0.0 telemetry=0.0" {
		t.Errorf("phase_pct = %q", row.PhasePct)
	}
}
