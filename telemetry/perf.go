package telemetry

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Phase is one stage of a driver tick.
type Phase uint8

const (
	PhaseCollect   Phase = iota // ECS query into ID-sorted creature slices
	PhaseStep                   // pursuit, flocking and capture in the core
	PhaseApply                  // write-back and removal of captured prey
	PhaseTelemetry              // capture events and window stats
	numPhases
)

var phaseNames = [numPhases]string{"collect", "step", "apply", "telemetry"}

func (ph Phase) String() string {
	if ph >= numPhases {
		return fmt.Sprintf("phase(%d)", ph)
	}
	return phaseNames[ph]
}

// Phases returns every phase in the order it runs within a tick.
func Phases() []Phase {
	out := make([]Phase, numPhases)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

// PhaseShares is the share of tick time spent in each phase, in percent.
type PhaseShares [numPhases]float64

// String renders the shares in tick order, e.g. "collect=4.0 step=90.1 ...".
func (s PhaseShares) String() string {
	parts := make([]string, numPhases)
	for i, pct := range s {
		parts[i] = fmt.Sprintf("%s=%.1f", Phase(i), pct)
	}
	return strings.Join(parts, " ")
}

// tickTiming is the wall time of one tick, total and per phase.
type tickTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

func (t *tickTiming) add(o tickTiming, sign time.Duration) {
	t.total += sign * o.total
	for i := range t.phases {
		t.phases[i] += sign * o.phases[i]
	}
}

// TickTimer times driver ticks phase by phase over a rolling window of the
// most recent ticks. Sums are kept incrementally so Stats is constant time.
type TickTimer struct {
	ring   []tickTiming
	next   int
	filled int
	sum    tickTiming

	cur        tickTiming
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	now func() time.Time
}

// NewTickTimer creates a timer averaging over the last window ticks.
func NewTickTimer(window int) *TickTimer {
	return &TickTimer{
		ring: make([]tickTiming, max(window, 1)),
		now:  time.Now,
	}
}

// Begin starts timing a tick.
func (tt *TickTimer) Begin() {
	tt.cur = tickTiming{}
	tt.tickStart = tt.now()
	tt.inPhase = false
}

// Enter closes the running phase, if any, and starts ph.
func (tt *TickTimer) Enter(ph Phase) {
	now := tt.now()
	tt.closePhase(now)
	tt.phase, tt.phaseStart, tt.inPhase = ph, now, true
}

// End closes the tick and adds it to the window, evicting the oldest tick
// once the window is full.
func (tt *TickTimer) End() {
	now := tt.now()
	tt.closePhase(now)
	tt.inPhase = false
	tt.cur.total = now.Sub(tt.tickStart)

	if tt.filled == len(tt.ring) {
		tt.sum.add(tt.ring[tt.next], -1)
	} else {
		tt.filled++
	}
	tt.ring[tt.next] = tt.cur
	tt.sum.add(tt.cur, 1)
	tt.next = (tt.next + 1) % len(tt.ring)
}

func (tt *TickTimer) closePhase(now time.Time) {
	if tt.inPhase {
		tt.cur.phases[tt.phase] += now.Sub(tt.phaseStart)
	}
}

// PerfStats summarizes the ticks in the timer's window.
type PerfStats struct {
	Ticks          int // ticks in the window
	AvgTick        time.Duration
	PhaseAvg       [numPhases]time.Duration
	Shares         PhaseShares
	TicksPerSecond float64
}

// Stats returns averages over the current window. Zero before the first tick.
func (tt *TickTimer) Stats() PerfStats {
	s := PerfStats{Ticks: tt.filled}
	if tt.filled == 0 {
		return s
	}
	n := time.Duration(tt.filled)
	s.AvgTick = tt.sum.total / n
	for i, d := range tt.sum.phases {
		s.PhaseAvg[i] = d / n
		if tt.sum.total > 0 {
			s.Shares[i] = float64(d) * 100 / float64(tt.sum.total)
		}
	}
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}
	for _, ph := range Phases() {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.Shares[ph]))
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the stats through the default logger.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// PerfRecord is one row of perf.csv.
type PerfRecord struct {
	WindowEnd   int32   `csv:"window_end"`
	Ticks       int     `csv:"ticks"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	PhasePct    string  `csv:"phase_pct"`
}

// Record flattens the stats into a perf.csv row.
func (s PerfStats) Record(windowEnd int32) PerfRecord {
	return PerfRecord{
		WindowEnd:   windowEnd,
		Ticks:       s.Ticks,
		AvgTickUS:   s.AvgTick.Microseconds(),
		TicksPerSec: s.TicksPerSecond,
		PhasePct:    s.Shares.String(),
	}
}
