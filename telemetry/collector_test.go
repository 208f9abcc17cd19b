package telemetry

import (
	"math"
	"testing"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(200)

	if c.ShouldFlush(199) {
		t.Error("ShouldFlush before window end")
	}
	if !c.ShouldFlush(200) {
		t.Error("ShouldFlush at window end")
	}

	c.RecordCapture(CaptureEvent{Tick: 50, SurvivalTicks: 50})
	c.RecordCapture(CaptureEvent{Tick: 150, SurvivalTicks: 150})
	c.RecordCapture(CaptureEvent{Tick: 160, SurvivalTicks: -1})

	sample := FlockSample{
		Polarization:  0.75,
		NeighborDists: []float64{10, 20, 30},
		PredatorDists: []float64{40, 80, 60},
	}
	stats := c.Flush(200, 17, 1, sample)

	if stats.WindowStartTick != 0 || stats.WindowEndTick != 200 {
		t.Errorf("window = %d..%d", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Captures != 3 || stats.CapturesTotal != 3 {
		t.Errorf("captures = %d/%d, want 3/3", stats.Captures, stats.CapturesTotal)
	}
	if math.Abs(stats.CaptureRate-15) > 1e-9 {
		t.Errorf("capture rate = %v, want 15", stats.CaptureRate)
	}
	if math.Abs(stats.SurvivalMean-100) > 1e-9 {
		t.Errorf("survival mean = %v, want 100 (unknown ages skipped)", stats.SurvivalMean)
	}
	if math.Abs(stats.NeighborDistMean-20) > 1e-9 {
		t.Errorf("neighbor dist mean = %v, want 20", stats.NeighborDistMean)
	}
	if math.Abs(stats.PredatorDistMean-60) > 1e-9 || stats.PredatorDistMin != 40 {
		t.Errorf("predator dist = %v/%v, want 60/40", stats.PredatorDistMean, stats.PredatorDistMin)
	}

	// Next window starts fresh but keeps the running total.
	c.RecordCapture(CaptureEvent{Tick: 250, SurvivalTicks: 250})
	next := c.Flush(400, 16, 1, FlockSample{})
	if next.WindowStartTick != 200 || next.Captures != 1 || next.CapturesTotal != 4 {
		t.Errorf("next window = %+v", next)
	}
	if next.PredatorDistMean != 0 || next.PredatorDistMin != 0 {
		t.Errorf("predator dist without predators = %v/%v", next.PredatorDistMean, next.PredatorDistMin)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0)
	if !c.ShouldFlush(1) {
		t.Error("a zero window should flush every tick")
	}
}
