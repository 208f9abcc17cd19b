package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	captures      int
	survivalTicks []float64

	// Run totals
	capturesTotal int
}

// NewCollector creates a new stats collector that flushes every
// windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: int32(windowTicks),
	}
}

// RecordCapture records a capture event.
func (c *Collector) RecordCapture(ev CaptureEvent) {
	c.captures++
	c.capturesTotal++
	if ev.SurvivalTicks >= 0 {
		c.survivalTicks = append(c.survivalTicks, float64(ev.SurvivalTicks))
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, preyCount, predCount int, sample FlockSample) WindowStats {
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		PreyCount: preyCount,
		PredCount: predCount,

		Captures:      c.captures,
		CapturesTotal: c.capturesTotal,

		Polarization: sample.Polarization,
	}

	if span := currentTick - c.windowStartTick; span > 0 {
		stats.CaptureRate = float64(c.captures) * 1000 / float64(span)
	}
	if len(c.survivalTicks) > 0 {
		stats.SurvivalMean = stat.Mean(c.survivalTicks, nil)
	}

	stats.NeighborDistMean, stats.NeighborDistStd,
		stats.NeighborDistP10, stats.NeighborDistP50, stats.NeighborDistP90 = ComputeDistStats(sample.NeighborDists)

	if len(sample.PredatorDists) > 0 {
		stats.PredatorDistMean = stat.Mean(sample.PredatorDists, nil)
		stats.PredatorDistMin = floats.Min(sample.PredatorDists)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.captures = 0
	c.survivalTicks = c.survivalTicks[:0]

	return stats
}

// CapturesTotal returns the number of captures since the collector was created.
func (c *Collector) CapturesTotal() int {
	return c.capturesTotal
}

