package game

import (
	"log/slog"

	"github.com/pthm-cable/predprey/systems"
	"github.com/pthm-cable/predprey/telemetry"
)

// Ticks a capture mark stays on screen.
const captureMarkTicks = 90

type captureMark struct {
	X, Y float64
	Tick int32
}

// recordTick turns the tick's pursuit and capture results into telemetry.
// g.tick already counts the finished tick.
func (g *Game) recordTick(t systems.Tick) {
	g.targets = t.Targets
	g.lifetimeTracker.RecordTargets(t.Targets)

	if len(t.Captures) == 0 {
		g.expireCaptureMarks()
		return
	}

	events := make([]telemetry.CaptureEvent, 0, len(t.Captures))
	for _, c := range t.Captures {
		ev := telemetry.NewCaptureEvent(g.tick, c)
		g.lifetimeTracker.RecordCapture(&ev)
		g.collector.RecordCapture(ev)
		events = append(events, ev)

		if !g.headless {
			g.captureMarks = append(g.captureMarks, captureMark{X: ev.X, Y: ev.Y, Tick: g.tick})
		}
	}
	g.expireCaptureMarks()

	if err := g.outputManager.WriteCaptures(events); err != nil {
		slog.Error("failed to write captures", "error", err)
	}
	if err := g.runStore.SaveCaptures(g.runID, events); err != nil {
		slog.Error("failed to store captures", "error", err)
	}
}

func (g *Game) expireCaptureMarks() {
	n := 0
	for _, m := range g.captureMarks {
		if g.tick-m.Tick < captureMarkTicks {
			g.captureMarks[n] = m
			n++
		}
	}
	g.captureMarks = g.captureMarks[:n]
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry(t systems.Tick) {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	sample := telemetry.SampleFlock(t.Prey, t.Predators, g.bounds)
	stats := g.collector.Flush(g.tick, len(t.Prey), len(t.Predators), sample)
	perfStats := g.tickTimer.Stats()
	g.lastStats, g.hasStats = stats, true

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
		if id, n, ok := g.lifetimeTracker.TopHunter(); ok {
			slog.Info("top hunter", "predator_id", id, "captures", n)
		}
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	if err := g.runStore.SaveWindow(g.runID, stats); err != nil {
		slog.Error("failed to store window", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}
