package game

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/predprey/telemetry"
)

// Update handles input, then runs stepsPerUpdate ticks once the tick delay
// has elapsed since the previous batch.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	now := time.Now()
	if g.tickDelay > 0 && now.Sub(g.lastTickAt) < g.tickDelay {
		return
	}
	g.lastTickAt = now

	for i := 0; i < g.stepsPerUpdate; i++ {
		if err := g.Step(); err != nil {
			slog.Error("simulation step failed", "tick", g.tick, "error", err)
			g.paused = true
			return
		}
	}
}

// UpdateHeadless runs stepsPerUpdate ticks without rendering or input.
func (g *Game) UpdateHeadless() {
	if err := g.RunTicks(g.stepsPerUpdate); err != nil {
		slog.Error("simulation step failed", "tick", g.tick, "error", err)
	}
}

// RunTicks runs n ticks, stopping at the first error.
func (g *Game) RunTicks(n int) error {
	for i := 0; i < n; i++ {
		if err := g.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step runs one simulation tick.
func (g *Game) Step() error {
	if g.pendingParams != nil {
		g.params = *g.pendingParams
		g.pendingParams = nil
		slog.Info("params updated", "tick", g.tick, "weights", g.params.Weights)
	}

	g.tickTimer.Begin()

	// 1. Collect the world into creature slices
	g.tickTimer.Enter(telemetry.PhaseCollect)
	g.collectCreatures()

	// 2. Pursuit, flocking and capture
	g.tickTimer.Enter(telemetry.PhaseStep)
	t, err := g.stepper.Step(g.prey, g.predators, g.params)
	if err != nil {
		return err
	}

	// 3. Write back and remove captured prey
	g.tickTimer.Enter(telemetry.PhaseApply)
	g.applyTick(t)
	g.tick++

	// 4. Telemetry
	g.tickTimer.Enter(telemetry.PhaseTelemetry)
	g.recordTick(t)
	g.flushTelemetry(t)

	g.tickTimer.End()
	return nil
}
