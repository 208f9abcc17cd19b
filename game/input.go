package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Limits for the speed keys.
const (
	minStepsPerUpdate = 1
	maxStepsPerUpdate = 10
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyComma) {
		g.stepsPerUpdate = max(minStepsPerUpdate, g.stepsPerUpdate-1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.stepsPerUpdate = min(maxStepsPerUpdate, g.stepsPerUpdate+1)
	}

	// Single step while paused
	if g.paused && rl.IsKeyPressed(rl.KeyN) {
		if err := g.Step(); err != nil {
			slog.Error("simulation step failed", "tick", g.tick, "error", err)
		}
	}

	if rl.IsKeyPressed(rl.KeyT) {
		g.tuning.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyO) {
		g.overlayPanel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		g.overlays.HandleKeyPress(key)
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	g.handleCameraInput()
}

// handleCameraInput pans with the right mouse button, zooms with the wheel
// and resets on Home.
func (g *Game) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.ZoomBy(1 + 0.1*float64(wheel))
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		g.cam.Pan(-float64(d.X), -float64(d.Y))
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
	}
}
