package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/predprey/components"
	"github.com/pthm-cable/predprey/geom"
	"github.com/pthm-cable/predprey/systems"
	"github.com/pthm-cable/predprey/ui"
)

// Creature triangle sizes in pixels.
const (
	preyRadius     = 5
	predatorRadius = 8
)

var backgroundColor = rl.Color{R: 12, G: 16, B: 22, A: 255}

const controlsLegend = "SPACE pause | N step | ,/. speed | T tuning | O overlays | P perf | wheel/RMB zoom+pan | HOME reset view | F11 fullscreen"

// Draw renders the world and the UI.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)
	g.cam.Resize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))

	g.collectCreatures()
	g.drawOverlaysBelow()
	g.drawCreatures()
	g.drawOverlaysAbove()
	g.drawTooltip()

	g.drawUI()

	rl.EndDrawing()
}

// worldToScreen maps a world point through the camera.
func (g *Game) worldToScreen(x, y float64) (float32, float32) {
	return g.cam.WorldToScreen(geom.Vec2{X: x, Y: y})
}

// worldScale is the screen size of one world unit.
func (g *Game) worldScale() float32 {
	return float32(g.cam.Scale())
}

func (g *Game) drawCreatures() {
	for _, c := range g.prey {
		if !g.cam.IsVisible(c.Pos, preyRadius) {
			continue
		}
		x, y := g.worldToScreen(c.Pos.X, c.Pos.Y)
		drawOrientedTriangle(x, y, float32(c.Heading()), preyRadius, ui.PreyColor)
	}
	for _, c := range g.predators {
		if !g.cam.IsVisible(c.Pos, predatorRadius) {
			continue
		}
		x, y := g.worldToScreen(c.Pos.X, c.Pos.Y)
		drawOrientedTriangle(x, y, float32(c.Heading()), predatorRadius, ui.PredatorColor)
	}
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	// Front point
	v1 := rl.Vector2{X: x + cos*radius*1.5, Y: y + sin*radius*1.5}

	// Back points
	backAngle1 := float64(heading) + math.Pi*0.8
	backAngle2 := float64(heading) - math.Pi*0.8
	v2 := rl.Vector2{
		X: x + float32(math.Cos(backAngle1))*radius,
		Y: y + float32(math.Sin(backAngle1))*radius,
	}
	v3 := rl.Vector2{
		X: x + float32(math.Cos(backAngle2))*radius,
		Y: y + float32(math.Sin(backAngle2))*radius,
	}

	rl.DrawTriangle(v1, v3, v2, color)
	rl.DrawTriangleLines(v1, v3, v2, rl.Color{R: 255, G: 255, B: 255, A: 80})
}

// drawOverlaysBelow renders overlays that sit under the creatures.
func (g *Game) drawOverlaysBelow() {
	scale := g.worldScale()

	if g.overlays.IsEnabled(ui.OverlaySightRadius) {
		g.drawPreyRings(float32(g.params.PredatorSightDist)*scale, rl.Color{R: 120, G: 200, B: 255, A: 25})
	}
	if g.overlays.IsEnabled(ui.OverlaySeparation) {
		g.drawPreyRings(float32(g.params.MinSeparation)*scale, rl.Color{R: 255, G: 220, B: 120, A: 40})
	}
	if g.overlays.IsEnabled(ui.OverlayCaptureMarks) {
		for _, m := range g.captureMarks {
			x, y := g.worldToScreen(m.X, m.Y)
			fade := 1 - float32(g.tick-m.Tick)/captureMarkTicks
			rl.DrawCircleLines(int32(x), int32(y), 6+10*(1-fade), rl.Fade(ui.PredatorColor, fade))
		}
	}
}

func (g *Game) drawPreyRings(radius float32, color rl.Color) {
	for _, c := range g.prey {
		x, y := g.worldToScreen(c.Pos.X, c.Pos.Y)
		rl.DrawCircleLines(int32(x), int32(y), radius, color)
	}
}

// drawOverlaysAbove renders overlays that sit over the creatures.
func (g *Game) drawOverlaysAbove() {
	if g.overlays.IsEnabled(ui.OverlayPursuitLines) {
		g.drawPursuitLines()
	}
	if g.overlays.IsEnabled(ui.OverlayKillRadius) {
		r := float32(g.params.KillDist) * g.worldScale()
		for _, c := range g.predators {
			x, y := g.worldToScreen(c.Pos.X, c.Pos.Y)
			rl.DrawCircleLines(int32(x), int32(y), r, rl.Red)
		}
	}
	if g.overlays.IsEnabled(ui.OverlayVelocity) {
		g.drawVelocities(g.prey, rl.SkyBlue)
		g.drawVelocities(g.predators, rl.Orange)
	}
	if g.overlays.IsEnabled(ui.OverlayMeanHeading) && len(g.prey) > 0 {
		h := systems.MeanHeading(g.prey)
		cx, cy := float32(rl.GetScreenWidth())/2, float32(rl.GetScreenHeight())/2
		rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, rl.Vector2{X: cx + float32(h.X)*60, Y: cy + float32(h.Y)*60}, 3, rl.Yellow)
	}
}

// drawPursuitLines joins each predator to the prey it chased last tick,
// taking the short way across the wrap seam.
func (g *Game) drawPursuitLines() {
	if len(g.targets) == 0 {
		return
	}
	preyPos := make(map[uint32]int, len(g.prey))
	for i, c := range g.prey {
		preyPos[c.ID] = i
	}

	color := rl.Color{R: 255, G: 90, B: 70, A: 90}
	scale := g.worldScale()
	for _, pred := range g.predators {
		preyID, ok := g.targets[pred.ID]
		if !ok {
			continue
		}
		i, ok := preyPos[preyID]
		if !ok {
			continue
		}
		d := g.bounds.ShortestDisplacement(pred.Pos, g.prey[i].Pos)
		x1, y1 := g.worldToScreen(pred.Pos.X, pred.Pos.Y)
		x2, y2 := x1+float32(d.X)*scale, y1+float32(d.Y)*scale
		rl.DrawLineV(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, color)
	}
}

func (g *Game) drawVelocities(cs []systems.Creature, color rl.Color) {
	const length = 8
	scale := g.worldScale() * length
	for _, c := range cs {
		x1, y1 := g.worldToScreen(c.Pos.X, c.Pos.Y)
		x2, y2 := x1+float32(c.Vel.X)*scale, y1+float32(c.Vel.Y)*scale
		rl.DrawLineV(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, color)
	}
}

// drawUI renders the HUD and panels.
func (g *Game) drawUI() {
	data := ui.HUDData{
		Title:          "Predator / Prey",
		PreyCount:      len(g.prey),
		PredatorCount:  len(g.predators),
		CapturesTotal:  g.collector.CapturesTotal(),
		Tick:           g.tick,
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
	}
	if g.hasStats {
		data.Polarization = g.lastStats.Polarization
	}
	data.TopHunterID, data.TopHunterCaptures, data.HasTopHunter = g.lifetimeTracker.TopHunter()
	g.hud.Draw(data)
	g.hud.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)

	g.overlayPanel.Draw(g.overlays)

	if g.showPerf {
		g.perfPanel.SetPosition(int32(rl.GetScreenWidth())-260, 10)
		g.perfPanel.Draw(g.tickTimer.Stats())
	}

	g.tuning.SetPosition(int32(rl.GetScreenWidth())-330, 120)
	if p, changed := g.tuning.Draw(g.Params()); changed {
		g.SetParams(p)
	}
}

// kindColor returns the display color of a species.
func kindColor(k components.Kind) rl.Color {
	if k == components.KindPredator {
		return ui.PredatorColor
	}
	return ui.PreyColor
}
