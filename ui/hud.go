package ui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/predprey/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	PreyCount      int
	PredatorCount  int
	CapturesTotal  int
	Tick           int32
	StepsPerUpdate int
	FPS            int32
	Paused         bool
	Polarization   float64

	TopHunterID       uint32
	TopHunterCaptures int
	HasTopHunter      bool
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(fmt.Sprintf("Prey: %s", humanize.Comma(int64(data.PreyCount))), 10, 35, 16, PreyColor)
	rl.DrawText(fmt.Sprintf("Predators: %s", humanize.Comma(int64(data.PredatorCount))), 120, 35, 16, PredatorColor)
	rl.DrawText(fmt.Sprintf("Captures: %s", humanize.Comma(int64(data.CapturesTotal))), 270, 35, 16, rl.LightGray)

	rl.DrawText(
		fmt.Sprintf("Tick: %s | Speed: %dx | FPS: %d", humanize.Comma(int64(data.Tick)), data.StepsPerUpdate, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	drawBar(10, 75, "Polarization", float32(data.Polarization), 260)

	if data.HasTopHunter {
		rl.DrawText(
			fmt.Sprintf("Top hunter: #%d (%s)", data.TopHunterID, humanize.Comma(int64(data.TopHunterCaptures))),
			10, 95, 14, PredatorColor,
		)
	}

	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 115, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the per-phase tick timing panel.
type PerfPanel struct {
	x, y int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{x: x, y: y}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

const perfPanelWidth = 250

// Draw renders the timing of the last window of ticks, one row per phase.
// Phases above a quarter of the tick are orange, above half red.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	phases := telemetry.Phases()
	DrawPanel(p.x, p.y, perfPanelWidth, int32(len(phases)+3)*lineHeight+padding*2)

	x := p.x + padding
	y := drawSectionHeader(x, p.y+padding, "Tick Performance")
	y = drawLabelValue(x, y, "avg tick", stats.AvgTick.Round(time.Microsecond).String(), rl.White)
	y = drawLabelValue(x, y, "ticks/s", humanize.Comma(int64(stats.TicksPerSecond)), rl.White)

	for _, ph := range phases {
		pct := stats.Shares[ph]
		color := labelColor
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		y = drawLabelValue(x, y, ph.String(),
			fmt.Sprintf("%8s %5.1f%%", stats.PhaseAvg[ph].Round(time.Microsecond), pct), color)
	}
}
