package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/predprey/systems"
)

// tuningField is one slider bound to a Params field.
type tuningField struct {
	Label    string
	Format   string
	Min, Max float64
	Value    *float64
}

// set clamps v into the field's range and stores it. Returns true if the
// stored value changed.
func (f tuningField) set(v float64) bool {
	v = max(f.Min, min(f.Max, v))
	if v == *f.Value {
		return false
	}
	*f.Value = v
	return true
}

// tuningFields binds the sliders to p. Order is display order.
func tuningFields(p *systems.Params) []tuningField {
	return []tuningField{
		{"Separation", "%.2f", 0, 10, &p.Weights.Separation},
		{"Alignment", "%.2f", 0, 10, &p.Weights.Alignment},
		{"Cohesion", "%.2f", 0, 10, &p.Weights.Cohesion},
		{"Flee", "%.2f", 0, 20, &p.Weights.Flee},
		{"Prey speed", "%.2f", 0, 10, &p.Prey.Speed},
		{"Prey turn", "%.3f", 0, 0.5, &p.Prey.MaxTurnAngle},
		{"Pred speed", "%.2f", 0, 10, &p.Predator.Speed},
		{"Pred turn", "%.3f", 0, 0.5, &p.Predator.MaxTurnAngle},
		{"Min sep", "%.0f", 0, 200, &p.MinSeparation},
		{"Flock dist", "%.0f", 0, 400, &p.MinFlockDist},
		{"Sight", "%.0f", 0, 600, &p.PredatorSightDist},
		{"Kill dist", "%.1f", 0, 50, &p.KillDist},
	}
}

// TuningPanel lets the user adjust run parameters with sliders. Edits are
// returned to the caller, which applies them between ticks.
type TuningPanel struct {
	x, y     int32
	width    int32
	visible  bool
	defaults systems.Params
}

// NewTuningPanel creates a hidden tuning panel. Reset restores defaults.
func NewTuningPanel(x, y, width int32, defaults systems.Params) *TuningPanel {
	return &TuningPanel{
		x:        x,
		y:        y,
		width:    width,
		defaults: defaults,
	}
}

// Toggle switches panel visibility.
func (t *TuningPanel) Toggle() bool {
	t.visible = !t.visible
	return t.visible
}

// SetPosition updates the panel position.
func (t *TuningPanel) SetPosition(x, y int32) {
	t.x = x
	t.y = y
}

// Draw renders the sliders for p and returns the edited parameters and
// whether anything changed.
func (t *TuningPanel) Draw(p systems.Params) (systems.Params, bool) {
	if !t.visible {
		return p, false
	}

	const rowHeight = 24
	const valueWidth = 50

	fields := tuningFields(&p)
	height := int32(len(fields))*rowHeight + padding*3 + 20 + 30
	DrawPanel(t.x, t.y, t.width, height)

	y := t.y + padding
	rl.DrawText("Tuning", t.x+padding, y, titleSize, rl.White)
	y += 24

	sliderX := float32(t.x + padding + labelWidth)
	sliderW := float32(t.width - padding*2 - labelWidth - valueWidth)

	changed := false
	for _, f := range fields {
		rl.DrawText(f.Label, t.x+padding, y+4, fontSize, labelColor)
		v := gui.SliderBar(
			rl.Rectangle{X: sliderX, Y: float32(y), Width: sliderW, Height: 16},
			"", "",
			float32(*f.Value), float32(f.Min), float32(f.Max),
		)
		if float64(v) != float64(float32(*f.Value)) && f.set(float64(v)) {
			changed = true
		}
		rl.DrawText(fmt.Sprintf(f.Format, *f.Value), int32(sliderX+sliderW)+6, y+4, fontSize, labelColor)
		y += rowHeight
	}

	y += padding / 2
	if gui.Button(rl.Rectangle{X: float32(t.x + padding), Y: float32(y), Width: 100, Height: 24}, "Reset") {
		return t.defaults, true
	}

	return p, changed
}
