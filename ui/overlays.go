package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID identifies a world overlay.
type OverlayID string

const (
	OverlayPursuitLines OverlayID = "pursuit_lines"
	OverlayKillRadius   OverlayID = "kill_radius"
	OverlayCaptureMarks OverlayID = "capture_marks"
	OverlaySightRadius  OverlayID = "sight_radius"
	OverlaySeparation   OverlayID = "separation"
	OverlayMeanHeading  OverlayID = "mean_heading"
	OverlayVelocity     OverlayID = "velocity"
)

// Category groups overlays by what they explain: the hunt, the flock, or
// raw motion.
type Category uint8

const (
	CategoryPursuit Category = iota
	CategoryFlock
	CategoryDebug
)

func (c Category) String() string {
	switch c {
	case CategoryPursuit:
		return "Pursuit"
	case CategoryFlock:
		return "Flock"
	case CategoryDebug:
		return "Debug"
	}
	return fmt.Sprintf("Category(%d)", c)
}

// Overlay describes one toggleable overlay.
type Overlay struct {
	ID       OverlayID
	Name     string
	Key      int32 // raylib key that toggles it
	Category Category
	// Excludes names an overlay switched off when this one is switched on.
	// The sight and separation rings are both drawn around every prey.
	Excludes OverlayID
}

// KeyLabel is the printable toggle key.
func (o Overlay) KeyLabel() string {
	return string(rune(o.Key))
}

var defaultOverlays = []Overlay{
	{ID: OverlayPursuitLines, Name: "Pursuit Lines", Key: rl.KeyL, Category: CategoryPursuit},
	{ID: OverlayKillRadius, Name: "Kill Radius", Key: rl.KeyK, Category: CategoryPursuit},
	{ID: OverlayCaptureMarks, Name: "Capture Marks", Key: rl.KeyM, Category: CategoryPursuit},
	{ID: OverlaySightRadius, Name: "Sight Radius", Key: rl.KeyV, Category: CategoryFlock, Excludes: OverlaySeparation},
	{ID: OverlaySeparation, Name: "Separation", Key: rl.KeyC, Category: CategoryFlock, Excludes: OverlaySightRadius},
	{ID: OverlayMeanHeading, Name: "Mean Heading", Key: rl.KeyH, Category: CategoryFlock},
	{ID: OverlayVelocity, Name: "Velocity", Key: rl.KeyX, Category: CategoryDebug},
}

// OverlayRegistry holds which overlays are on.
type OverlayRegistry struct {
	overlays []Overlay
	enabled  map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with pursuit lines switched on.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		overlays: defaultOverlays,
		enabled:  make(map[OverlayID]bool, len(defaultOverlays)),
	}
	reg.SetEnabled(OverlayPursuitLines, true)
	return reg
}

func (r *OverlayRegistry) find(id OverlayID) (Overlay, bool) {
	for _, o := range r.overlays {
		if o.ID == id {
			return o, true
		}
	}
	return Overlay{}, false
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.find(id); !ok {
		return false
	}
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled switches an overlay on or off. Unknown IDs are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	o, ok := r.find(id)
	if !ok {
		return
	}
	r.enabled[id] = on
	if on && o.Excludes != "" {
		r.enabled[o.Excludes] = false
	}
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// InCategory returns the overlays of one category in display order.
func (r *OverlayRegistry) InCategory(c Category) []Overlay {
	var out []Overlay
	for _, o := range r.overlays {
		if o.Category == c {
			out = append(out, o)
		}
	}
	return out
}

// HandleKeyPress toggles the overlay bound to key. ok is false when no
// overlay uses the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, on, ok bool) {
	for _, o := range r.overlays {
		if o.Key == key {
			return o.ID, r.Toggle(o.ID), true
		}
	}
	return "", false, false
}

// OverlayPanel lists the overlays by category with their state and key.
type OverlayPanel struct {
	x, y, width int32
	visible     bool
}

// NewOverlayPanel creates a hidden overlay panel.
func NewOverlayPanel(x, y, width int32) *OverlayPanel {
	return &OverlayPanel{x: x, y: y, width: width}
}

// Toggle switches panel visibility.
func (p *OverlayPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

var categories = []Category{CategoryPursuit, CategoryFlock, CategoryDebug}

// Draw renders the panel for reg.
func (p *OverlayPanel) Draw(reg *OverlayRegistry) {
	if !p.visible {
		return
	}

	rows := len(categories)
	for _, c := range categories {
		rows += len(reg.InCategory(c))
	}
	DrawPanel(p.x, p.y, p.width, int32(rows+1)*lineHeight+padding*3)

	x := p.x + padding
	y := p.y + padding
	rl.DrawText("Overlays", x, y, titleSize, rl.White)
	y += lineHeight + 4

	for _, c := range categories {
		y = drawSectionHeader(x, y, c.String())
		for _, o := range reg.InCategory(c) {
			p.drawRow(x, y, o, reg.IsEnabled(o.ID))
			y += lineHeight
		}
	}
}

func (p *OverlayPanel) drawRow(x, y int32, o Overlay, on bool) {
	box, name := rl.Color{R: 80, G: 80, B: 80, A: 255}, labelColor
	if on {
		box, name = rl.Color{R: 100, G: 200, B: 100, A: 255}, rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, box)
	rl.DrawText(o.Name, x+14, y, fontSize, name)

	key := "[" + o.KeyLabel() + "]"
	rl.DrawText(key, p.x+p.width-padding-rl.MeasureText(key, fontSize), y, fontSize, dimColor)
}
