// Package ui provides the on-screen panels of the graphical driver: HUD,
// overlay toggles, creature tooltips and the live tuning panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Species colors shared by the world view and the panels.
var (
	PreyColor     = rl.Color{R: 120, G: 200, B: 255, A: 255}
	PredatorColor = rl.Color{R: 255, G: 90, B: 70, A: 255}
)

// Panel styling shared by every widget.
var (
	panelBg     = rl.Color{R: 20, G: 25, B: 30, A: 240}
	panelBorder = rl.Color{R: 60, G: 70, B: 80, A: 255}
	headerColor = rl.Yellow
	labelColor  = rl.LightGray
	dimColor    = rl.Color{R: 150, G: 150, B: 150, A: 255}
	barBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	barFill     = rl.Color{R: 100, G: 150, B: 200, A: 255}
)

const (
	padding    int32 = 10
	lineHeight int32 = 16
	labelWidth int32 = 90
	fontSize   int32 = 12
	headerSize int32 = 14
	titleSize  int32 = 16
)

// DrawPanel draws a panel background with border.
func DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, panelBg)
	rl.DrawRectangleLines(x, y, width, height, panelBorder)
}

// drawSectionHeader draws a section title and returns the Y below it.
func drawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, headerSize, headerColor)
	return y + lineHeight
}

// drawLabelValue draws "label: value" with the value in color.
func drawLabelValue(x, y int32, label, value string, color rl.Color) int32 {
	rl.DrawText(label+":", x, y, fontSize, labelColor)
	rl.DrawText(value, x+labelWidth, y, fontSize, color)
	return y + lineHeight
}

// drawBar draws a labelled bar for a value in [0, 1].
func drawBar(x, y int32, label string, value float32, width int32) int32 {
	value = max(0, min(1, value))

	barX := x + labelWidth
	barW := width - labelWidth - 50

	rl.DrawText(label+":", x, y, fontSize, labelColor)
	rl.DrawRectangle(barX, y+2, barW, fontSize, barBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barW)*value), fontSize, barFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), barX+barW+5, y, fontSize, labelColor)

	return y + lineHeight + 2
}

// DrawTooltip draws lines in a box offset from the anchor point, flipped to
// stay inside the screen. The first line is drawn in titleColor.
func DrawTooltip(anchorX, anchorY int32, lines []string, titleColor rl.Color, screenW, screenH int32) {
	if len(lines) == 0 {
		return
	}
	const size = 14
	inset := padding - 2

	textW := int32(0)
	for _, line := range lines {
		textW = max(textW, rl.MeasureText(line, size))
	}
	w := textW + inset*2
	h := int32(len(lines))*lineHeight + inset*2

	x, y := anchorX+15, anchorY+15
	if x+w > screenW-10 {
		x = anchorX - w - 10
	}
	if y+h > screenH-10 {
		y = anchorY - h - 10
	}

	DrawPanel(x, y, w, h)
	for i, line := range lines {
		color := labelColor
		if i == 0 {
			color = titleColor
		}
		rl.DrawText(line, x+inset, y+inset+int32(i)*lineHeight, size, color)
	}
}
