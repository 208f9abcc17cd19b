// Package telemetry provides flock health tracking, bookmarking and run output.
package telemetry

import "github.com/pthm-cable/predprey/systems"

// CaptureEvent records one prey removed by a predator.
type CaptureEvent struct {
	Tick          int32   `csv:"tick" db:"tick"`
	PredatorID    uint32  `csv:"predator_id" db:"predator_id"`
	PreyID        uint32  `csv:"prey_id" db:"prey_id"`
	X             float64 `csv:"x" db:"x"`
	Y             float64 `csv:"y" db:"y"`
	SurvivalTicks int32   `csv:"survival_ticks" db:"survival_ticks"` // prey age at capture, -1 if unknown
}

// NewCaptureEvent converts a core capture into an event at the given tick.
func NewCaptureEvent(tick int32, c systems.Capture) CaptureEvent {
	return CaptureEvent{
		Tick:          tick,
		PredatorID:    c.PredatorID,
		PreyID:        c.PreyID,
		X:             c.Pos.X,
		Y:             c.Pos.Y,
		SurvivalTicks: -1,
	}
}
