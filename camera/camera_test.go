package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/predprey/geom"
)

var world = geom.Bounds{Width: 2560, Height: 1440}

func TestNew(t *testing.T) {
	cam := New(1280, 720, world)

	// Should be centered on world
	if cam.Center.X != 1280 || cam.Center.Y != 720 {
		t.Errorf("expected camera at (1280, 720), got %+v", cam.Center)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
	if cam.Scale() != 0.5 {
		t.Errorf("expected fit scale 0.5, got %f", cam.Scale())
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(1280, 720, world)

	// Camera center should map to screen center
	sx, sy := cam.WorldToScreen(geom.Vec2{X: 1280, Y: 720})
	if math.Abs(float64(sx-640)) > 0.01 || math.Abs(float64(sy-360)) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(1280, 720, world)
	cam.SetZoom(2)

	testCases := []struct{ sx, sy float32 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		p := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(p)
		if math.Abs(float64(sx-tc.sx)) > 0.01 || math.Abs(float64(sy-tc.sy)) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> %+v -> (%f,%f)", tc.sx, tc.sy, p, sx, sy)
		}
	}
}

func TestToroidalWrap(t *testing.T) {
	cam := New(1280, 720, world)
	cam.Center.X = 100 // Near left edge

	// Entity at the world's right edge is closer across the seam
	sx, _ := cam.WorldToScreen(geom.Vec2{X: 2500, Y: 720})
	if sx >= 640 {
		t.Errorf("expected entity on left of screen, got x=%f", sx)
	}
}

func TestPanWraps(t *testing.T) {
	cam := New(1280, 720, world)
	cam.Center.X = 100

	// 200 px at scale 0.5 is 400 world units
	cam.Pan(-200, 0)

	if math.Abs(cam.Center.X-2260) > 1e-9 {
		t.Errorf("expected X to wrap to 2260, got %f", cam.Center.X)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(1280, 720, world)

	cam.SetZoom(0.1) // Below min
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom clamped to 1.0, got %f", cam.Zoom)
	}

	cam.SetZoom(20.0) // Above max
	if cam.Zoom != 8.0 {
		t.Errorf("expected zoom clamped to 8.0, got %f", cam.Zoom)
	}

	cam.SetZoom(2)
	cam.ZoomBy(1.5)
	if cam.Zoom != 3 {
		t.Errorf("expected zoom 3, got %f", cam.Zoom)
	}
}

func TestFitUsesLimitingAxis(t *testing.T) {
	cam := New(800, 600, geom.Bounds{Width: 1600, Height: 800})

	// min(800/1600, 600/800) = 0.5
	if math.Abs(cam.Scale()-0.5) > 1e-9 {
		t.Errorf("expected scale 0.5, got %f", cam.Scale())
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(1280, 720, world)
	cam.SetZoom(2)

	// At scale 1 the view spans (640, 360) to (1920, 1080)
	if !cam.IsVisible(geom.Vec2{X: 1280, Y: 720}, 10) {
		t.Error("center should be visible")
	}
	if cam.IsVisible(geom.Vec2{X: 2400, Y: 1300}, 10) {
		t.Error("far point should not be visible")
	}
	if !cam.IsVisible(geom.Vec2{X: 600, Y: 720}, 100) {
		t.Error("edge point with large radius should be visible")
	}
}

func TestReset(t *testing.T) {
	cam := New(1280, 720, world)
	cam.Center = geom.Vec2{X: 500, Y: 500}
	cam.Zoom = 2.5

	cam.Reset()

	if cam.Center.X != 1280 || cam.Center.Y != 720 {
		t.Errorf("expected position (1280, 720), got %+v", cam.Center)
	}
	if cam.Zoom != 1.0 {
		t.Errorf("expected zoom 1.0, got %f", cam.Zoom)
	}
}
