package telemetry

import (
	"path/filepath"
	"testing"

	"github.com/pthm-cable/predprey/config"
)

func TestRunStoreDisabled(t *testing.T) {
	s, err := OpenRunStore("")
	if err != nil || s != nil {
		t.Fatalf("OpenRunStore(\"\") = %v, %v", s, err)
	}
	if err := s.SaveWindow("run", WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := s.Close(); err != nil {
		t.Error(err)
	}
}

func TestRunStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := OpenRunStore(path)
	if err != nil {
		t.Fatalf("OpenRunStore: %v", err)
	}
	defer s.Close()

	cfg := config.Defaults()
	if err := s.BeginRun("run-a", 42, cfg); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	windows := []WindowStats{
		{WindowStartTick: 0, WindowEndTick: 200, PreyCount: 20, PredCount: 1, Polarization: 0.5},
		{WindowStartTick: 200, WindowEndTick: 400, PreyCount: 18, PredCount: 1, Captures: 2, CapturesTotal: 2, Polarization: 0.9},
	}
	for _, w := range windows {
		if err := s.SaveWindow("run-a", w); err != nil {
			t.Fatalf("SaveWindow: %v", err)
		}
	}
	events := []CaptureEvent{
		{Tick: 250, PredatorID: 21, PreyID: 4, X: 10, Y: 20, SurvivalTicks: 250},
		{Tick: 390, PredatorID: 21, PreyID: 7, X: 30, Y: 40, SurvivalTicks: 390},
	}
	if err := s.SaveCaptures("run-a", events); err != nil {
		t.Fatalf("SaveCaptures: %v", err)
	}
	if err := s.FinishRun("run-a", 400, 2); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	runs, err := s.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	r := runs[0]
	if r.ID != "run-a" || r.Seed != 42 || r.Ticks != 400 || r.CapturesTotal != 2 {
		t.Errorf("run = %+v", r)
	}
	if r.Prey != cfg.Prey.Number || r.FinishedAt == "" || r.ConfigYAML == "" {
		t.Errorf("run metadata incomplete: %+v", r)
	}

	got, err := s.Windows("run-a")
	if err != nil {
		t.Fatalf("Windows: %v", err)
	}
	if len(got) != 2 || got[1] != windows[1] {
		t.Errorf("windows = %+v", got)
	}

	caps, err := s.Captures("run-a")
	if err != nil {
		t.Fatalf("Captures: %v", err)
	}
	if len(caps) != 2 || caps[0] != events[0] || caps[1] != events[1] {
		t.Errorf("captures = %+v", caps)
	}

	other, err := s.Windows("run-b")
	if err != nil || len(other) != 0 {
		t.Errorf("windows of unknown run = %v, %v", other, err)
	}
}
