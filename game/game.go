// Package game drives the simulation core from an ECS world. It owns the
// creature entities, runs ticks through a systems.Stepper, feeds telemetry,
// and renders with raylib when not headless.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/predprey/camera"
	"github.com/pthm-cable/predprey/components"
	"github.com/pthm-cable/predprey/config"
	"github.com/pthm-cable/predprey/geom"
	"github.com/pthm-cable/predprey/systems"
	"github.com/pthm-cable/predprey/telemetry"
	"github.com/pthm-cable/predprey/ui"
)

// Options configures game behavior.
type Options struct {
	Headless       bool
	Seed           int64  // 0 = time-based
	LogStats       bool   // log window and perf stats through slog
	OutputDir      string // CSV output directory (empty = disabled)
	DBPath         string // SQLite run ledger (empty = disabled)
	StepsPerUpdate int    // ticks per update call (0 = use config)
	StatsCallback  func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand
	seed  int64
	runID string

	creatureMap    *ecs.Map3[components.Position, components.Velocity, components.Organism]
	creatureFilter *ecs.Filter3[components.Position, components.Velocity, components.Organism]
	entities       map[uint32]ecs.Entity

	stepper       *systems.Stepper
	bounds        geom.Bounds
	params        systems.Params
	pendingParams *systems.Params // applied at the start of the next tick

	// State
	tick           int32
	nextID         uint32
	paused         bool
	stepsPerUpdate int
	tickDelay      time.Duration
	lastTickAt     time.Time

	// Reused per-tick buffers
	prey      []systems.Creature
	predators []systems.Creature

	// Latest tick, kept for overlays
	targets      map[uint32]uint32
	captureMarks []captureMark

	// Telemetry
	collector        *telemetry.Collector
	tickTimer        *telemetry.TickTimer
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	runStore         *telemetry.RunStore
	lastStats        telemetry.WindowStats
	hasStats         bool

	headless      bool
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// UI, nil when headless
	cam          *camera.Camera
	hud          *ui.HUD
	perfPanel    *ui.PerfPanel
	overlayPanel *ui.OverlayPanel
	overlays     *ui.OverlayRegistry
	tuning       *ui.TuningPanel
	showPerf     bool
}

// NewGameWithOptions creates a game from the global configuration.
func NewGameWithOptions(opts Options) (*Game, error) {
	return NewGameWithConfig(config.Cfg(), opts)
}

// NewGameWithConfig creates a game from an explicit configuration.
func NewGameWithConfig(cfg *config.Config, opts Options) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	world := ecs.NewWorld()
	bounds := systems.BoundsFromConfig(cfg)
	params := systems.ParamsFromConfig(cfg)

	g := &Game{
		cfg:   cfg,
		world: world,
		rng:   rand.New(rand.NewSource(seed)),
		seed:  seed,
		runID: uuid.NewString(),

		creatureMap:    ecs.NewMap3[components.Position, components.Velocity, components.Organism](world),
		creatureFilter: ecs.NewFilter3[components.Position, components.Velocity, components.Organism](world),
		entities:       make(map[uint32]ecs.Entity),

		stepper: systems.NewStepper(bounds, systems.WithParallel(cfg.Parallel.Threshold, cfg.Parallel.Workers)),
		bounds:  bounds,
		params:  params,

		stepsPerUpdate: cfg.Loop.StepsPerUpdate,
		tickDelay:      time.Duration(cfg.Loop.TickDelayMS) * time.Millisecond,
		nextID:         1,

		collector:        telemetry.NewCollector(cfg.Telemetry.WindowTicks),
		tickTimer:        telemetry.NewTickTimer(60),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),

		headless:      opts.Headless,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}

	if opts.StepsPerUpdate > 0 {
		g.stepsPerUpdate = opts.StepsPerUpdate
	}

	g.spawnInitialPopulation()

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.stepper.Stop()
		return nil, fmt.Errorf("output manager: %w", err)
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	store, err := telemetry.OpenRunStore(opts.DBPath)
	if err != nil {
		g.stepper.Stop()
		om.Close()
		return nil, fmt.Errorf("run store: %w", err)
	}
	g.runStore = store
	if err := store.BeginRun(g.runID, g.seed, cfg); err != nil {
		slog.Error("failed to record run", "error", err)
	}

	if !g.headless {
		g.cam = camera.New(float64(cfg.Screen.Width), float64(cfg.Screen.Height), g.bounds)
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(int32(cfg.Screen.Width)-260, 10)
		g.overlayPanel = ui.NewOverlayPanel(10, 140, 220)
		g.overlays = ui.NewOverlayRegistry()
		g.tuning = ui.NewTuningPanel(int32(cfg.Screen.Width)-330, 120, 320, params)
	}

	numPrey, numPred := g.Counts()
	slog.Info("game created",
		"run_id", g.runID,
		"seed", g.seed,
		"prey", numPrey,
		"predators", numPred,
		"world_width", bounds.Width,
		"world_height", bounds.Height,
		"headless", g.headless,
	)

	return g, nil
}

// Unload releases the worker pool and closes all outputs.
func (g *Game) Unload() {
	g.stepper.Stop()

	if err := g.runStore.FinishRun(g.runID, g.tick, g.collector.CapturesTotal()); err != nil {
		slog.Error("failed to finish run", "error", err)
	}
	if err := g.runStore.Close(); err != nil {
		slog.Error("failed to close run store", "error", err)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// StepsPerUpdate returns the ticks run per update call: the option when set,
// else loop.steps_per_update.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// RunID returns the unique identifier of the run.
func (g *Game) RunID() string {
	return g.runID
}

// Params returns the parameters used for the next tick.
func (g *Game) Params() systems.Params {
	if g.pendingParams != nil {
		return *g.pendingParams
	}
	return g.params
}

// SetParams replaces the run parameters. The change takes effect at the
// start of the next tick.
func (g *Game) SetParams(p systems.Params) {
	g.pendingParams = &p
}

// Counts returns the number of live prey and predators.
func (g *Game) Counts() (prey, predators int) {
	predators = g.countKind(components.KindPredator)
	return len(g.entities) - predators, predators
}

// CapturesTotal returns the number of captures since the run started.
func (g *Game) CapturesTotal() int {
	return g.collector.CapturesTotal()
}

// LastStats returns the most recent window stats. ok is false before the
// first window closes.
func (g *Game) LastStats() (telemetry.WindowStats, bool) {
	return g.lastStats, g.hasStats
}

// Creatures returns copies of all live creatures, each list sorted by ID.
func (g *Game) Creatures() (prey, predators []systems.Creature) {
	g.collectCreatures()
	return append([]systems.Creature(nil), g.prey...), append([]systems.Creature(nil), g.predators...)
}

func (g *Game) countKind(kind components.Kind) int {
	n := 0
	query := g.creatureFilter.Query()
	for query.Next() {
		_, _, org := query.Get()
		if org.Kind == kind {
			n++
		}
	}
	return n
}
