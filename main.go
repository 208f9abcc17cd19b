package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/predprey/config"
	"github.com/pthm-cable/predprey/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	dbPath := flag.String("db", "", "SQLite run ledger (empty = disabled)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 0, "Simulation ticks per update call (0 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Headless:       *headless,
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		DBPath:         *dbPath,
		StepsPerUpdate: *stepsPerUpdate,
	}

	if *headless {
		os.Exit(runHeadless(opts, *maxTicks))
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Predator / Prey")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			break
		}
	}
}

// runHeadless runs until maxTicks or until the last prey is captured.
// Returns the process exit code.
func runHeadless(opts game.Options, maxTicks int) int {
	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		return 1
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", g.StepsPerUpdate(),
	)

	start := time.Now()
	for {
		if maxTicks > 0 {
			remaining := maxTicks - int(g.Tick())
			if remaining <= 0 {
				slog.Info("max ticks reached", "tick", g.Tick())
				break
			}
			if err := g.RunTicks(min(remaining, g.StepsPerUpdate())); err != nil {
				slog.Error("simulation step failed", "error", err)
				return 1
			}
		} else {
			g.UpdateHeadless()
		}

		if prey, _ := g.Counts(); prey == 0 {
			slog.Info("all prey captured", "tick", g.Tick())
			break
		}
	}

	elapsed := time.Since(start)
	slog.Info("headless run finished",
		"run_id", g.RunID(),
		"ticks", humanize.Comma(int64(g.Tick())),
		"captures", humanize.Comma(int64(g.CapturesTotal())),
		"elapsed", elapsed.Round(time.Millisecond).String(),
		"ticks_per_sec", fmt.Sprintf("%.0f", float64(g.Tick())/max(elapsed.Seconds(), 1e-9)),
	)
	return 0
}
