package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/predprey/config"
	"github.com/pthm-cable/predprey/game"
	"github.com/pthm-cable/predprey/telemetry"
)

// Weight of the flock cohesion term. Small enough that the captured fraction
// dominates.
const polarizationWeight = 0.05

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	ticks      int
	seeds      []int64
	baseConfig *config.Config

	mu          sync.Mutex
	bestFitness float64
	last        evalSummary // from the most recent Evaluate call
}

// evalSummary is the seed-averaged outcome of one evaluation.
type evalSummary struct {
	CapturedFrac float64
	Polarization float64
}

// runResult holds the results from a single simulation run.
type runResult struct {
	initialPrey int
	captures    int
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		ticks:       ticks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// Last returns the summary of the most recent evaluation.
func (fe *FitnessEvaluator) Last() evalSummary {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.last
}

// Evaluate computes fitness for a parameter vector (lower = better): the
// mean fraction of prey captured across seeds, with a small bonus for
// aligned flocks.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	fitness := make([]float64, len(results))
	captured := make([]float64, len(results))
	polarization := make([]float64, len(results))
	for i, r := range results {
		captured[i] = r.capturedFraction()
		polarization[i] = meanPolarization(r.windowStats)
		fitness[i] = computeFitness(captured[i], polarization[i])
	}
	avg := stat.Mean(fitness, nil)

	fe.mu.Lock()
	fe.bestFitness = min(fe.bestFitness, avg)
	fe.last = evalSummary{
		CapturedFrac: stat.Mean(captured, nil),
		Polarization: stat.Mean(polarization, nil),
	}
	fe.mu.Unlock()

	return avg
}

// runSimulation executes a single headless simulation run.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	result := &runResult{initialPrey: cfg.Prey.Number}

	g, err := game.NewGameWithConfig(cfg, game.Options{
		Seed:     seed,
		Headless: true,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		slog.Error("failed to create game", "seed", seed, "error", err)
		result.captures = result.initialPrey
		return result
	}
	defer g.Unload()

	for int(g.Tick()) < fe.ticks {
		if err := g.Step(); err != nil {
			break
		}
		if prey, _ := g.Counts(); prey == 0 {
			break
		}
	}

	result.captures = g.CapturesTotal()
	return result
}

func (r *runResult) capturedFraction() float64 {
	if r.initialPrey == 0 {
		return 0
	}
	return float64(r.captures) / float64(r.initialPrey)
}

// meanPolarization averages flock polarization over windows that still had
// at least two prey.
func meanPolarization(windows []telemetry.WindowStats) float64 {
	var vals []float64
	for _, w := range windows {
		if w.PreyCount >= 2 {
			vals = append(vals, w.Polarization)
		}
	}
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// computeFitness calculates the scalar fitness (lower = better).
func computeFitness(capturedFrac, polarization float64) float64 {
	return capturedFrac + polarizationWeight*(1-clamp01(polarization))
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return max(0, min(1, x))
}
