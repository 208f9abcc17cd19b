package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/predprey/geom"
	"github.com/pthm-cable/predprey/systems"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int32 `csv:"-" db:"window_start"`
	WindowEndTick   int32 `csv:"window_end" db:"window_end"`

	// Population counts at window end
	PreyCount int `csv:"prey" db:"prey"`
	PredCount int `csv:"pred" db:"pred"`

	// Hunting
	Captures      int     `csv:"captures" db:"captures"`
	CapturesTotal int     `csv:"captures_total" db:"captures_total"`
	CaptureRate   float64 `csv:"capture_rate" db:"capture_rate"`   // captures per 1000 ticks
	SurvivalMean  float64 `csv:"survival_mean" db:"survival_mean"` // mean age in ticks of prey captured this window

	// Flock shape (sampled at window end)
	Polarization     float64 `csv:"polarization" db:"polarization"`
	NeighborDistMean float64 `csv:"neighbor_dist_mean" db:"neighbor_dist_mean"`
	NeighborDistStd  float64 `csv:"neighbor_dist_std" db:"neighbor_dist_std"`
	NeighborDistP10  float64 `csv:"neighbor_dist_p10" db:"neighbor_dist_p10"`
	NeighborDistP50  float64 `csv:"neighbor_dist_p50" db:"neighbor_dist_p50"`
	NeighborDistP90  float64 `csv:"neighbor_dist_p90" db:"neighbor_dist_p90"`

	// Threat exposure (sampled at window end)
	PredatorDistMean float64 `csv:"predator_dist_mean" db:"predator_dist_mean"`
	PredatorDistMin  float64 `csv:"predator_dist_min" db:"predator_dist_min"`
}

// FlockSample is a point-in-time measurement of the flock.
type FlockSample struct {
	Polarization  float64   // |sum of unit headings| / prey count, in [0, 1]
	NeighborDists []float64 // per prey: mean toroidal distance to the other prey
	PredatorDists []float64 // per prey: distance to the nearest predator
}

// SampleFlock measures the current flock. It reuses the core neighbor and
// nearest-target scans so the numbers match what the creatures react to.
func SampleFlock(prey, predators []systems.Creature, b geom.Bounds) FlockSample {
	var s FlockSample
	if len(prey) == 0 {
		return s
	}

	hx := make([]float64, len(prey))
	hy := make([]float64, len(prey))
	for i, p := range prey {
		u := p.Vel.Normalize()
		hx[i], hy[i] = u.X, u.Y
	}
	s.Polarization = math.Hypot(floats.Sum(hx), floats.Sum(hy)) / float64(len(prey))

	if len(prey) > 1 {
		s.NeighborDists = make([]float64, len(prey))
		for i, ns := range systems.AnalyzeNeighbors(prey, b, 0) {
			s.NeighborDists[i] = ns.AvgDist
		}
	}

	if len(predators) > 0 {
		s.PredatorDists = make([]float64, len(prey))
		for i, p := range prey {
			_, d2, _ := systems.FindNearest(p.Pos, predators, b)
			s.PredatorDists[i] = math.Sqrt(d2)
		}
	}

	return s
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistStats calculates mean, population std, and percentiles.
func ComputeDistStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("captures", s.Captures),
		slog.Int("captures_total", s.CapturesTotal),
		slog.Float64("capture_rate", s.CaptureRate),
		slog.Float64("survival_mean", s.SurvivalMean),
		slog.Float64("polarization", s.Polarization),
		slog.Float64("neighbor_dist_mean", s.NeighborDistMean),
		slog.Float64("neighbor_dist_std", s.NeighborDistStd),
		slog.Float64("neighbor_dist_p10", s.NeighborDistP10),
		slog.Float64("neighbor_dist_p50", s.NeighborDistP50),
		slog.Float64("neighbor_dist_p90", s.NeighborDistP90),
		slog.Float64("predator_dist_mean", s.PredatorDistMean),
		slog.Float64("predator_dist_min", s.PredatorDistMin),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"prey", s.PreyCount,
		"pred", s.PredCount,
		"captures", s.Captures,
		"captures_total", s.CapturesTotal,
		"capture_rate", s.CaptureRate,
		"survival_mean", s.SurvivalMean,
		"polarization", s.Polarization,
		"neighbor_dist_mean", s.NeighborDistMean,
		"neighbor_dist_std", s.NeighborDistStd,
		"neighbor_dist_p50", s.NeighborDistP50,
		"predator_dist_mean", s.PredatorDistMean,
		"predator_dist_min", s.PredatorDistMin,
	)
}
