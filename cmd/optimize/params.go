package main

import (
	"github.com/pthm-cable/predprey/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the steering-weight search space. Defaults are the
// shipped config values.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "separation", Path: "weights.separation", Min: 0, Max: 10, Default: 2},
			{Name: "alignment", Path: "weights.alignment", Min: 0, Max: 10, Default: 1},
			{Name: "cohesion", Path: "weights.cohesion", Min: 0, Max: 10, Default: 1},
			{Name: "flee", Path: "weights.flee", Min: 0, Max: 20, Default: 5},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	cfg.Weights.Separation = clamped[0]
	cfg.Weights.Alignment = clamped[1]
	cfg.Weights.Cohesion = clamped[2]
	cfg.Weights.Flee = clamped[3]
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Weights.Separation,
		cfg.Weights.Alignment,
		cfg.Weights.Cohesion,
		cfg.Weights.Flee,
	}
}

// Named returns the values keyed by parameter name.
func (pv *ParamVector) Named(values []float64) map[string]float64 {
	m := make(map[string]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		m[spec.Name] = values[i]
	}
	return m
}
