// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Weights   WeightsConfig   `yaml:"weights"`
	Prey      PreyConfig      `yaml:"prey"`
	Predator  PredatorConfig  `yaml:"predator"`
	Loop      LoopConfig      `yaml:"loop"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
type WorldConfig struct {
	Width  float64 `yaml:"width"`  // World width in world units (0 = use screen width)
	Height float64 `yaml:"height"` // World height in world units (0 = use screen height)
}

// WeightsConfig holds the per-tick steering weights applied to prey.
type WeightsConfig struct {
	Separation float64 `yaml:"separation"`
	Alignment  float64 `yaml:"alignment"`
	Cohesion   float64 `yaml:"cohesion"`
	Flee       float64 `yaml:"flee"`
}

// PreyConfig holds prey population and flocking parameters.
type PreyConfig struct {
	Number            int     `yaml:"number"`
	Speed             float64 `yaml:"speed"`
	MaxTurnAngle      float64 `yaml:"max_turn_angle"`      // radians per tick
	MinSeparation     float64 `yaml:"min_separation"`      // prey-prey too-close threshold
	MinFlockDist      float64 `yaml:"min_flock_dist"`      // cohesion is suppressed below this average neighbor distance
	PredatorSightDist float64 `yaml:"predator_sight_dist"` // predator detection radius
}

// PredatorConfig holds predator population and pursuit parameters.
type PredatorConfig struct {
	Number       int     `yaml:"number"`
	Speed        float64 `yaml:"speed"`
	MaxTurnAngle float64 `yaml:"max_turn_angle"` // radians per tick
	KillDist     float64 `yaml:"kill_dist"`      // capture radius
}

// LoopConfig holds driver cadence settings.
type LoopConfig struct {
	TickDelayMS    int `yaml:"tick_delay_ms"`    // wall-clock delay between ticks in graphical mode
	StepsPerUpdate int `yaml:"steps_per_update"` // ticks per update call
}

// ParallelConfig holds per-prey worker pool settings.
type ParallelConfig struct {
	Threshold int `yaml:"threshold"` // minimum prey count before work is split across workers
	Workers   int `yaml:"workers"`   // 0 = GOMAXPROCS
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldWidth  float64 // Effective world width
	WorldHeight float64 // Effective world height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded default configuration.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// World dimensions default to screen size if not specified
	c.Derived.WorldWidth = c.World.Width
	if c.Derived.WorldWidth == 0 {
		c.Derived.WorldWidth = float64(c.Screen.Width)
	}
	c.Derived.WorldHeight = c.World.Height
	if c.Derived.WorldHeight == 0 {
		c.Derived.WorldHeight = float64(c.Screen.Height)
	}
}

// Validate reports every value the simulation core cannot accept.
// Distances and weights may be zero; sizes, speeds and counts may not be negative.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Derived.WorldWidth > 0, "world width must be positive, got %v", c.Derived.WorldWidth)
	check(c.Derived.WorldHeight > 0, "world height must be positive, got %v", c.Derived.WorldHeight)

	check(c.Weights.Separation >= 0, "weights.separation must be non-negative, got %v", c.Weights.Separation)
	check(c.Weights.Alignment >= 0, "weights.alignment must be non-negative, got %v", c.Weights.Alignment)
	check(c.Weights.Cohesion >= 0, "weights.cohesion must be non-negative, got %v", c.Weights.Cohesion)
	check(c.Weights.Flee >= 0, "weights.flee must be non-negative, got %v", c.Weights.Flee)

	check(c.Prey.Number >= 0, "prey.number must be non-negative, got %d", c.Prey.Number)
	check(c.Prey.Speed >= 0, "prey.speed must be non-negative, got %v", c.Prey.Speed)
	check(c.Prey.MaxTurnAngle >= 0, "prey.max_turn_angle must be non-negative, got %v", c.Prey.MaxTurnAngle)
	check(c.Prey.MinSeparation >= 0, "prey.min_separation must be non-negative, got %v", c.Prey.MinSeparation)
	check(c.Prey.MinFlockDist >= 0, "prey.min_flock_dist must be non-negative, got %v", c.Prey.MinFlockDist)
	check(c.Prey.PredatorSightDist >= 0, "prey.predator_sight_dist must be non-negative, got %v", c.Prey.PredatorSightDist)

	check(c.Predator.Number >= 0, "predator.number must be non-negative, got %d", c.Predator.Number)
	check(c.Predator.Speed >= 0, "predator.speed must be non-negative, got %v", c.Predator.Speed)
	check(c.Predator.MaxTurnAngle >= 0, "predator.max_turn_angle must be non-negative, got %v", c.Predator.MaxTurnAngle)
	check(c.Predator.KillDist >= 0, "predator.kill_dist must be non-negative, got %v", c.Predator.KillDist)

	check(c.Loop.StepsPerUpdate >= 1, "loop.steps_per_update must be at least 1, got %d", c.Loop.StepsPerUpdate)
	check(c.Loop.TickDelayMS >= 0, "loop.tick_delay_ms must be non-negative, got %d", c.Loop.TickDelayMS)
	check(c.Parallel.Threshold >= 0, "parallel.threshold must be non-negative, got %d", c.Parallel.Threshold)
	check(c.Parallel.Workers >= 0, "parallel.workers must be non-negative, got %d", c.Parallel.Workers)
	check(c.Telemetry.WindowTicks >= 1, "telemetry.window_ticks must be at least 1, got %d", c.Telemetry.WindowTicks)

	return errors.Join(errs...)
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
