// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
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
	Particles ParticlesConfig `yaml:"particles"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Wind      WindConfig      `yaml:"wind"`
	Obstacles ObstaclesConfig `yaml:"obstacles"`
	Parallel  ParallelConfig  `yaml:"parallel"`
	Render    RenderConfig    `yaml:"render"`
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

// WorldConfig holds the visible world extent in world units.
// The horizontal extent is scaled by the screen aspect ratio when mapping pointer input.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ParticlesConfig holds spawn and lifecycle parameters.
type ParticlesConfig struct {
	BaseLifespan float64 `yaml:"base_lifespan"` // seconds
	BaseRadius   float64 `yaml:"base_radius"`   // world units, also the shrink ceiling
	ShrinkFloor  float64 `yaml:"shrink_floor"`  // smallest radius while fading out
	SpawnRate    int     `yaml:"spawn_rate"`    // particles per spawn command
	SpawnRates   []int   `yaml:"spawn_rates"`   // selectable with number keys 1..9
	SpawnDisk    float64 `yaml:"spawn_disk"`    // spawn jitter radius
	StartX       float64 `yaml:"start_x"`       // continuous emitter position
	StartY       float64 `yaml:"start_y"`
	MaxVelocity  float64 `yaml:"max_velocity"` // per-axis clamp
	ColorRamp    string  `yaml:"color_ramp"`   // "spectrum" or "fire"
}

// PhysicsConfig holds integration and collision parameters.
type PhysicsConfig struct {
	GravityX       float64 `yaml:"gravity_x"`
	GravityY       float64 `yaml:"gravity_y"`
	CollisionSlack float64 `yaml:"collision_slack"` // allowed overlap before correction
	CollisionMode  string  `yaml:"collision_mode"`  // "first_obstacle" or "own_obstacle"
}

// WindConfig holds pointer wind parameters.
type WindConfig struct {
	Radius   float64 `yaml:"radius"`
	Strength float64 `yaml:"strength"` // impulse = strength / max(distance, 1)
}

// ObstaclesConfig holds obstacle disc appearance.
type ObstaclesConfig struct {
	Radius float64    `yaml:"radius"`
	Color  [4]float64 `yaml:"color"`
}

// ParallelConfig holds update pass scheduling parameters.
type ParallelConfig struct {
	Threshold  int `yaml:"threshold"`   // below this many particles the pass is single-threaded
	MaxWorkers int `yaml:"max_workers"` // 0 = GOMAXPROCS
}

// RenderConfig holds post-process parameters.
type RenderConfig struct {
	BlurPasses int  `yaml:"blur_passes"` // ping-pong passes, 0 disables the blur
	Additive   bool `yaml:"additive"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32        float32 // 1 / Screen.TargetFPS, used by headless runs
	ScreenW32   float32
	ScreenH32   float32
	WorldW32    float32
	WorldH32    float32
	Workers     int // resolved worker count (0 = GOMAXPROCS)
	SpawnRates9 [9]int
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS)
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world size must be positive, got %gx%g", c.World.Width, c.World.Height)
	}
	if c.Particles.BaseLifespan <= 0 {
		return fmt.Errorf("particles.base_lifespan must be positive, got %g", c.Particles.BaseLifespan)
	}
	if c.Particles.SpawnRate < 0 {
		return fmt.Errorf("particles.spawn_rate must not be negative, got %d", c.Particles.SpawnRate)
	}
	if len(c.Particles.SpawnRates) > 9 {
		return fmt.Errorf("particles.spawn_rates holds at most 9 entries, got %d", len(c.Particles.SpawnRates))
	}
	switch c.Particles.ColorRamp {
	case "", "spectrum", "fire":
	default:
		return fmt.Errorf("particles.color_ramp: unknown ramp %q", c.Particles.ColorRamp)
	}
	switch c.Physics.CollisionMode {
	case "", "first_obstacle", "own_obstacle":
	default:
		return fmt.Errorf("physics.collision_mode: unknown mode %q", c.Physics.CollisionMode)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = 1 / float32(c.Screen.TargetFPS)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)

	c.Derived.Workers = c.Parallel.MaxWorkers
	if c.Derived.Workers < 0 {
		c.Derived.Workers = 0
	}

	// Unlisted number keys keep the current rate
	c.Derived.SpawnRates9 = [9]int{}
	copy(c.Derived.SpawnRates9[:], c.Particles.SpawnRates)
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
