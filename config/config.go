// Package config provides configuration loading and access for the game.
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

// Config holds all game configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Hostile    HostileConfig    `yaml:"hostile"`
	Population PopulationConfig `yaml:"population"`
	Timers     TimersConfig     `yaml:"timers"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bot        BotConfig        `yaml:"bot"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	MinWidth  int    `yaml:"min_width"`
	MinHeight int    `yaml:"min_height"`
	TargetFPS int    `yaml:"target_fps"`
}

// PhysicsConfig holds parameters of the bundled physics backend.
type PhysicsConfig struct {
	DT           float64 `yaml:"dt"`             // Fixed step used by headless runs
	TimeScale    float64 `yaml:"time_scale"`     // Physics time multiplier
	MaxSpeed     float64 `yaml:"max_speed"`      // Velocity magnitude clamp (units/s)
	ContactSlop  float64 `yaml:"contact_slop"`   // Extra distance still counted as touching
	GridCellSize float64 `yaml:"grid_cell_size"` // Broadphase cell size
}

// PlayerConfig holds player entity parameters.
type PlayerConfig struct {
	Speed       float64 `yaml:"speed"`        // Velocity added per frame per held direction
	SizeDivisor float64 `yaml:"size_divisor"` // Sprite size = viewport width / this
	Damping     float64 `yaml:"damping"`
	Density     float64 `yaml:"density"`
}

// HostileConfig holds hostile spawning and steering parameters.
type HostileConfig struct {
	Speed             float64 `yaml:"speed"`              // Steering impulse per frame
	SizeDivisor       float64 `yaml:"size_divisor"`       // Base size = viewport width / this
	Density           float64 `yaml:"density"`            // Scaled by size scale
	Damping           float64 `yaml:"damping"`
	CommonChance      float64 `yaml:"common_chance"`      // Probability of a normal-sized draw
	CommonScaleMin    float64 `yaml:"common_scale_min"`
	CommonScaleMax    float64 `yaml:"common_scale_max"`
	OutlierScaleMin   float64 `yaml:"outlier_scale_min"`
	OutlierScaleMax   float64 `yaml:"outlier_scale_max"`  // Ceiling before the difficulty bonus
	DifficultyDivisor float64 `yaml:"difficulty_divisor"` // Ceiling grows by level / this
	RareChance        float64 `yaml:"rare_chance"`
	SpawnMargin       float64 `yaml:"spawn_margin"` // Depth of the off-screen spawn band
}

// PopulationConfig holds population limits.
type PopulationConfig struct {
	Max int `yaml:"max"`
}

// TimersConfig holds the repeating timer intervals, in seconds.
type TimersConfig struct {
	SpawnInterval      float64 `yaml:"spawn_interval"`
	DifficultyInterval float64 `yaml:"difficulty_interval"`
}

// DifficultyConfig holds difficulty policy.
type DifficultyConfig struct {
	ResetOnRestart bool `yaml:"reset_on_restart"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	HallOfFameSize      int     `yaml:"hall_of_fame_size"`
	BookmarkMilestones  []int   `yaml:"bookmark_milestones"`
}

// BotConfig holds parameters of the headless evader bot.
type BotConfig struct {
	FleeRadius   float64 `yaml:"flee_radius"`
	AutoRestart  bool    `yaml:"auto_restart"`
	RestartDelay float64 `yaml:"restart_delay"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW        float64 // Screen.Width as float64
	ScreenH        float64 // Screen.Height as float64
	PlayerRadius   float64 // Player collision radius at the configured screen width
	HostileBase    float64 // Hostile base sprite size at the configured screen width
	OutlierCeiling float64 // Outlier ceiling at difficulty 0
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

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	dup := *c
	dup.Telemetry.BookmarkMilestones = append([]int(nil), c.Telemetry.BookmarkMilestones...)
	return &dup
}

// Validate reports the first set of values that would break the simulation invariants.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	probability := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0, 1], got %v", name, v))
		}
	}

	positive("screen.width", float64(c.Screen.Width))
	positive("screen.height", float64(c.Screen.Height))
	positive("physics.dt", c.Physics.DT)
	positive("physics.time_scale", c.Physics.TimeScale)
	positive("physics.grid_cell_size", c.Physics.GridCellSize)
	positive("player.size_divisor", c.Player.SizeDivisor)
	positive("hostile.size_divisor", c.Hostile.SizeDivisor)
	positive("hostile.difficulty_divisor", c.Hostile.DifficultyDivisor)
	positive("timers.spawn_interval", c.Timers.SpawnInterval)
	positive("timers.difficulty_interval", c.Timers.DifficultyInterval)
	probability("hostile.common_chance", c.Hostile.CommonChance)
	probability("hostile.rare_chance", c.Hostile.RareChance)

	if c.Population.Max < 0 {
		errs = append(errs, fmt.Errorf("population.max must not be negative, got %d", c.Population.Max))
	}
	if c.Hostile.CommonScaleMax < c.Hostile.CommonScaleMin {
		errs = append(errs, errors.New("hostile.common_scale_max is below common_scale_min"))
	}
	if c.Hostile.OutlierScaleMax < c.Hostile.OutlierScaleMin {
		errs = append(errs, errors.New("hostile.outlier_scale_max is below outlier_scale_min"))
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)
	c.Derived.PlayerRadius = c.Derived.ScreenW / c.Player.SizeDivisor / 2
	c.Derived.HostileBase = c.Derived.ScreenW / c.Hostile.SizeDivisor
	c.Derived.OutlierCeiling = c.Hostile.OutlierScaleMax

	// Minimum window size defaults to the screen size when unset
	if c.Screen.MinWidth <= 0 || c.Screen.MinWidth > c.Screen.Width {
		c.Screen.MinWidth = c.Screen.Width
	}
	if c.Screen.MinHeight <= 0 || c.Screen.MinHeight > c.Screen.Height {
		c.Screen.MinHeight = c.Screen.Height
	}
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
