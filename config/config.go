// Package config provides configuration loading and access for the podium host
// and its celebration subsystem.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Celebration CelebrationConfig `yaml:"celebration"`
	Ranking     RankingConfig     `yaml:"ranking"`
	Demo        DemoConfig        `yaml:"demo"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CelebrationConfig holds the confetti celebration parameters.
// Speeds are per reference frame (1/60 s) in world units.
type CelebrationConfig struct {
	ParticleCount   int          `yaml:"particle_count" env:"PODIUM_PARTICLE_COUNT"`
	Radius          float64      `yaml:"radius" env:"PODIUM_RADIUS"`
	DurationMs      int          `yaml:"duration_ms" env:"PODIUM_DURATION_MS"`
	VerticalSpeed   float64      `yaml:"vertical_speed" env:"PODIUM_VERTICAL_SPEED"`
	HorizontalSpeed float64      `yaml:"horizontal_speed" env:"PODIUM_HORIZONTAL_SPEED"` // drift along x
	DepthSpeed      float64      `yaml:"depth_speed" env:"PODIUM_DEPTH_SPEED"`           // drift along z
	MaxRotationRate RotationRate `yaml:"max_rotation_rate" envPrefix:"PODIUM_ROTATION_"`
	ConfettiSize    float64      `yaml:"confetti_size" env:"PODIUM_CONFETTI_SIZE"`
	CameraFOV       float64      `yaml:"camera_fov" env:"PODIUM_CAMERA_FOV"` // degrees
}

// RotationRate is the per-frame upper bound of random spin on each axis, in radians.
type RotationRate struct {
	X float64 `yaml:"x" env:"X"`
	Z float64 `yaml:"z" env:"Z"`
}

// RankingConfig holds ranking parameters.
type RankingConfig struct {
	TopN int `yaml:"top_n"` // Number of leading entries compared for change detection
}

// DemoConfig holds parameters for the demo leaderboard host.
type DemoConfig struct {
	ClaimMin      int      `yaml:"claim_min"`      // Smallest points award per claim
	ClaimMax      int      `yaml:"claim_max"`      // Largest points award per claim
	ClaimInterval float64  `yaml:"claim_interval"` // Seconds between automatic claims in headless mode
	Players       []string `yaml:"players"`        // Initial roster when no CSV is given
}

// TelemetryConfig holds session logging parameters.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir" env:"PODIUM_OUTPUT_DIR"`
}

// DerivedConfig holds values computed from other config fields.
type DerivedConfig struct {
	FrameSec float64 // Seconds per display frame at TargetFPS
}

// Default celebration values; zero config fields fall back to these.
const (
	DefaultParticleCount   = 1000
	DefaultRadius          = 5.0
	DefaultDurationMs      = 5000
	DefaultVerticalSpeed   = 0.01
	DefaultHorizontalSpeed = 0.003
	DefaultDepthSpeed      = 0.005
	DefaultConfettiSize    = 0.07
	DefaultCameraFOV       = 35.0
	DefaultTopN            = 3
	MaxTopN                = 3 // snapshots never hold more than three ids
)

// Default spin bounds.
var (
	DefaultRotationX = math.Pi / 30
	DefaultRotationZ = math.Pi / 50
)

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

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. Environment variables
// override both.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// ParseEnv applies environment overrides. Unset variables leave fields untouched.
func ParseEnv(cfg *Config) error {
	if err := env.Parse(&cfg.Celebration); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if err := env.Parse(&cfg.Telemetry); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Celebration.ApplyDefaults()

	if c.Ranking.TopN <= 0 {
		c.Ranking.TopN = DefaultTopN
	}
	c.Ranking.TopN = min(c.Ranking.TopN, MaxTopN)
	if c.Demo.ClaimMin <= 0 {
		c.Demo.ClaimMin = 1
	}
	if c.Demo.ClaimMax < c.Demo.ClaimMin {
		c.Demo.ClaimMax = c.Demo.ClaimMin
	}
	if c.Screen.TargetFPS <= 0 {
		c.Screen.TargetFPS = 60
	}

	c.Derived.FrameSec = 1.0 / float64(c.Screen.TargetFPS)
}

// ApplyDefaults replaces zero or negative fields with the package defaults.
func (c *CelebrationConfig) ApplyDefaults() {
	if c.ParticleCount <= 0 {
		c.ParticleCount = DefaultParticleCount
	}
	if c.Radius <= 0 {
		c.Radius = DefaultRadius
	}
	if c.DurationMs <= 0 {
		c.DurationMs = DefaultDurationMs
	}
	if c.VerticalSpeed <= 0 {
		c.VerticalSpeed = DefaultVerticalSpeed
	}
	if c.HorizontalSpeed <= 0 {
		c.HorizontalSpeed = DefaultHorizontalSpeed
	}
	if c.DepthSpeed <= 0 {
		c.DepthSpeed = DefaultDepthSpeed
	}
	if c.MaxRotationRate.X <= 0 {
		c.MaxRotationRate.X = DefaultRotationX
	}
	if c.MaxRotationRate.Z <= 0 {
		c.MaxRotationRate.Z = DefaultRotationZ
	}
	if c.ConfettiSize <= 0 {
		c.ConfettiSize = DefaultConfettiSize
	}
	if c.CameraFOV <= 0 {
		c.CameraFOV = DefaultCameraFOV
	}
}

// DefaultCelebration returns a celebration config with every field defaulted.
func DefaultCelebration() CelebrationConfig {
	var c CelebrationConfig
	c.ApplyDefaults()
	return c
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
