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
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	DayNight  DayNightConfig  `yaml:"daynight"`
	Moisture  MoistureConfig  `yaml:"moisture"`
	Sunlight  SunlightConfig  `yaml:"sunlight"`
	Touch     TouchConfig     `yaml:"touch"`
	Health    HealthConfig    `yaml:"health"`
	Growth    GrowthConfig    `yaml:"growth"`
	Occlusion OcclusionConfig `yaml:"occlusion"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Session   SessionConfig   `yaml:"session"`
	Species   []SpeciesConfig `yaml:"species"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds garden dimensions in world units.
type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds simulation stepping parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"` // seconds per tick
}

// DayNightConfig holds the environment clock parameters.
type DayNightConfig struct {
	DayDuration float64 `yaml:"day_duration"` // seconds for one full cycle
	StartTime   float64 `yaml:"start_time"`   // initial time of day in [0,1)
}

// MoistureConfig holds water level parameters shared by all plants.
type MoistureConfig struct {
	Min             float64 `yaml:"min"`
	Max             float64 `yaml:"max"`
	EvaporationRate float64 `yaml:"evaporation_rate"` // level lost per second
	DefaultAmount   float64 `yaml:"default_amount"`   // level added per watering event
}

// SunlightConfig holds light exposure parameters.
type SunlightConfig struct {
	Min            float64 `yaml:"min"`
	Max            float64 `yaml:"max"`
	ExposureRate   float64 `yaml:"exposure_rate"`    // level gained per second at full sun
	ShadeDecayRate float64 `yaml:"shade_decay_rate"` // level lost per second when shaded
}

// TouchConfig holds touch intensity parameters.
type TouchConfig struct {
	MaxIntensity     float64 `yaml:"max_intensity"`
	DecayRate        float64 `yaml:"decay_rate"`        // intensity lost per second
	DefaultIntensity float64 `yaml:"default_intensity"` // intensity added per touch event
}

// HealthConfig holds the factor contribution tuning.
// OptimalGain is the fixed contribution inside an optimal band; UnderPenalty
// and OverPenalty are the maximum magnitudes below and above the band.
type HealthConfig struct {
	Min             float64 `yaml:"min"`
	Max             float64 `yaml:"max"`
	OptimalGain     float64 `yaml:"optimal_gain"`
	UnderPenalty    float64 `yaml:"under_penalty"`
	OverPenalty     float64 `yaml:"over_penalty"`
	AmbientDecay    float64 `yaml:"ambient_decay"`     // per second, applied when no factors combine
	TouchComfortCap float64 `yaml:"touch_comfort_cap"` // fraction of max intensity a touch-loving plant enjoys
	TouchCalmCap    float64 `yaml:"touch_calm_cap"`    // fraction of max intensity a touch-averse plant tolerates
}

// GrowthConfig holds growth gating parameters.
type GrowthConfig struct {
	Policy              string  `yaml:"policy"` // "staged" or "linear"
	MaxStage            int     `yaml:"max_stage"`
	HealthThreshold     float64 `yaml:"health_threshold"`      // fraction of max health required to grow
	CheckInterval       float64 `yaml:"check_interval"`        // seconds between gate evaluations
	RequiredOptimalTime float64 `yaml:"required_optimal_time"` // seconds at optimal conditions per stage
	LinearRate          float64 `yaml:"linear_rate"`           // stages per second for the linear policy
}

// OcclusionConfig holds shading parameters.
type OcclusionConfig struct {
	ShadeFactor float64 `yaml:"shade_factor"` // light multiplier under an occluder
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	LogInterval float64 `yaml:"log_interval"` // seconds between diagnostic log samples
}

// SessionConfig holds save/load parameters.
type SessionConfig struct {
	AppName string `yaml:"app_name"`
}

// SpeciesConfig defines a plant species template.
// Water and Light select the optimal bands; Weights control how much each
// factor counts toward health.
type SpeciesConfig struct {
	Name       string        `yaml:"name"`
	Water      string        `yaml:"water"` // normal, drought_resistant, water_loving
	Light      string        `yaml:"light"` // partial_sun, shade, full_sun
	LikesTouch bool          `yaml:"likes_touch"`
	Weights    WeightsConfig `yaml:"weights"`
}

// WeightsConfig holds per-species factor weights.
type WeightsConfig struct {
	Sunlight float64 `yaml:"sunlight"`
	Water    float64 `yaml:"water"`
	Touch    float64 `yaml:"touch"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32         float32          // Physics.DT as float32
	SpeciesIndex map[string]uint8 // name -> index for species lookup
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

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)

	// Synthesize default species if none specified
	if len(c.Species) == 0 {
		c.Species = []SpeciesConfig{
			{
				Name:       "fern",
				Water:      "normal",
				Light:      "shade",
				LikesTouch: true,
				Weights:    WeightsConfig{Sunlight: 1, Water: 1, Touch: 1},
			},
			{
				Name:       "cactus",
				Water:      "drought_resistant",
				Light:      "full_sun",
				LikesTouch: false,
				Weights:    WeightsConfig{Sunlight: 1.5, Water: 1, Touch: 0.5},
			},
			{
				Name:       "lily",
				Water:      "water_loving",
				Light:      "partial_sun",
				LikesTouch: true,
				Weights:    WeightsConfig{Sunlight: 1, Water: 1.5, Touch: 0.5},
			},
		}
	}

	// Apply defaults to species that don't specify weights
	for i := range c.Species {
		sp := &c.Species[i]
		if sp.Weights.Sunlight == 0 && sp.Weights.Water == 0 && sp.Weights.Touch == 0 {
			sp.Weights = WeightsConfig{Sunlight: 1, Water: 1, Touch: 1}
		}
	}

	// Build species index for fast lookup
	c.Derived.SpeciesIndex = make(map[string]uint8, len(c.Species))
	for i, sp := range c.Species {
		c.Derived.SpeciesIndex[sp.Name] = uint8(i)
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
