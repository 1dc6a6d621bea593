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
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Population PopulationConfig `yaml:"population"`
	Genome     GenomeConfig     `yaml:"genome"`
	Agent      AgentConfig      `yaml:"agent"`
	Goal       GoalConfig       `yaml:"goal"`
	Evolution  EvolutionConfig  `yaml:"evolution"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

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
	Width  float64 `yaml:"width"`  // 0 = use screen width
	Height float64 `yaml:"height"` // 0 = use screen height
	YDown  bool    `yaml:"y_down"` // y grows downward (screen coordinates)
}

// PopulationConfig holds population parameters.
type PopulationConfig struct {
	Size int `yaml:"size"`
}

// GenomeConfig holds genome shape parameters.
type GenomeConfig struct {
	Length  int `yaml:"length"`
	MaxTurn int `yaml:"max_turn"`
}

// AgentConfig holds agent spawn and movement parameters.
type AgentConfig struct {
	Speed          float64 `yaml:"speed"`
	Radius         float64 `yaml:"radius"`
	StartX         float64 `yaml:"start_x"` // 0 = world width / 2
	StartY         float64 `yaml:"start_y"` // 0 = world height * 0.9
	StartHeading   float64 `yaml:"start_heading"`
	TurnIntervalMs float64 `yaml:"turn_interval_ms"`
}

// GoalConfig holds the goal region.
type GoalConfig struct {
	X      float64 `yaml:"x"` // 0 = world width / 2
	Y      float64 `yaml:"y"` // 0 = world height / 10
	Radius float64 `yaml:"radius"`
}

// EvolutionConfig holds reproduction parameters.
type EvolutionConfig struct {
	MutationRate   float64 `yaml:"mutation_rate"`
	PreserveElites bool    `yaml:"preserve_elites"` // skip mutation for goal-reaching clones
}

// SimulationConfig holds tick loop parameters.
type SimulationConfig struct {
	DT            float64 `yaml:"dt"`
	TicksPerFrame int     `yaml:"ticks_per_frame"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow       int `yaml:"perf_window"`
	HallOfFameSize   int `yaml:"hall_of_fame_size"`
	StallGenerations int `yaml:"stall_generations"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW       float64 // effective world width
	WorldH       float64 // effective world height
	StartX       float64
	StartY       float64
	GoalX        float64
	GoalY        float64
	TurnInterval float64 // Agent.TurnIntervalMs in seconds
}

// Error reports an invalid configuration value.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: invalid %s: %s", e.Field, e.Reason)
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

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults with derived values computed.
func Default() *Config {
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

	cfg.ComputeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// ComputeDerived calculates values derived from loaded config.
// Call it again after changing fields programmatically.
func (c *Config) ComputeDerived() {
	w := c.World.Width
	if w == 0 {
		w = float64(c.Screen.Width)
	}
	h := c.World.Height
	if h == 0 {
		h = float64(c.Screen.Height)
	}
	c.Derived.WorldW = w
	c.Derived.WorldH = h

	c.Derived.StartX = c.Agent.StartX
	if c.Derived.StartX == 0 {
		c.Derived.StartX = w / 2
	}
	c.Derived.StartY = c.Agent.StartY
	if c.Derived.StartY == 0 {
		c.Derived.StartY = h / 10 * 9
	}

	c.Derived.GoalX = c.Goal.X
	if c.Derived.GoalX == 0 {
		c.Derived.GoalX = w / 2
	}
	c.Derived.GoalY = c.Goal.Y
	if c.Derived.GoalY == 0 {
		c.Derived.GoalY = h / 10
	}

	c.Derived.TurnInterval = c.Agent.TurnIntervalMs / 1000
}

// Validate reports the first invalid value, or nil.
func (c *Config) Validate() error {
	switch {
	case c.Population.Size <= 0:
		return &Error{Field: "population.size", Reason: fmt.Sprintf("must be > 0, got %d", c.Population.Size)}
	case c.Genome.Length <= 0:
		return &Error{Field: "genome.length", Reason: fmt.Sprintf("must be > 0, got %d", c.Genome.Length)}
	case c.Genome.MaxTurn <= 0:
		return &Error{Field: "genome.max_turn", Reason: fmt.Sprintf("must be > 0, got %d", c.Genome.MaxTurn)}
	case c.Evolution.MutationRate < 0 || c.Evolution.MutationRate > 1:
		return &Error{Field: "evolution.mutation_rate", Reason: fmt.Sprintf("must be in [0, 1], got %g", c.Evolution.MutationRate)}
	case c.Goal.Radius <= 0:
		return &Error{Field: "goal.radius", Reason: fmt.Sprintf("must be > 0, got %g", c.Goal.Radius)}
	case c.Agent.Speed <= 0:
		return &Error{Field: "agent.speed", Reason: fmt.Sprintf("must be > 0, got %g", c.Agent.Speed)}
	case c.Agent.TurnIntervalMs <= 0:
		return &Error{Field: "agent.turn_interval_ms", Reason: fmt.Sprintf("must be > 0, got %g", c.Agent.TurnIntervalMs)}
	case c.Derived.WorldW <= 0 || c.Derived.WorldH <= 0:
		return &Error{Field: "world", Reason: fmt.Sprintf("dimensions must be > 0, got %gx%g", c.Derived.WorldW, c.Derived.WorldH)}
	case c.Simulation.DT <= 0:
		return &Error{Field: "simulation.dt", Reason: fmt.Sprintf("must be > 0, got %g", c.Simulation.DT)}
	}
	return nil
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
