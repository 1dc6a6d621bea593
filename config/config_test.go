package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Population.Size != 100 {
		t.Errorf("population.size = %d, want 100", cfg.Population.Size)
	}
	if cfg.Genome.Length != 100 || cfg.Genome.MaxTurn != 60 {
		t.Errorf("genome = %+v, want length 100, max_turn 60", cfg.Genome)
	}
	if cfg.Derived.WorldW != 800 || cfg.Derived.WorldH != 600 {
		t.Errorf("world = %vx%v, want 800x600", cfg.Derived.WorldW, cfg.Derived.WorldH)
	}
	if cfg.Derived.StartX != 400 || cfg.Derived.StartY != 540 {
		t.Errorf("start = (%v, %v), want (400, 540)", cfg.Derived.StartX, cfg.Derived.StartY)
	}
	if cfg.Derived.GoalX != 400 || cfg.Derived.GoalY != 60 {
		t.Errorf("goal = (%v, %v), want (400, 60)", cfg.Derived.GoalX, cfg.Derived.GoalY)
	}
	if cfg.Derived.TurnInterval != 0.1 {
		t.Errorf("turn interval = %v, want 0.1", cfg.Derived.TurnInterval)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("population:\n  size: 12\ngoal:\n  x: 100\n  y: 100\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Population.Size != 12 {
		t.Errorf("population.size = %d, want 12", cfg.Population.Size)
	}
	if cfg.Derived.GoalX != 100 || cfg.Derived.GoalY != 100 {
		t.Errorf("goal = (%v, %v), want (100, 100)", cfg.Derived.GoalX, cfg.Derived.GoalY)
	}
	// Untouched fields keep defaults
	if cfg.Genome.Length != 100 {
		t.Errorf("genome.length = %d, want default 100", cfg.Genome.Length)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero population", func(c *Config) { c.Population.Size = 0 }, "population.size"},
		{"negative population", func(c *Config) { c.Population.Size = -3 }, "population.size"},
		{"zero genome", func(c *Config) { c.Genome.Length = 0 }, "genome.length"},
		{"zero max turn", func(c *Config) { c.Genome.MaxTurn = 0 }, "genome.max_turn"},
		{"rate below zero", func(c *Config) { c.Evolution.MutationRate = -0.1 }, "evolution.mutation_rate"},
		{"rate above one", func(c *Config) { c.Evolution.MutationRate = 1.5 }, "evolution.mutation_rate"},
		{"zero goal radius", func(c *Config) { c.Goal.Radius = 0 }, "goal.radius"},
		{"zero speed", func(c *Config) { c.Agent.Speed = 0 }, "agent.speed"},
		{"zero interval", func(c *Config) { c.Agent.TurnIntervalMs = 0 }, "agent.turn_interval_ms"},
		{"zero dt", func(c *Config) { c.Simulation.DT = 0 }, "simulation.dt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			cfg.ComputeDerived()

			err := cfg.Validate()
			var cfgErr *Error
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() = %v, want *config.Error", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestValidateBoundaryRates(t *testing.T) {
	for _, rate := range []float64{0, 1} {
		cfg := Default()
		cfg.Evolution.MutationRate = rate
		if err := cfg.Validate(); err != nil {
			t.Errorf("rate %v: unexpected error %v", rate, err)
		}
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Population.Size = 33

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Population.Size != 33 {
		t.Errorf("population.size = %d, want 33", loaded.Population.Size)
	}
}
