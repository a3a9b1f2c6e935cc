package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/fixtures"
	"github.com/san-kum/nbodysim/internal/integrators"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Fixture != "figure-eight" {
		t.Errorf("expected fixture figure-eight, got %s", cfg.Fixture)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := []byte(`
fixture: two-body
integrator: leapfrog
dt: 0.001
duration: 5
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Fixture != "two-body" || cfg.Dt != 0.001 || cfg.Duration != 5 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.RecordEvery != DefaultRecordEvery {
		t.Errorf("missing key should keep default, got %d", cfg.RecordEvery)
	}
	m, err := cfg.Method()
	if err != nil || m != integrators.Leapfrog {
		t.Errorf("Method() = %v, %v", m, err)
	}
}

func TestLoadCustomBodies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
integrator: rk2
bodies:
  - mass: 0.8
    pos: [0.2, 0, 0]
    vel: [0, 0.1, 0]
  - mass: 0.2
    pos: [-0.8, 0, 0]
    vel: [0, -0.4, 0]
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	bodies, err := cfg.InitialBodies()
	if err != nil {
		t.Fatal(err)
	}
	want := fixtures.MustGet("two-body").Bodies()
	if len(bodies) != len(want) {
		t.Fatalf("expected %d bodies, got %d", len(want), len(bodies))
	}
	for i := range want {
		if bodies[i] != want[i] {
			t.Errorf("body %d: got %+v, want %+v", i, bodies[i], want[i])
		}
	}
	if cfg.Label() != "custom" {
		t.Errorf("expected custom label, got %s", cfg.Label())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cfg := GetPreset("two-body", "symplectic")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"bad integrator", func(c *Config) { c.Integrator = "euler" }, dynamo.ErrUnsupportedIntegrator},
		{"zero dt", func(c *Config) { c.Dt = 0 }, dynamo.ErrInvalidTimestep},
		{"negative duration", func(c *Config) { c.Duration = -1 }, dynamo.ErrInvalidDuration},
		{"unknown fixture", func(c *Config) { c.Fixture = "nope" }, fixtures.ErrUnknownFixture},
		{"massless body", func(c *Config) { c.Bodies = []BodyConfig{{Mass: 0}} }, dynamo.ErrInvalidBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("figure-eight", "third")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Duration != 2.1088 {
		t.Errorf("expected duration 2.1088, got %f", cfg.Duration)
	}

	cfg.Duration = 99
	if GetPreset("figure-eight", "third").Duration == 99 {
		t.Error("GetPreset returned shared config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("figure-eight", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "period"); cfg != nil {
		t.Error("expected nil for nonexistent fixture")
	}
}

func TestPresetsValid(t *testing.T) {
	for fixture := range Presets {
		for _, name := range ListPresets(fixture) {
			if err := GetPreset(fixture, name).Validate(); err != nil {
				t.Errorf("%s/%s: %v", fixture, name, err)
			}
		}
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent fixture")
	}
}
