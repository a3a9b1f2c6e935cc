package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/fixtures"
	"github.com/san-kum/nbodysim/internal/integrators"
)

const (
	DefaultFixture     = "figure-eight"
	DefaultIntegrator  = "rk4"
	DefaultDt          = 0.0001
	DefaultDuration    = 10.0
	DefaultRecordEvery = 100
)

type Config struct {
	Fixture       string       `yaml:"fixture"`
	Integrator    string       `yaml:"integrator"`
	Dt            float64      `yaml:"dt"`
	Duration      float64      `yaml:"duration"`
	RecordEvery   int          `yaml:"record_every"`
	ValidateState bool         `yaml:"validate_state"`
	Bodies        []BodyConfig `yaml:"bodies,omitempty"`
}

// BodyConfig describes a custom body. When any are present they replace
// the fixture's initial conditions.
type BodyConfig struct {
	Mass float64    `yaml:"mass"`
	Pos  [3]float64 `yaml:"pos,flow"`
	Vel  [3]float64 `yaml:"vel,flow"`
}

func DefaultConfig() *Config {
	return &Config{
		Fixture:       DefaultFixture,
		Integrator:    DefaultIntegrator,
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		RecordEvery:   DefaultRecordEvery,
		ValidateState: true,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Method resolves the configured integrator name.
func (c *Config) Method() (integrators.Method, error) {
	return integrators.ParseMethod(c.Integrator)
}

// InitialBodies returns fresh bodies from the custom list or the fixture.
func (c *Config) InitialBodies() ([]dynamo.Body, error) {
	if len(c.Bodies) > 0 {
		bodies := make([]dynamo.Body, len(c.Bodies))
		for i, b := range c.Bodies {
			bodies[i] = dynamo.NewBody(b.Mass, dynamo.Vec3(b.Pos), dynamo.Vec3(b.Vel))
		}
		return bodies, nil
	}
	f, err := fixtures.Get(c.Fixture)
	if err != nil {
		return nil, err
	}
	return f.Bodies(), nil
}

// Label names the run: the fixture key, or "custom" for a body list.
func (c *Config) Label() string {
	if len(c.Bodies) > 0 {
		return "custom"
	}
	return c.Fixture
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Method(); err != nil {
		errs = append(errs, err)
	}
	if c.Dt <= 0 {
		errs = append(errs, fmt.Errorf("%w, got %v", dynamo.ErrInvalidTimestep, c.Dt))
	}
	if c.Duration <= 0 {
		errs = append(errs, fmt.Errorf("%w, got %v", dynamo.ErrInvalidDuration, c.Duration))
	}
	if c.RecordEvery < 0 {
		errs = append(errs, fmt.Errorf("record_every must be non-negative, got %d", c.RecordEvery))
	}
	if len(c.Bodies) == 0 {
		if _, err := fixtures.Get(c.Fixture); err != nil {
			errs = append(errs, err)
		}
	}
	for i, b := range c.Bodies {
		if b.Mass <= 0 {
			errs = append(errs, fmt.Errorf("body %d: %w", i, dynamo.ErrInvalidBody))
		}
	}
	return errors.Join(errs...)
}
