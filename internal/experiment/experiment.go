package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/sim"
)

type Config struct {
	Name          string
	Method        integrators.Method
	Bodies        []dynamo.Body
	Dt            float64
	Duration      float64
	RecordEvery   int
	ValidateState bool
}

// FromConfig resolves a file config into a runnable experiment config.
func FromConfig(c *config.Config) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	m, err := c.Method()
	if err != nil {
		return Config{}, err
	}
	bodies, err := c.InitialBodies()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Name:          c.Label(),
		Method:        m,
		Bodies:        bodies,
		Dt:            c.Dt,
		Duration:      c.Duration,
		RecordEvery:   c.RecordEvery,
		ValidateState: c.ValidateState,
	}, nil
}

type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Config() Config { return e.cfg }

func (e *Experiment) Setup(metrics ...sim.Metric) error {
	s, err := sim.New(e.cfg.Bodies, e.cfg.Dt)
	if err != nil {
		return fmt.Errorf("setup %s: %w", e.cfg.Name, err)
	}
	for _, m := range metrics {
		s.AddMetric(m)
	}
	e.simulator = s
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	simCfg := sim.Config{
		Duration:      e.cfg.Duration,
		RecordEvery:   e.cfg.RecordEvery,
		ValidateState: e.cfg.ValidateState,
	}

	return e.simulator.Run(ctx, e.cfg.Method, simCfg)
}

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator {
	return e.simulator
}
