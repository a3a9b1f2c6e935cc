package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nbodysim/internal/config"
	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/experiment"
	"github.com/san-kum/nbodysim/internal/integrators"
	"github.com/san-kum/nbodysim/internal/sim"
	"github.com/san-kum/nbodysim/internal/storage"
)

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one run. Unset fields keep the config defaults.
type ScenarioStep struct {
	config.Config `yaml:",inline"`
	Save          bool `yaml:"save"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var raw struct {
		Name        string      `yaml:"name"`
		Description string      `yaml:"description"`
		Steps       []yaml.Node `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	scenario := &Scenario{Name: raw.Name, Description: raw.Description}
	for i, node := range raw.Steps {
		step := ScenarioStep{Config: *config.DefaultConfig()}
		if err := node.Decode(&step); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		scenario.Steps = append(scenario.Steps, step)
	}
	if len(scenario.Steps) == 0 {
		return nil, errors.New("scenario has no steps")
	}
	return scenario, nil
}

// Outcome is the result of one scenario step. RunID is empty unless the
// step was saved.
type Outcome struct {
	Label  string
	RunID  string
	Result *sim.Result
}

// RunScenario executes all steps in order, writing progress to w. Steps
// marked save are stored when st is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, w io.Writer) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		ec, err := experiment.FromConfig(&step.Config)
		if err != nil {
			return outcomes, fmt.Errorf("step %d: %w", i+1, err)
		}
		fmt.Fprintf(w, "running step %d/%d: %s with %s\n", i+1, len(scenario.Steps), ec.Name, ec.Method)

		exp := experiment.New(ec)
		if err := exp.Setup(experiment.DefaultMetrics()...); err != nil {
			return outcomes, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}

		out := Outcome{Label: ec.Name, Result: result}
		if step.Save && st != nil {
			if out.RunID, err = st.Save(ec.Name, ec.Dt, ec.Duration, result); err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		outcomes = append(outcomes, out)
	}

	return outcomes, nil
}

// TimestepSweep evolves one ensemble at a series of timesteps.
type TimestepSweep struct {
	Bodies   []dynamo.Body
	Method   integrators.Method
	Duration float64
	Dts      []float64
}

// SweepResult holds one timestep of a sweep. Order is the convergence order
// estimated against the previous row, NaN for the first.
type SweepResult struct {
	Dt          float64
	Steps       int
	EnergyError float64
	Order       float64
}

// RunSweep runs the sweep in the given dt order.
func RunSweep(ctx context.Context, sweep *TimestepSweep) ([]SweepResult, error) {
	if len(sweep.Dts) == 0 {
		return nil, errors.New("sweep has no timesteps")
	}
	results := make([]SweepResult, 0, len(sweep.Dts))

	for i, dt := range sweep.Dts {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		s, err := sim.New(sweep.Bodies, dt)
		if err != nil {
			return results, err
		}
		if err := s.Evolve(sweep.Method, sweep.Duration); err != nil {
			return results, err
		}

		r := SweepResult{
			Dt:          dt,
			Steps:       s.Steps(),
			EnergyError: s.RelativeEnergyError(),
			Order:       math.NaN(),
		}
		if i > 0 {
			prev := results[i-1]
			r.Order = math.Log(math.Abs(r.EnergyError)/math.Abs(prev.EnergyError)) / math.Log(dt/prev.Dt)
		}
		results = append(results, r)
	}

	return results, nil
}
