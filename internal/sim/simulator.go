package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
)

// Simulator owns an ensemble of bodies and its clock. It is not safe for
// concurrent use.
type Simulator struct {
	bodies    []dynamo.Body
	t, dt     float64
	steps     int
	baseline  float64
	metrics   []Metric
	observers []Observer
}

// New copies bodies into a simulator with time quantum dt and captures the
// baseline total energy.
func New(bodies []dynamo.Body, dt float64) (*Simulator, error) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w, got %v", dynamo.ErrInvalidTimestep, dt)
	}
	for i := range bodies {
		if !bodies[i].IsValid() {
			return nil, fmt.Errorf("body %d: %w", i, dynamo.ErrInvalidBody)
		}
	}
	if err := checkSeparation(bodies); err != nil {
		return nil, err
	}

	s := &Simulator{
		bodies:    dynamo.CloneBodies(bodies),
		dt:        dt,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	s.baseline = dynamo.TotalEnergy(s.bodies)
	if s.baseline == 0 {
		return nil, dynamo.ErrZeroEnergy
	}
	return s, nil
}

func checkSeparation(bodies []dynamo.Body) error {
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].Pos == bodies[j].Pos {
				return fmt.Errorf("bodies %d and %d: %w", i, j, dynamo.ErrCoincidentBodies)
			}
		}
	}
	return nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Time() float64           { return s.t }
func (s *Simulator) Dt() float64             { return s.dt }
func (s *Simulator) Steps() int              { return s.steps }
func (s *Simulator) Len() int                { return len(s.bodies) }
func (s *Simulator) BaselineEnergy() float64 { return s.baseline }

// Bodies returns a copy of the current ensemble.
func (s *Simulator) Bodies() []dynamo.Body {
	return dynamo.CloneBodies(s.bodies)
}

func (s *Simulator) KineticEnergy() float64   { return dynamo.KineticEnergy(s.bodies) }
func (s *Simulator) PotentialEnergy() float64 { return dynamo.PotentialEnergy(s.bodies) }
func (s *Simulator) TotalEnergy() float64     { return dynamo.TotalEnergy(s.bodies) }

// RelativeEnergyError is the fractional drift of the total energy from the
// value captured at construction.
func (s *Simulator) RelativeEnergyError() float64 {
	return dynamo.RelativeEnergyError(s.TotalEnergy(), s.baseline)
}

// Step advances the clock by one quantum and the ensemble with method m.
// An unsupported method fails before anything is modified.
func (s *Simulator) Step(m integrators.Method) error {
	integ, err := integrators.For(m)
	if err != nil {
		return err
	}
	s.advance(integ)
	return nil
}

// Evolve steps with method m while the clock is more than half a quantum
// short of duration.
func (s *Simulator) Evolve(m integrators.Method, duration float64) error {
	integ, err := integrators.For(m)
	if err != nil {
		return err
	}
	for s.t < duration-0.5*s.dt {
		s.advance(integ)
	}
	return nil
}

func (s *Simulator) advance(integ integrators.Integrator) {
	s.t += s.dt
	integ.Step(s.bodies, s.dt)
	s.steps++
}

// Run evolves like Evolve while recording frames and feeding metrics and
// observers. Cancellation is checked between steps; the partial result is
// returned alongside ctx.Err().
func (s *Simulator) Run(ctx context.Context, m integrators.Method, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	integ, err := integrators.For(m)
	if err != nil {
		return nil, err
	}

	estimated := int((cfg.Duration - s.t) / s.dt)
	capacity := 2
	if cfg.RecordEvery > 0 && estimated > 0 {
		capacity += estimated / cfg.RecordEvery
	}
	result := &Result{
		Method:         m,
		Frames:         make([]Frame, 0, capacity),
		BaselineEnergy: s.baseline,
		Metrics:        make(map[string]float64),
	}

	for _, mt := range s.metrics {
		mt.Reset()
		mt.Observe(s.bodies, s.t)
	}

	result.Frames = append(result.Frames, s.frame())
	start := s.steps

	for s.t < cfg.Duration-0.5*s.dt {
		select {
		case <-ctx.Done():
			s.finish(result, start)
			return result, ctx.Err()
		default:
		}

		s.advance(integ)

		if cfg.ValidateState && !dynamo.StateValid(s.bodies) {
			s.finish(result, start)
			return result, &dynamo.SimulationError{Step: s.steps, Time: s.t, Wrapped: dynamo.ErrInvalidState}
		}

		for _, mt := range s.metrics {
			mt.Observe(s.bodies, s.t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.bodies, s.t)
		}

		if cfg.RecordEvery > 0 && (s.steps-start)%cfg.RecordEvery == 0 {
			result.Frames = append(result.Frames, s.frame())
		}
	}

	s.finish(result, start)
	return result, nil
}

func (s *Simulator) finish(result *Result, start int) {
	if last := result.Frames[len(result.Frames)-1]; last.Step != s.steps {
		result.Frames = append(result.Frames, s.frame())
	}
	result.StepsTaken = s.steps - start
	result.FinalTime = s.t
	result.EnergyError = s.RelativeEnergyError()
	for _, mt := range s.metrics {
		result.Metrics[mt.Name()] = mt.Value()
	}
}

func (s *Simulator) frame() Frame {
	return Frame{
		Step:   s.steps,
		Time:   s.t,
		Energy: s.TotalEnergy(),
		Bodies: s.Bodies(),
	}
}

func validateConfig(cfg Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w, got %f", dynamo.ErrInvalidDuration, cfg.Duration)
	}
	if cfg.RecordEvery < 0 {
		return fmt.Errorf("record interval must be non-negative, got %d", cfg.RecordEvery)
	}
	return nil
}
