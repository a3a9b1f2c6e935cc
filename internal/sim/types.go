package sim

import (
	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
)

// Metric accumulates a scalar over the observed states of a run.
type Metric interface {
	Name() string
	Observe(bodies []dynamo.Body, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed step. The bodies slice is the
// live ensemble and must not be retained or modified.
type Observer interface {
	OnStep(bodies []dynamo.Body, t float64)
}

// Config controls a recorded run.
type Config struct {
	// Duration is the target elapsed time; the run stops once the clock is
	// within half a quantum of it.
	Duration float64
	// RecordEvery keeps one frame every N steps. Zero records only the
	// initial and final frames.
	RecordEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Duration:      10.0,
		RecordEvery:   100,
		ValidateState: true,
	}
}

// Frame is a snapshot of the ensemble at one instant.
type Frame struct {
	Step   int
	Time   float64
	Energy float64
	Bodies []dynamo.Body
}

type Result struct {
	Method         integrators.Method
	Frames         []Frame
	StepsTaken     int
	FinalTime      float64
	BaselineEnergy float64
	EnergyError    float64
	Metrics        map[string]float64
}

// Final returns the last recorded frame.
func (r *Result) Final() (Frame, bool) {
	if len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}
