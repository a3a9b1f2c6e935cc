package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrUnsupportedIntegrator indicates an integrator selector outside the known set.
	ErrUnsupportedIntegrator = errors.New("dynamo: unsupported integrator")

	// ErrInvalidTimestep indicates a time quantum that is not positive and finite.
	ErrInvalidTimestep = errors.New("dynamo: time quantum must be positive and finite")

	// ErrInvalidBody indicates a non-positive mass or a non-finite position/velocity.
	ErrInvalidBody = errors.New("dynamo: invalid body (mass must be positive, state finite)")

	// ErrCoincidentBodies indicates two bodies sharing a position.
	ErrCoincidentBodies = errors.New("dynamo: bodies occupy the same position")

	// ErrZeroEnergy indicates a baseline total energy of exactly zero, which
	// leaves the relative energy error undefined.
	ErrZeroEnergy = errors.New("dynamo: baseline total energy is zero")

	// ErrInvalidState indicates a state vector with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrInvalidDuration indicates a run duration that is not positive.
	ErrInvalidDuration = errors.New("dynamo: duration must be positive")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
