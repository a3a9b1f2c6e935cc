package integrators

import "github.com/san-kum/nbodysim/internal/dynamo"

// LeapfrogStepper is the symplectic kick-drift-kick scheme.
type LeapfrogStepper struct{}

func NewLeapfrog() *LeapfrogStepper {
	return &LeapfrogStepper{}
}

func (l *LeapfrogStepper) Step(bodies []dynamo.Body, dt float64) {
	masses := dynamo.Masses(bodies)
	halfDt := 0.5 * dt

	acc := dynamo.Accelerations(masses, dynamo.Positions(bodies))
	for i := range bodies {
		bodies[i].Vel = bodies[i].Vel.Add(acc[i].Scale(halfDt))
	}

	for i := range bodies {
		bodies[i].Pos = bodies[i].Pos.Add(bodies[i].Vel.Scale(dt))
	}

	acc = dynamo.Accelerations(masses, dynamo.Positions(bodies))
	for i := range bodies {
		bodies[i].Vel = bodies[i].Vel.Add(acc[i].Scale(halfDt))
	}
}
