package integrators

import "github.com/san-kum/nbodysim/internal/dynamo"

// RK2Stepper is a second-order midpoint scheme. The midpoint position for the second
// force evaluation is an Euler half step with the original velocity, while
// the final position uses the half-kicked velocity; this ordering is part of
// its reference numerics.
type RK2Stepper struct{}

func NewRK2() *RK2Stepper {
	return &RK2Stepper{}
}

func (r *RK2Stepper) Step(bodies []dynamo.Body, dt float64) {
	n := len(bodies)
	masses := dynamo.Masses(bodies)
	halfDt := 0.5 * dt

	oldPos := dynamo.Positions(bodies)
	acc := dynamo.Accelerations(masses, oldPos)

	halfVel := make([]dynamo.Vec3, n)
	mid := make([]dynamo.Vec3, n)
	for i := range bodies {
		halfVel[i] = bodies[i].Vel.Add(acc[i].Scale(halfDt))
		mid[i] = oldPos[i].Add(bodies[i].Vel.Scale(halfDt))
	}

	acc = dynamo.Accelerations(masses, mid)
	for i := range bodies {
		bodies[i].Vel = bodies[i].Vel.Add(acc[i].Scale(dt))
		bodies[i].Pos = oldPos[i].Add(halfVel[i].Scale(dt))
	}
}
