package integrators

import "github.com/san-kum/nbodysim/internal/dynamo"

// RK4Stepper is the classic fourth-order Runge-Kutta scheme specialised to
// second-order equations of motion: three force evaluations per step.
type RK4Stepper struct{}

func NewRK4() *RK4Stepper {
	return &RK4Stepper{}
}

func (r *RK4Stepper) Step(bodies []dynamo.Body, dt float64) {
	n := len(bodies)
	masses := dynamo.Masses(bodies)
	dt2 := dt * dt

	oldPos := dynamo.Positions(bodies)
	a0 := dynamo.Accelerations(masses, oldPos)

	trial := make([]dynamo.Vec3, n)
	for i := range bodies {
		trial[i] = oldPos[i].Add(bodies[i].Vel.Scale(0.5 * dt)).Add(a0[i].Scale(0.125 * dt2))
	}
	a1 := dynamo.Accelerations(masses, trial)

	for i := range bodies {
		trial[i] = oldPos[i].Add(bodies[i].Vel.Scale(dt)).Add(a1[i].Scale(0.5 * dt2))
	}
	a2 := dynamo.Accelerations(masses, trial)

	dt6 := dt / 6.0
	for i := range bodies {
		bodies[i].Pos = oldPos[i].Add(bodies[i].Vel.Scale(dt)).Add(a0[i].Add(a1[i].Scale(2)).Scale(dt2 / 6.0))
		bodies[i].Vel = bodies[i].Vel.Add(a0[i].Add(a1[i].Scale(4)).Add(a2[i]).Scale(dt6))
	}
}
