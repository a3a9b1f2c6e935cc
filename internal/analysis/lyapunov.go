package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
	"github.com/san-kum/nbodysim/internal/integrators"
)

// LyapunovExponent estimates the largest Lyapunov exponent of an ensemble
// by the two-trajectory method. The shadow copy starts with body 0 displaced
// by perturbation along x; the phase-space separation is renormalized every
// renormEvery steps. A clearly positive value indicates chaos.
func LyapunovExponent(
	bodies []dynamo.Body,
	m integrators.Method,
	dt, duration float64,
	perturbation float64,
	renormEvery int,
) (float64, error) {
	if len(bodies) == 0 {
		return 0, fmt.Errorf("analysis: %w", dynamo.ErrInvalidBody)
	}
	if dt <= 0 {
		return 0, fmt.Errorf("%w, got %v", dynamo.ErrInvalidTimestep, dt)
	}
	if perturbation <= 0 || renormEvery <= 0 {
		return 0, fmt.Errorf("analysis: perturbation and renormalization interval must be positive")
	}
	integ, err := integrators.For(m)
	if err != nil {
		return 0, err
	}

	x := dynamo.CloneBodies(bodies)
	xp := dynamo.CloneBodies(bodies)
	xp[0].Pos[0] += perturbation

	d0 := perturbation
	sumLog := 0.0
	t := 0.0
	steps := 0

	for t < duration-0.5*dt {
		integ.Step(x, dt)
		integ.Step(xp, dt)
		t += dt
		steps++

		if steps%renormEvery != 0 {
			continue
		}

		sep := separation(x, xp)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			return 0, &dynamo.SimulationError{Step: steps, Time: t, Wrapped: dynamo.ErrInvalidState}
		}
		sumLog += math.Log(sep / d0)

		scale := d0 / sep
		for i := range xp {
			xp[i].Pos = x[i].Pos.Add(xp[i].Pos.Sub(x[i].Pos).Scale(scale))
			xp[i].Vel = x[i].Vel.Add(xp[i].Vel.Sub(x[i].Vel).Scale(scale))
		}
	}

	if t == 0 {
		return 0, nil
	}
	return sumLog / t, nil
}

func separation(a, b []dynamo.Body) float64 {
	sum := 0.0
	for i := range a {
		dp := b[i].Pos.Sub(a[i].Pos)
		dv := b[i].Vel.Sub(a[i].Vel)
		sum += dp.Dot(dp) + dv.Dot(dv)
	}
	return math.Sqrt(sum)
}
