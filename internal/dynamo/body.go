package dynamo

import "math"

// Body is a point mass. Mass is fixed for the lifetime of a simulation;
// Pos and Vel are advanced only by the integrator stepping the ensemble.
type Body struct {
	Mass float64
	Pos  Vec3
	Vel  Vec3
}

func NewBody(mass float64, pos, vel Vec3) Body {
	return Body{Mass: mass, Pos: pos, Vel: vel}
}

// Acc returns the gravitational acceleration on b from every other member of
// ensemble. b must point into ensemble (&bodies[i]): the body itself is
// skipped by identity, so a detached copy would see itself at distance zero.
func (b *Body) Acc(ensemble []Body) Vec3 {
	var a Vec3
	for j := range ensemble {
		other := &ensemble[j]
		if other == b {
			continue
		}
		a = a.Add(pull(b.Pos, other.Pos, other.Mass))
	}
	return a
}

func (b Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Vel.Dot(b.Vel)
}

// PotentialEnergy is -m Σ m_j / r_ij over every other member of ensemble.
// Summed over all bodies it counts each pair twice. Like Acc, b must point
// into ensemble: a detached copy pairs with itself and yields -Inf.
//
// Acc and PotentialEnergy take pointer receivers because they skip b by
// identity; the per-body quantities take values.
func (b *Body) PotentialEnergy(ensemble []Body) float64 {
	sum := 0.0
	for j := range ensemble {
		other := &ensemble[j]
		if other == b {
			continue
		}
		sum += other.Mass / other.Pos.Sub(b.Pos).Norm()
	}
	return -b.Mass * sum
}

func (b Body) Momentum() Vec3 {
	return b.Vel.Scale(b.Mass)
}

// AngularMomentum is r × p about the origin.
func (b Body) AngularMomentum() Vec3 {
	return b.Pos.Cross(b.Momentum())
}

func (b Body) IsValid() bool {
	return b.Mass > 0 && !math.IsInf(b.Mass, 0) && b.Pos.IsFinite() && b.Vel.IsFinite()
}

// pull is the acceleration a unit at from feels toward a mass at to.
func pull(from, to Vec3, mass float64) Vec3 {
	d := to.Sub(from)
	r := d.Norm()
	return d.Scale(mass / (r * r * r))
}

// CloneBodies returns an independent copy of the ensemble.
func CloneBodies(bodies []Body) []Body {
	c := make([]Body, len(bodies))
	copy(c, bodies)
	return c
}

func Masses(bodies []Body) []float64 {
	m := make([]float64, len(bodies))
	for i := range bodies {
		m[i] = bodies[i].Mass
	}
	return m
}

func Positions(bodies []Body) []Vec3 {
	p := make([]Vec3, len(bodies))
	for i := range bodies {
		p[i] = bodies[i].Pos
	}
	return p
}

// parallelThreshold is the body count below which accelerations are summed
// on the calling goroutine.
const parallelThreshold = 64

// Accelerations evaluates the pull on every position against one read-only
// snapshot. Each body's sum runs over the others in index order, so the
// result does not depend on how the work is split across goroutines.
func Accelerations(masses []float64, positions []Vec3) []Vec3 {
	acc := make([]Vec3, len(positions))
	ParallelFor(len(positions), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			var a Vec3
			for j := range positions {
				if i == j {
					continue
				}
				a = a.Add(pull(positions[i], positions[j], masses[j]))
			}
			acc[i] = a
		}
	})
	return acc
}
