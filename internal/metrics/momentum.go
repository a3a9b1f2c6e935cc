package metrics

import (
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

// VectorDrift tracks the largest distance of a conserved vector from its
// first observed value.
type VectorDrift struct {
	name     string
	quantity func([]dynamo.Body) dynamo.Vec3
	initial  dynamo.Vec3
	maxDrift float64
	samples  int
}

func (d *VectorDrift) Name() string { return d.name }

func (d *VectorDrift) Observe(bodies []dynamo.Body, t float64) {
	q := d.quantity(bodies)
	if d.samples == 0 {
		d.initial = q
	}
	d.samples++
	d.maxDrift = math.Max(d.maxDrift, q.Sub(d.initial).Norm())
}

func (d *VectorDrift) Value() float64 { return d.maxDrift }

func (d *VectorDrift) Reset() {
	d.initial = dynamo.Vec3{}
	d.maxDrift = 0
	d.samples = 0
}

// NewMomentumDrift tracks |P(t) - P(0)|.
func NewMomentumDrift() *VectorDrift {
	return &VectorDrift{name: "momentum_drift", quantity: dynamo.Momentum}
}

// NewAngularMomentumDrift tracks |L(t) - L(0)| about the origin.
func NewAngularMomentumDrift() *VectorDrift {
	return &VectorDrift{name: "angular_momentum_drift", quantity: dynamo.AngularMomentum}
}
