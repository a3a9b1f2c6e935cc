package metrics

import (
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

// MinSeparation records the closest approach between any two bodies.
// Close encounters are where fixed-step integrators lose accuracy.
type MinSeparation struct {
	name    string
	closest float64
	samples int
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{name: "min_separation", closest: math.Inf(1)}
}

func (s *MinSeparation) Name() string { return s.name }

func (s *MinSeparation) Observe(bodies []dynamo.Body, t float64) {
	s.samples++
	s.closest = math.Min(s.closest, dynamo.MinSeparation(bodies))
}

func (s *MinSeparation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.closest
}

func (s *MinSeparation) Reset() {
	s.closest = math.Inf(1)
	s.samples = 0
}
