// Package fixtures holds named initial conditions for well-known periodic
// orbits. Each fixture hands out a fresh ensemble on every call, since a
// simulator advances its bodies in place.
package fixtures

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

var ErrUnknownFixture = errors.New("fixtures: unknown fixture")

// Fixture describes one set of initial conditions and its reference values.
type Fixture struct {
	Key    string
	Name   string
	Year   int
	Period float64
	Energy float64
	bodies []dynamo.Body
}

// Bodies returns a new copy of the initial ensemble.
func (f Fixture) Bodies() []dynamo.Body {
	return dynamo.CloneBodies(f.bodies)
}

func (f Fixture) NumBodies() int { return len(f.bodies) }

// collinear builds the Broucke-style configuration: bodies on the x axis
// with velocities along y.
func collinear(x1, x2, x3, v1, v2, v3 float64) []dynamo.Body {
	return []dynamo.Body{
		dynamo.NewBody(1, dynamo.V(x1, 0, 0), dynamo.V(0, v1, 0)),
		dynamo.NewBody(1, dynamo.V(x2, 0, 0), dynamo.V(0, v2, 0)),
		dynamo.NewBody(1, dynamo.V(x3, 0, 0), dynamo.V(0, v3, 0)),
	}
}

// isosceles builds the equal-mass configuration with bodies at (-1,0),
// (1,0), (0,0) and velocities (p1,p2), (p1,p2), (-2p1,-2p2).
func isosceles(p1, p2 float64) []dynamo.Body {
	v := dynamo.V(p1, p2, 0)
	return []dynamo.Body{
		dynamo.NewBody(1, dynamo.V(-1, 0, 0), v),
		dynamo.NewBody(1, dynamo.V(1, 0, 0), v),
		dynamo.NewBody(1, dynamo.V(0, 0, 0), v.Scale(-2)),
	}
}

var table = map[string]Fixture{
	"two-body": {
		Key:    "two-body",
		Name:   "Two-body orbit",
		Year:   1609,
		Period: 2.714080941,
		Energy: -0.14,
		bodies: []dynamo.Body{
			dynamo.NewBody(0.8, dynamo.V(0.2, 0, 0), dynamo.V(0, 0.1, 0)),
			dynamo.NewBody(0.2, dynamo.V(-0.8, 0, 0), dynamo.V(0, -0.4, 0)),
		},
	},
	"figure-eight": {
		Key:    "figure-eight",
		Name:   "Figure-eight",
		Year:   1993,
		Period: 6.32591398,
		Energy: -1.287046837848,
		bodies: []dynamo.Body{
			dynamo.NewBody(1, dynamo.V(0.9700436, -0.24308753, 0), dynamo.V(0.466203685, 0.43236573, 0)),
			dynamo.NewBody(1, dynamo.V(-0.9700436, 0.24308753, 0), dynamo.V(0.466203685, 0.43236573, 0)),
			dynamo.NewBody(1, dynamo.V(0, 0, 0), dynamo.V(-0.93240737, -0.86473146, 0)),
		},
	},
	"broucke-a1": {
		Key:    "broucke-a1",
		Name:   "Broucke A1",
		Year:   1975,
		Period: 6.283213,
		Energy: -0.854131103178,
		bodies: collinear(-0.9892620043, 2.2096177241, -1.2203557197, 1.9169244185, 0.1910268738, -2.1079512924),
	},
	"broucke-a2": {
		Key:    "broucke-a2",
		Name:   "Broucke A2",
		Year:   1975,
		Period: 7.702408,
		Energy: -1.751113411664,
		bodies: collinear(0.3361300950, 0.7699893804, -1.1061194753, 1.5324315370, -0.6287350866, -0.9036964504),
	},
	"figure-8": {
		Key:    "figure-8",
		Name:   "Figure-8",
		Year:   1993,
		Period: 6.3259,
		Energy: -1.287144495085,
		bodies: isosceles(0.347111, 0.532728),
	},
	"butterfly-1": {
		Key:    "butterfly-1",
		Name:   "Butterfly I",
		Year:   2013,
		Period: 6.2356,
		Energy: -2.170194038506,
		bodies: isosceles(0.306893, 0.125507),
	},
}

// Get looks up a fixture by key.
func Get(key string) (Fixture, error) {
	f, ok := table[key]
	if !ok {
		return Fixture{}, fmt.Errorf("%w: %s (available: %v)", ErrUnknownFixture, key, Keys())
	}
	return f, nil
}

// MustGet is Get for package-level tables and tests; it panics on an unknown key.
func MustGet(key string) Fixture {
	f, err := Get(key)
	if err != nil {
		panic(err)
	}
	return f
}

// Keys returns the fixture keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// List returns every fixture ordered by key.
func List() []Fixture {
	keys := Keys()
	out := make([]Fixture, len(keys))
	for i, k := range keys {
		out[i] = table[k]
	}
	return out
}
