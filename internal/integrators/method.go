package integrators

import (
	"fmt"
	"strings"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

// Method selects one of the built-in stepping schemes. The zero value is
// not a valid method.
type Method int

const (
	Leapfrog Method = iota + 1
	RK2
	RK4
)

var methodNames = map[Method]string{
	Leapfrog: "leapfrog",
	RK2:      "rk2",
	RK4:      "rk4",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

func (m Method) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

// Methods lists every supported method in declaration order.
func Methods() []Method {
	return []Method{Leapfrog, RK2, RK4}
}

// ParseMethod resolves a method name, case-insensitively.
func ParseMethod(name string) (Method, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for m, n := range methodNames {
		if n == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", dynamo.ErrUnsupportedIntegrator, name)
}

// Integrator advances an ensemble by one time quantum in place.
type Integrator interface {
	Step(bodies []dynamo.Body, dt float64)
}

// For returns the stepper implementing m.
func For(m Method) (Integrator, error) {
	switch m {
	case Leapfrog:
		return NewLeapfrog(), nil
	case RK2:
		return NewRK2(), nil
	case RK4:
		return NewRK4(), nil
	default:
		return nil, fmt.Errorf("%w: %v", dynamo.ErrUnsupportedIntegrator, m)
	}
}
