package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

func twoBody() []dynamo.Body {
	return []dynamo.Body{
		dynamo.NewBody(0.8, dynamo.V(0.2, 0, 0), dynamo.V(0, 0.1, 0)),
		dynamo.NewBody(0.2, dynamo.V(-0.8, 0, 0), dynamo.V(0, -0.4, 0)),
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()
	bodies := twoBody()

	m.Observe(bodies, 0)
	if m.Value() != 0 {
		t.Errorf("expected zero drift on first sample, got %v", m.Value())
	}

	// Doubling the lighter body's speed raises KE by 0.048: E = -0.092.
	bodies[1].Vel = bodies[1].Vel.Scale(2)
	m.Observe(bodies, 1)
	expected := math.Abs((-0.092 + 0.14) / -0.14)
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("expected drift %v, got %v", expected, m.Value())
	}

	// Returning to the original state keeps the maximum.
	m.Observe(twoBody(), 2)
	if math.Abs(m.Value()-expected) > 1e-12 {
		t.Errorf("max drift not retained: %v", m.Value())
	}
}

func TestEnergyDriftReset(t *testing.T) {
	m := NewEnergyDrift()
	bodies := twoBody()
	m.Observe(bodies, 0)
	bodies[0].Vel = dynamo.V(1, 1, 1)
	m.Observe(bodies, 1)
	if m.Value() == 0 {
		t.Error("expected non-zero drift")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
	m.Observe(bodies, 0)
	if m.Value() != 0 {
		t.Error("baseline not re-captured after reset")
	}
}

func TestMomentumDrift(t *testing.T) {
	m := NewMomentumDrift()
	bodies := twoBody()
	m.Observe(bodies, 0)

	bodies[0].Vel = bodies[0].Vel.Add(dynamo.V(0.5, 0, 0))
	m.Observe(bodies, 1)
	if math.Abs(m.Value()-0.4) > 1e-12 {
		t.Errorf("expected momentum drift 0.4, got %v", m.Value())
	}
	if m.Name() != "momentum_drift" {
		t.Errorf("unexpected name %q", m.Name())
	}
}

func TestAngularMomentumDrift(t *testing.T) {
	m := NewAngularMomentumDrift()
	bodies := twoBody()
	m.Observe(bodies, 0)
	m.Observe(bodies, 1)
	if m.Value() != 0 {
		t.Errorf("expected no drift for unchanged state, got %v", m.Value())
	}

	bodies[1].Vel = dynamo.Vec3{}
	m.Observe(bodies, 2)
	if math.Abs(m.Value()-0.064) > 1e-12 {
		t.Errorf("expected angular momentum drift 0.064, got %v", m.Value())
	}
}

func TestMinSeparation(t *testing.T) {
	m := NewMinSeparation()
	if m.Value() != 0 {
		t.Errorf("expected 0 before observations, got %v", m.Value())
	}

	bodies := twoBody()
	m.Observe(bodies, 0)
	bodies[1].Pos = dynamo.V(-0.3, 0, 0)
	m.Observe(bodies, 1)
	bodies[1].Pos = dynamo.V(-2, 0, 0)
	m.Observe(bodies, 2)

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected closest approach 0.5, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected reset")
	}
}
