package dynamo

import (
	"math"
	"testing"
)

func TestEnsembleEnergy(t *testing.T) {
	bodies := twoBody()

	ke := KineticEnergy(bodies)
	if math.Abs(ke-0.02) > 1e-15 {
		t.Errorf("kinetic energy = %v, want 0.02", ke)
	}

	pe := PotentialEnergy(bodies)
	if math.Abs(pe+0.16) > 1e-15 {
		t.Errorf("potential energy = %v, want -0.16", pe)
	}

	if e := TotalEnergy(bodies); math.Abs(e+0.14) > 1e-15 {
		t.Errorf("total energy = %v, want -0.14", e)
	}
}

func TestEnergy_Idempotent(t *testing.T) {
	bodies := twoBody()

	if KineticEnergy(bodies) != KineticEnergy(bodies) {
		t.Error("kinetic energy not idempotent")
	}
	if PotentialEnergy(bodies) != PotentialEnergy(bodies) {
		t.Error("potential energy not idempotent")
	}
	if TotalEnergy(bodies) != TotalEnergy(bodies) {
		t.Error("total energy not idempotent")
	}
}

func TestEnergy_EmptyEnsemble(t *testing.T) {
	if KineticEnergy(nil) != 0 || PotentialEnergy(nil) != 0 || TotalEnergy(nil) != 0 {
		t.Error("empty ensemble energies should be zero")
	}
	if !CenterOfMass(nil).IsZero() {
		t.Error("empty center of mass should be zero")
	}
	if !math.IsInf(MinSeparation(nil), 1) {
		t.Error("empty min separation should be +Inf")
	}
}

func TestRelativeEnergyError(t *testing.T) {
	if got := RelativeEnergyError(-0.14, -0.14); got != 0 {
		t.Errorf("no drift: got %v", got)
	}
	if got := RelativeEnergyError(-1.1, -1.0); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("10%% drift: got %v", got)
	}
}

func TestConservedQuantities(t *testing.T) {
	bodies := twoBody()

	if p := Momentum(bodies); p.Norm() > 1e-15 {
		t.Errorf("momentum = %v, want zero", p)
	}
	if c := CenterOfMass(bodies); c.Norm() > 1e-15 {
		t.Errorf("center of mass = %v, want origin", c)
	}

	// L_z = 0.8*0.2*0.1 + 0.2*(-0.8)*(-0.4)
	l := AngularMomentum(bodies)
	if math.Abs(l.Z()-0.08) > 1e-15 || l.X() != 0 || l.Y() != 0 {
		t.Errorf("angular momentum = %v, want (0, 0, 0.08)", l)
	}

	if d := MinSeparation(bodies); math.Abs(d-1) > 1e-15 {
		t.Errorf("min separation = %v, want 1", d)
	}
}

func TestStateValid(t *testing.T) {
	bodies := twoBody()
	if !StateValid(bodies) {
		t.Error("expected valid state")
	}
	bodies[1].Vel = V(math.NaN(), 0, 0)
	if StateValid(bodies) {
		t.Error("expected invalid state")
	}
}
