package dynamo

import "math"

func KineticEnergy(bodies []Body) float64 {
	ke := 0.0
	for i := range bodies {
		ke += bodies[i].KineticEnergy()
	}
	return ke
}

// PotentialEnergy halves the per-body sum so every pair is counted once.
func PotentialEnergy(bodies []Body) float64 {
	pe := 0.0
	for i := range bodies {
		pe += bodies[i].PotentialEnergy(bodies)
	}
	return 0.5 * pe
}

func TotalEnergy(bodies []Body) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies)
}

// RelativeEnergyError is (current - baseline) / baseline.
func RelativeEnergyError(current, baseline float64) float64 {
	return (current - baseline) / baseline
}

func Momentum(bodies []Body) Vec3 {
	var p Vec3
	for i := range bodies {
		p = p.Add(bodies[i].Momentum())
	}
	return p
}

func AngularMomentum(bodies []Body) Vec3 {
	var l Vec3
	for i := range bodies {
		l = l.Add(bodies[i].AngularMomentum())
	}
	return l
}

// CenterOfMass returns the zero vector for an empty ensemble.
func CenterOfMass(bodies []Body) Vec3 {
	var weighted Vec3
	total := 0.0
	for i := range bodies {
		weighted = weighted.Add(bodies[i].Pos.Scale(bodies[i].Mass))
		total += bodies[i].Mass
	}
	if total == 0 {
		return Vec3{}
	}
	return weighted.Div(total)
}

// MinSeparation is the smallest pairwise distance, +Inf for fewer than two bodies.
func MinSeparation(bodies []Body) float64 {
	minDist := math.Inf(1)
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			if d := bodies[j].Pos.Sub(bodies[i].Pos).Norm(); d < minDist {
				minDist = d
			}
		}
	}
	return minDist
}

// StateValid reports whether every position and velocity is finite.
func StateValid(bodies []Body) bool {
	for i := range bodies {
		if !bodies[i].Pos.IsFinite() || !bodies[i].Vel.IsFinite() {
			return false
		}
	}
	return true
}
