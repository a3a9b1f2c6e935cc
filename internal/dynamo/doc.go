// Package dynamo provides the physical primitives of the N-body engine.
//
// The package defines the value types every other layer is built on:
//
//   - [Vec3]: 3-D vector with value semantics (only [Vec3.Fill] mutates)
//   - [Body]: point mass with position and velocity
//   - [Accelerations]: direct pairwise gravitational pull, G = 1
//   - [KineticEnergy], [PotentialEnergy], [TotalEnergy]: ensemble diagnostics
//
// # Example
//
//	bodies := fixtures.MustGet("figure-eight").Bodies()
//	e0 := dynamo.TotalEnergy(bodies)
//	a := bodies[0].Acc(bodies)
//
// # Degenerate geometry
//
// Force and potential evaluation divide by the separation of each pair.
// Two bodies at the same position produce Inf/NaN; callers that build
// ensembles by hand should check [MinSeparation] first (sim.New does).
package dynamo
