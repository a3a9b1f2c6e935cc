// Package viz provides a terminal view of a running ensemble.
//
// The view is a Bubble Tea program:
//
//   - [Model]: steps a simulator each tick and draws bodies with trails
//   - [Canvas]: Braille-based pixel canvas for high-fidelity rendering
//   - [Camera]: rotatable projection for non-planar ensembles
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reset to initial state
//	M     - Cycle integrator (restarts the run)
//	T     - Cycle color themes
//	?     - Show help overlay
//
// The side panel charts log10 of the relative energy error so integrator
// drift is visible as the run progresses.
package viz
