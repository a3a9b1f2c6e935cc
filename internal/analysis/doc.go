// Package analysis provides post-run tools for recorded trajectories.
//
//   - [EstimatePeriod]: dominant period of a sampled coordinate via [FFT]
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//
// # Period Check
//
// A recorded run of a periodic fixture should reproduce the fixture's period:
//
//	xs, _ := analysis.Coordinate(result.Frames, 0, analysis.AxisX)
//	period, err := analysis.EstimatePeriod(xs, analysis.SampleInterval(result.Frames))
package analysis
