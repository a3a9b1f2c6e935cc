package analysis

import (
	"errors"
	"fmt"

	"github.com/san-kum/nbodysim/internal/sim"
)

var ErrShortSeries = errors.New("analysis: series too short")

// Axis selects a position component of a body.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Coordinate extracts one position component of one body across frames.
func Coordinate(frames []sim.Frame, body int, axis Axis) ([]float64, error) {
	out := make([]float64, len(frames))
	for i, f := range frames {
		if body < 0 || body >= len(f.Bodies) {
			return nil, fmt.Errorf("analysis: body %d out of range in frame %d", body, f.Step)
		}
		out[i] = f.Bodies[body].Pos[axis]
	}
	return out, nil
}

// UniformFrames drops a trailing frame that falls off the recording grid.
// Run always closes with the final state, which need not land on a multiple
// of the record interval.
func UniformFrames(frames []sim.Frame) []sim.Frame {
	n := len(frames)
	if n > 2 && frames[n-1].Step-frames[n-2].Step != frames[1].Step-frames[0].Step {
		return frames[:n-1]
	}
	return frames
}

// SampleInterval returns the time between the first two frames.
func SampleInterval(frames []sim.Frame) float64 {
	if len(frames) < 2 {
		return 0
	}
	return frames[1].Time - frames[0].Time
}

// EstimatePeriod returns the period of the dominant frequency in an evenly
// sampled series. The mean is removed before the transform and the peak bin
// is refined by parabolic interpolation.
func EstimatePeriod(samples []float64, interval float64) (float64, error) {
	if len(samples) < 4 {
		return 0, ErrShortSeries
	}
	if interval <= 0 {
		return 0, fmt.Errorf("analysis: sample interval must be positive, got %v", interval)
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	centered := make([]float64, len(samples))
	for i, v := range samples {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	n := 2 * len(ps)

	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return 0, errors.New("analysis: series has no oscillation")
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if denom := a - 2*b + c; denom != 0 {
			bin += 0.5 * (a - c) / denom
		}
	}

	return float64(n) * interval / bin, nil
}
