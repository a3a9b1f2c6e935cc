package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT computes the discrete Fourier transform of a real series.
func FFT(data []float64) []complex128 {
	return fft.FFTReal(data)
}

// Pad zero-fills data up to the next power of two.
func Pad(data []float64) []float64 {
	n := 1
	for n < len(data) {
		n <<= 1
	}
	out := make([]float64, n)
	copy(out, data)
	return out
}

// PowerSpectrum returns the magnitudes of the non-negative frequency bins of
// the zero-padded series.
func PowerSpectrum(data []float64) []float64 {
	spectrum := FFT(Pad(data))
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}
