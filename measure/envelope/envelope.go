// Package envelope provides amplitude-envelope and spectral measurements
// used to characterize time-varying effects, such as detecting the periodic
// notch sweeps a phaser imposes on a steady tone.
package envelope

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// RMS returns the root-mean-square level of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(x)))
}

// Envelope returns the RMS level of consecutive non-overlapping windows of
// the given length. A trailing partial window is dropped.
func Envelope(x []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("envelope window must be > 0: %d", window)
	}

	count := len(x) / window
	out := make([]float64, count)
	for i := range out {
		out[i] = RMS(x[i*window : (i+1)*window])
	}

	return out, nil
}

// PeriodicityAt returns the normalized autocorrelation of env at the given
// lag, with the mean removed. The result lies in [-1, 1]; values near 1
// indicate the envelope repeats with that period. Lags outside (0, len(env))
// and envelopes with no variance yield 0.
func PeriodicityAt(env []float64, lag int) float64 {
	if lag <= 0 || lag >= len(env) {
		return 0
	}

	n := len(env) - lag

	mean := 0.0
	for _, v := range env {
		mean += v
	}
	mean /= float64(len(env))

	num := 0.0
	denomA := 0.0
	denomB := 0.0
	for i := 0; i < n; i++ {
		a := env[i] - mean
		b := env[i+lag] - mean
		num += a * b
		denomA += a * a
		denomB += b * b
	}

	denom := math.Sqrt(denomA * denomB)
	if denom == 0 {
		return 0
	}

	return num / denom
}

// MagnitudeSpectrum returns |X[k]| for the non-negative frequency bins
// [0..fftSize/2] of a Hann-windowed FFT of x. fftSize must be a power of
// two; x is truncated or zero-padded to fit.
func MagnitudeSpectrum(x []float64, fftSize int) ([]float64, error) {
	if fftSize <= 1 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("magnitude spectrum fft size must be a power of two > 1: %d", fftSize)
	}

	n := len(x)
	if n > fftSize {
		n = fftSize
	}

	in := make([]complex128, fftSize)
	for i := 0; i < n; i++ {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
		in[i] = complex(x[i]*w, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, err
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := 0; i < bins; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}

// DeepestBin returns the index of the smallest magnitude within [lo, hi].
func DeepestBin(mag []float64, lo, hi int) (int, error) {
	if len(mag) == 0 {
		return 0, fmt.Errorf("deepest bin needs a non-empty spectrum")
	}
	if lo < 0 || hi >= len(mag) || lo > hi {
		return 0, fmt.Errorf("deepest bin range [%d, %d] invalid for %d bins", lo, hi, len(mag))
	}

	best := lo
	for i := lo + 1; i <= hi; i++ {
		if mag[i] < mag[best] {
			best = i
		}
	}

	return best, nil
}
