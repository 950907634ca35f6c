package biquad

import (
	"math"

	"github.com/cwbudde/algo-phaser/dsp/core"
)

// Coefficients holds the transfer function coefficients for a single biquad
// section. A0, A1, A2 form the numerator of H(z) and B1, B2 the denominator
// (the leading denominator coefficient is normalized to 1 and not stored).
type Coefficients[T core.Float] struct {
	A0, A1, A2 T // feedforward (numerator)
	B1, B2     T // feedback (denominator)
}

// LPF1 designs a one-pole lowpass at frequency (Hz).
func LPF1[T core.Float](sampleRate, frequency float64) Coefficients[T] {
	theta := 2 * math.Pi * frequency / sampleRate
	gamma := math.Cos(theta) / (1 + math.Sin(theta))
	return Coefficients[T]{
		A0: T((1 - gamma) / 2),
		A1: T((1 - gamma) / 2),
		A2: 0,
		B1: T(-gamma),
		B2: 0,
	}
}

// HPF1 designs a one-pole highpass at frequency (Hz).
func HPF1[T core.Float](sampleRate, frequency float64) Coefficients[T] {
	theta := 2 * math.Pi * frequency / sampleRate
	gamma := math.Cos(theta) / (1 + math.Sin(theta))
	return Coefficients[T]{
		A0: T((1 + gamma) / 2),
		A1: T((1 + gamma) / -2),
		A2: 0,
		B1: T(-gamma),
		B2: 0,
	}
}

// LPF2 designs a two-pole lowpass at frequency (Hz) with quality factor q.
func LPF2[T core.Float](sampleRate, frequency, q float64) Coefficients[T] {
	theta := 2 * math.Pi * frequency / sampleRate
	d := 1 / q
	beta := 0.5 * (1 - d/2*math.Sin(theta)) / (1 + d/2*math.Sin(theta))
	gamma := (0.5 + beta) * math.Cos(theta)
	alpha := (0.5 + beta - gamma) / 2
	return Coefficients[T]{
		A0: T(alpha),
		A1: T(2 * alpha),
		A2: T(alpha),
		B1: T(-2 * gamma),
		B2: T(2 * beta),
	}
}

// HPF2 designs a two-pole highpass at frequency (Hz) with quality factor q.
func HPF2[T core.Float](sampleRate, frequency, q float64) Coefficients[T] {
	theta := 2 * math.Pi * frequency / sampleRate
	d := 1 / q
	beta := 0.5 * (1 - d/2*math.Sin(theta)) / (1 + d/2*math.Sin(theta))
	gamma := (0.5 + beta) * math.Cos(theta)
	return Coefficients[T]{
		A0: T((0.5 + beta + gamma) / 2),
		A1: T(-(0.5 + beta + gamma)),
		A2: T((0.5 + beta + gamma) / 2),
		B1: T(-2 * gamma),
		B2: T(2 * beta),
	}
}

// APF1 designs a one-pole allpass at frequency (Hz).
func APF1[T core.Float](sampleRate, frequency float64) Coefficients[T] {
	tangent := math.Tan(math.Pi * frequency / sampleRate)
	alpha := (tangent - 1) / (tangent + 1)
	return Coefficients[T]{
		A0: T(alpha),
		A1: 1,
		A2: 0,
		B1: T(alpha),
		B2: 0,
	}
}

// APF2 designs a two-pole allpass at frequency (Hz) with quality factor q.
// The tangent argument is limited below π/2 to keep the design stable for
// bandwidths approaching Nyquist.
func APF2[T core.Float](sampleRate, frequency, q float64) Coefficients[T] {
	bandwidth := frequency / q
	argTan := math.Pi * bandwidth / sampleRate
	if argTan >= 0.95*math.Pi/2 {
		argTan = 0.95 * math.Pi / 2
	}
	tangent := math.Tan(argTan)
	alpha := (tangent - 1) / (tangent + 1)
	beta := -math.Cos(2 * math.Pi * frequency / sampleRate)
	return Coefficients[T]{
		A0: T(-alpha),
		A1: T(beta * (1 - alpha)),
		A2: 1,
		B1: T(beta * (1 - alpha)),
		B2: T(-alpha),
	}
}
