package biquad

import "github.com/cwbudde/algo-phaser/dsp/core"

// Filter pairs one Coefficients value with one State value and a transform
// strategy selecting the recursion equations. The zero value is a usable
// filter with all-zero coefficients (it maps every input to 0).
type Filter[T core.Float, X Transform[T]] struct {
	transform    X
	coefficients Coefficients[T]
	state        State[T]
}

// NewFilter returns a Filter initialized with the given coefficients and
// zero state.
func NewFilter[T core.Float, X Transform[T]](c Coefficients[T]) *Filter[T, X] {
	return &Filter[T, X]{coefficients: c}
}

// SetCoefficients replaces the coefficients. State is untouched.
func (f *Filter[T, X]) SetCoefficients(c Coefficients[T]) {
	f.coefficients = c
}

// Coefficients returns the current coefficients.
func (f *Filter[T, X]) Coefficients() Coefficients[T] {
	return f.coefficients
}

// Reset zeroes the delay history, leaving coefficients untouched.
func (f *Filter[T, X]) Reset() {
	f.state = State[T]{}
}

// Transform filters one input sample and returns the output, advancing the
// internal state by exactly one step.
func (f *Filter[T, X]) Transform(input T) T {
	return f.transform.Transform(input, &f.state, f.coefficients)
}

// GainValue returns the A0 coefficient, used by feedback-coupled cascades
// as the per-section gain.
func (f *Filter[T, X]) GainValue() T {
	return f.coefficients.A0
}

// StorageComponent returns the topology-specific internal value used by
// feedback computations. Topologies that define no such value return 0.
func (f *Filter[T, X]) StorageComponent() T {
	return f.transform.StorageComponent(f.state, f.coefficients)
}

// Direct is a biquad using the direct form I recursion.
type Direct[T core.Float] = Filter[T, DirectTransform[T]]

// Canonical is a biquad using the direct form II recursion.
type Canonical[T core.Float] = Filter[T, CanonicalTransform[T]]

// DirectTransposed is a biquad using the transposed direct form I recursion.
type DirectTransposed[T core.Float] = Filter[T, DirectTransposedTransform[T]]

// CanonicalTransposed is a biquad using the transposed direct form II
// recursion.
type CanonicalTransposed[T core.Float] = Filter[T, CanonicalTransposedTransform[T]]
