package biquad

import "github.com/cwbudde/algo-phaser/dsp/core"

// minNormalFloat32 is the smallest positive normalized float32 value.
// Outputs with a smaller magnitude flush to exactly zero so that recursive
// feedback never decays into the denormal range.
const minNormalFloat32 = 0x1p-126

// State holds the delay history of a biquad section. Which registers are
// used depends on the transform topology.
type State[T core.Float] struct {
	X1, X2 T // x(n-1), x(n-2)
	Y1, Y2 T // y(n-1), y(n-2)
}

// Transform selects the recursion equations of a biquad topology. Each
// strategy applies one sample step, mutating state exactly once, and exposes
// the topology-specific state component used by feedback-coupled cascades.
type Transform[T core.Float] interface {
	Transform(input T, state *State[T], c Coefficients[T]) T
	StorageComponent(state State[T], c Coefficients[T]) T
}

func forceMinToZero[T core.Float](value T) T {
	v := float64(value)
	if (v > 0 && v < minNormalFloat32) || (v < 0 && v > -minNormalFloat32) {
		return 0
	}
	return value
}

// DirectTransform implements the direct form I structure.
type DirectTransform[T core.Float] struct{}

// Transform applies one direct form I step.
func (DirectTransform[T]) Transform(input T, state *State[T], c Coefficients[T]) T {
	output := c.A0*input + c.A1*state.X1 + c.A2*state.X2 - c.B1*state.Y1 - c.B2*state.Y2
	output = forceMinToZero(output)
	state.X2 = state.X1
	state.X1 = input
	state.Y2 = state.Y1
	state.Y1 = output
	return output
}

// StorageComponent returns the history contribution of the direct form.
func (DirectTransform[T]) StorageComponent(state State[T], c Coefficients[T]) T {
	return c.A1*state.X1 + c.A2*state.X2 - c.B1*state.Y1 - c.B2*state.Y2
}

// CanonicalTransform implements the direct form II (canonical, minimum
// state) structure.
type CanonicalTransform[T core.Float] struct{}

// Transform applies one canonical form step.
func (CanonicalTransform[T]) Transform(input T, state *State[T], c Coefficients[T]) T {
	theta := input - c.B1*state.X1 - c.B2*state.X2
	output := c.A0*theta + c.A1*state.X1 + c.A2*state.X2
	output = forceMinToZero(output)
	state.X2 = state.X1
	state.X1 = theta
	return output
}

// StorageComponent is unused by the canonical topology.
func (CanonicalTransform[T]) StorageComponent(State[T], Coefficients[T]) T { return 0 }

// DirectTransposedTransform implements the transposed direct form I
// structure.
type DirectTransposedTransform[T core.Float] struct{}

// Transform applies one transposed direct form step.
func (DirectTransposedTransform[T]) Transform(input T, state *State[T], c Coefficients[T]) T {
	theta := input + state.Y1
	output := c.A0*theta + state.X1
	output = forceMinToZero(output)
	state.Y1 = state.Y2 - c.B1*theta
	state.Y2 = -c.B2 * theta
	state.X1 = state.X2 + c.A1*theta
	state.X2 = c.A2 * theta
	return output
}

// StorageComponent is unused by the transposed direct topology.
func (DirectTransposedTransform[T]) StorageComponent(State[T], Coefficients[T]) T { return 0 }

// CanonicalTransposedTransform implements the transposed direct form II
// structure (minimum state).
type CanonicalTransposedTransform[T core.Float] struct{}

// Transform applies one transposed canonical form step.
func (CanonicalTransposedTransform[T]) Transform(input T, state *State[T], c Coefficients[T]) T {
	output := forceMinToZero(c.A0*input + state.X1)
	state.X1 = c.A1*input - c.B1*output + state.X2
	state.X2 = c.A2*input - c.B2*output
	return output
}

// StorageComponent returns the first state register, the value combined by
// feedback-coupled all-pass cascades.
func (CanonicalTransposedTransform[T]) StorageComponent(state State[T], _ Coefficients[T]) T {
	return state.X1
}
