package param

import (
	"math"

	"github.com/cwbudde/algo-phaser/dsp/core"
)

// Percentage is a ramped parameter with a 0-100 external range and a
// normalized 0-1 internal range. Setters and getters speak percent; the
// values handed to DSP consumers (FrameValue, Normalized) are normalized.
type Percentage[T core.Float] struct {
	value Ramped[T]
}

// NewPercentage returns a percentage parameter initialized to percent
// (0-100).
func NewPercentage[T core.Float](percent T) *Percentage[T] {
	p := &Percentage[T]{}
	p.value.immediate = float64(percent) / 100
	p.value.target = p.value.immediate
	p.value.pendingBits.Store(math.Float64bits(p.value.immediate))
	return p
}

// SetImmediate begins a ramp toward percent (0-100) over duration frames.
// Render thread only.
func (p *Percentage[T]) SetImmediate(percent T, duration int) {
	p.value.SetImmediate(percent/100, duration)
}

// FrameValue returns the normalized (0-1) value for the current frame and
// advances ramp progress by one frame.
func (p *Percentage[T]) FrameValue() T {
	return p.value.FrameValue()
}

// Normalized returns the render-side normalized value without advancing
// ramp progress.
func (p *Percentage[T]) Normalized() T {
	return p.value.Immediate()
}

// Immediate returns the render-side value in percent (0-100).
func (p *Percentage[T]) Immediate() T {
	return p.value.Immediate() * 100
}

// StopRamping completes any in-flight ramp immediately.
func (p *Percentage[T]) StopRamping() {
	p.value.StopRamping()
}

// SetPending stores a control-surface percent value. Control thread only.
func (p *Percentage[T]) SetPending(percent T) {
	p.value.SetPending(percent / 100)
}

// Pending returns the last control-surface value in percent.
func (p *Percentage[T]) Pending() T {
	return p.value.Pending() * 100
}

// ApplyPending transfers a freshly written pending value to the immediate
// side, ramping over duration frames. Render thread only.
func (p *Percentage[T]) ApplyPending(duration int) bool {
	return p.value.ApplyPending(duration)
}
