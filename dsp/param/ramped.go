package param

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-phaser/dsp/core"
)

// Ramped is a parameter whose immediate value can change either instantly or
// by linear interpolation over a fixed number of frames.
//
// All ramp state belongs to the render thread; only SetPending and Pending
// are safe to use from the control thread.
type Ramped[T core.Float] struct {
	pendingBits  atomic.Uint64
	pendingDirty atomic.Bool

	immediate float64
	target    float64
	step      float64
	remaining int
}

// NewRamped returns a parameter with both immediate and pending sides set to
// initial.
func NewRamped[T core.Float](initial T) *Ramped[T] {
	r := &Ramped[T]{}
	r.immediate = float64(initial)
	r.target = r.immediate
	r.pendingBits.Store(math.Float64bits(r.immediate))
	return r
}

// SetImmediate begins a linear ramp toward value over duration frames.
// A duration of 0 snaps to value at the next processed frame. Render thread
// only.
func (r *Ramped[T]) SetImmediate(value T, duration int) {
	v := float64(value)
	r.target = v

	if duration <= 0 {
		r.immediate = v
		r.step = 0
		r.remaining = 0
		return
	}

	r.step = (v - r.immediate) / float64(duration)
	r.remaining = duration
}

// FrameValue returns the interpolated value for the current frame and
// advances ramp progress by one frame. After the ramp duration has elapsed
// it keeps returning the target with no further state change.
func (r *Ramped[T]) FrameValue() T {
	if r.remaining > 0 {
		r.immediate += r.step
		r.remaining--
		if r.remaining == 0 {
			r.immediate = r.target
		}
	}

	return T(r.immediate)
}

// StopRamping completes any in-flight ramp immediately.
func (r *Ramped[T]) StopRamping() {
	r.immediate = r.target
	r.step = 0
	r.remaining = 0
}

// Immediate returns the render-side value without advancing ramp progress.
func (r *Ramped[T]) Immediate() T {
	return T(r.immediate)
}

// Ramping reports whether a ramp is in flight.
func (r *Ramped[T]) Ramping() bool {
	return r.remaining > 0
}

// SetPending stores a control-surface value for the render thread to pick
// up at its next safe boundary. Control thread only.
func (r *Ramped[T]) SetPending(value T) {
	r.pendingBits.Store(math.Float64bits(float64(value)))
	r.pendingDirty.Store(true)
}

// Pending returns the last control-surface value.
func (r *Ramped[T]) Pending() T {
	return T(math.Float64frombits(r.pendingBits.Load()))
}

// ApplyPending transfers a freshly written pending value to the immediate
// side, ramping over duration frames. It reports whether a transfer
// happened. Render thread only.
func (r *Ramped[T]) ApplyPending(duration int) bool {
	if !r.pendingDirty.CompareAndSwap(true, false) {
		return false
	}

	r.SetImmediate(r.Pending(), duration)

	return true
}
