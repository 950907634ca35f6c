package param

import "sync/atomic"

// Bool is a boolean-valued parameter. Boolean changes never ramp; a set
// takes effect at the next processed frame.
type Bool struct {
	pending      atomic.Bool
	pendingDirty atomic.Bool

	immediate bool
}

// NewBool returns a boolean parameter initialized to value.
func NewBool(value bool) *Bool {
	b := &Bool{immediate: value}
	b.pending.Store(value)
	return b
}

// SetImmediate changes the render-side value. Render thread only.
func (b *Bool) SetImmediate(value bool) {
	b.immediate = value
}

// Immediate returns the render-side value.
func (b *Bool) Immediate() bool {
	return b.immediate
}

// SetPending stores a control-surface value. Control thread only.
func (b *Bool) SetPending(value bool) {
	b.pending.Store(value)
	b.pendingDirty.Store(true)
}

// Pending returns the last control-surface value.
func (b *Bool) Pending() bool {
	return b.pending.Load()
}

// ApplyPending transfers a freshly written pending value to the immediate
// side. Render thread only.
func (b *Bool) ApplyPending() bool {
	if !b.pendingDirty.CompareAndSwap(true, false) {
		return false
	}

	b.immediate = b.pending.Load()

	return true
}
