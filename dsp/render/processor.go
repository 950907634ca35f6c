package render

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-phaser/dsp/core"
)

// Render-path failures use pre-declared errors so the hot path never
// allocates.
var (
	// ErrNotConfigured is returned when rendering is attempted before
	// StartProcessing (or after StopProcessing).
	ErrNotConfigured = errors.New("render: processor not configured")
	// ErrTooManyFrames is returned when a render call exceeds the
	// negotiated maximum frame count.
	ErrTooManyFrames = errors.New("render: frame count exceeds configured maximum")
	// ErrChannelMismatch is returned when the output buffer set does not
	// match the configured channel count.
	ErrChannelMismatch = errors.New("render: output channel count does not match configured format")
)

// Engine is the contract a DSP kernel fulfills toward the processor. The
// processor invokes these hooks with exact sample alignment; Render receives
// channel slices already offset to the current sub-segment.
type Engine[F core.Float] interface {
	ApplyParameterEvent(event ParameterEvent)
	ApplyMIDIEvent(event MIDIEvent)
	Render(ins, outs [][]F, frames int)
}

// PullInputFunc obtains upstream samples. It must fill input[ch][0:frames]
// for every channel or return an error, in which case the render call is
// abandoned with no output produced.
type PullInputFunc[F core.Float] func(timestamp int64, frames, bus int, input [][]F) error

// Processor interleaves a time-ordered event list with audio rendering so
// that every event takes effect at the exact frame it was scheduled for.
//
// The engine is a type parameter, so event and render hooks dispatch
// statically. After StartProcessing the render path performs no allocation,
// locking or blocking beyond the single synchronous input pull.
type Processor[F core.Float, K Engine[F]] struct {
	engine K

	input    [][]F // pulled upstream samples, one buffer per channel
	pullView [][]F // per-call reslice of input handed to the pull callback
	ins      [][]F // per-segment input slice headers
	outs     [][]F // per-segment output slice headers

	channels   int
	maxFrames  int
	configured bool
	bypassed   bool
}

// NewProcessor returns a processor driving the given engine. StartProcessing
// must be called before rendering.
func NewProcessor[F core.Float, K Engine[F]](engine K) *Processor[F, K] {
	return &Processor[F, K]{engine: engine}
}

// Engine returns the wrapped engine.
func (p *Processor[F, K]) Engine() K {
	return p.engine
}

// SetBypass enables or disables bypass mode. When bypassed, output is a
// verbatim copy of input and no event or filter processing happens.
func (p *Processor[F, K]) SetBypass(bypass bool) {
	p.bypassed = bypass
}

// Bypassed reports whether bypass mode is active.
func (p *Processor[F, K]) Bypassed() bool {
	return p.bypassed
}

// StartProcessing prepares the per-channel input buffers for the negotiated
// format. It must be called before the first render and again whenever the
// channel count or maximum frame count changes. Buffer capacity from an
// earlier format is reused when it suffices; contents always start zeroed.
func (p *Processor[F, K]) StartProcessing(channels, maxFrames int) error {
	if channels <= 0 {
		return fmt.Errorf("render: channel count must be > 0: %d", channels)
	}
	if maxFrames <= 0 {
		return fmt.Errorf("render: max frames must be > 0: %d", maxFrames)
	}

	if len(p.input) != channels {
		p.input = make([][]F, channels)
		p.pullView = make([][]F, channels)
		p.ins = make([][]F, channels)
		p.outs = make([][]F, channels)
	}
	for ch := range p.input {
		p.input[ch] = core.EnsureLen(p.input[ch], maxFrames)
		core.Zero(p.input[ch])
	}

	p.channels = channels
	p.maxFrames = maxFrames
	p.configured = true

	return nil
}

// StopProcessing takes the processor out of the configured state. Buffers
// are kept for reuse by a later StartProcessing call.
func (p *Processor[F, K]) StopProcessing() {
	p.configured = false
	p.channels = 0
	p.maxFrames = 0
}

// ProcessAndRender pulls exactly frameCount input frames, applies events at
// their exact sample offsets relative to timestamp, and produces exactly
// frameCount output frames per channel.
//
// A nil output channel requests in-place operation: the slot is pointed at
// the internal input buffer for that channel. Output buffers may also alias
// the input buffers directly; each output position is written only after the
// corresponding input sample has been read.
func (p *Processor[F, K]) ProcessAndRender(timestamp int64, frameCount, bus int, output [][]F, events *Event, pull PullInputFunc[F]) error {
	if !p.configured {
		return ErrNotConfigured
	}
	if frameCount > p.maxFrames {
		return ErrTooManyFrames
	}
	if len(output) != p.channels {
		return ErrChannelMismatch
	}
	if frameCount <= 0 {
		return nil
	}

	for ch := range p.input {
		p.pullView[ch] = p.input[ch][:frameCount]
	}

	if err := pull(timestamp, frameCount, bus, p.pullView); err != nil {
		return err
	}

	for ch := range output {
		if output[ch] == nil {
			output[ch] = p.input[ch][:frameCount]
		}
	}

	p.render(timestamp, frameCount, output, events)

	return nil
}

func (p *Processor[F, K]) render(timestamp int64, frameCount int, output [][]F, event *Event) {
	now := timestamp
	remaining := frameCount

	for remaining > 0 {
		// No more events to interleave: process everything that is left.
		if event == nil {
			p.renderFrames(output, remaining, frameCount-remaining)
			return
		}

		segment := event.SampleTime - now
		if segment < 0 {
			segment = 0
		}
		if segment > int64(remaining) {
			segment = int64(remaining)
		}

		if segment > 0 {
			p.renderFrames(output, int(segment), frameCount-remaining)
			remaining -= int(segment)
			now += segment
		}

		event = p.applyEventsUntil(now, event)
	}
}

func (p *Processor[F, K]) applyEventsUntil(now int64, event *Event) *Event {
	for event != nil && event.SampleTime <= now {
		switch event.Kind {
		case EventParameter, EventParameterRamp:
			p.engine.ApplyParameterEvent(event.Parameter)
		case EventMIDI:
			p.engine.ApplyMIDIEvent(event.MIDI)
		}
		event = event.Next
	}

	return event
}

func (p *Processor[F, K]) renderFrames(output [][]F, frames, offset int) {
	if p.bypassed {
		for ch := range output {
			in := p.input[ch][offset : offset+frames]
			out := output[ch][offset : offset+frames]
			if &out[0] == &in[0] {
				// In-place operation needs nothing to be done.
				continue
			}
			core.CopyInto(out, in)
		}
		return
	}

	for ch := range p.input {
		p.ins[ch] = p.input[ch][offset : offset+frames]
		p.outs[ch] = output[ch][offset : offset+frames]
	}

	p.engine.Render(p.ins, p.outs, frames)
}
