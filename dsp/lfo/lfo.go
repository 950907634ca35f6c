// Package lfo provides a low-frequency oscillator for modulation duties.
//
// The oscillator advances one sample at a time and exposes both an in-phase
// and a quadrature (quarter-cycle ahead) output so one instance can drive a
// stereo spread. Frequency changes may be applied immediately or ramped over
// a number of frames; a ramped change interpolates the frequency value per
// sample while the phase keeps accumulating, so no phase discontinuity is
// ever introduced.
package lfo

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-phaser/dsp/core"
)

// Waveform selects the periodic function generated by an LFO.
type Waveform int

const (
	// Triangle is a bipolar triangle starting at 0 and rising.
	Triangle Waveform = iota
	// Sine is a bipolar sine starting at 0 and rising.
	Sine
	// Sawtooth is a bipolar ramp from -1 to 1.
	Sawtooth
)

// State is a snapshot of oscillator progress, used to replay the same
// modulation values across channels within one frame.
type State struct {
	phase         float64
	frequency     float64
	target        float64
	step          float64
	rampRemaining int
}

// LFO is a sample-accurate low-frequency oscillator. The phase accumulator
// wraps continuously in [0, 1).
type LFO[T core.Float] struct {
	sampleRate float64
	waveform   Waveform

	phase         float64
	frequency     float64
	target        float64
	step          float64
	rampRemaining int
}

// New creates a triangle LFO at the given sample rate.
func New[T core.Float](sampleRate float64) (*LFO[T], error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("lfo sample rate must be > 0 and finite: %f", sampleRate)
	}

	return &LFO[T]{sampleRate: sampleRate, waveform: Triangle}, nil
}

// SetWaveform selects the periodic function.
func (l *LFO[T]) SetWaveform(w Waveform) {
	l.waveform = w
}

// SetSampleRate updates the sample rate. Phase is preserved.
func (l *LFO[T]) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("lfo sample rate must be > 0 and finite: %f", sampleRate)
	}

	l.sampleRate = sampleRate

	return nil
}

// SetFrequency changes the oscillator frequency immediately, cancelling any
// ramp in flight. Phase is untouched.
func (l *LFO[T]) SetFrequency(frequency float64) {
	l.frequency = frequency
	l.target = frequency
	l.step = 0
	l.rampRemaining = 0
}

// SetFrequencyRamped interpolates the frequency toward target over duration
// frames. The phase accumulator keeps integrating the instantaneous
// frequency, so the waveform stays continuous throughout the ramp.
// A duration of 0 behaves like SetFrequency.
func (l *LFO[T]) SetFrequencyRamped(frequency float64, duration int) {
	if duration <= 0 {
		l.SetFrequency(frequency)
		return
	}

	l.target = frequency
	l.step = (frequency - l.frequency) / float64(duration)
	l.rampRemaining = duration
}

// Frequency returns the instantaneous frequency in Hz.
func (l *LFO[T]) Frequency() float64 {
	return l.frequency
}

// Value returns the current waveform sample in [-1, 1].
func (l *LFO[T]) Value() T {
	return T(waveformValue(l.waveform, l.phase))
}

// QuadPhaseValue returns the waveform evaluated exactly a quarter cycle
// ahead of the current phase.
func (l *LFO[T]) QuadPhaseValue() T {
	return T(waveformValue(l.waveform, wrapPhase(l.phase+0.25)))
}

// Increment advances the phase accumulator by one sample step. It must be
// called exactly once per rendered frame.
func (l *LFO[T]) Increment() {
	l.phase = wrapPhase(l.phase + l.frequency/l.sampleRate)

	if l.rampRemaining > 0 {
		l.frequency += l.step
		l.rampRemaining--
		if l.rampRemaining == 0 {
			l.frequency = l.target
		}
	}
}

// Reset rewinds the phase to zero and completes any frequency ramp.
func (l *LFO[T]) Reset() {
	l.phase = 0
	l.frequency = l.target
	l.step = 0
	l.rampRemaining = 0
}

// SaveState captures the current oscillator progress.
func (l *LFO[T]) SaveState() State {
	return State{
		phase:         l.phase,
		frequency:     l.frequency,
		target:        l.target,
		step:          l.step,
		rampRemaining: l.rampRemaining,
	}
}

// RestoreState rewinds the oscillator to a previously saved snapshot.
func (l *LFO[T]) RestoreState(state State) {
	l.phase = state.phase
	l.frequency = state.frequency
	l.target = state.target
	l.step = state.step
	l.rampRemaining = state.rampRemaining
}

func wrapPhase(phase float64) float64 {
	phase -= math.Floor(phase)
	return phase
}

func waveformValue(w Waveform, phase float64) float64 {
	switch w {
	case Sine:
		return math.Sin(2 * math.Pi * phase)
	case Sawtooth:
		return 2*phase - 1
	default: // Triangle
		switch {
		case phase < 0.25:
			return 4 * phase
		case phase < 0.75:
			return 2 - 4*phase
		default:
			return 4*phase - 4
		}
	}
}
