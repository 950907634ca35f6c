package phaser

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-phaser/dsp/core"
	"github.com/cwbudde/algo-phaser/dsp/lfo"
	"github.com/cwbudde/algo-phaser/dsp/param"
	"github.com/cwbudde/algo-phaser/dsp/render"
)

// ParameterAddress identifies one of the kernel's runtime parameters. The
// enumeration is closed; unknown addresses are ignored on set and read as 0.
type ParameterAddress uint64

const (
	// ParamRate is the LFO frequency in Hz.
	ParamRate ParameterAddress = iota
	// ParamDepth scales the modulation amount, 0-100%.
	ParamDepth
	// ParamIntensity is the feedback depth, 0-100%.
	ParamIntensity
	// ParamDry is the unprocessed signal amount in the output mix, 0-100%.
	ParamDry
	// ParamWet is the processed signal amount in the output mix, 0-100%.
	ParamWet
	// ParamOdd90 shifts odd channels to the quadrature LFO output when > 0.
	ParamOdd90
)

const (
	defaultSampleRate             = 44100.0
	defaultKernelRate             = 1.0
	defaultKernelDepth            = 50.0
	defaultKernelIntensity        = 75.0
	defaultKernelDry              = 50.0
	defaultKernelWet              = 50.0
	kernelSamplesPerFilterUpdate  = 20
	maxKernelFilterUpdateInterval = 512
)

// KernelOption mutates kernel construction parameters.
type KernelOption func(*kernelConfig) error

type kernelConfig struct {
	bands                  []Band
	samplesPerFilterUpdate int
	defaultRampDuration    int
}

func defaultKernelConfig() kernelConfig {
	return kernelConfig{
		bands:                  IdealBands(),
		samplesPerFilterUpdate: kernelSamplesPerFilterUpdate,
		defaultRampDuration:    0,
	}
}

// WithBands replaces the default ideal band split.
func WithBands(bands []Band) KernelOption {
	return func(cfg *kernelConfig) error {
		if len(bands) == 0 {
			return fmt.Errorf("kernel needs at least one band")
		}

		cfg.bands = append([]Band(nil), bands...)

		return nil
	}
}

// WithFilterUpdateInterval sets how many samples pass between all-pass
// coefficient refreshes. A value of 1 refreshes every sample.
func WithFilterUpdateInterval(samples int) KernelOption {
	return func(cfg *kernelConfig) error {
		if samples < 1 || samples > maxKernelFilterUpdateInterval {
			return fmt.Errorf("kernel filter update interval must be in [1, %d]: %d", maxKernelFilterUpdateInterval, samples)
		}

		cfg.samplesPerFilterUpdate = samples

		return nil
	}
}

// WithDefaultRampDuration sets the ramp length in frames applied by
// SetParameterValue and by parameter events that carry no explicit duration.
func WithDefaultRampDuration(frames int) KernelOption {
	return func(cfg *kernelConfig) error {
		if frames < 0 {
			return fmt.Errorf("kernel default ramp duration must be >= 0: %d", frames)
		}

		cfg.defaultRampDuration = frames

		return nil
	}
}

// Kernel transforms audio samples into those with a phased effect. It owns
// one PhaseShifter per channel, a shared triangle LFO advanced exactly once
// per frame, and the ramped parameter set, and drives them through an
// event-interleaved render processor.
type Kernel[F core.Float] struct {
	engine    *engine[F]
	processor *render.Processor[F, *engine[F]]
}

// engine holds the render-thread DSP state. It fulfills the render.Engine
// contract so the processor dispatches into it statically.
type engine[F core.Float] struct {
	rate      *param.Ramped[F]
	depth     *param.Percentage[F]
	intensity *param.Percentage[F]
	dry       *param.Percentage[F]
	wet       *param.Percentage[F]
	odd90     *param.Bool

	lfo      *lfo.LFO[F]
	shifters []*PhaseShifter[F]

	bands                  []Band
	samplesPerFilterUpdate int
	defaultRampDuration    int
	sampleRate             float64
}

// NewKernel creates a phaser kernel with practical defaults and optional
// overrides. SetRenderingFormat must be called before the first render.
func NewKernel[F core.Float](options ...KernelOption) (*Kernel[F], error) {
	cfg := defaultKernelConfig()

	for _, opt := range options {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	osc, err := lfo.New[F](defaultSampleRate)
	if err != nil {
		return nil, err
	}
	osc.SetFrequency(defaultKernelRate)

	e := &engine[F]{
		rate:                   param.NewRamped[F](defaultKernelRate),
		depth:                  param.NewPercentage[F](defaultKernelDepth),
		intensity:              param.NewPercentage[F](defaultKernelIntensity),
		dry:                    param.NewPercentage[F](defaultKernelDry),
		wet:                    param.NewPercentage[F](defaultKernelWet),
		odd90:                  param.NewBool(false),
		lfo:                    osc,
		bands:                  cfg.bands,
		samplesPerFilterUpdate: cfg.samplesPerFilterUpdate,
		defaultRampDuration:    cfg.defaultRampDuration,
		sampleRate:             defaultSampleRate,
	}

	return &Kernel[F]{
		engine:    e,
		processor: render.NewProcessor[F, *engine[F]](e),
	}, nil
}

// SetRenderingFormat prepares the kernel for the given channel count,
// sample rate, and maximum per-call frame count. It reallocates one phase
// shifter per channel and rewinds the LFO; parameter values carry over,
// filter state does not.
func (k *Kernel[F]) SetRenderingFormat(channelCount int, sampleRate float64, maxFramesToRender int) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("kernel sample rate must be > 0 and finite: %f", sampleRate)
	}

	if err := k.processor.StartProcessing(channelCount, maxFramesToRender); err != nil {
		return err
	}

	e := k.engine
	if err := e.lfo.SetSampleRate(sampleRate); err != nil {
		return err
	}
	e.lfo.Reset()
	e.sampleRate = sampleRate

	e.shifters = make([]*PhaseShifter[F], channelCount)
	for ch := range e.shifters {
		shifter, err := NewPhaseShifter[F](e.bands, sampleRate, float64(e.intensity.Normalized()), e.samplesPerFilterUpdate)
		if err != nil {
			return err
		}
		e.shifters[ch] = shifter
	}

	return nil
}

// StopProcessing releases rendering resources and completes any in-flight
// parameter ramps. The kernel can be reused after another SetRenderingFormat
// call; no partial ramp survives the stop/start boundary.
func (k *Kernel[F]) StopProcessing() {
	k.processor.StopProcessing()

	e := k.engine
	e.rate.StopRamping()
	e.depth.StopRamping()
	e.intensity.StopRamping()
	e.dry.StopRamping()
	e.wet.StopRamping()
	e.lfo.Reset()
	e.shifters = nil
}

// SetBypass enables or disables bypass mode.
func (k *Kernel[F]) SetBypass(bypass bool) {
	k.processor.SetBypass(bypass)
}

// Bypassed reports whether bypass mode is active.
func (k *Kernel[F]) Bypassed() bool {
	return k.processor.Bypassed()
}

// SetParameterValue changes a parameter using the kernel's default ramp
// duration. Unknown addresses are ignored. Render thread only.
func (k *Kernel[F]) SetParameterValue(address ParameterAddress, value F) {
	k.engine.setRampedParameterValue(address, value, k.engine.defaultRampDuration)
}

// SetRampedParameterValue changes a parameter, interpolating toward value
// over duration frames. Unknown addresses are ignored. Render thread only.
func (k *Kernel[F]) SetRampedParameterValue(address ParameterAddress, value F, duration int) {
	k.engine.setRampedParameterValue(address, value, duration)
}

// GetParameterValue returns the current value of a parameter in its external
// range (percent for the percentage parameters, 1/0 for odd90). Unknown
// addresses read as 0.
func (k *Kernel[F]) GetParameterValue(address ParameterAddress) F {
	return k.engine.getParameterValue(address)
}

// SetPendingParameterValue stores a control-surface value for the render
// thread to adopt at the start of its next render call. Control thread only.
func (k *Kernel[F]) SetPendingParameterValue(address ParameterAddress, value F) {
	e := k.engine
	switch address {
	case ParamRate:
		e.rate.SetPending(value)
	case ParamDepth:
		e.depth.SetPending(value)
	case ParamIntensity:
		e.intensity.SetPending(value)
	case ParamDry:
		e.dry.SetPending(value)
	case ParamWet:
		e.wet.SetPending(value)
	case ParamOdd90:
		e.odd90.SetPending(value > 0)
	}
}

// PendingParameterValue returns the last control-surface value for a
// parameter. Unknown addresses read as 0.
func (k *Kernel[F]) PendingParameterValue(address ParameterAddress) F {
	e := k.engine
	switch address {
	case ParamRate:
		return e.rate.Pending()
	case ParamDepth:
		return e.depth.Pending()
	case ParamIntensity:
		return e.intensity.Pending()
	case ParamDry:
		return e.dry.Pending()
	case ParamWet:
		return e.wet.Pending()
	case ParamOdd90:
		if e.odd90.Pending() {
			return 1
		}
		return 0
	}
	return 0
}

// ProcessAndRender adopts freshly written pending parameter values, then
// pulls frameCount input frames, interleaves the event list, and renders
// exactly frameCount output frames per channel. See
// render.Processor.ProcessAndRender for buffer aliasing and error semantics.
func (k *Kernel[F]) ProcessAndRender(timestamp int64, frameCount, bus int, output [][]F, events *render.Event, pull render.PullInputFunc[F]) error {
	k.engine.applyPending()
	return k.processor.ProcessAndRender(timestamp, frameCount, bus, output, events, pull)
}

func (e *engine[F]) setRampedParameterValue(address ParameterAddress, value F, duration int) {
	switch address {
	case ParamRate:
		e.rate.SetImmediate(value, 0)
		e.lfo.SetFrequencyRamped(float64(value), duration)
	case ParamDepth:
		e.depth.SetImmediate(value, duration)
	case ParamIntensity:
		e.intensity.SetImmediate(value, duration)
	case ParamDry:
		e.dry.SetImmediate(value, duration)
	case ParamWet:
		e.wet.SetImmediate(value, duration)
	case ParamOdd90:
		e.odd90.SetImmediate(value > 0)
	}
}

func (e *engine[F]) getParameterValue(address ParameterAddress) F {
	switch address {
	case ParamRate:
		return e.rate.Immediate()
	case ParamDepth:
		return e.depth.Immediate()
	case ParamIntensity:
		return e.intensity.Immediate()
	case ParamDry:
		return e.dry.Immediate()
	case ParamWet:
		return e.wet.Immediate()
	case ParamOdd90:
		if e.odd90.Immediate() {
			return 1
		}
		return 0
	}
	return 0
}

func (e *engine[F]) applyPending() {
	if e.rate.ApplyPending(0) {
		e.lfo.SetFrequencyRamped(float64(e.rate.Immediate()), e.defaultRampDuration)
	}
	e.depth.ApplyPending(e.defaultRampDuration)
	e.intensity.ApplyPending(e.defaultRampDuration)
	e.dry.ApplyPending(e.defaultRampDuration)
	e.wet.ApplyPending(e.defaultRampDuration)
	e.odd90.ApplyPending()
}

// ApplyParameterEvent implements render.Engine. Events without an explicit
// ramp duration use the kernel default.
func (e *engine[F]) ApplyParameterEvent(event render.ParameterEvent) {
	duration := event.RampDuration
	if duration <= 0 {
		duration = e.defaultRampDuration
	}

	e.setRampedParameterValue(ParameterAddress(event.Address), F(event.Value), duration)
}

// ApplyMIDIEvent implements render.Engine. MIDI input carries no meaning for
// this kernel.
func (e *engine[F]) ApplyMIDIEvent(render.MIDIEvent) {}

// Render implements render.Engine. The frame loop is outermost so ramped
// parameters advance once per frame, and the LFO increments exactly once per
// frame regardless of channel count.
func (e *engine[F]) Render(ins, outs [][]F, frames int) {
	for frame := 0; frame < frames; frame++ {
		depth := e.depth.FrameValue()
		intensity := e.intensity.FrameValue()

		evenMod := e.lfo.Value()
		oddMod := evenMod
		if e.odd90.Immediate() {
			oddMod = e.lfo.QuadPhaseValue()
		}
		e.lfo.Increment()

		dry := e.dry.FrameValue()
		wet := e.wet.FrameValue()

		for channel := range ins {
			inputSample := ins[channel][frame]
			shifter := e.shifters[channel]
			shifter.SetIntensity(float64(intensity))

			modulation := evenMod
			if channel&1 == 1 {
				modulation = oddMod
			}

			outs[channel][frame] = dry*inputSample + wet*shifter.Process(modulation*depth, inputSample)
		}
	}
}
