// Package signal generates deterministic test and demo signals.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-phaser/dsp/core"
)

// Generator creates deterministic signals from a shared configuration. It is
// generic over the sample type so the same generator feeds float32 render
// chains and float64 reference processing.
type Generator[F core.Float] struct {
	cfg  core.ProcessorConfig
	seed int64
}

// NewGenerator creates a configured signal generator.
func NewGenerator[F core.Float](opts ...core.ProcessorOption) *Generator[F] {
	return &Generator[F]{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// Config returns the generator processor configuration.
func (g *Generator[F]) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed sets the deterministic random seed for noise generation.
func (g *Generator[F]) SetSeed(seed int64) {
	g.seed = seed
}

// Sine generates a sine wave starting at the given sample offset, so a long
// tone can be produced block by block with a continuous phase.
func (g *Generator[F]) Sine(freqHz, amplitude float64, offset, samples int) ([]F, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}

	out := make([]F, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = F(amplitude * math.Sin(step*float64(offset+i)))
	}

	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator[F]) WhiteNoise(amplitude float64, samples int) ([]F, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]F, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = F((rng.Float64()*2 - 1) * amplitude)
	}

	return out, nil
}

// Normalize scales data to target peak amplitude and returns a new slice.
func Normalize[F core.Float](data []F, targetPeak float64) ([]F, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		av := math.Abs(float64(v))
		if av > maxAbs {
			maxAbs = av
		}
	}

	out := make([]F, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := targetPeak / maxAbs
	for i, v := range data {
		out[i] = F(float64(v) * scale)
	}

	return out, nil
}
