package phaser

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-phaser/dsp/core"
	"github.com/cwbudde/algo-phaser/dsp/filter/biquad"
)

// PhaseShifter is a feedback-coupled cascade of first-order all-pass stages,
// one per band. The bands form a single chain: each stage's output feeds the
// next, and a weighted sum of the stages' internal state feeds back into the
// input, weighted by cumulative products of the per-stage gain coefficients.
//
// With samplesPerFilterUpdate == 1 this replicates the phaser processing
// described in "Designing Audio Effect Plugins in C++" by Will C. Pirkle
// (2019); larger values refresh the all-pass coefficients every that many
// samples while still recomputing the feedback sum on every call.
type PhaseShifter[T core.Float] struct {
	bands      []Band
	sampleRate float64
	intensity  float64

	samplesPerFilterUpdate int
	sampleCounter          int

	filters []biquad.CanonicalTransposed[T]
	gammas  []float64
}

// NewPhaseShifter creates a phase shifter over the given bands. Intensity is
// the feedback depth, typically in [0, 1]; samplesPerFilterUpdate throttles
// coefficient recomputation (1 refreshes every sample).
func NewPhaseShifter[T core.Float](bands []Band, sampleRate, intensity float64, samplesPerFilterUpdate int) (*PhaseShifter[T], error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("phase shifter needs at least one band")
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("phase shifter sample rate must be > 0 and finite: %f", sampleRate)
	}
	if math.IsNaN(intensity) || math.IsInf(intensity, 0) {
		return nil, fmt.Errorf("phase shifter intensity must be finite: %f", intensity)
	}
	if samplesPerFilterUpdate < 1 {
		return nil, fmt.Errorf("phase shifter samples per filter update must be >= 1: %d", samplesPerFilterUpdate)
	}

	for i, band := range bands {
		if band.FrequencyMin <= 0 || band.FrequencyMax <= band.FrequencyMin {
			return nil, fmt.Errorf("phase shifter band %d must satisfy 0 < min < max: min=%f max=%f", i, band.FrequencyMin, band.FrequencyMax)
		}
	}

	p := &PhaseShifter[T]{
		bands:                  append([]Band(nil), bands...),
		sampleRate:             sampleRate,
		intensity:              intensity,
		samplesPerFilterUpdate: samplesPerFilterUpdate,
		filters:                make([]biquad.CanonicalTransposed[T], len(bands)),
		gammas:                 make([]float64, len(bands)+1),
	}
	p.gammas[0] = 1
	p.updateCoefficients(0)

	return p, nil
}

// SetIntensity changes the feedback depth. Takes effect on the next call to
// Process.
func (p *PhaseShifter[T]) SetIntensity(intensity float64) {
	p.intensity = intensity
}

// Intensity returns the current feedback depth.
func (p *PhaseShifter[T]) Intensity() float64 {
	return p.intensity
}

// Reset zeroes all stage states and restarts the coefficient update
// counter. Coefficients keep their last computed values.
func (p *PhaseShifter[T]) Reset() {
	p.sampleCounter = 0
	for i := range p.filters {
		p.filters[i].Reset()
	}
}

// Process transforms one input sample. The bipolar modulation value sweeps
// every stage's center frequency within its band; coefficients refresh at
// most every samplesPerFilterUpdate calls, while the feedback sum is
// recomputed from current stage state on every call.
func (p *PhaseShifter[T]) Process(modulation, input T) T {
	if p.sampleCounter >= p.samplesPerFilterUpdate {
		p.updateCoefficients(float64(modulation))
		p.sampleCounter = 1
	} else {
		p.sampleCounter++
	}

	stages := len(p.filters)

	// Cumulative gain products, from the stage closest to the output back
	// toward the input.
	for index := 1; index <= stages; index++ {
		p.gammas[index] = float64(p.filters[stages-index].GainValue()) * p.gammas[index-1]
	}

	weightedSum := 0.0
	for index := 0; index < stages; index++ {
		weightedSum += p.gammas[stages-index-1] * float64(p.filters[index].StorageComponent())
	}

	output := T((float64(input) + p.intensity*weightedSum) / (1 + p.intensity*p.gammas[stages]))
	for i := range p.filters {
		output = p.filters[i].Transform(output)
	}

	return output
}

func (p *PhaseShifter[T]) updateCoefficients(modulation float64) {
	for i, band := range p.bands {
		frequency := core.BipolarModulation(modulation, band.FrequencyMin, band.FrequencyMax)
		p.filters[i].SetCoefficients(biquad.APF1[T](p.sampleRate, frequency))
	}
}
