package envelope

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-phaser/internal/testutil"
)

func TestRMS(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Errorf("RMS(nil) = %v, want 0", got)
	}

	constant := make([]float64, 100)
	for i := range constant {
		constant[i] = 0.5
	}
	if got := RMS(constant); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("RMS(constant 0.5) = %v, want 0.5", got)
	}

	sine := testutil.DeterministicSine[float64](100, 44100, 0.8, 44100)
	want := 0.8 / math.Sqrt2
	if got := RMS(sine); math.Abs(got-want) > 1e-4 {
		t.Errorf("RMS(sine) = %v, want %v", got, want)
	}
}

func TestEnvelope(t *testing.T) {
	if _, err := Envelope(nil, 0); err == nil {
		t.Error("Envelope accepted zero window")
	}

	// Two windows of constant level 1 and 3, plus a partial tail.
	x := make([]float64, 25)
	for i := 0; i < 10; i++ {
		x[i] = 1
	}
	for i := 10; i < 20; i++ {
		x[i] = 3
	}

	env, err := Envelope(x, 10)
	if err != nil {
		t.Fatalf("Envelope failed: %v", err)
	}
	if len(env) != 2 {
		t.Fatalf("got %d windows, want 2", len(env))
	}
	if math.Abs(env[0]-1) > 1e-12 || math.Abs(env[1]-3) > 1e-12 {
		t.Errorf("env = %v, want [1 3]", env)
	}
}

func TestPeriodicityAt(t *testing.T) {
	periodic := make([]float64, 200)
	for i := range periodic {
		periodic[i] = math.Sin(2 * math.Pi * float64(i) / 50)
	}

	if got := PeriodicityAt(periodic, 50); got < 0.99 {
		t.Errorf("periodicity at true period = %v, want near 1", got)
	}
	if got := PeriodicityAt(periodic, 25); got > -0.99 {
		t.Errorf("periodicity at half period = %v, want near -1", got)
	}

	constant := make([]float64, 100)
	for i := range constant {
		constant[i] = 2
	}
	if got := PeriodicityAt(constant, 10); got != 0 {
		t.Errorf("periodicity of constant envelope = %v, want 0", got)
	}

	if got := PeriodicityAt(periodic, 0); got != 0 {
		t.Errorf("periodicity at lag 0 = %v, want 0", got)
	}
	if got := PeriodicityAt(periodic, len(periodic)); got != 0 {
		t.Errorf("periodicity at lag len = %v, want 0", got)
	}
}

func TestMagnitudeSpectrum(t *testing.T) {
	if _, err := MagnitudeSpectrum(nil, 1000); err == nil {
		t.Error("accepted non-power-of-two fft size")
	}
	if _, err := MagnitudeSpectrum(nil, 0); err == nil {
		t.Error("accepted zero fft size")
	}

	const fftSize = 1024
	const bin = 64

	x := testutil.DeterministicSine[float64](bin, fftSize, 1, fftSize)

	mag, err := MagnitudeSpectrum(x, fftSize)
	if err != nil {
		t.Fatalf("MagnitudeSpectrum failed: %v", err)
	}
	testutil.RequireFinite(t, mag)
	if len(mag) != fftSize/2+1 {
		t.Fatalf("got %d bins, want %d", len(mag), fftSize/2+1)
	}

	peak := 0
	for i := range mag {
		if mag[i] > mag[peak] {
			peak = i
		}
	}
	if peak != bin {
		t.Errorf("peak at bin %d, want %d", peak, bin)
	}
}

func TestDeepestBin(t *testing.T) {
	mag := []float64{5, 4, 3, 0.5, 3, 4, 5, 0.1}

	got, err := DeepestBin(mag, 1, 6)
	if err != nil {
		t.Fatalf("DeepestBin failed: %v", err)
	}
	if got != 3 {
		t.Errorf("DeepestBin = %d, want 3", got)
	}

	if _, err := DeepestBin(nil, 0, 0); err == nil {
		t.Error("accepted empty spectrum")
	}
	if _, err := DeepestBin(mag, 4, 2); err == nil {
		t.Error("accepted inverted range")
	}
	if _, err := DeepestBin(mag, 0, len(mag)); err == nil {
		t.Error("accepted out-of-range hi")
	}
}
