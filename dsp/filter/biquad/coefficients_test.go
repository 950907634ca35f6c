package biquad

import (
	"math"
	"testing"
)

const coefficientTolerance = 1e-4

func requireCoefficients(t *testing.T, got Coefficients[float64], want [5]float64) {
	t.Helper()

	fields := [5]float64{got.A0, got.A1, got.A2, got.B1, got.B2}
	names := [5]string{"A0", "A1", "A2", "B1", "B2"}
	for i := range fields {
		if diff := math.Abs(fields[i] - want[i]); diff > coefficientTolerance {
			t.Fatalf("%s = %.8f, want %.8f (diff %g)", names[i], fields[i], want[i], diff)
		}
	}
}

func TestCoefficientGeneratorsReferenceValues(t *testing.T) {
	const sampleRate = 44100.0

	tests := []struct {
		name string
		got  Coefficients[float64]
		want [5]float64
	}{
		{
			name: "LPF1 1kHz",
			got:  LPF1[float64](sampleRate, 1000),
			want: [5]float64{0.06660578, 0.06660578, 0, -0.86678844, 0},
		},
		{
			name: "HPF1 1kHz",
			got:  HPF1[float64](sampleRate, 1000),
			want: [5]float64{0.93339422, -0.93339422, 0, -0.86678844, 0},
		},
		{
			name: "LPF2 3kHz Q=0.707",
			got:  LPF2[float64](sampleRate, 3000, 0.707),
			want: [5]float64{0.03478485, 0.06956969, 0.03478485, -1.40745716, 0.54659654},
		},
		{
			name: "HPF2 3kHz Q=0.707",
			got:  HPF2[float64](sampleRate, 3000, 0.707),
			want: [5]float64{0.73851343, -1.47702685, 0.73851343, -1.40745716, 0.54659654},
		},
		{
			name: "APF1 1kHz",
			got:  APF1[float64](sampleRate, 1000),
			want: [5]float64{-0.86678844, 1, 0, -0.86678844, 0},
		},
		{
			name: "APF2 1kHz Q=0.707",
			got:  APF2[float64](sampleRate, 1000, 0.707),
			want: [5]float64{0.81636009, -1.79795577, 1, -1.79795577, 0.81636009},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCoefficients(t, tt.got, tt.want)
		})
	}
}

func TestAPF1AllpassMagnitudeResponse(t *testing.T) {
	// An allpass section must have unit magnitude response at every
	// frequency: |H(e^jw)| = 1.
	c := APF1[float64](44100, 1000)

	for _, freq := range []float64{20, 100, 1000, 5000, 15000} {
		w := 2 * math.Pi * freq / 44100
		z1 := complex(math.Cos(-w), math.Sin(-w))
		num := complex(c.A0, 0) + complex(c.A1, 0)*z1
		den := complex(1, 0) + complex(c.B1, 0)*z1

		mag := cmplxAbs(num) / cmplxAbs(den)
		if math.Abs(mag-1) > 1e-9 {
			t.Fatalf("allpass magnitude at %.0f Hz = %v, want 1", freq, mag)
		}
	}
}

func TestAPF2TangentClampNearNyquist(t *testing.T) {
	// Wide bandwidths push the tangent argument toward pi/2; the generator
	// must keep every coefficient finite.
	c := APF2[float64](44100, 21000, 0.05)
	for _, v := range []float64{c.A0, c.A1, c.A2, c.B1, c.B2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite coefficient: %+v", c)
		}
	}
}

func TestGeneratorsFloat32(t *testing.T) {
	got := LPF2[float32](44100, 3000, 0.707)
	if math.Abs(float64(got.A0)-0.03478485) > coefficientTolerance {
		t.Fatalf("float32 A0 = %v, want 0.03478485", got.A0)
	}
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}
