package core

// Float constrains the sample types supported by the DSP components.
// Filters, the LFO and the kernel are generic over Float so the same code
// serves float32 render chains and float64 reference processing.
type Float interface {
	~float32 | ~float64
}

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// BipolarModulation maps a bipolar modulation value in [-1, 1] onto the
// range [min, max]. Values outside [-1, 1] are clamped first.
func BipolarModulation(modulation, min, max float64) float64 {
	if modulation < -1 {
		modulation = -1
	} else if modulation > 1 {
		modulation = 1
	}

	return min + (modulation+1)*0.5*(max-min)
}
