package phaser

// Band is the modulation range of one all-pass stage. The stage's center
// frequency sweeps between FrequencyMin and FrequencyMax as the bipolar
// modulation input moves from -1 to +1.
type Band struct {
	FrequencyMin float64
	FrequencyMax float64
}

// IdealBands returns the six-band split spanning roughly 16 Hz to 20 kHz.
func IdealBands() []Band {
	return []Band{
		{16.0, 1600.0},
		{33.0, 3300.0},
		{48.0, 4800.0},
		{98.0, 9800.0},
		{160.0, 16000.0},
		{260.0, 20480.0},
	}
}

// NationalSemiconductorBands returns the band split of the historical
// National Semiconductor phaser reference design.
func NationalSemiconductorBands() []Band {
	return []Band{
		{32.0, 1500.0},
		{68.0, 3400.0},
		{96.0, 4800.0},
		{212.0, 10000.0},
		{320.0, 16000.0},
		{636.0, 20480.0},
	}
}
