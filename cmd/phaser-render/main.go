package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-phaser/dsp/core"
	"github.com/cwbudde/algo-phaser/dsp/phaser"
	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

func main() {
	input := flag.String("input", "input.wav", "Input WAV file path")
	output := flag.String("output", "output.wav", "Output WAV file path")
	rate := flag.Float64("rate", 0.5, "LFO rate in Hz")
	depth := flag.Float64("depth", 100, "Modulation depth in percent (0-100)")
	intensity := flag.Float64("intensity", 90, "Feedback intensity in percent (0-100)")
	dry := flag.Float64("dry", 50, "Dry mix in percent (0-100)")
	wet := flag.Float64("wet", 50, "Wet mix in percent (0-100)")
	odd90 := flag.Bool("odd90", false, "Modulate odd channels with the quadrature LFO output")
	blockSize := flag.Int("block", 512, "Render block size in frames")
	flag.Parse()

	source, sampleRate, err := readWAV(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", *input, err)
		os.Exit(1)
	}

	channels := len(source)
	totalFrames := len(source[0])

	fmt.Printf("Phasing %s: %d channels, %d frames at %d Hz (rate %.2f Hz, depth %.0f%%, intensity %.0f%%)...\n",
		*input, channels, totalFrames, sampleRate, *rate, *depth, *intensity)

	kernel, err := phaser.NewKernel[float32]()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating kernel: %v\n", err)
		os.Exit(1)
	}
	if err := kernel.SetRenderingFormat(channels, float64(sampleRate), *blockSize); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring kernel: %v\n", err)
		os.Exit(1)
	}

	kernel.SetParameterValue(phaser.ParamRate, float32(*rate))
	kernel.SetParameterValue(phaser.ParamDepth, float32(core.Clamp(*depth, 0, 100)))
	kernel.SetParameterValue(phaser.ParamIntensity, float32(core.Clamp(*intensity, 0, 100)))
	kernel.SetParameterValue(phaser.ParamDry, float32(core.Clamp(*dry, 0, 100)))
	kernel.SetParameterValue(phaser.ParamWet, float32(core.Clamp(*wet, 0, 100)))
	if *odd90 {
		kernel.SetParameterValue(phaser.ParamOdd90, 1)
	}

	pull := func(timestamp int64, frames, bus int, in [][]float32) error {
		for ch := range in {
			copy(in[ch], source[ch][timestamp:timestamp+int64(frames)])
		}
		return nil
	}

	processed := make([][]float32, channels)
	for ch := range processed {
		processed[ch] = make([]float32, totalFrames)
	}

	view := make([][]float32, channels)
	for offset := 0; offset < totalFrames; offset += *blockSize {
		frames := *blockSize
		if remaining := totalFrames - offset; frames > remaining {
			frames = remaining
		}

		for ch := range view {
			view[ch] = processed[ch][offset : offset+frames]
		}

		if err := kernel.ProcessAndRender(int64(offset), frames, 0, view, nil, pull); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering at frame %d: %v\n", offset, err)
			os.Exit(1)
		}
	}

	if err := writeWAV(*output, processed, sampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *output, err)
		os.Exit(1)
	}

	fmt.Printf("Successfully wrote %s (%d frames)\n", *output, totalFrames)
}

// readWAV decodes a WAV file into planar float32 channels normalized to
// [-1, 1].
func readWAV(path string) ([][]float32, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}

	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	if frames == 0 {
		return nil, 0, fmt.Errorf("empty wav file: %s", path)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))

	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, frames)
		for i := 0; i < frames; i++ {
			out[ch][i] = float32(float64(buf.Data[i*channels+ch]) * scale)
		}
	}

	return out, buf.Format.SampleRate, nil
}

// writeWAV interleaves planar channels and encodes 16-bit PCM.
func writeWAV(path string, planar [][]float32, sampleRate int) error {
	channels := len(planar)
	frames := len(planar[0])

	samples := make([]float32, frames*channels)
	for ch := range planar {
		for i, v := range planar[ch] {
			samples[i*channels+ch] = v
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	defer encoder.Close()

	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: channels,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}

	return encoder.Write(buf)
}
