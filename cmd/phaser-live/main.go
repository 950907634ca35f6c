package main

import (
	"bytes"
	"encoding/binary"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/cwbudde/algo-phaser/dsp/core"
	"github.com/cwbudde/algo-phaser/dsp/phaser"
	"github.com/cwbudde/algo-phaser/dsp/signal"
	"github.com/ebitengine/oto/v3"
)

func main() {
	frequency := flag.Float64("freq", 220, "Tone frequency in Hz")
	amplitude := flag.Float64("amplitude", 0.5, "Tone amplitude (0-1)")
	duration := flag.Float64("duration", 5, "Playback duration in seconds")
	sampleRate := flag.Int("sample-rate", 44100, "Sample rate in Hz")
	rate := flag.Float64("rate", 0.5, "LFO rate in Hz")
	depth := flag.Float64("depth", 100, "Modulation depth in percent (0-100)")
	intensity := flag.Float64("intensity", 90, "Feedback intensity in percent (0-100)")
	dry := flag.Float64("dry", 50, "Dry mix in percent (0-100)")
	wet := flag.Float64("wet", 50, "Wet mix in percent (0-100)")
	odd90 := flag.Bool("odd90", true, "Modulate the right channel with the quadrature LFO output")
	blockSize := flag.Int("block", 512, "Render block size in frames")
	flag.Parse()

	totalFrames := int(float64(*sampleRate) * (*duration))
	if totalFrames < 1 {
		totalFrames = 1
	}

	generator := signal.NewGenerator[float32](core.WithSampleRate(float64(*sampleRate)))
	tone, err := generator.Sine(*frequency, core.Clamp(*amplitude, 0, 1), 0, totalFrames)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating tone: %v\n", err)
		os.Exit(1)
	}

	const channels = 2

	kernel, err := phaser.NewKernel[float32]()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating kernel: %v\n", err)
		os.Exit(1)
	}
	if err := kernel.SetRenderingFormat(channels, float64(*sampleRate), *blockSize); err != nil {
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
			copy(in[ch], tone[timestamp:timestamp+int64(frames)])
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

	pcm := interleaveLE(processed)

	op := &oto.NewContextOptions{
		SampleRate:   *sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio device: %v\n", err)
		os.Exit(1)
	}
	<-ready

	fmt.Printf("Playing %.1f Hz tone for %.1fs (LFO %.2f Hz, odd90=%v)...\n", *frequency, *duration, *rate, *odd90)

	player := ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}

	if err := player.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing player: %v\n", err)
		os.Exit(1)
	}
}

// interleaveLE packs planar channels into interleaved little-endian float32
// bytes for the audio device.
func interleaveLE(planar [][]float32) []byte {
	channels := len(planar)
	frames := len(planar[0])

	out := make([]byte, frames*channels*4)
	for ch := range planar {
		for i, v := range planar[ch] {
			offset := (i*channels + ch) * 4
			binary.LittleEndian.PutUint32(out[offset:], math.Float32bits(v))
		}
	}

	return out
}
