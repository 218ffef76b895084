// Package wavfile writes sample buffers to 16-bit PCM WAV files.
package wavfile

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/minicodemonkey/tune/internal/synth"
)

// BitDepth is the sample size written to WAV files.
const BitDepth = 16

// Write encodes mono samples as a 16-bit PCM WAV stream. Samples outside
// [-1, 1] are clipped.
func Write(w io.WriteSeeker, samples []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", synth.ErrInvalidArgument, sampleRate)
	}

	enc := wav.NewEncoder(w, sampleRate, BitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Data:           toInt16Range(samples),
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: 1},
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finish WAV stream: %w", err)
	}
	return nil
}

// WriteFile writes samples to a WAV file at path, creating parent directories.
func WriteFile(path string, samples []float32, sampleRate int) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return Write(f, samples, sampleRate)
}

func toInt16Range(samples []float32) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		v := math.Max(-1, math.Min(1, float64(s)))
		out[i] = int(math.Round(v * math.MaxInt16))
	}
	return out
}
