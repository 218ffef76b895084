package wavfile

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/minicodemonkey/tune/internal/synth"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "song.wav")
	samples := []float32{0, 0.5, -0.5, 1, -1, 2, -2}

	if err := WriteFile(path, samples, 22050); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open WAV: %v", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		t.Fatal("Expected a valid WAV file")
	}
	if dec.SampleRate != 22050 {
		t.Errorf("Expected sample rate 22050, got %d", dec.SampleRate)
	}
	if dec.NumChans != 1 {
		t.Errorf("Expected 1 channel (mono), got %d", dec.NumChans)
	}
	if dec.BitDepth != 16 {
		t.Errorf("Expected 16 bits per sample, got %d", dec.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("Failed to decode PCM: %v", err)
	}
	want := []int{0, 16384, -16384, math.MaxInt16, -math.MaxInt16, math.MaxInt16, -math.MaxInt16}
	if len(buf.Data) != len(want) {
		t.Fatalf("Expected %d samples, got %d", len(want), len(buf.Data))
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Errorf("Sample %d: expected %d, got %d", i, want[i], buf.Data[i])
		}
	}
}

func TestWriteInvalidSampleRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.wav")
	if err := WriteFile(path, []float32{0}, 0); !errors.Is(err, synth.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}
