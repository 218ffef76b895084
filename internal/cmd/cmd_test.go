package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/minicodemonkey/tune/internal/playback"
)

const shortConfig = `sampleRate: 8000
volume: 0.5
bpm: 120
backend: oto
pollInterval: 1ms
score:
  title: Short
  parts:
    a: ["A 0.5", "C#+1 0.5"]
  arrangement:
    - part: a
      repeat: 2
`

// shortConfigSamples is the buffer length of shortConfig: four notes of
// a quarter second at 8 kHz.
const shortConfigSamples = 4 * 2000

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

// recordingBackend accepts any buffer and finishes playing immediately.
type recordingBackend struct {
	rate     int
	uploaded []float32
	closed   int
}

func (b *recordingBackend) OpenDevice(rate int) (playback.Device, error) {
	b.rate = rate
	return b, nil
}

func (b *recordingBackend) Upload(samples []float32) (playback.Source, error) {
	b.uploaded = samples
	return b, nil
}

func (b *recordingBackend) Close() error {
	b.closed++
	return nil
}

func (b *recordingBackend) Play()           {}
func (b *recordingBackend) IsPlaying() bool { return false }
func (b *recordingBackend) Err() error      { return nil }
