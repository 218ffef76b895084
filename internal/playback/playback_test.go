package playback

import (
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/minicodemonkey/tune/internal/synth"
)

// fakeBackend records every device call in order.
type fakeBackend struct {
	mu    sync.Mutex
	calls []string

	openErr     error
	uploadErr   error
	playErr     error
	closeSrcErr error
	closeDevErr error
	polls       int // IsPlaying returns true this many times
	uploaded    []float32
	rate        int
}

func (b *fakeBackend) record(call string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, call)
}

func (b *fakeBackend) OpenDevice(sampleRate int) (Device, error) {
	b.record("open")
	if b.openErr != nil {
		return nil, b.openErr
	}
	b.rate = sampleRate
	return &fakeDevice{b: b}, nil
}

type fakeDevice struct{ b *fakeBackend }

func (d *fakeDevice) Upload(samples []float32) (Source, error) {
	d.b.record("upload")
	if d.b.uploadErr != nil {
		return nil, d.b.uploadErr
	}
	d.b.uploaded = samples
	return &fakeSource{b: d.b, remaining: d.b.polls}, nil
}

func (d *fakeDevice) Close() error {
	d.b.record("close device")
	return d.b.closeDevErr
}

type fakeSource struct {
	b         *fakeBackend
	playing   bool
	remaining int
}

func (s *fakeSource) Play() {
	s.b.record("play")
	s.playing = true
}

func (s *fakeSource) IsPlaying() bool {
	if !s.playing || s.remaining == 0 {
		return false
	}
	s.remaining--
	return true
}

func (s *fakeSource) Err() error { return s.b.playErr }

func (s *fakeSource) Close() error {
	s.b.record("close source")
	return s.b.closeSrcErr
}

func TestPlayReleasesInReverseOrder(t *testing.T) {
	backend := &fakeBackend{polls: 3}
	player := NewPlayer(backend, nil)
	player.PollInterval = time.Millisecond

	var progress []time.Duration
	player.OnProgress = func(elapsed time.Duration) { progress = append(progress, elapsed) }

	samples := []float32{0, 0.25, -0.25}
	if err := player.Play(samples, 48000); err != nil {
		t.Fatalf("Play() error: %v", err)
	}

	want := []string{"open", "upload", "play", "close source", "close device"}
	if !reflect.DeepEqual(backend.calls, want) {
		t.Errorf("expected calls %v, got %v", want, backend.calls)
	}
	if backend.rate != 48000 {
		t.Errorf("expected device opened at 48000 Hz, got %d", backend.rate)
	}
	if !reflect.DeepEqual(backend.uploaded, samples) {
		t.Errorf("expected uploaded samples %v, got %v", samples, backend.uploaded)
	}
	if len(progress) != 3 {
		t.Errorf("expected 3 progress callbacks, got %d", len(progress))
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] < progress[i-1] {
			t.Errorf("progress went backwards: %v", progress)
		}
	}
}

func TestPlayEmptyBufferSkipsDevice(t *testing.T) {
	backend := &fakeBackend{}
	if err := NewPlayer(backend, nil).Play(nil, 48000); err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	if len(backend.calls) != 0 {
		t.Errorf("expected no device calls, got %v", backend.calls)
	}
}

func TestPlayInvalidSampleRate(t *testing.T) {
	err := NewPlayer(&fakeBackend{}, nil).Play([]float32{0}, 0)
	if !errors.Is(err, synth.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestPlayFailures(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name      string
		backend   *fakeBackend
		wantErr   error
		wantCalls []string
	}{
		{
			name:      "device unavailable",
			backend:   &fakeBackend{openErr: boom},
			wantErr:   ErrDeviceUnavailable,
			wantCalls: []string{"open"},
		},
		{
			name:      "upload rejected",
			backend:   &fakeBackend{uploadErr: boom},
			wantErr:   ErrPlaybackFailure,
			wantCalls: []string{"open", "upload", "close device"},
		},
		{
			name:      "mid-playback failure",
			backend:   &fakeBackend{playErr: boom, polls: 1},
			wantErr:   ErrPlaybackFailure,
			wantCalls: []string{"open", "upload", "play", "close source", "close device"},
		},
		{
			name:      "source close failure",
			backend:   &fakeBackend{closeSrcErr: boom},
			wantErr:   ErrPlaybackFailure,
			wantCalls: []string{"open", "upload", "play", "close source", "close device"},
		},
		{
			name:      "device close failure",
			backend:   &fakeBackend{closeDevErr: boom},
			wantErr:   ErrPlaybackFailure,
			wantCalls: []string{"open", "upload", "play", "close source", "close device"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := NewPlayer(tt.backend, nil)
			player.PollInterval = time.Millisecond

			err := player.Play([]float32{0, 0.5}, 48000)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if !errors.Is(err, boom) {
				t.Errorf("expected the device error to be wrapped, got %v", err)
			}
			if !reflect.DeepEqual(tt.backend.calls, tt.wantCalls) {
				t.Errorf("expected calls %v, got %v", tt.wantCalls, tt.backend.calls)
			}
		})
	}
}

func TestNewBackend(t *testing.T) {
	for _, name := range []string{"", "oto", "portaudio"} {
		if _, err := NewBackend(name); err != nil {
			t.Errorf("NewBackend(%q) error: %v", name, err)
		}
	}
	if _, err := NewBackend("alsa"); !errors.Is(err, synth.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}
