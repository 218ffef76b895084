//go:build portaudio

package playback

import (
	"sync"

	"github.com/gordonklaus/portaudio"
)

// framesPerBuffer is the block size written to the PortAudio stream.
const framesPerBuffer = 1024

// PortAudioBackend plays through a blocking PortAudio output stream.
type PortAudioBackend struct{}

// NewPortAudioBackend returns a Backend backed by PortAudio.
func NewPortAudioBackend() Backend {
	return PortAudioBackend{}
}

// OpenDevice implements Backend.
func (PortAudioBackend) OpenDevice(sampleRate int) (Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	if _, err := portaudio.DefaultOutputDevice(); err != nil {
		portaudio.Terminate()
		return nil, err
	}
	return &portaudioDevice{rate: sampleRate}, nil
}

type portaudioDevice struct {
	rate int
}

func (d *portaudioDevice) Upload(samples []float32) (Source, error) {
	s := &portaudioSource{
		samples: samples,
		out:     make([]float32, framesPerBuffer),
		done:    make(chan struct{}),
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(d.rate), len(s.out), &s.out)
	if err != nil {
		return nil, err
	}
	s.stream = stream
	return s, nil
}

func (d *portaudioDevice) Close() error {
	return portaudio.Terminate()
}

// portaudioSource feeds the buffer to the stream from a goroutine so it
// satisfies the same Play/IsPlaying contract as the oto source.
type portaudioSource struct {
	stream  *portaudio.Stream
	samples []float32
	out     []float32
	done    chan struct{}

	mu      sync.Mutex
	started bool
	err     error
}

func (s *portaudioSource) Play() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.done)
		if err := s.stream.Start(); err != nil {
			s.setErr(err)
			return
		}
		for off := 0; off < len(s.samples); off += len(s.out) {
			n := copy(s.out, s.samples[off:])
			clear(s.out[n:])
			if err := s.stream.Write(); err != nil {
				s.setErr(err)
				break
			}
		}
		s.setErr(s.stream.Stop())
	}()
}

func (s *portaudioSource) IsPlaying() bool {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *portaudioSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *portaudioSource) Close() error {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.done
	}
	return s.stream.Close()
}

func (s *portaudioSource) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = err
	}
}
