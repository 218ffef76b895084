// Package playback plays mono float32 sample buffers on the default audio
// output device and blocks until they finish.
//
// A Backend opens a Device, a Device turns a buffer into a Source, and a
// Source plays it. Player drives that sequence and releases every handle it
// acquired in reverse order, on success and on failure.
package playback

import (
	"errors"
	"fmt"
	"time"

	"github.com/minicodemonkey/tune/internal/synth"
	"go.uber.org/zap"
)

var (
	// ErrDeviceUnavailable is returned when no output device can be opened.
	ErrDeviceUnavailable = errors.New("audio device unavailable")
	// ErrPlaybackFailure is returned when a device rejects a buffer or fails mid-playback.
	ErrPlaybackFailure = errors.New("playback failed")
)

// DefaultPollInterval is how often Player checks whether a source is still playing.
const DefaultPollInterval = 10 * time.Millisecond

// Backend opens output devices.
type Backend interface {
	// OpenDevice opens the default output device for mono audio at sampleRate.
	OpenDevice(sampleRate int) (Device, error)
}

// Device is an open output device.
type Device interface {
	// Upload hands a mono float32 buffer to the device.
	Upload(samples []float32) (Source, error)
	Close() error
}

// Source is a buffer loaded on a device.
type Source interface {
	Play()
	IsPlaying() bool
	// Err returns the first error the source hit while playing.
	Err() error
	Close() error
}

// NewBackend returns the backend registered under name ("oto" or "portaudio").
func NewBackend(name string) (Backend, error) {
	switch name {
	case "", "oto":
		return NewOtoBackend(), nil
	case "portaudio":
		return NewPortAudioBackend(), nil
	default:
		return nil, fmt.Errorf("%w: unknown playback backend %q", synth.ErrInvalidArgument, name)
	}
}

// Player plays buffers through a Backend.
type Player struct {
	backend Backend
	logger  *zap.Logger

	// PollInterval is the delay between playback state checks.
	PollInterval time.Duration
	// OnProgress, if set, is called after every poll with the time elapsed
	// since playback started.
	OnProgress func(elapsed time.Duration)
}

// NewPlayer creates a Player for backend. A nil logger discards log output.
func NewPlayer(backend Backend, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{
		backend:      backend,
		logger:       logger,
		PollInterval: DefaultPollInterval,
	}
}

// Play plays samples at sampleRate and returns once the device reports the
// source has stopped. There is no timeout: the wait lasts as long as the buffer.
func (p *Player) Play(samples []float32, sampleRate int) (err error) {
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", synth.ErrInvalidArgument, sampleRate)
	}
	if len(samples) == 0 {
		p.logger.Debug("nothing to play")
		return nil
	}

	device, err := p.backend.OpenDevice(sampleRate)
	if err != nil {
		return fmt.Errorf("%w: open device: %w", ErrDeviceUnavailable, err)
	}
	defer func() {
		if cerr := device.Close(); cerr != nil {
			p.logger.Warn("failed to close device", zap.Error(cerr))
			if err == nil {
				err = fmt.Errorf("%w: close device: %w", ErrPlaybackFailure, cerr)
			}
		}
	}()

	source, err := device.Upload(samples)
	if err != nil {
		return fmt.Errorf("%w: upload buffer: %w", ErrPlaybackFailure, err)
	}
	defer func() {
		if cerr := source.Close(); cerr != nil {
			p.logger.Warn("failed to close source", zap.Error(cerr))
			if err == nil {
				err = fmt.Errorf("%w: close source: %w", ErrPlaybackFailure, cerr)
			}
		}
	}()

	interval := p.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	p.logger.Debug("playback started",
		zap.Int("samples", len(samples)),
		zap.Int("sampleRate", sampleRate),
		zap.Duration("pollInterval", interval),
	)
	start := time.Now()
	source.Play()

	// Wait for playback to complete
	for source.IsPlaying() {
		time.Sleep(interval)
		if p.OnProgress != nil {
			p.OnProgress(time.Since(start))
		}
	}

	if perr := source.Err(); perr != nil {
		return fmt.Errorf("%w: play: %w", ErrPlaybackFailure, perr)
	}
	p.logger.Debug("playback finished", zap.Duration("elapsed", time.Since(start)))
	return nil
}
