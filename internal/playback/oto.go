package playback

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// otoBufferSize is the driver buffer requested from oto. A device waits this
// long after the last sample is handed over before it suspends output.
const otoBufferSize = 50 * time.Millisecond

// OtoBackend plays through oto. oto allows a single context per process, so
// the context is created on first use and suspended between plays.
type OtoBackend struct {
	mu   sync.Mutex
	ctx  *oto.Context
	rate int
}

// NewOtoBackend returns a Backend backed by oto.
func NewOtoBackend() *OtoBackend {
	return &OtoBackend{}
}

// OpenDevice implements Backend.
func (b *OtoBackend) OpenDevice(sampleRate int) (Device, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx != nil {
		if sampleRate != b.rate {
			return nil, fmt.Errorf("output already opened at %d Hz, cannot reopen at %d Hz", b.rate, sampleRate)
		}
		if err := b.ctx.Resume(); err != nil {
			return nil, err
		}
		return &otoDevice{ctx: b.ctx, drain: otoBufferSize}, nil
	}

	// oto context: mono 32-bit float at the score's sample rate
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   otoBufferSize,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	b.ctx = ctx
	b.rate = sampleRate
	return &otoDevice{ctx: ctx, drain: otoBufferSize}, nil
}

type otoDevice struct {
	ctx   *oto.Context
	drain time.Duration
}

func (d *otoDevice) Upload(samples []float32) (Source, error) {
	if err := d.ctx.Err(); err != nil {
		return nil, err
	}
	player := d.ctx.NewPlayer(bytes.NewReader(EncodeFloat32LE(samples)))
	return &otoSource{player: player}, nil
}

// Close suspends the context once the driver buffer has played out; oto has
// no way to release it.
func (d *otoDevice) Close() error {
	return drainThenSuspend(d.drain, time.Sleep, d.ctx.Suspend)
}

// drainThenSuspend waits for audio still queued in the driver, then stops output.
func drainThenSuspend(drain time.Duration, sleep func(time.Duration), suspend func() error) error {
	if drain > 0 {
		sleep(drain)
	}
	return suspend()
}

type otoSource struct {
	player *oto.Player
}

func (s *otoSource) Play()           { s.player.Play() }
func (s *otoSource) IsPlaying() bool { return s.player.IsPlaying() }
func (s *otoSource) Err() error      { return s.player.Err() }
func (s *otoSource) Close() error    { return s.player.Close() }
