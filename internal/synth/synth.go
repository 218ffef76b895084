// Package synth generates enveloped sine tones as mono float32 sample
// buffers. Each tone fades in over the first EnvelopeWindow samples and out
// over the last EnvelopeWindow samples.
package synth

import (
	"errors"
	"fmt"
	"math"
)

// EnvelopeWindow is the length, in samples, of the linear attack and release ramps.
const EnvelopeWindow = 1000

// MaxSamples is the longest buffer, in samples, a tone or score may occupy.
const MaxSamples = math.MaxInt32

// ErrInvalidArgument is returned for arguments that cannot describe a tone
// or score (negative durations, bad pitch names, non-positive rates).
var ErrInvalidArgument = errors.New("invalid argument")

// Params holds the per-run synthesis settings shared by every tone.
type Params struct {
	SampleRate float64 // samples per second
	Volume     float64 // peak amplitude in [0, 1]
}

// Validate reports whether p can be used to synthesize tones.
func (p Params) Validate() error {
	if !(p.SampleRate > 0) || math.IsInf(p.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive, got %v", ErrInvalidArgument, p.SampleRate)
	}
	if !(p.Volume >= 0 && p.Volume <= 1) {
		return fmt.Errorf("%w: volume must be within [0, 1], got %v", ErrInvalidArgument, p.Volume)
	}
	return nil
}

// Tone synthesizes a tone of the given frequency and duration using p.
func (p Params) Tone(frequencyHz, durationSeconds float64) ([]float32, error) {
	return Synthesize(frequencyHz, durationSeconds, p.SampleRate, p.Volume)
}

// Samples returns the number of samples a tone of durationSeconds occupies
// at sampleRate. Lengths above MaxSamples are rejected.
func Samples(sampleRate, durationSeconds float64) (int, error) {
	n := math.Floor(sampleRate * durationSeconds)
	if !(n >= 0) || n > MaxSamples {
		return 0, fmt.Errorf("%w: %v s at %v Hz is not a sample count in [0, %d]", ErrInvalidArgument, durationSeconds, sampleRate, MaxSamples)
	}
	return int(n), nil
}

// Synthesize returns floor(sampleRate*durationSeconds) samples of a sine wave
// at frequencyHz scaled by volume and shaped by the attack and release ramps.
//
// Tones shorter than EnvelopeWindow samples get overlapping ramps that
// multiply together, so they never reach full volume.
func Synthesize(frequencyHz, durationSeconds, sampleRate, volume float64) ([]float32, error) {
	if err := (Params{SampleRate: sampleRate, Volume: volume}).Validate(); err != nil {
		return nil, err
	}
	if !(frequencyHz >= 0) || math.IsInf(frequencyHz, 0) {
		return nil, fmt.Errorf("%w: frequency must be a non-negative number, got %v", ErrInvalidArgument, frequencyHz)
	}
	if !(durationSeconds >= 0) || math.IsInf(durationSeconds, 0) {
		return nil, fmt.Errorf("%w: duration must be a non-negative number, got %v", ErrInvalidArgument, durationSeconds)
	}

	n, err := Samples(sampleRate, durationSeconds)
	if err != nil {
		return nil, err
	}
	step := frequencyHz * 2 * math.Pi / sampleRate
	out := make([]float32, n)
	for i := range out {
		raw := math.Sin(float64(i)*step) * volume
		out[i] = float32(raw * attack(i) * attack(n-1-i))
	}
	return out, nil
}

// attack is the linear fade-in gain at sample i. Evaluated at n-1-i it gives
// the mirrored release gain.
func attack(i int) float64 {
	return math.Min(1, float64(i)/EnvelopeWindow)
}
