package score

import (
	"fmt"
	"math"
	"time"

	"github.com/minicodemonkey/tune/internal/synth"
)

const (
	// ReferencePitch is the frequency of semitone offset 0 (concert A).
	ReferencePitch = 440.0
	// ReferenceClass is the pitch class sounding at ReferencePitch in octave 0.
	ReferenceClass = A
)

// PitchToFrequency returns the equal-tempered frequency semitoneOffset half
// steps away from ReferencePitch.
func PitchToFrequency(semitoneOffset int) float64 {
	return ReferencePitch * math.Pow(2, float64(semitoneOffset)/NumPitches)
}

// Tempo is a fixed playing speed in beats per minute.
type Tempo struct {
	BPM float64
}

// NewTempo returns a Tempo of bpm beats per minute.
func NewTempo(bpm float64) (Tempo, error) {
	t := Tempo{BPM: bpm}
	if err := t.Validate(); err != nil {
		return Tempo{}, err
	}
	return t, nil
}

// Validate reports whether t is a positive, finite tempo.
func (t Tempo) Validate() error {
	if !(t.BPM > 0) || math.IsInf(t.BPM, 0) {
		return fmt.Errorf("%w: bpm must be positive, got %v", synth.ErrInvalidArgument, t.BPM)
	}
	return nil
}

// SecondsPerBeat returns the length of one beat in seconds.
func (t Tempo) SecondsPerBeat() float64 {
	return 60 / t.BPM
}

// Buffer is a mono sequence of float32 samples ready for playback.
type Buffer []float32

// Duration returns how long b plays at sampleRate.
func (b Buffer) Duration(sampleRate float64) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b)) / sampleRate * float64(time.Second))
}

// NoteToTone synthesizes the tone for a single note at the given tempo.
func NoteToTone(n Note, tempo Tempo, params synth.Params) ([]float32, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if err := tempo.Validate(); err != nil {
		return nil, err
	}
	return params.Tone(n.Frequency(), n.Beats*tempo.SecondsPerBeat())
}

// Build synthesizes every note in order and concatenates the tones into one
// buffer. The first invalid note aborts the build.
func Build(notes []Note, tempo Tempo, params synth.Params) (Buffer, error) {
	if err := tempo.Validate(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	spb := tempo.SecondsPerBeat()
	total := 0
	for i, n := range notes {
		if err := n.Validate(); err != nil {
			return nil, fmt.Errorf("note %d (%s): %w", i, n, err)
		}
		samples, err := synth.Samples(params.SampleRate, n.Beats*spb)
		if err != nil {
			return nil, fmt.Errorf("note %d (%s): %w", i, n, err)
		}
		total += samples
		if total > synth.MaxSamples {
			return nil, fmt.Errorf("note %d (%s): %w: score exceeds %d samples", i, n, synth.ErrInvalidArgument, synth.MaxSamples)
		}
	}

	out := make(Buffer, 0, total)
	for i, n := range notes {
		tone, err := NoteToTone(n, tempo, params)
		if err != nil {
			return nil, fmt.Errorf("note %d (%s): %w", i, n, err)
		}
		out = append(out, tone...)
	}
	return out, nil
}

// Repeat returns n copies of seq laid end to end. It works for note
// sequences as well as for lists of already synthesized tones.
func Repeat[T any](seq []T, n int) ([]T, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: repeat count must not be negative, got %d", synth.ErrInvalidArgument, n)
	}
	out := make([]T, 0, len(seq)*n)
	for i := 0; i < n; i++ {
		out = append(out, seq...)
	}
	return out, nil
}

// Concat joins tone buffers in order.
func Concat(tones ...[]float32) Buffer {
	total := 0
	for _, t := range tones {
		total += len(t)
	}
	out := make(Buffer, 0, total)
	for _, t := range tones {
		out = append(out, t...)
	}
	return out
}

// Duration returns the total playing time of notes at tempo.
func Duration(notes []Note, tempo Tempo) time.Duration {
	if tempo.Validate() != nil {
		return 0
	}
	beats := 0.0
	for _, n := range notes {
		beats += n.Beats
	}
	return time.Duration(beats * tempo.SecondsPerBeat() * float64(time.Second))
}
