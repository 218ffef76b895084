// Package score turns symbolic melodies (pitch names, octave levels and beat
// counts) into concrete tones and assembles them into a single sample buffer.
package score

import (
	"fmt"
	"strings"

	"github.com/minicodemonkey/tune/internal/synth"
	"gopkg.in/yaml.v3"
)

// Pitch is one of the twelve equal-tempered pitch classes within an octave.
// The ordinal of each pitch is its semitone distance above C.
type Pitch int

const (
	C Pitch = iota
	CSharp
	D
	DSharp
	E
	F
	FSharp
	G
	GSharp
	A
	ASharp
	B
)

// NumPitches is the number of pitch classes in an octave.
const NumPitches = 12

var pitchNames = [NumPitches]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// naturals maps a note letter to the ordinal of its natural pitch.
// M is the legacy spelling of E used by older scores.
var naturals = map[byte]Pitch{
	'C': C, 'D': D, 'E': E, 'F': F, 'G': G, 'A': A, 'B': B,
	'M': E,
}

// Ordinal returns the semitone index of p within the octave (C = 0).
func (p Pitch) Ordinal() int { return int(p) }

// Valid reports whether p is one of the twelve pitch classes.
func (p Pitch) Valid() bool { return p >= C && p <= B }

func (p Pitch) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Pitch(%d)", int(p))
	}
	return pitchNames[p]
}

// ParsePitch parses a pitch name such as "A", "C#", "Cs" or "Db".
// Matching is case-insensitive and accidentals wrap around the octave,
// so "Cb" is B and "B#" is C.
func ParsePitch(s string) (Pitch, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return 0, fmt.Errorf("%w: empty pitch name", synth.ErrInvalidArgument)
	}

	p, ok := naturals[strings.ToUpper(name[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown pitch %q", synth.ErrInvalidArgument, s)
	}

	switch strings.ToLower(name[1:]) {
	case "":
	case "#", "s":
		p++
	case "b":
		p--
	default:
		return 0, fmt.Errorf("%w: unknown pitch %q", synth.ErrInvalidArgument, s)
	}

	return (p + NumPitches) % NumPitches, nil
}

// MarshalYAML writes p as its canonical name.
func (p Pitch) MarshalYAML() (interface{}, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %s", synth.ErrInvalidArgument, p)
	}
	return p.String(), nil
}

// UnmarshalYAML reads a pitch name.
func (p *Pitch) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParsePitch(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*p = parsed
	return nil
}
