package score

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/minicodemonkey/tune/internal/synth"
	"gopkg.in/yaml.v3"
)

// Note is a single symbolic note event: a pitch class, an octave level
// relative to the reference octave, and a length in beats.
type Note struct {
	Pitch  Pitch   `yaml:"pitch"`
	Octave int     `yaml:"octave,omitempty"`
	Beats  float64 `yaml:"beats"`
}

// Validate reports whether n describes a playable note.
func (n Note) Validate() error {
	if !n.Pitch.Valid() {
		return fmt.Errorf("%w: unknown pitch %s", synth.ErrInvalidArgument, n.Pitch)
	}
	if !(n.Beats > 0) || math.IsInf(n.Beats, 0) {
		return fmt.Errorf("%w: beats must be positive, got %v", synth.ErrInvalidArgument, n.Beats)
	}
	return nil
}

// SemitoneOffset returns the distance of n from the reference pitch in
// equal-tempered half steps.
func (n Note) SemitoneOffset() int {
	return n.Pitch.Ordinal() - ReferenceClass.Ordinal() + n.Octave*NumPitches
}

// Frequency returns the frequency of n in Hz.
func (n Note) Frequency() float64 {
	return PitchToFrequency(n.SemitoneOffset())
}

// String returns the compact form read by ParseNote, e.g. "C#+1 0.5".
func (n Note) String() string {
	var b strings.Builder
	b.WriteString(n.Pitch.String())
	if n.Octave != 0 {
		b.WriteString(fmt.Sprintf("%+d", n.Octave))
	}
	b.WriteByte(' ')
	b.WriteString(strconv.FormatFloat(n.Beats, 'g', -1, 64))
	return b.String()
}

// ParseNote parses the compact note form "PITCH[+|-OCTAVE] BEATS".
// Beats may be written as a decimal ("0.5") or a fraction ("1/2").
func ParseNote(s string) (Note, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Note{}, fmt.Errorf("%w: note %q must be \"PITCH[+|-OCTAVE] BEATS\"", synth.ErrInvalidArgument, s)
	}

	var n Note
	pitch := fields[0]
	if i := strings.IndexAny(pitch[1:], "+-"); i >= 0 {
		octave, err := strconv.Atoi(pitch[i+1:])
		if err != nil {
			return Note{}, fmt.Errorf("%w: bad octave in note %q", synth.ErrInvalidArgument, s)
		}
		n.Octave = octave
		pitch = pitch[:i+1]
	}

	p, err := ParsePitch(pitch)
	if err != nil {
		return Note{}, err
	}
	n.Pitch = p

	beats, err := parseBeats(fields[1])
	if err != nil {
		return Note{}, fmt.Errorf("%w: bad beats in note %q", synth.ErrInvalidArgument, s)
	}
	n.Beats = beats

	if err := n.Validate(); err != nil {
		return Note{}, fmt.Errorf("note %q: %w", s, err)
	}
	return n, nil
}

func parseBeats(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return strconv.ParseFloat(s, 64)
	}
	a, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	b, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if b == 0 {
		return 0, strconv.ErrRange
	}
	return a / b, nil
}

// MarshalYAML writes n in its compact string form.
func (n Note) MarshalYAML() (interface{}, error) {
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n.String(), nil
}

// UnmarshalYAML accepts either the compact string form or a mapping with
// pitch, octave and beats keys.
func (n *Note) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		parsed, err := ParseNote(value.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*n = parsed
		return nil
	}

	// Decode through an alias type so this method isn't re-entered.
	type plain Note
	var raw plain
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if err := Note(raw).Validate(); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*n = Note(raw)
	return nil
}
