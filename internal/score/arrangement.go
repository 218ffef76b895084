package score

import (
	"fmt"

	"github.com/minicodemonkey/tune/internal/synth"
)

// Section plays one named part, Repeat times in a row. A zero Repeat plays
// the part once.
type Section struct {
	Part   string `yaml:"part"`
	Repeat int    `yaml:"repeat,omitempty"`
}

// Arrangement is a song built from named parts. Sections are played in
// order and the whole sequence is played Repeat times (once when zero).
type Arrangement struct {
	Title    string            `yaml:"title,omitempty"`
	Repeat   int               `yaml:"repeat,omitempty"`
	Parts    map[string][]Note `yaml:"parts"`
	Sections []Section         `yaml:"arrangement"`
}

// Resolve flattens the arrangement into the note sequence it plays.
func (a *Arrangement) Resolve() ([]Note, error) {
	var song []Note
	for i, s := range a.Sections {
		part, ok := a.Parts[s.Part]
		if !ok {
			return nil, fmt.Errorf("section %d: %w: unknown part %q", i, synth.ErrInvalidArgument, s.Part)
		}
		notes, err := Repeat(part, timesOrOnce(s.Repeat))
		if err != nil {
			return nil, fmt.Errorf("section %d (%s): %w", i, s.Part, err)
		}
		song = append(song, notes...)
	}

	out, err := Repeat(song, timesOrOnce(a.Repeat))
	if err != nil {
		return nil, fmt.Errorf("arrangement: %w", err)
	}
	return out, nil
}

// Notes returns the number of notes in each part, keyed by part name.
func (a *Arrangement) Notes() map[string]int {
	counts := make(map[string]int, len(a.Parts))
	for name, notes := range a.Parts {
		counts[name] = len(notes)
	}
	return counts
}

func timesOrOnce(n int) int {
	if n == 0 {
		return 1
	}
	return n
}
