package model

import "strings"

// BaseNames lists the seven solfège syllables in scale order. It is also the
// canonical key order used whenever tallies need a deterministic ordering.
var BaseNames = []string{"DO", "RE", "MI", "FA", "SOL", "LA", "SI"}

const (
	SharpMarker  = '#'
	OctaveMarker = '\''
)

// Note is a recognized syllable with its sharp and octave-up modifiers.
type Note struct {
	Name   string
	Sharp  bool
	Octave int
}

// BaseName is the syllable without modifiers, the key used for tallies.
func (n Note) BaseName() string {
	return n.Name
}

// Key is the name optionally followed by '#', as found in the frequency table.
func (n Note) Key() string {
	if n.Sharp {
		return n.Name + string(SharpMarker)
	}
	return n.Name
}

func (n Note) String() string {
	return n.Key() + strings.Repeat(string(OctaveMarker), n.Octave)
}
