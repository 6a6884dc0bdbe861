package model

import "strings"

// Tally maps a base name to its number of occurrences.
type Tally = map[string]int

// Paragraph holds the notes found on one input line, in order of appearance.
type Paragraph struct {
	Notes []Note
	Tally Tally
}

func NewParagraph() Paragraph {
	return Paragraph{Tally: make(Tally)}
}

// Add appends n and counts it under its base name.
func (p *Paragraph) Add(n Note) {
	if p.Tally == nil {
		p.Tally = make(Tally)
	}
	p.Notes = append(p.Notes, n)
	p.Tally[n.BaseName()] += 1
}

// clone returns a Paragraph that shares no memory with p.
func (p Paragraph) clone() Paragraph {
	res := Paragraph{
		Notes: append([]Note(nil), p.Notes...),
		Tally: make(Tally, len(p.Tally)),
	}
	for name, count := range p.Tally {
		res.Tally[name] = count
	}
	return res
}

func (p Paragraph) Len() int {
	return len(p.Notes)
}

// Content renders the notes separated by single spaces.
func (p Paragraph) Content() string {
	parts := make([]string, 0, len(p.Notes))
	for _, n := range p.Notes {
		parts = append(parts, n.String())
	}
	return strings.Join(parts, " ")
}
