package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paragraphOf(notes ...Note) Paragraph {
	p := NewParagraph()
	for _, n := range notes {
		p.Add(n)
	}
	return p
}

func TestNewResultAggregates(t *testing.T) {
	res := NewResult([]Paragraph{
		paragraphOf(Note{Name: "DO"}, Note{Name: "DO", Sharp: true}, Note{Name: "RE"}),
		paragraphOf(Note{Name: "RE", Octave: 1}),
	})

	assert := assert.New(t)
	assert.Equal(2, res.NumParagraphs())
	assert.Equal(4, res.TotalNotes())
	assert.Equal(2, res.UniqueNotes())
	assert.Equal(Tally{"DO": 2, "RE": 2}, res.Tally())
	assert.Equal("DO DO# RE", res.Paragraph(0).Content())
}

func TestResultAccessorsReturnCopies(t *testing.T) {
	res := NewResult([]Paragraph{paragraphOf(Note{Name: "DO"}, Note{Name: "DO"})})

	res.Paragraphs()[0].Tally["DO"] = 99
	res.Paragraphs()[0].Notes[0].Name = "SI"
	res.Paragraph(0).Tally["RE"] = 1
	res.Paragraph(0).Notes[1].Name = "SI"
	res.Tally()["DO"] = 99

	p := res.Paragraph(0)
	assert.Equal(t, Tally{"DO": 2}, p.Tally)
	assert.Equal(t, "DO DO", p.Content())
	assert.Equal(t, Tally{"DO": 2}, res.Tally())
}

func TestNewResultDoesNotAliasInput(t *testing.T) {
	paragraphs := []Paragraph{paragraphOf(Note{Name: "MI"})}
	res := NewResult(paragraphs)

	paragraphs[0].Add(Note{Name: "FA"})
	paragraphs[0].Notes[0].Name = "LA"
	paragraphs[0].Tally["MI"] = 7

	p := res.Paragraph(0)
	require.Equal(t, 1, p.Len())
	assert.Equal(t, "MI", p.Content())
	assert.Equal(t, Tally{"MI": 1}, p.Tally)
	assert.Equal(t, 1, res.TotalNotes())
}
