package lexer

import (
	"testing"

	"github.com/jsphweid/solfege/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeExampleScore(t *testing.T) {
	res := Analyze("sol sol sol re# fa fa fa re\n\nla la la")

	assert := assert.New(t)
	require.Equal(t, 2, res.NumParagraphs())

	first := res.Paragraph(0)
	assert.Equal(8, first.Len())
	assert.Equal(model.Tally{"SOL": 3, "RE": 2, "FA": 3}, first.Tally)
	assert.Equal(model.Note{Name: "RE", Sharp: true}, first.Notes[3])

	second := res.Paragraph(1)
	assert.Equal(3, second.Len())
	assert.Equal(model.Tally{"LA": 3}, second.Tally)

	assert.Equal(model.Tally{"SOL": 3, "RE": 2, "FA": 3, "LA": 3}, res.Tally())
	assert.Equal(11, res.TotalNotes())
}

func TestAnalyzeCollapsesModifiersIntoBaseName(t *testing.T) {
	res := Analyze("sol SOL# sol'")

	require.Equal(t, 1, res.NumParagraphs())
	p := res.Paragraph(0)
	assert.Equal(t, model.Tally{"SOL": 3}, p.Tally)
	assert.Equal(t, "SOL SOL# SOL'", p.Content())
}

func TestAnalyzeSkipsBlankAndNoteFreeLines(t *testing.T) {
	text := "\n\n   \ntitle: ode to joy\nmi mi fa sol\n\t\n\nno notes here\r\nsol fa mi re\r\n  \n"
	res := Analyze(text)

	assert := assert.New(t)
	assert.Equal(2, res.NumParagraphs())
	assert.Equal("MI MI FA SOL", res.Paragraph(0).Content())
	assert.Equal("SOL FA MI RE", res.Paragraph(1).Content())
	assert.Equal(8, res.TotalNotes())
}

func TestAnalyzeEmptyText(t *testing.T) {
	res := Analyze("")

	assert.Equal(t, 0, res.NumParagraphs())
	assert.Equal(t, 0, res.TotalNotes())
	assert.Empty(t, res.Tally())
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	text := "do re mi\nfa# sol'' la\n\nsi do'"
	assert.Equal(t, Analyze(text), Analyze(text))
}

func TestAnalyzeTalliesAddUp(t *testing.T) {
	texts := []string{
		"do re mi fa sol la si",
		"DO DO DO\nre\n\nmi# mi' MI\nnothing\nLA la La lA",
		"sol, sol. sol! (la) [si] do-re-mi",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			res := Analyze(text)
			sums := make(model.Tally)
			var total int
			for _, p := range res.Paragraphs() {
				var paragraphTotal int
				for name, count := range p.Tally {
					sums[name] += count
					paragraphTotal += count
				}
				assert.Equal(t, p.Len(), paragraphTotal)
				total += p.Len()
			}
			assert.Equal(t, sums, res.Tally())
			assert.Equal(t, total, res.TotalNotes())
		})
	}
}

func TestAnalyzeIgnoresSyllablesInsideAccentedWords(t *testing.T) {
	res := Analyze("el miércoles\nun laúd\ncanción del sí\nmi laúd suena: la")

	require.Equal(t, 1, res.NumParagraphs())
	assert.Equal(t, "MI LA", res.Paragraph(0).Content())
	assert.Equal(t, model.Tally{"MI": 1, "LA": 1}, res.Tally())
}
