// Package lexer turns raw score text into an analysis result.
package lexer

import (
	"strings"

	"github.com/jsphweid/solfege/grammar"
	"github.com/jsphweid/solfege/model"
)

func analyzeLine(line string) model.Paragraph {
	p := model.NewParagraph()
	for _, m := range grammar.FindAll(line) {
		p.Add(m.Note())
	}
	return p
}

// Analyze splits text into lines and keeps one paragraph per line holding at
// least one note. Blank and note-free lines produce nothing.
func Analyze(text string) model.Result {
	var paragraphs []model.Paragraph
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p := analyzeLine(line)
		if p.Len() > 0 {
			paragraphs = append(paragraphs, p)
		}
	}
	return model.NewResult(paragraphs)
}
