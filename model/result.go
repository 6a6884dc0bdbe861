package model

// Result is the outcome of analyzing one text. Global figures are computed
// once by NewResult; nothing mutates a Result afterwards.
type Result struct {
	paragraphs []Paragraph
	tally      Tally
	totalNotes int
}

func NewResult(paragraphs []Paragraph) Result {
	r := Result{
		paragraphs: make([]Paragraph, len(paragraphs)),
		tally:      make(Tally),
	}
	for i, p := range paragraphs {
		r.paragraphs[i] = p.clone()
		r.totalNotes += p.Len()
		for name, count := range p.Tally {
			r.tally[name] += count
		}
	}
	return r
}

// Paragraphs returns the paragraphs in input line order. The result is a
// deep copy.
func (r Result) Paragraphs() []Paragraph {
	res := make([]Paragraph, len(r.paragraphs))
	for i, p := range r.paragraphs {
		res[i] = p.clone()
	}
	return res
}

func (r Result) Paragraph(i int) Paragraph {
	return r.paragraphs[i].clone()
}

func (r Result) NumParagraphs() int {
	return len(r.paragraphs)
}

func (r Result) TotalNotes() int {
	return r.totalNotes
}

// Tally returns a copy of the global tally.
func (r Result) Tally() Tally {
	res := make(Tally, len(r.tally))
	for k, v := range r.tally {
		res[k] = v
	}
	return res
}

func (r Result) UniqueNotes() int {
	return len(r.tally)
}
