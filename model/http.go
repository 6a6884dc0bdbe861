package model

type AnalyzeRequestBody struct {
	Text    string `json:"text"`
	Source  string `json:"source"`
	Example bool   `json:"example"`
}

type ParagraphResult struct {
	Notes      []string `json:"notes"`
	TotalNotes int      `json:"total_notes"`
	Tally      Tally    `json:"tally"`
}

type AnalyzeResponse struct {
	ID            string            `json:"id,omitempty"`
	Source        string            `json:"source"`
	NumParagraphs int               `json:"num_paragraphs"`
	TotalNotes    int               `json:"total_notes"`
	UniqueNotes   int               `json:"unique_notes"`
	Tally         Tally             `json:"tally"`
	Paragraphs    []ParagraphResult `json:"paragraphs"`
}

type PlaybackResponse struct {
	ID     string `json:"id"`
	State  string `json:"state"`
	Detail string `json:"detail,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

func NewAnalyzeResponse(r Result, source string) AnalyzeResponse {
	res := AnalyzeResponse{
		Source:        source,
		NumParagraphs: r.NumParagraphs(),
		TotalNotes:    r.TotalNotes(),
		UniqueNotes:   r.UniqueNotes(),
		Tally:         r.Tally(),
		Paragraphs:    make([]ParagraphResult, 0, r.NumParagraphs()),
	}
	for _, p := range r.Paragraphs() {
		pr := ParagraphResult{TotalNotes: p.Len(), Tally: p.Tally}
		for _, n := range p.Notes {
			pr.Notes = append(pr.Notes, n.String())
		}
		res.Paragraphs = append(res.Paragraphs, pr)
	}
	return res
}
