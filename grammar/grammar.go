// Package grammar recognizes solfège note tokens in text and maps them to
// pitch frequencies.
package grammar

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jsphweid/solfege/model"
)

// DefaultFrequency is returned for keys missing from the table (LA).
const DefaultFrequency = 440.0

var notePattern = regexp.MustCompile(`(?i)(DO|RE|MI|FA|SOL|LA|SI)([#']*)`)

// frequencies in Hz for the reference octave
var frequencies = map[string]float64{
	"DO":   261.63,
	"DO#":  277.18,
	"RE":   293.66,
	"RE#":  311.13,
	"MI":   329.63,
	"FA":   349.23,
	"FA#":  369.99,
	"SOL":  392.00,
	"SOL#": 415.30,
	"LA":   440.00,
	"LA#":  466.16,
	"SI":   493.88,
}

type Match struct {
	Text      string
	Name      string
	Modifiers string
	Start     int
	End       int
}

// Note converts the match into a model.Note.
func (m Match) Note() model.Note {
	return model.Note{
		Name:   strings.ToUpper(m.Name),
		Sharp:  strings.ContainsRune(m.Modifiers, model.SharpMarker),
		Octave: strings.Count(m.Modifiers, string(model.OctaveMarker)),
	}
}

// isWordChar treats letters and digits of any script as part of a word.
func isWordChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isolated reports whether line[start:end] is not glued to a word on either side.
func isolated(line string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(line[:start]); isWordChar(r) {
			return false
		}
	}
	if end < len(line) {
		if r, _ := utf8.DecodeRuneInString(line[end:]); isWordChar(r) {
			return false
		}
	}
	return true
}

// FindAll returns every whole-word note token in line, left to right.
// A candidate touching a word character on either side is part of a longer
// token and is skipped entirely.
func FindAll(line string) []Match {
	var res []Match
	for _, loc := range notePattern.FindAllStringSubmatchIndex(line, -1) {
		start, end := loc[0], loc[1]
		if !isolated(line, start, end) {
			continue
		}
		res = append(res, Match{
			Text:      line[start:end],
			Name:      line[loc[2]:loc[3]],
			Modifiers: line[loc[4]:loc[5]],
			Start:     start,
			End:       end,
		})
	}
	return res
}

// Frequency maps a token such as "sol#'" to Hz. Each octave marker doubles
// the reference frequency. Unknown keys fall back to DefaultFrequency.
func Frequency(token string) float64 {
	upper := strings.ToUpper(token)
	key := strings.ReplaceAll(upper, string(model.OctaveMarker), "")
	base, ok := frequencies[key]
	if !ok {
		base = DefaultFrequency
	}
	octaves := len(upper) - len(key)
	return base * math.Pow(2, float64(octaves))
}

func NoteFrequency(n model.Note) float64 {
	return Frequency(n.String())
}
