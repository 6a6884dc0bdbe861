// Package report renders an analysis result as a plain-text report.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jsphweid/solfege/model"
	"github.com/jsphweid/solfege/util"
	"golang.org/x/exp/slices"
)

// TopN is how many notes the global ranking lists.
const TopN = 5

type Count struct {
	Name  string
	Count int
}

func order(name string) int {
	if i := slices.Index(model.BaseNames, name); i >= 0 {
		return i
	}
	return len(model.BaseNames)
}

// Rank sorts a tally by count, highest first. Ties keep scale order
// (DO before RE before MI...); unknown names go last, alphabetically.
func Rank(tally model.Tally) []Count {
	names := util.GetKeys(tally)
	slices.SortFunc(names, func(a, b string) bool {
		if order(a) != order(b) {
			return order(a) < order(b)
		}
		return a < b
	})

	res := make([]Count, 0, len(names))
	for _, name := range names {
		res = append(res, Count{Name: name, Count: tally[name]})
	}
	slices.SortStableFunc(res, func(a, b Count) bool {
		return a.Count > b.Count
	})
	return res
}

func times(n int) string {
	if n == 1 {
		return "time"
	}
	return "times"
}

// Percent is count as a share of total, 0 when total is 0.
func Percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) * 100 / float64(total)
}

func Write(w io.Writer, r model.Result, source string) error {
	var b strings.Builder

	b.WriteString("MUSICAL ANALYSIS\n")
	b.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&b, "Source: %v\n\n", source)

	for i, p := range r.Paragraphs() {
		fmt.Fprintf(&b, "PARAGRAPH %d\n", i+1)
		b.WriteString(strings.Repeat("-", 40) + "\n")
		fmt.Fprintf(&b, "Content: %v\n", p.Content())
		fmt.Fprintf(&b, "Total notes: %d\n", p.Len())
		b.WriteString("Distribution:\n")
		for _, c := range Rank(p.Tally) {
			fmt.Fprintf(&b, "   %v: %d %v\n", c.Name, c.Count, times(c.Count))
		}
		b.WriteString("\n")
	}

	b.WriteString("GLOBAL SUMMARY\n")
	b.WriteString(strings.Repeat("=", 40) + "\n")
	fmt.Fprintf(&b, "Musical paragraphs: %d\n", r.NumParagraphs())
	fmt.Fprintf(&b, "Total notes: %d\n", r.TotalNotes())
	fmt.Fprintf(&b, "Unique notes: %d\n\n", r.UniqueNotes())

	b.WriteString("MOST FREQUENT NOTES:\n")
	ranking := Rank(r.Tally())
	if len(ranking) > TopN {
		ranking = ranking[:TopN]
	}
	for _, c := range ranking {
		fmt.Fprintf(&b, "   %v: %d occurrences (%.1f%%)\n", c.Name, c.Count, Percent(c.Count, r.TotalNotes()))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
