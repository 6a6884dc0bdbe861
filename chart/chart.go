// Package chart draws the global tally of a result as a bar chart.
package chart

import (
	"fmt"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jsphweid/solfege/model"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	Width  = 700
	Height = 400
)

const (
	margin    = 40.0
	barGap    = 12.0
	labelSize = 14
)

func parseFont() (*truetype.Font, error) {
	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse font")
	}
	return font, nil
}

// Draw paints one bar per base name in scale order, scaled to the most
// frequent note, with the count above each bar.
func Draw(r model.Result) (*gg.Context, error) {
	font, err := parseFont()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(Width, Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: labelSize}))

	tally := r.Tally()
	var highest int
	for _, count := range tally {
		if count > highest {
			highest = count
		}
	}

	w, h := float64(Width), float64(Height)
	plotH := h - 2*margin
	barW := (w-2*margin)/float64(len(model.BaseNames)) - barGap
	baseline := h - margin

	for i, name := range model.BaseNames {
		x := margin + float64(i)*(barW+barGap) + barGap/2
		count := tally[name]

		var barH float64
		if highest > 0 {
			barH = (plotH - labelSize*2) * float64(count) / float64(highest)
		}
		dc.DrawRectangle(x, baseline-barH, barW, barH)
		dc.SetRGB(1, 0.5, 0)
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(1)
		dc.Stroke()

		dc.DrawStringAnchored(name, x+barW/2, baseline+labelSize, 0.5, 0.5)
		dc.DrawStringAnchored(fmt.Sprint(count), x+barW/2, baseline-barH-labelSize/2, 0.5, 0)
	}

	dc.DrawLine(margin/2, baseline, w-margin/2, baseline)
	dc.Stroke()
	dc.DrawStringAnchored(fmt.Sprintf("%d notes in %d paragraphs", r.TotalNotes(), r.NumParagraphs()), w/2, margin/2, 0.5, 0.5)
	return dc, nil
}

// Render writes the chart as PNG.
func Render(r model.Result, w io.Writer) error {
	dc, err := Draw(r)
	if err != nil {
		return err
	}
	return errors.Wrap(dc.EncodePNG(w), "could not encode chart")
}
