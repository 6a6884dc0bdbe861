package chart

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/jsphweid/solfege/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPNG(t *testing.T) {
	var buf bytes.Buffer
	err := Render(lexer.Analyze("sol sol sol re# fa fa fa re\n\nla la la"), &buf)
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Width, img.Bounds().Dx())
	assert.Equal(t, Height, img.Bounds().Dy())
}

func TestDrawEmptyResult(t *testing.T) {
	dc, err := Draw(lexer.Analyze(""))

	assert.NoError(t, err)
	assert.Equal(t, Width, dc.Width())
}

func TestDrawFillsTallestBar(t *testing.T) {
	dc, err := Draw(lexer.Analyze("do do do re"))
	require.NoError(t, err)

	// middle of the DO bar, just above the baseline
	barW := (float64(Width)-2*margin)/7 - barGap
	x := int(margin + barGap/2 + barW/2)
	y := int(float64(Height) - margin - 5)
	r, g, b, _ := dc.Image().At(x, y).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Less(t, g, uint32(0xffff))
	assert.Equal(t, uint32(0), b)
}
