package cmd

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jsphweid/solfege/lexer"
	"github.com/jsphweid/solfege/playback"
	"github.com/jsphweid/solfege/synth"
	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPlayCompletes(t *testing.T) {
	seq := playback.New(synth.New(synth.Silence{}))
	seq.Timing = playback.Timing{Note: time.Millisecond}
	out := &syncBuffer{}

	err := play(context.Background(), out, seq, lexer.Analyze("do re\nmi"))

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Playing paragraph 1 of 2")
	assert.Contains(t, out.String(), "Playing paragraph 2 of 2")
	assert.Contains(t, out.String(), "Playback completed")
}

func TestPlayStopsWhenContextEnds(t *testing.T) {
	seq := playback.New(synth.New(synth.Silence{Realtime: true}))
	out := &syncBuffer{}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := play(ctx, out, seq, lexer.Analyze("do re mi fa sol la si"))

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Playback stopped")
}

func TestAnalyzeCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"analyze"})
	defer rootCmd.SetArgs(nil)

	assert.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Source: bundled example")
	assert.Contains(t, out.String(), "Musical paragraphs: 5")
}
