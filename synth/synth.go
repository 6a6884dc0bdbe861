// Package synth renders notes as enveloped sine tones and streams them to an
// audio device.
package synth

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsphweid/solfege/grammar"
	"github.com/jsphweid/solfege/model"
)

// Synth plays one note at a time on a Device. StopAll may be called from any
// goroutine; it stays in effect until Reset.
type Synth struct {
	device  Device
	stopped atomic.Bool

	mu   sync.Mutex
	sink Sink
}

func New(device Device) *Synth {
	return &Synth{device: device}
}

func (s *Synth) halted(ctx context.Context) bool {
	return s.stopped.Load() || ctx.Err() != nil
}

// open claims a sink for the current note, or returns nil once stopped.
func (s *Synth) open() (Sink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped.Load() {
		return nil, nil
	}
	sink, err := s.device.Open()
	if err != nil {
		return nil, err
	}
	s.sink = sink
	return sink, nil
}

func (s *Synth) release(sink Sink) {
	s.mu.Lock()
	owned := s.sink == sink
	if owned {
		s.sink = nil
	}
	s.mu.Unlock()
	if !owned {
		return
	}
	if err := sink.Close(); err != nil {
		log.Printf("Could not close audio sink: %v", err)
	}
}

// Play blocks until the note has been emitted, the synth is stopped or ctx
// is done. Device failures are logged and the note is skipped, so the error
// is always nil.
func (s *Synth) Play(ctx context.Context, n model.Note, d time.Duration) error {
	if s.halted(ctx) {
		return nil
	}

	samples, ok := Samples(grammar.NoteFrequency(n), d, func() bool {
		return s.halted(ctx)
	})
	if !ok {
		return nil
	}

	sink, err := s.open()
	if err != nil {
		log.Printf("Skipping note %v because: %v", n, err)
		return nil
	}
	if sink == nil {
		return nil
	}
	defer s.release(sink)

	err = sink.Write(ctx, EncodePCM(samples))
	if err != nil && !s.halted(ctx) {
		log.Printf("Skipping note %v because: %v", n, err)
	}
	return nil
}

// StopAll halts the note in progress, releases its sink and turns further
// Play calls into no-ops.
func (s *Synth) StopAll() {
	s.stopped.Store(true)

	s.mu.Lock()
	sink := s.sink
	s.sink = nil
	s.mu.Unlock()

	if sink != nil {
		if err := sink.Close(); err != nil {
			log.Printf("Could not close audio sink: %v", err)
		}
	}
}

func (s *Synth) Reset() {
	s.stopped.Store(false)
}

func (s *Synth) Stopped() bool {
	return s.stopped.Load()
}
