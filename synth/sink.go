package synth

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/jsphweid/solfege/constants"
	"github.com/pkg/errors"
)

var ErrSinkClosed = errors.New("sink closed")

// Sink receives the PCM of a single note. Write blocks until the samples
// have been emitted or ctx is done. Close may be called concurrently with
// Write to interrupt it.
type Sink interface {
	Write(ctx context.Context, pcm []byte) error
	Close() error
}

// Device hands out one Sink per note.
type Device interface {
	Open() (Sink, error)
}

// OtoDevice plays through the default audio output. oto allows one context
// per process, so create a single OtoDevice and share it.
type OtoDevice struct {
	ctx *oto.Context
}

func NewOtoDevice() (*OtoDevice, error) {
	ctx, ready, err := oto.NewContext(constants.SampleRate, constants.NumChannels, oto.FormatSignedInt16LE)
	if err != nil {
		return nil, errors.Wrap(err, "could not create audio context")
	}
	<-ready
	return &OtoDevice{ctx: ctx}, nil
}

func (d *OtoDevice) Open() (Sink, error) {
	return &otoSink{ctx: d.ctx}, nil
}

type otoSink struct {
	ctx *oto.Context

	mu     sync.Mutex
	player oto.Player
	closed bool
}

func (s *otoSink) Write(ctx context.Context, pcm []byte) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSinkClosed
	}
	p := s.ctx.NewPlayer(bytes.NewReader(pcm))
	s.player = p
	p.Play()
	s.mu.Unlock()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for p.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return errors.Wrap(p.Err(), "audio player failed")
}

func (s *otoSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.player == nil {
		return nil
	}
	s.player.Pause()
	return s.player.Close()
}

// Silence accepts samples without emitting them. With Realtime set, Write
// takes as long as the samples would take to play.
type Silence struct {
	Realtime bool
}

func (d Silence) Open() (Sink, error) {
	return &silentSink{realtime: d.Realtime, closed: make(chan struct{})}, nil
}

type silentSink struct {
	realtime bool
	once     sync.Once
	closed   chan struct{}
}

func (s *silentSink) Write(ctx context.Context, pcm []byte) error {
	if !s.realtime {
		return nil
	}
	timer := time.NewTimer(PCMDuration(pcm))
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.closed:
		return ErrSinkClosed
	}
}

func (s *silentSink) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}
