package synth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jsphweid/solfege/model"
	"github.com/stretchr/testify/assert"
)

type recordingDevice struct {
	mu       sync.Mutex
	writes   [][]byte
	opened   int
	closed   int
	openErr  error
	writeErr error
}

func (d *recordingDevice) Open() (Sink, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.openErr != nil {
		return nil, d.openErr
	}
	d.opened++
	return &recordingSink{dev: d}, nil
}

type recordingSink struct {
	dev *recordingDevice
}

func (s *recordingSink) Write(ctx context.Context, pcm []byte) error {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	if s.dev.writeErr != nil {
		return s.dev.writeErr
	}
	s.dev.writes = append(s.dev.writes, pcm)
	return nil
}

func (s *recordingSink) Close() error {
	s.dev.mu.Lock()
	defer s.dev.mu.Unlock()
	s.dev.closed++
	return nil
}

var la = model.Note{Name: "LA"}

func TestPlayWritesOneBlockAndReleasesSink(t *testing.T) {
	dev := &recordingDevice{}
	s := New(dev)

	err := s.Play(context.Background(), la, 500*time.Millisecond)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(dev.writes, 1)
	assert.Len(dev.writes[0], 44100)
	assert.Equal(1, dev.opened)
	assert.Equal(1, dev.closed)
}

func TestPlaySkipsNoteOnDeviceFailure(t *testing.T) {
	dev := &recordingDevice{openErr: errors.New("no device")}
	s := New(dev)

	assert.NoError(t, s.Play(context.Background(), la, 100*time.Millisecond))
	assert.Empty(t, dev.writes)
}

func TestPlaySkipsNoteOnWriteFailure(t *testing.T) {
	dev := &recordingDevice{writeErr: errors.New("underrun")}
	s := New(dev)

	assert.NoError(t, s.Play(context.Background(), la, 100*time.Millisecond))
	assert.Equal(t, 1, dev.closed)
}

func TestStopAllTurnsPlayIntoNoopUntilReset(t *testing.T) {
	dev := &recordingDevice{}
	s := New(dev)

	s.StopAll()
	assert.True(t, s.Stopped())
	s.Play(context.Background(), la, 100*time.Millisecond)
	assert.Equal(t, 0, dev.opened)

	s.Reset()
	s.Play(context.Background(), la, 100*time.Millisecond)
	assert.Equal(t, 1, dev.opened)
	assert.Len(t, dev.writes, 1)
}

func TestPlayHonorsCancelledContext(t *testing.T) {
	dev := &recordingDevice{}
	s := New(dev)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.Play(ctx, la, 100*time.Millisecond)
	assert.Equal(t, 0, dev.opened)
}

func sinkOpen(s *Synth) func() bool {
	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.sink != nil
	}
}

func TestStopAllInterruptsNoteInProgress(t *testing.T) {
	s := New(Silence{Realtime: true})

	done := make(chan struct{})
	go func() {
		s.Play(context.Background(), la, 10*time.Second)
		close(done)
	}()

	assert.Eventually(t, sinkOpen(s), 5*time.Second, time.Millisecond)
	s.StopAll()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Play did not return after StopAll")
	}
	assert.False(t, sinkOpen(s)())
}

func TestContextCancelInterruptsNoteInProgress(t *testing.T) {
	s := New(Silence{Realtime: true})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Play(ctx, la, 10*time.Second)
		close(done)
	}()

	assert.Eventually(t, sinkOpen(s), 5*time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Play did not return after cancel")
	}
}
