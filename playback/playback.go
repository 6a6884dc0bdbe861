// Package playback walks an analysis result and plays its notes in order,
// one session at a time, on a background goroutine.
package playback

import (
	"context"
	"sync"
	"time"

	"github.com/jsphweid/solfege/constants"
	"github.com/jsphweid/solfege/model"
	"github.com/pkg/errors"
)

// Player emits a single note. synth.Synth and midi.Player implement it.
type Player interface {
	Play(ctx context.Context, n model.Note, d time.Duration) error
	StopAll()
	Reset()
}

type Timing struct {
	Note           time.Duration
	InterNote      time.Duration
	InterParagraph time.Duration
}

var DefaultTiming = Timing{
	Note:           constants.NoteDuration,
	InterNote:      constants.InterNotePause,
	InterParagraph: constants.InterParagraphPause,
}

// Progress is reported right before a note starts.
type Progress struct {
	Paragraph     int
	NumParagraphs int
	Index         int
	Note          model.Note
}

type Sequencer struct {
	Player Player
	Timing Timing

	// OnProgress and OnFinish run on the playback goroutine.
	OnProgress func(Progress)
	OnFinish   func(Status)

	mu     sync.Mutex
	active *Session
}

func New(player Player) *Sequencer {
	return &Sequencer{Player: player, Timing: DefaultTiming}
}

// State is Running while a session plays and Idle otherwise.
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return Running
	}
	return Idle
}

// PlayAll starts a session over result and returns immediately. Callers
// must not start a new session while one is running.
func (s *Sequencer) PlayAll(result model.Result) *Session {
	session := newSession(s.Player.StopAll)
	s.Player.Reset()

	s.mu.Lock()
	s.active = session
	s.mu.Unlock()

	go s.run(session, result)
	return session
}

func (s *Sequencer) run(session *Session, result model.Result) {
	state, err := s.playSafely(session.ctx, result)
	status := session.finish(state, err)

	s.mu.Lock()
	if s.active == session {
		s.active = nil
	}
	s.mu.Unlock()

	if s.OnFinish != nil {
		s.OnFinish(status)
	}
}

func (s *Sequencer) playSafely(ctx context.Context, result model.Result) (state State, err error) {
	defer func() {
		if r := recover(); r != nil {
			state, err = Failed, errors.Errorf("playback panicked: %v", r)
		}
	}()
	return s.play(ctx, result)
}

func (s *Sequencer) play(ctx context.Context, result model.Result) (State, error) {
	paragraphs := result.Paragraphs()
	for i, p := range paragraphs {
		if ctx.Err() != nil {
			return Cancelled, nil
		}
		for j, n := range p.Notes {
			if ctx.Err() != nil {
				return Cancelled, nil
			}
			if s.OnProgress != nil {
				s.OnProgress(Progress{Paragraph: i, NumParagraphs: len(paragraphs), Index: j, Note: n})
			}
			if err := s.Player.Play(ctx, n, s.Timing.Note); err != nil {
				return Failed, errors.Wrapf(err, "could not play %v in paragraph %d", n, i+1)
			}
			if !pause(ctx, s.Timing.InterNote) {
				return Cancelled, nil
			}
		}
		if i < len(paragraphs)-1 && !pause(ctx, s.Timing.InterParagraph) {
			return Cancelled, nil
		}
	}
	if ctx.Err() != nil {
		return Cancelled, nil
	}
	return Completed, nil
}

// pause waits for d and reports false if ctx ended first.
func pause(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
