package playback

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type State int

const (
	Idle State = iota
	Running
	Completed
	Cancelled
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return "unknown"
}

func (s State) Terminal() bool {
	return s == Completed || s == Cancelled || s == Failed
}

// Status is what a session reports once it reaches a terminal state.
type Status struct {
	ID    uuid.UUID
	State State
	Err   error
}

// Session is the handle on one run of the sequencer.
type Session struct {
	ID uuid.UUID

	ctx    context.Context
	cancel context.CancelFunc
	stop   func()
	done   chan struct{}

	mu        sync.Mutex
	state     State
	err       error
	cancelled bool
	finishing bool
	stopping  sync.WaitGroup
}

func newSession(stop func()) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		ID:     uuid.New(),
		ctx:    ctx,
		cancel: cancel,
		stop:   stop,
		done:   make(chan struct{}),
		state:  Running,
	}
}

// Cancel stops playback. No note starts after the next check, and a session
// cancelled while running always ends Cancelled. Cancelling a finished
// session does nothing.
func (s *Session) Cancel() {
	s.mu.Lock()
	if s.state != Running || s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	if s.finishing {
		// the playback loop is over, there is nothing left to stop
		s.mu.Unlock()
		return
	}
	s.stopping.Add(1)
	s.mu.Unlock()
	defer s.stopping.Done()

	s.cancel()
	s.stop()
}

// finish records the terminal state unless Cancel got there first. It
// waits for a Cancel in flight to finish stopping the player, so that a
// late StopAll cannot reach the next session.
func (s *Session) finish(state State, err error) Status {
	s.mu.Lock()
	s.finishing = true
	s.mu.Unlock()
	s.stopping.Wait()

	s.mu.Lock()
	if s.cancelled {
		state, err = Cancelled, nil
	}
	s.state = state
	s.err = err
	s.mu.Unlock()

	s.cancel()
	close(s.done)
	return Status{ID: s.ID, State: state, Err: err}
}

// Done is closed once the session reaches a terminal state.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err is the cause of a Failed session.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Wait blocks until the session is over.
func (s *Session) Wait() (State, error) {
	<-s.done
	return s.State(), s.Err()
}
