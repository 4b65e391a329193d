package shell

import (
	"context"

	"go.uber.org/atomic"

	"github.com/jask/tabnav/nav"
)

// Session is the demo sign-in state shared between the shell and the auth
// guard. Guard checks run on command goroutines, so the flag is atomic.
type Session struct {
	signedIn atomic.Bool
}

func NewSession(signedIn bool) *Session {
	s := &Session{}
	s.signedIn.Store(signedIn)
	return s
}

func (s *Session) SignedIn() bool { return s.signedIn.Load() }

// Toggle flips the sign-in state and reports the new value.
func (s *Session) Toggle() bool {
	for {
		cur := s.signedIn.Load()
		if s.signedIn.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// TransitionRelay bridges controller transition notifications into the
// bubbletea message loop. The channel is buffered so a notification never
// blocks a dispatch; the model re-arms a listen command after each message.
type TransitionRelay struct {
	ch chan nav.Transition
}

func NewTransitionRelay() *TransitionRelay {
	return &TransitionRelay{ch: make(chan nav.Transition, 16)}
}

func (r *TransitionRelay) OnTransition(_ context.Context, t nav.Transition) {
	select {
	case r.ch <- t:
	default:
		// A full buffer means the UI is far behind; dropping the oldest-style
		// backpressure is not worth a stall here.
	}
}
