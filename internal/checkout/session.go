package checkout

import (
	"context"
	"sync/atomic"

	"github.com/marquee-live/storefront/internal/domain"
)

type State int32

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	StateFailed
)

// Session tracks one checkout's submission lifecycle:
// idle -> submitting -> succeeded | failed. Failed behaves like idle on the
// next attempt, so the user can resubmit manually; succeeded is terminal and
// keeps the confirmation. A Submit while one is in flight is rejected, not
// queued; the guard is a compare-and-swap on the state, no mutex.
type Session struct {
	state  atomic.Int32
	result *Confirmation
	err    error
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) State() State {
	return State(s.state.Load())
}

// Confirmation returns the stored result once the session has succeeded.
func (s *Session) Confirmation() *Confirmation {
	if s.State() != StateSucceeded {
		return nil
	}
	return s.result
}

// Err returns the error surfaced by the last failed submission.
func (s *Session) Err() error {
	return s.err
}

// Submit runs one submission through fn. Re-entrant calls while submitting
// return ErrSubmissionInFlight (callers treat it as a no-op); calls after
// success replay the stored confirmation without resubmitting.
func (s *Session) Submit(ctx context.Context, fn func(ctx context.Context) (*Confirmation, error)) (*Confirmation, error) {
	for {
		prev := State(s.state.Load())
		switch prev {
		case StateSubmitting:
			return nil, domain.ErrSubmissionInFlight
		case StateSucceeded:
			return s.result, nil
		}
		if s.state.CompareAndSwap(int32(prev), int32(StateSubmitting)) {
			break
		}
		// Lost the race; re-read the state.
	}

	conf, err := fn(ctx)
	if err != nil {
		s.err = err
		s.state.Store(int32(StateFailed))
		return nil, err
	}

	s.result = conf
	s.err = nil
	s.state.Store(int32(StateSucceeded))
	return conf, nil
}
