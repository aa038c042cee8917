package future

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/vnykmshr/taskflow/pkg/common/errors"
)

// Status reports the resolution state of a future, as observed by Poll
// or a deadline-bounded Wait.
type Status int

const (
	// Pending means the result has not been set yet.
	Pending Status = iota

	// Ready means a value or failure has been set.
	Ready

	// TimedOut means the wait deadline passed before the result was set.
	TimedOut
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	case TimedOut:
		return "timed out"
	default:
		return "unknown"
	}
}

// state is the single slot shared by a Promise/Future pair.
type state[R any] struct {
	mu       sync.Mutex
	done     chan struct{}
	value    R
	err      error
	set      bool
	consumed bool
}

// Promise is the producing end of a one-shot result slot.
// Exactly one of Complete or Fail may be called, exactly once.
type Promise[R any] struct {
	s *state[R]
}

// Future is the consuming end of a one-shot result slot.
// Get blocks until the paired Promise resolves and may succeed only once.
type Future[R any] struct {
	s *state[R]
}

// New creates a connected Promise/Future pair.
func New[R any]() (*Promise[R], *Future[R]) {
	s := &state[R]{done: make(chan struct{})}
	return &Promise[R]{s: s}, &Future[R]{s: s}
}

// Complete resolves the slot with a value.
// Returns errors.ErrAlreadySet if the slot was already resolved.
func (p *Promise[R]) Complete(value R) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if p.s.set {
		return errors.ErrAlreadySet
	}
	p.s.value = value
	p.s.set = true
	close(p.s.done)
	return nil
}

// Fail resolves the slot with a failure.
// Returns errors.ErrAlreadySet if the slot was already resolved.
func (p *Promise[R]) Fail(err error) error {
	if err == nil {
		err = stderrors.New("failure set with nil error")
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if p.s.set {
		return errors.ErrAlreadySet
	}
	p.s.err = err
	p.s.set = true
	close(p.s.done)
	return nil
}

// Get blocks until the slot is resolved, then returns the value or the
// stored failure. A resolved slot may be read exactly once; subsequent
// calls return errors.ErrAlreadyConsumed. Context cancellation does not
// consume the result.
func (f *Future[R]) Get(ctx context.Context) (R, error) {
	var zero R

	select {
	case <-f.s.done:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	f.s.mu.Lock()
	defer f.s.mu.Unlock()

	if f.s.consumed {
		return zero, errors.ErrAlreadyConsumed
	}
	f.s.consumed = true

	if f.s.err != nil {
		return zero, f.s.err
	}
	return f.s.value, nil
}

// Poll reports whether the slot has resolved, without blocking and
// without consuming the result.
func (f *Future[R]) Poll() Status {
	select {
	case <-f.s.done:
		return Ready
	default:
		return Pending
	}
}

// Wait blocks until the slot resolves or the timeout passes.
// It never consumes the result.
func (f *Future[R]) Wait(timeout time.Duration) Status {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.s.done:
		return Ready
	case <-timer.C:
		return TimedOut
	}
}

// Done returns a channel that is closed once the slot resolves.
// Useful in select loops alongside other channels.
func (f *Future[R]) Done() <-chan struct{} {
	return f.s.done
}
