package taskgraph

import (
	"context"
	"fmt"
	"sync"

	"github.com/vnykmshr/taskflow/pkg/future"
	"github.com/vnykmshr/taskflow/pkg/pool"
)

// System tracks the futures of a batch of related tasks submitted to a
// shared pool, so the batch can be awaited as a whole.
type System struct {
	pool *pool.Pool

	mu      sync.Mutex
	pending []<-chan struct{}
}

// New creates a task system on top of an existing pool. The system does
// not own the pool; shutting the pool down remains the caller's job.
func New(p *pool.Pool) *System {
	return &System{pool: p}
}

// Pool returns the underlying worker pool.
func (s *System) Pool() *pool.Pool {
	return s.pool
}

// Submit queues a task and tracks its completion for WaitAll.
func (s *System) Submit(task pool.Task) (*future.Future[struct{}], error) {
	fut, err := s.pool.Submit(task)
	if err != nil {
		return nil, err
	}
	s.track(fut.Done())
	return fut, nil
}

// SubmitResult queues a value-returning function on the system's pool and
// tracks its completion for WaitAll.
func SubmitResult[R any](s *System, fn func(ctx context.Context) (R, error)) (*future.Future[R], error) {
	fut, err := pool.SubmitResult(s.pool, fn)
	if err != nil {
		return nil, err
	}
	s.track(fut.Done())
	return fut, nil
}

// Then queues a continuation that first blocks on dep, then applies fn to
// its value. A failed dependency fails the continuation without running fn.
// The dependency future is consumed by the continuation; fan-out from one
// value means passing it along the continuation chain.
//
// Deadlock hazard: the continuation occupies a worker while it waits. If
// every worker is occupied by continuations whose dependencies are still
// queued behind them, the pool starves and the chain never finishes. The
// pool must have more workers than the longest dependency chain is deep;
// this layer documents the hazard, it does not detect it.
func Then[A, B any](s *System, dep *future.Future[A], fn func(ctx context.Context, v A) (B, error)) (*future.Future[B], error) {
	if dep == nil {
		return nil, fmt.Errorf("dependency future cannot be nil")
	}

	fut, err := pool.SubmitResult(s.pool, func(ctx context.Context) (B, error) {
		var zero B
		v, err := dep.Get(ctx)
		if err != nil {
			return zero, fmt.Errorf("dependency failed: %w", err)
		}
		return fn(ctx, v)
	})
	if err != nil {
		return nil, err
	}
	s.track(fut.Done())
	return fut, nil
}

// WaitAll blocks until every tracked task has resolved or ctx is canceled.
// It does not consume any result: callers can still Get each future.
// Tasks submitted after WaitAll begins are picked up by a later WaitAll.
func (s *System) WaitAll(ctx context.Context) error {
	s.mu.Lock()
	pending := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, done := range pending {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (s *System) track(done <-chan struct{}) {
	s.mu.Lock()
	s.pending = append(s.pending, done)
	s.mu.Unlock()
}
