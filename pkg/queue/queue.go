package queue

import (
	"context"
	"sync"

	"github.com/vnykmshr/taskflow/pkg/common/errors"
)

// Queue provides a thread-safe FIFO hand-off between any number of
// producers and consumers with blocking semantics and a close protocol.
type Queue[T any] interface {
	// Push appends a value to the queue.
	// For a bounded queue it blocks until capacity is available, the
	// queue is closed, or ctx is canceled. Returns errors.ErrClosed if
	// the queue was closed before the value could be queued, or the
	// context error if ctx ended first.
	Push(ctx context.Context, value T) error

	// TryPush attempts to push without blocking.
	// Returns errors.ErrCapacityExceeded if the queue is full.
	TryPush(value T) error

	// Pop removes and returns the oldest value.
	// It blocks until a value is available, the queue is closed and
	// drained, or ctx is canceled. After Close, buffered values are
	// still returned in order; once drained, Pop returns errors.ErrClosed.
	Pop(ctx context.Context) (T, error)

	// TryPop attempts to pop without blocking.
	// The bool reports whether a value was returned.
	TryPop() (T, bool, error)

	// Close marks the queue closed and wakes all waiters.
	// Closing is one-way and idempotent. Buffered values remain poppable.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool

	// Len returns the current number of buffered values.
	Len() int

	// Cap returns the configured capacity, or 0 for an unbounded queue.
	Cap() int
}

// blockingQueue implements Queue with a mutex and two condition variables.
// Bounded queues use ring-buffer storage; unbounded queues grow a slice.
type blockingQueue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	buf      []T
	head     int
	tail     int
	count    int
	capacity int
	closed   bool
}

// New creates a bounded queue. Capacity must be positive; producers block
// while the queue holds capacity values.
func New[T any](capacity int) (Queue[T], error) {
	if capacity <= 0 {
		return nil, &errors.ValidationError{
			Module: "queue",
			Field:  "capacity",
			Value:  capacity,
			Reason: "must be positive",
			Hint:   "use NewUnbounded for a queue without backpressure",
		}
	}

	q := &blockingQueue[T]{
		buf:      make([]T, capacity),
		capacity: capacity,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q, nil
}

// NewUnbounded creates a queue with no capacity limit. Push never blocks
// for room, only fails once the queue is closed.
func NewUnbounded[T any]() Queue[T] {
	q := &blockingQueue[T]{}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// Push implements Queue.Push.
func (q *blockingQueue[T]) Push(ctx context.Context, value T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.capacity > 0 && q.count >= q.capacity && !q.closed {
		if err := q.waitCond(ctx, q.notFull); err != nil {
			return err
		}
	}

	if q.closed {
		return errors.ErrClosed
	}

	q.pushLocked(value)
	q.notEmpty.Signal()
	return nil
}

// TryPush implements Queue.TryPush.
func (q *blockingQueue[T]) TryPush(value T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return errors.ErrClosed
	}
	if q.capacity > 0 && q.count >= q.capacity {
		return errors.ErrCapacityExceeded
	}

	q.pushLocked(value)
	q.notEmpty.Signal()
	return nil
}

// Pop implements Queue.Pop.
func (q *blockingQueue[T]) Pop(ctx context.Context) (T, error) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 && !q.closed {
		if err := q.waitCond(ctx, q.notEmpty); err != nil {
			return zero, err
		}
	}

	if q.count == 0 {
		// Closed and fully drained.
		return zero, errors.ErrClosed
	}

	value := q.popLocked()
	q.notFull.Signal()
	return value, nil
}

// TryPop implements Queue.TryPop.
func (q *blockingQueue[T]) TryPop() (T, bool, error) {
	var zero T

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		if q.closed {
			return zero, false, errors.ErrClosed
		}
		return zero, false, nil
	}

	value := q.popLocked()
	q.notFull.Signal()
	return value, true, nil
}

// Close implements Queue.Close.
func (q *blockingQueue[T]) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	q.closed = true

	// Every parked producer and consumer might be the one that must
	// observe the closed state, so wake them all.
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
	return nil
}

// IsClosed implements Queue.IsClosed.
func (q *blockingQueue[T]) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// Len implements Queue.Len.
func (q *blockingQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap implements Queue.Cap.
func (q *blockingQueue[T]) Cap() int {
	return q.capacity
}

// waitCond parks on cond until signaled or ctx ends (must hold lock).
// A watcher goroutine broadcasts on cancellation so the parked caller
// wakes and observes the context error. Broadcast wakes every waiter,
// so callers must re-check their predicate after a nil return.
func (q *blockingQueue[T]) waitCond(ctx context.Context, cond *sync.Cond) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := ctx.Done()
	if done == nil {
		cond.Wait()
		return nil
	}

	stop := make(chan struct{})
	go func() {
		select {
		case <-done:
			q.mu.Lock()
			cond.Broadcast()
			q.mu.Unlock()
		case <-stop:
		}
	}()

	cond.Wait()
	close(stop)
	if err := ctx.Err(); err != nil {
		// The wakeup may have been a Signal meant for another waiter;
		// pass it on before abandoning the wait.
		cond.Signal()
		return err
	}
	return nil
}

// pushLocked appends a value to storage (must hold lock).
func (q *blockingQueue[T]) pushLocked(value T) {
	if q.capacity > 0 {
		q.buf[q.tail] = value
		q.tail = (q.tail + 1) % q.capacity
	} else {
		q.buf = append(q.buf, value)
	}
	q.count++
}

// popLocked removes the oldest value from storage (must hold lock).
func (q *blockingQueue[T]) popLocked() T {
	var zero T
	var value T

	if q.capacity > 0 {
		value = q.buf[q.head]
		q.buf[q.head] = zero // clear reference
		q.head = (q.head + 1) % q.capacity
	} else {
		value = q.buf[0]
		q.buf[0] = zero
		q.buf = q.buf[1:]
	}

	q.count--
	if q.capacity == 0 && q.count == 0 {
		q.buf = nil // release backing array once drained
	}
	return value
}
