package pool

import (
	"context"
	stderrors "errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/vnykmshr/taskflow/pkg/common/errors"
	"github.com/vnykmshr/taskflow/pkg/future"
)

// Submit queues a task for execution and returns the future that resolves
// when the task finishes. The task is executed with context.Background();
// use SubmitWithContext to provide a custom context.
func (p *Pool) Submit(task Task) (*future.Future[struct{}], error) {
	return p.SubmitWithContext(context.Background(), task)
}

// SubmitWithContext queues a task for execution with the given context.
// The context bounds the enqueue operation (relevant with a bounded queue)
// and is passed to the task's Execute method. Returns errors.ErrShuttingDown
// once pool shutdown has begun: work is never silently accepted and dropped.
func (p *Pool) SubmitWithContext(ctx context.Context, task Task) (*future.Future[struct{}], error) {
	if task == nil {
		return nil, fmt.Errorf("task cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	promise, fut := future.New[struct{}]()
	if err := p.enqueue(ctx, &taskJob{task: task, ctx: ctx, promise: promise}); err != nil {
		return nil, err
	}
	return fut, nil
}

// SubmitResult queues a value-returning function and returns a typed future
// for its result. The function runs with context.Background().
func SubmitResult[R any](p *Pool, fn func(ctx context.Context) (R, error)) (*future.Future[R], error) {
	return SubmitResultWithContext(p, context.Background(), fn)
}

// SubmitResultWithContext queues a value-returning function with the given
// context. The context bounds the enqueue and is passed to fn.
func SubmitResultWithContext[R any](p *Pool, ctx context.Context, fn func(ctx context.Context) (R, error)) (*future.Future[R], error) {
	if fn == nil {
		return nil, fmt.Errorf("fn cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	promise, fut := future.New[R]()
	if err := p.enqueue(ctx, &resultJob[R]{fn: fn, ctx: ctx, promise: promise}); err != nil {
		return nil, err
	}
	return fut, nil
}

// enqueue pushes a job onto the shared queue, mapping closure to the
// shutdown rejection error.
func (p *Pool) enqueue(ctx context.Context, j job) error {
	if p.stopping.Load() {
		return errors.ErrShuttingDown
	}

	// Deterministic rejection for pre-canceled contexts.
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("cannot submit task: %w", err)
	}

	if err := p.jobs.Push(ctx, j); err != nil {
		if stderrors.Is(err, errors.ErrClosed) {
			return errors.ErrShuttingDown
		}
		return fmt.Errorf("cannot submit task: %w", err)
	}

	p.submitted.Add(1)
	if p.metrics != nil {
		p.metrics.taskSubmitted(p)
	}
	return nil
}

// Shutdown stops the pool: no new tasks are accepted, queued tasks still
// drain, and the call returns once all workers have exited. If ctx expires
// first, tasks still queued are popped without running and their futures
// resolved with errors.ErrNeverRan, so no handle is left hanging.
//
// Shutdown is idempotent. It must not be called from inside a task running
// on this pool; that is a self-join deadlock.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.shutdownOnce.Do(func() {
		p.stopping.Store(true)
		p.jobs.Close()
	})

	select {
	case <-p.stopped:
		return nil
	case <-ctx.Done():
		p.abandonQueued()
		return ctx.Err()
	}
}

// ShutdownWithTimeout is Shutdown bounded by a timeout.
func (p *Pool) ShutdownWithTimeout(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return p.Shutdown(ctx)
}

// abandonQueued drains jobs that no worker claimed and fails their
// promises. Racing workers are harmless: each job is popped exactly once,
// and the promise slot is write-once.
func (p *Pool) abandonQueued() {
	for {
		j, ok, err := p.jobs.TryPop()
		if !ok || err != nil {
			return
		}
		j.fail(errors.ErrNeverRan)
		if p.metrics != nil {
			p.metrics.taskAbandoned(p)
		}
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return p.config.Workers
}

// QueueLen returns the current number of queued tasks waiting for execution.
func (p *Pool) QueueLen() int {
	return p.jobs.Len()
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (p *Pool) ActiveWorkers() int {
	return int(p.active.Load())
}

// TotalSubmitted returns the total number of tasks accepted by the pool.
func (p *Pool) TotalSubmitted() int64 {
	return p.submitted.Load()
}

// TotalCompleted returns the total number of tasks executed by the pool,
// whether they succeeded or failed.
func (p *Pool) TotalCompleted() int64 {
	return p.completed.Load()
}

// run is the main loop for a worker.
func (w *worker) run() {
	defer w.pool.workerWg.Done()

	if cb := w.pool.config.OnWorkerStart; cb != nil {
		cb(w.id)
	}
	defer func() {
		if cb := w.pool.config.OnWorkerStop; cb != nil {
			cb(w.id)
		}
	}()

	for {
		j, err := w.pool.jobs.Pop(context.Background())
		if err != nil {
			// Queue closed and drained.
			return
		}
		w.execute(j)
	}
}

// execute runs a single job with panic isolation. A panicking or failing
// task resolves its own future; it never takes the worker down with it.
func (w *worker) execute(j job) {
	start := time.Now()

	w.pool.active.Add(1)
	defer w.pool.active.Add(-1)

	ctx := j.submitCtx()
	if ctx == nil {
		ctx = context.Background()
	}
	if w.pool.config.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.pool.config.TaskTimeout)
		defer cancel()
	}

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
				j.fail(err)
				if h := w.pool.config.PanicHandler; h != nil {
					h(r)
				}
			}
		}()
		err = j.run(ctx)
	}()

	duration := time.Since(start)
	w.pool.completed.Add(1)
	if w.pool.metrics != nil {
		w.pool.metrics.taskExecuted(w.pool, err, duration)
	}
	if cb := w.pool.config.OnTaskComplete; cb != nil {
		cb(w.id, Result{Error: err, Duration: duration, WorkerID: w.id})
	}
}
