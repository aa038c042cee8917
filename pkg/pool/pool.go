package pool

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/taskflow/pkg/common/errors"
	"github.com/vnykmshr/taskflow/pkg/future"
	"github.com/vnykmshr/taskflow/pkg/queue"
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute runs the task with the given context.
	// It should respect context cancellation and return any error encountered.
	Execute(ctx context.Context) error
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) error

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Result describes one task execution, delivered to OnTaskComplete.
type Result struct {
	// Error is any error that occurred during task execution
	Error error

	// Duration is how long the task took to execute
	Duration time.Duration

	// WorkerID identifies which worker executed the task
	WorkerID int
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// Workers is the number of worker goroutines. Must be at least 1.
	Workers int

	// QueueCapacity bounds the task queue. Producers block once the queue
	// holds this many pending tasks. Zero means unbounded.
	QueueCapacity int

	// TaskTimeout is the default timeout for individual task execution.
	// Zero means no timeout.
	TaskTimeout time.Duration

	// PanicHandler is called with the recovered value when a task panics.
	// The panic is always converted to a task failure regardless.
	PanicHandler func(recovered interface{})

	// OnWorkerStart is called when a worker starts.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	OnWorkerStop func(workerID int)

	// OnTaskComplete is called after a task completes (success or failure).
	OnTaskComplete func(workerID int, result Result)
}

// job is the unit carried by the pool's queue: it runs to resolve its
// promise, or is failed without running when abandoned at shutdown.
type job interface {
	run(ctx context.Context) error
	fail(err error)
	submitCtx() context.Context
}

// Pool runs submitted tasks on a fixed set of workers draining a shared
// blocking queue. Construct with New or NewWithConfig; the zero value is
// not usable.
type Pool struct {
	config Config
	jobs   queue.Queue[job]

	stopping     atomic.Bool
	shutdownOnce sync.Once
	stopped      chan struct{}
	workerWg     sync.WaitGroup

	active    atomic.Int32
	submitted atomic.Int64
	completed atomic.Int64

	metrics *poolMetrics
}

// worker represents a single worker in the pool.
type worker struct {
	id   int
	pool *Pool
}

// New creates a worker pool with the given worker count and queue capacity.
// A capacity of zero means the queue is unbounded.
func New(workers, queueCapacity int) (*Pool, error) {
	return NewWithConfig(Config{
		Workers:       workers,
		QueueCapacity: queueCapacity,
	})
}

// NewWithConfig creates a worker pool with the specified configuration.
// Workers begin draining the queue immediately.
func NewWithConfig(config Config) (*Pool, error) {
	if config.Workers < 1 {
		return nil, &errors.ValidationError{
			Module: "pool",
			Field:  "workers",
			Value:  config.Workers,
			Reason: "must be at least 1",
		}
	}
	if config.QueueCapacity < 0 {
		return nil, &errors.ValidationError{
			Module: "pool",
			Field:  "queue_capacity",
			Value:  config.QueueCapacity,
			Reason: "must not be negative",
			Hint:   "use 0 for an unbounded queue",
		}
	}

	var jobs queue.Queue[job]
	if config.QueueCapacity > 0 {
		q, err := queue.New[job](config.QueueCapacity)
		if err != nil {
			return nil, err
		}
		jobs = q
	} else {
		jobs = queue.NewUnbounded[job]()
	}

	p := &Pool{
		config:  config,
		jobs:    jobs,
		stopped: make(chan struct{}),
	}

	p.workerWg.Add(config.Workers)
	for i := 0; i < config.Workers; i++ {
		w := worker{id: i, pool: p}
		go w.run()
	}

	go func() {
		p.workerWg.Wait()
		close(p.stopped)
	}()

	return p, nil
}

// taskJob wraps a Task with a promise carrying only success or failure.
type taskJob struct {
	task    Task
	ctx     context.Context
	promise *future.Promise[struct{}]
}

func (j *taskJob) run(ctx context.Context) error {
	if err := j.task.Execute(ctx); err != nil {
		j.promise.Fail(err)
		return err
	}
	j.promise.Complete(struct{}{})
	return nil
}

func (j *taskJob) fail(err error) {
	j.promise.Fail(err)
}

func (j *taskJob) submitCtx() context.Context {
	return j.ctx
}

// resultJob wraps a value-returning function with a typed promise.
type resultJob[R any] struct {
	fn      func(ctx context.Context) (R, error)
	ctx     context.Context
	promise *future.Promise[R]
}

func (j *resultJob[R]) run(ctx context.Context) error {
	value, err := j.fn(ctx)
	if err != nil {
		j.promise.Fail(err)
		return err
	}
	j.promise.Complete(value)
	return nil
}

func (j *resultJob[R]) fail(err error) {
	j.promise.Fail(err)
}

func (j *resultJob[R]) submitCtx() context.Context {
	return j.ctx
}
