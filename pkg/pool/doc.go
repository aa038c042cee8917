/*
Package pool provides a fixed-size worker pool with future-based result
delivery.

A pool owns N worker goroutines, each draining a shared blocking queue of
tasks. Submitting returns immediately with a future that resolves when the
task finishes:

	p, err := pool.New(4, 100) // 4 workers, queue capacity 100
	if err != nil {
		log.Fatal(err)
	}
	defer p.Shutdown(context.Background())

	fut, err := p.Submit(pool.TaskFunc(func(ctx context.Context) error {
		return doWork(ctx)
	}))
	if err != nil {
		log.Printf("rejected: %v", err)
	}

	if _, err := fut.Get(ctx); err != nil {
		log.Printf("task failed: %v", err)
	}

Value-returning work uses the generic submission functions:

	fut, err := pool.SubmitResult(p, func(ctx context.Context) (int, error) {
		return compute(ctx)
	})
	n, err := fut.Get(ctx)

Execution guarantees:

  - Every accepted task runs at most once; barring shutdown before a worker
    claims it, exactly once.
  - A task that returns an error or panics resolves its future with the
    failure. Panics are recovered with a stack trace and never terminate a
    worker, so one bad task cannot shrink pool capacity.
  - Submission after shutdown has begun fails synchronously with
    errors.ErrShuttingDown; accepted work is never silently dropped.

Shutdown closes the queue, lets already-queued tasks drain, and joins every
worker. If the shutdown context expires first, tasks still waiting in the
queue are resolved with errors.ErrNeverRan instead of running, so callers
blocked on Get always observe an outcome.

A task may submit further tasks, including to its own pool. A task that
blocks on the future of work queued behind it can deadlock the pool when
no free worker remains; see package taskgraph for the chaining layer and
its documented hazard.

Lifecycle callbacks (OnWorkerStart, OnTaskComplete, PanicHandler) are the
observability seam; NewWithMetrics adds Prometheus instrumentation.
*/
package pool
