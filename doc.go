/*
Package taskflow provides a concurrent task queue and worker pool with
future-based result delivery.

Queue (pkg/queue):
  - Bounded or unbounded blocking FIFO for producer/consumer hand-off
  - Close protocol that drains buffered items then signals end-of-stream

Futures (pkg/future):
  - One-shot promise/future pair with distinct producer and consumer types
  - Write-once, read-once contract with explicit violation errors

Worker Pool (pkg/pool):
  - Fixed worker set draining a shared queue
  - Panic isolation, graceful shutdown, Prometheus instrumentation

Chaining (pkg/taskgraph):
  - Continuations that block on prior futures, with the pool-starvation
    hazard documented

Scheduling (pkg/periodic):
  - Interval and cron-based resubmission into a pool

Example usage:

	import (
		"github.com/vnykmshr/taskflow/pkg/pool"
	)

	p, _ := pool.New(4, 100) // 4 workers, queue capacity 100
	defer p.Shutdown(context.Background())

	fut, _ := pool.SubmitResult(p, func(ctx context.Context) (int, error) {
		return 7 * 6, nil
	})
	answer, _ := fut.Get(context.Background())
*/
package taskflow
