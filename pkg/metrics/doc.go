// Package metrics provides Prometheus instrumentation for taskflow components.
//
// This package enables monitoring and observability for taskflow's queues and
// worker pools through Prometheus metrics.
//
// # Overview
//
// The metrics package provides automatic instrumentation for:
//   - Blocking queues (pushes, pops, rejections, blocked pushes, depth, capacity)
//   - Worker pools (submitted, executed, completed, failed, abandoned tasks,
//     execution duration, pool size, active workers, queued tasks)
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructors:
//
//	// Queue with metrics
//	q, err := queue.NewWithMetrics[int](64, "ingest")
//
//	// Worker pool with metrics
//	p, err := pool.NewWithMetrics(5, 32, "task_pool")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	p, err := pool.NewWithConfigAndMetrics(
//		pool.Config{Workers: 4, QueueCapacity: 32},
//		"task_pool",
//		config,
//	)
//
// # Available Metrics
//
// ## Queue Metrics
//
//   - taskflow_queue_pushes_total: Total number of items pushed onto the queue
//   - taskflow_queue_pops_total: Total number of items popped from the queue
//   - taskflow_queue_rejected_total: Total number of pushes rejected because the queue was closed
//   - taskflow_queue_blocked_pushes_total: Total number of pushes that had to wait for capacity
//   - taskflow_queue_depth: Current number of buffered items
//   - taskflow_queue_capacity: Configured queue capacity (0 for unbounded)
//
// ## Worker Pool Metrics
//
//   - taskflow_pool_tasks_submitted_total: Total number of tasks submitted to the pool
//   - taskflow_pool_tasks_executed_total: Total number of tasks executed
//   - taskflow_pool_tasks_completed_total: Total number of tasks completed successfully
//   - taskflow_pool_tasks_failed_total: Total number of tasks that returned an error or panicked
//   - taskflow_pool_tasks_abandoned_total: Total number of queued tasks abandoned at shutdown
//   - taskflow_pool_task_duration_seconds: Time spent executing tasks
//   - taskflow_pool_workers: Number of workers in the pool
//   - taskflow_pool_workers_active: Number of workers currently executing tasks
//   - taskflow_pool_tasks_queued: Number of tasks waiting for a worker
//
// # Labels
//
// Metrics include relevant labels for filtering and aggregation:
//
//   - queue_name: User-provided name for the queue instance
//   - pool_name: User-provided name for the worker pool instance
//
// # Performance
//
// Metrics collection is designed for minimal overhead:
//   - Metrics are updated only when operations occur
//   - No background goroutines or timers
//   - Conditional metrics updates based on enabled state
package metrics
