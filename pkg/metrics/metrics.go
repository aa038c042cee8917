package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for taskflow components.
type Registry struct {
	// Queue Metrics
	QueuePushes        *prometheus.CounterVec
	QueuePops          *prometheus.CounterVec
	QueueRejected      *prometheus.CounterVec
	QueueBlockedPushes *prometheus.CounterVec
	QueueDepth         *prometheus.GaugeVec
	QueueCapacity      *prometheus.GaugeVec

	// Worker Pool Metrics
	TasksSubmitted        *prometheus.CounterVec
	TasksExecuted         *prometheus.CounterVec
	TasksCompleted        *prometheus.CounterVec
	TasksFailed           *prometheus.CounterVec
	TasksAbandoned        *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec
	WorkerPoolSize        *prometheus.GaugeVec
	WorkerPoolActive      *prometheus.GaugeVec
	WorkerPoolQueued      *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by taskflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Queue Metrics
		QueuePushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "queue",
				Name:      "pushes_total",
				Help:      "Total number of items pushed onto the queue",
			},
			[]string{"queue_name"},
		),

		QueuePops: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "queue",
				Name:      "pops_total",
				Help:      "Total number of items popped from the queue",
			},
			[]string{"queue_name"},
		),

		QueueRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "queue",
				Name:      "rejected_total",
				Help:      "Total number of pushes rejected because the queue was closed",
			},
			[]string{"queue_name"},
		),

		QueueBlockedPushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "queue",
				Name:      "blocked_pushes_total",
				Help:      "Total number of pushes that had to wait for capacity",
			},
			[]string{"queue_name"},
		),

		QueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskflow",
				Subsystem: "queue",
				Name:      "depth",
				Help:      "Current number of buffered items",
			},
			[]string{"queue_name"},
		),

		QueueCapacity: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskflow",
				Subsystem: "queue",
				Name:      "capacity",
				Help:      "Configured queue capacity (0 for unbounded)",
			},
			[]string{"queue_name"},
		),

		// Worker Pool Metrics
		TasksSubmitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "pool",
				Name:      "tasks_submitted_total",
				Help:      "Total number of tasks submitted to the pool",
			},
			[]string{"pool_name"},
		),

		TasksExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "pool",
				Name:      "tasks_executed_total",
				Help:      "Total number of tasks executed",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "pool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed successfully",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "pool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that returned an error or panicked",
			},
			[]string{"pool_name"},
		),

		TasksAbandoned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "taskflow",
				Subsystem: "pool",
				Name:      "tasks_abandoned_total",
				Help:      "Total number of queued tasks abandoned at shutdown",
			},
			[]string{"pool_name"},
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "taskflow",
				Subsystem: "pool",
				Name:      "task_duration_seconds",
				Help:      "Task execution duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		WorkerPoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskflow",
				Subsystem: "pool",
				Name:      "workers",
				Help:      "Number of workers in the pool",
			},
			[]string{"pool_name"},
		),

		WorkerPoolActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskflow",
				Subsystem: "pool",
				Name:      "workers_active",
				Help:      "Number of workers currently executing tasks",
			},
			[]string{"pool_name"},
		),

		WorkerPoolQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "taskflow",
				Subsystem: "pool",
				Name:      "tasks_queued",
				Help:      "Number of tasks waiting for a worker",
			},
			[]string{"pool_name"},
		),
	}
}
