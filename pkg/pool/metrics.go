package pool

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/taskflow/pkg/metrics"
)

// poolMetrics publishes pool activity to a Prometheus registry.
type poolMetrics struct {
	name     string
	registry *metrics.Registry
}

// NewWithMetrics creates a worker pool with metrics enabled on a dedicated
// registry, avoiding collisions when multiple pools share a process.
func NewWithMetrics(workers, queueCapacity int, name string) (*Pool, error) {
	registry := prometheus.NewRegistry()
	return NewWithConfigAndMetrics(Config{
		Workers:       workers,
		QueueCapacity: queueCapacity,
	}, name, metrics.Config{
		Enabled:  true,
		Registry: registry,
	})
}

// NewWithConfigAndMetrics creates a worker pool with custom config and metrics.
func NewWithConfigAndMetrics(config Config, name string, metricsConfig metrics.Config) (*Pool, error) {
	p, err := NewWithConfig(config)
	if err != nil {
		return nil, err
	}

	if !metricsConfig.Enabled {
		return p, nil
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}

	p.metrics = &poolMetrics{
		name:     name,
		registry: registry,
	}
	p.metrics.registry.WorkerPoolSize.WithLabelValues(name).Set(float64(config.Workers))
	p.metrics.updateGauges(p)

	return p, nil
}

func (m *poolMetrics) updateGauges(p *Pool) {
	m.registry.WorkerPoolActive.WithLabelValues(m.name).Set(float64(p.ActiveWorkers()))
	m.registry.WorkerPoolQueued.WithLabelValues(m.name).Set(float64(p.QueueLen()))
}

func (m *poolMetrics) taskSubmitted(p *Pool) {
	m.registry.TasksSubmitted.WithLabelValues(m.name).Inc()
	m.updateGauges(p)
}

func (m *poolMetrics) taskExecuted(p *Pool, err error, duration time.Duration) {
	m.registry.TasksExecuted.WithLabelValues(m.name).Inc()
	m.registry.TaskExecutionDuration.WithLabelValues(m.name).Observe(duration.Seconds())

	if err != nil {
		m.registry.TasksFailed.WithLabelValues(m.name).Inc()
	} else {
		m.registry.TasksCompleted.WithLabelValues(m.name).Inc()
	}
	m.updateGauges(p)
}

func (m *poolMetrics) taskAbandoned(p *Pool) {
	m.registry.TasksAbandoned.WithLabelValues(m.name).Inc()
	m.updateGauges(p)
}
