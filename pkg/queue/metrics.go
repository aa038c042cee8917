package queue

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vnykmshr/taskflow/pkg/metrics"
)

// MetricsQueue wraps a Queue with Prometheus metrics collection.
type MetricsQueue[T any] struct {
	queue    Queue[T]
	name     string
	registry *metrics.Registry
	enabled  bool
}

// NewWithMetrics creates a bounded queue with metrics enabled on a
// dedicated registry.
func NewWithMetrics[T any](capacity int, name string) (Queue[T], error) {
	q, err := New[T](capacity)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	return WrapWithMetrics(q, name, metrics.Config{
		Enabled:  true,
		Registry: registry,
	}), nil
}

// WrapWithMetrics instruments an existing queue.
func WrapWithMetrics[T any](q Queue[T], name string, cfg metrics.Config) Queue[T] {
	if !cfg.Enabled {
		return q
	}

	registry := metrics.DefaultRegistry
	if cfg.Registry != nil {
		registry = metrics.NewRegistry(cfg.Registry)
	}

	mq := &MetricsQueue[T]{
		queue:    q,
		name:     name,
		registry: registry,
		enabled:  true,
	}

	mq.registry.QueueCapacity.WithLabelValues(name).Set(float64(q.Cap()))
	mq.updateDepth()
	return mq
}

func (mq *MetricsQueue[T]) updateDepth() {
	mq.registry.QueueDepth.WithLabelValues(mq.name).Set(float64(mq.queue.Len()))
}

// Push implements Queue.Push.
func (mq *MetricsQueue[T]) Push(ctx context.Context, value T) error {
	if mq.queue.Cap() > 0 && mq.queue.Len() >= mq.queue.Cap() {
		mq.registry.QueueBlockedPushes.WithLabelValues(mq.name).Inc()
	}

	err := mq.queue.Push(ctx, value)
	if err != nil {
		mq.registry.QueueRejected.WithLabelValues(mq.name).Inc()
		return err
	}

	mq.registry.QueuePushes.WithLabelValues(mq.name).Inc()
	mq.updateDepth()
	return nil
}

// TryPush implements Queue.TryPush.
func (mq *MetricsQueue[T]) TryPush(value T) error {
	err := mq.queue.TryPush(value)
	if err != nil {
		mq.registry.QueueRejected.WithLabelValues(mq.name).Inc()
		return err
	}

	mq.registry.QueuePushes.WithLabelValues(mq.name).Inc()
	mq.updateDepth()
	return nil
}

// Pop implements Queue.Pop.
func (mq *MetricsQueue[T]) Pop(ctx context.Context) (T, error) {
	value, err := mq.queue.Pop(ctx)
	if err != nil {
		return value, err
	}

	mq.registry.QueuePops.WithLabelValues(mq.name).Inc()
	mq.updateDepth()
	return value, nil
}

// TryPop implements Queue.TryPop.
func (mq *MetricsQueue[T]) TryPop() (T, bool, error) {
	value, ok, err := mq.queue.TryPop()
	if ok {
		mq.registry.QueuePops.WithLabelValues(mq.name).Inc()
		mq.updateDepth()
	}
	return value, ok, err
}

// Close implements Queue.Close.
func (mq *MetricsQueue[T]) Close() error {
	return mq.queue.Close()
}

// IsClosed implements Queue.IsClosed.
func (mq *MetricsQueue[T]) IsClosed() bool {
	return mq.queue.IsClosed()
}

// Len implements Queue.Len.
func (mq *MetricsQueue[T]) Len() int {
	return mq.queue.Len()
}

// Cap implements Queue.Cap.
func (mq *MetricsQueue[T]) Cap() int {
	return mq.queue.Cap()
}
