package pool

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/taskflow/internal/testutil"
	"github.com/vnykmshr/taskflow/pkg/metrics"
)

func TestPoolMetricsCounts(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	reg := prometheus.NewRegistry()
	p, err := NewWithConfigAndMetrics(Config{Workers: 2}, "test", metrics.Config{
		Enabled:  true,
		Registry: reg,
	})
	testutil.AssertNoError(t, err)

	okFut, err := p.Submit(TaskFunc(func(ctx context.Context) error { return nil }))
	testutil.AssertNoError(t, err)
	failFut, err := p.Submit(TaskFunc(func(ctx context.Context) error { return stderrors.New("boom") }))
	testutil.AssertNoError(t, err)

	_, err = okFut.Get(ctx)
	testutil.AssertNoError(t, err)
	_, err = failFut.Get(ctx)
	testutil.AssertError(t, err)

	m := p.metrics
	testutil.Eventually(t, func() bool {
		return promtestutil.ToFloat64(m.registry.TasksExecuted.WithLabelValues("test")) == 2
	}, time.Second, time.Millisecond)

	if got := promtestutil.ToFloat64(m.registry.TasksSubmitted.WithLabelValues("test")); got != 2 {
		t.Errorf("submitted = %v, want 2", got)
	}
	if got := promtestutil.ToFloat64(m.registry.TasksCompleted.WithLabelValues("test")); got != 1 {
		t.Errorf("completed = %v, want 1", got)
	}
	if got := promtestutil.ToFloat64(m.registry.TasksFailed.WithLabelValues("test")); got != 1 {
		t.Errorf("failed = %v, want 1", got)
	}
	if got := promtestutil.ToFloat64(m.registry.WorkerPoolSize.WithLabelValues("test")); got != 2 {
		t.Errorf("pool size = %v, want 2", got)
	}

	testutil.AssertNoError(t, p.Shutdown(context.Background()))
}

func TestPoolMetricsAbandoned(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewWithConfigAndMetrics(Config{Workers: 1}, "test", metrics.Config{
		Enabled:  true,
		Registry: reg,
	})
	testutil.AssertNoError(t, err)

	blocker := make(chan struct{})
	defer close(blocker)
	_, err = p.Submit(TaskFunc(func(ctx context.Context) error {
		<-blocker
		return nil
	}))
	testutil.AssertNoError(t, err)
	testutil.Eventually(t, func() bool { return p.ActiveWorkers() == 1 }, time.Second, time.Millisecond)

	_, err = p.Submit(TaskFunc(func(ctx context.Context) error { return nil }))
	testutil.AssertNoError(t, err)

	err = p.ShutdownWithTimeout(20 * time.Millisecond)
	testutil.AssertError(t, err)

	if got := promtestutil.ToFloat64(p.metrics.registry.TasksAbandoned.WithLabelValues("test")); got != 1 {
		t.Errorf("abandoned = %v, want 1", got)
	}
}

func TestNewWithMetricsDisabled(t *testing.T) {
	p, err := NewWithConfigAndMetrics(Config{Workers: 1}, "test", metrics.Config{Enabled: false})
	testutil.AssertNoError(t, err)
	if p.metrics != nil {
		t.Error("metrics should be nil when disabled")
	}
	testutil.AssertNoError(t, p.Shutdown(context.Background()))
}

func TestNewWithMetrics(t *testing.T) {
	p, err := NewWithMetrics(2, 8, "jobs")
	testutil.AssertNoError(t, err)
	if p.metrics == nil {
		t.Fatal("metrics should be enabled")
	}
	testutil.AssertNoError(t, p.Shutdown(context.Background()))
}
