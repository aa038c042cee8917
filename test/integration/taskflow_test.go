// Package integration contains integration tests that verify cross-package functionality.
// These tests ensure that different components work together correctly in realistic scenarios.
package integration

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vnykmshr/taskflow/internal/testutil"
	"github.com/vnykmshr/taskflow/pkg/metrics"
	"github.com/vnykmshr/taskflow/pkg/periodic"
	"github.com/vnykmshr/taskflow/pkg/pool"
	"github.com/vnykmshr/taskflow/pkg/taskgraph"
)

// TestChainedStagesOnSharedPool verifies that a multi-stage dependency chain
// executes end to end on a shared worker pool.
func TestChainedStagesOnSharedPool(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	p, err := pool.New(4, 0)
	testutil.AssertNoError(t, err)
	defer p.Shutdown(context.Background())

	s := taskgraph.New(p)

	parsed, err := taskgraph.SubmitResult(s, func(ctx context.Context) (int, error) {
		return 7, nil
	})
	testutil.AssertNoError(t, err)

	squared, err := taskgraph.Then(s, parsed, func(ctx context.Context, v int) (int, error) {
		return v * v, nil
	})
	testutil.AssertNoError(t, err)

	formatted, err := taskgraph.Then(s, squared, func(ctx context.Context, v int) (string, error) {
		return fmt.Sprintf("result=%d", v), nil
	})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, s.WaitAll(ctx))

	got, err := formatted.Get(ctx)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, got, "result=49")
}

// TestPeriodicFeedsSharedPool verifies that a periodic scheduler and direct
// submissions can share one pool without interfering.
func TestPeriodicFeedsSharedPool(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	p, err := pool.New(2, 16)
	testutil.AssertNoError(t, err)
	defer p.Shutdown(context.Background())

	s, err := periodic.New(p)
	testutil.AssertNoError(t, err)
	defer s.Stop()

	var periodicRuns atomic.Int32
	err = s.ScheduleEvery("tick", 20*time.Millisecond, pool.TaskFunc(func(ctx context.Context) error {
		periodicRuns.Add(1)
		return nil
	}))
	testutil.AssertNoError(t, err)

	// Direct submissions race with the periodic entries for workers.
	for i := 0; i < 10; i++ {
		fut, err := p.Submit(pool.TaskFunc(func(ctx context.Context) error {
			time.Sleep(5 * time.Millisecond)
			return nil
		}))
		testutil.AssertNoError(t, err)

		_, err = fut.Get(ctx)
		testutil.AssertNoError(t, err)
	}

	testutil.Eventually(t, func() bool {
		return periodicRuns.Load() >= 3
	}, testutil.TestTimeout, 10*time.Millisecond)
}

// TestMetricsEndToEnd verifies that pool activity shows up on a caller-owned
// Prometheus registry.
func TestMetricsEndToEnd(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	registry := prometheus.NewRegistry()
	p, err := pool.NewWithConfigAndMetrics(pool.Config{
		Workers:       2,
		QueueCapacity: 8,
	}, "integration", metrics.Config{
		Enabled:  true,
		Registry: registry,
	})
	testutil.AssertNoError(t, err)

	const numTasks = 6
	for i := 0; i < numTasks; i++ {
		fut, err := p.Submit(pool.TaskFunc(func(ctx context.Context) error {
			return nil
		}))
		testutil.AssertNoError(t, err)

		_, err = fut.Get(ctx)
		testutil.AssertNoError(t, err)
	}

	testutil.AssertNoError(t, p.Shutdown(ctx))

	families, err := registry.Gather()
	testutil.AssertNoError(t, err)

	var completed float64
	found := false
	for _, mf := range families {
		if mf.GetName() != "taskflow_pool_tasks_completed_total" {
			continue
		}
		found = true
		for _, m := range mf.GetMetric() {
			completed += m.GetCounter().GetValue()
		}
	}
	if !found {
		t.Fatal("taskflow_pool_tasks_completed_total not found in registry")
	}
	testutil.AssertEqual(t, completed, float64(numTasks))
}

// TestGracefulShutdownDrainsBacklog verifies that Shutdown lets queued tasks
// finish before returning, even when the backlog exceeds worker count.
func TestGracefulShutdownDrainsBacklog(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	p, err := pool.New(2, 32)
	testutil.AssertNoError(t, err)

	var executed atomic.Int32
	const numTasks = 20
	for i := 0; i < numTasks; i++ {
		_, err := p.Submit(pool.TaskFunc(func(ctx context.Context) error {
			time.Sleep(2 * time.Millisecond)
			executed.Add(1)
			return nil
		}))
		testutil.AssertNoError(t, err)
	}

	testutil.AssertNoError(t, p.Shutdown(ctx))
	testutil.AssertEqual(t, executed.Load(), int32(numTasks))
	testutil.AssertEqual(t, p.TotalCompleted(), int64(numTasks))
}
