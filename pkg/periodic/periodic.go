package periodic

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vnykmshr/taskflow/pkg/common/errors"
	"github.com/vnykmshr/taskflow/pkg/pool"
)

// Scheduler resubmits tasks to a worker pool on fixed intervals or cron
// schedules. It owns no workers of its own; every execution goes through
// the pool like any other submitted task.
type Scheduler struct {
	pool     *pool.Pool
	location *time.Location
	parser   cron.Parser

	mu      sync.Mutex
	entries map[string]*entry
	stopped bool

	done chan struct{}
	wg   sync.WaitGroup
}

type entry struct {
	id       string
	task     pool.Task
	schedule cron.Schedule
	stop     chan struct{}
}

// Config holds scheduler configuration.
type Config struct {
	// Pool receives the scheduled submissions. Required.
	Pool *pool.Pool

	// Location is the timezone for cron evaluation. Defaults to time.Local.
	Location *time.Location
}

// New creates a scheduler submitting into the given pool.
func New(p *pool.Pool) (*Scheduler, error) {
	return NewWithConfig(Config{Pool: p})
}

// NewWithConfig creates a scheduler with custom configuration.
func NewWithConfig(cfg Config) (*Scheduler, error) {
	if cfg.Pool == nil {
		return nil, &errors.ValidationError{
			Module: "periodic",
			Field:  "pool",
			Value:  nil,
			Reason: "cannot be nil",
		}
	}

	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	return &Scheduler{
		pool:     cfg.Pool,
		location: location,
		parser:   cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		entries:  make(map[string]*entry),
		done:     make(chan struct{}),
	}, nil
}

// ScheduleEvery submits the task to the pool every interval until canceled.
func (s *Scheduler) ScheduleEvery(id string, interval time.Duration, task pool.Task) error {
	if interval <= 0 {
		return &errors.ValidationError{
			Module: "periodic",
			Field:  "interval",
			Value:  interval,
			Reason: "must be positive",
		}
	}
	return s.add(id, cron.Every(interval), task)
}

// ScheduleCron submits the task to the pool per the cron expression.
// The expression uses six fields with a leading seconds field, e.g.
// "*/10 * * * * *" for every ten seconds.
func (s *Scheduler) ScheduleCron(id, expr string, task pool.Task) error {
	schedule, err := s.parser.Parse(expr)
	if err != nil {
		return &errors.ValidationError{
			Module: "periodic",
			Field:  "cron",
			Value:  expr,
			Reason: err.Error(),
		}
	}
	return s.add(id, schedule, task)
}

func (s *Scheduler) add(id string, schedule cron.Schedule, task pool.Task) error {
	if id == "" {
		return &errors.ValidationError{
			Module: "periodic",
			Field:  "id",
			Value:  id,
			Reason: "cannot be empty",
		}
	}
	if task == nil {
		return &errors.ValidationError{
			Module: "periodic",
			Field:  "task",
			Value:  nil,
			Reason: "cannot be nil",
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return errors.ErrShuttingDown
	}
	if _, exists := s.entries[id]; exists {
		return &errors.ValidationError{
			Module: "periodic",
			Field:  "id",
			Value:  id,
			Reason: "already scheduled",
		}
	}

	e := &entry{
		id:       id,
		task:     task,
		schedule: schedule,
		stop:     make(chan struct{}),
	}
	s.entries[id] = e

	s.wg.Add(1)
	go s.runEntry(e)
	return nil
}

// runEntry sleeps until each next scheduled time, then submits the task.
func (s *Scheduler) runEntry(e *entry) {
	defer s.wg.Done()

	for {
		next := e.schedule.Next(time.Now().In(s.location))
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			if _, err := s.pool.Submit(e.task); err != nil {
				// Pool is shutting down; no point rescheduling.
				s.remove(e.id)
				return
			}
		case <-e.stop:
			timer.Stop()
			return
		case <-s.done:
			timer.Stop()
			return
		}
	}
}

func (s *Scheduler) remove(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// Cancel stops a scheduled entry. Returns false if the id is unknown.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok {
		delete(s.entries, id)
	}
	s.mu.Unlock()

	if ok {
		close(e.stop)
	}
	return ok
}

// List returns the ids of currently scheduled entries, sorted.
func (s *Scheduler) List() []string {
	s.mu.Lock()
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	sort.Strings(ids)
	return ids
}

// Stop cancels all entries and waits for their goroutines to exit.
// Already-submitted tasks keep running in the pool. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		s.wg.Wait()
		return
	}
	s.stopped = true
	s.entries = make(map[string]*entry)
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
}

// BackoffTask wraps a task with exponential-backoff retries.
type BackoffTask struct {
	Task         pool.Task
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// Execute implements pool.Task, retrying the wrapped task with doubling
// delays until it succeeds, retries are exhausted, or ctx is canceled.
func (bt BackoffTask) Execute(ctx context.Context) error {
	var lastErr error
	delay := bt.InitialDelay

	for attempt := 0; attempt <= bt.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = bt.Task.Execute(ctx)
		if lastErr == nil {
			return nil
		}

		delay *= 2
		if bt.MaxDelay > 0 && delay > bt.MaxDelay {
			delay = bt.MaxDelay
		}
	}

	return lastErr
}
