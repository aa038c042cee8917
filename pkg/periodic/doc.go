/*
Package periodic resubmits tasks to a worker pool on a schedule.

Schedules are either fixed intervals or cron expressions (six fields, with
a leading seconds field):

	s, _ := periodic.New(p)
	defer s.Stop()

	s.ScheduleEvery("heartbeat", 30*time.Second, heartbeatTask)
	s.ScheduleCron("nightly", "0 0 2 * * *", cleanupTask)

The scheduler only decides when to submit; execution, backpressure, and
failure delivery stay with the pool. If the pool rejects a submission
because it is shutting down, the entry cancels itself.

BackoffTask decorates any task with exponential-backoff retries, useful
for periodic work against flaky dependencies.
*/
package periodic
