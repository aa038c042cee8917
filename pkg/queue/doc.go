/*
Package queue provides a blocking FIFO queue for producer/consumer hand-off.

The queue comes in two variants sharing one contract:

	q, _ := queue.New[int](64)     // bounded: Push blocks when full
	q := queue.NewUnbounded[int]() // unbounded: Push never blocks for room

Producers and consumers block on condition variables, never poll. Closing
the queue is a one-way transition: pending values remain poppable, new
pushes are rejected with errors.ErrClosed, and once the buffer is drained
Pop reports errors.ErrClosed as the end-of-stream signal.

	go func() {
		for i := 0; i < 10; i++ {
			q.Push(ctx, i)
		}
		q.Close()
	}()

	for {
		v, err := q.Pop(ctx)
		if err != nil {
			break // closed and drained
		}
		process(v)
	}

Ordering: values pushed by a single producer are popped in push order.
Across producers, only atomicity is guaranteed: every pushed value is
observed exactly once by some consumer.

All operations are safe for concurrent use.
*/
package queue
