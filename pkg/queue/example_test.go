package queue_test

import (
	"context"
	"fmt"

	"github.com/vnykmshr/taskflow/pkg/queue"
)

func ExampleNew() {
	ctx := context.Background()

	q, _ := queue.New[string](4)
	q.Push(ctx, "first")
	q.Push(ctx, "second")
	q.Close()

	for {
		v, err := q.Pop(ctx)
		if err != nil {
			break // closed and drained
		}
		fmt.Println(v)
	}

	// Output:
	// first
	// second
}

func ExampleNewUnbounded() {
	ctx := context.Background()

	q := queue.NewUnbounded[int]()
	for i := 1; i <= 3; i++ {
		q.Push(ctx, i*10)
	}

	fmt.Println("buffered:", q.Len())

	v, _ := q.Pop(ctx)
	fmt.Println("popped:", v)

	// Output:
	// buffered: 3
	// popped: 10
}
