package taskgraph_test

import (
	"context"
	"fmt"

	"github.com/vnykmshr/taskflow/pkg/pool"
	"github.com/vnykmshr/taskflow/pkg/taskgraph"
)

func ExampleThen() {
	ctx := context.Background()

	p, _ := pool.New(4, 0)
	defer p.Shutdown(ctx)

	s := taskgraph.New(p)

	initial, _ := taskgraph.SubmitResult(s, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	processed, _ := taskgraph.Then(s, initial, func(ctx context.Context, v int) (int, error) {
		return v * 2, nil
	})

	s.WaitAll(ctx)

	v, _ := processed.Get(ctx)
	fmt.Println(v)

	// Output:
	// 84
}
