/*
Package taskgraph layers simple dependency chaining over a worker pool.

A continuation submitted with Then blocks on the future of a prior task
before running its own body, which produces linear chains without the
pool knowing anything about dependencies:

	s := taskgraph.New(p)

	first, _ := taskgraph.SubmitResult(s, func(ctx context.Context) (int, error) {
		return 42, nil
	})

	doubled, _ := taskgraph.Then(s, first, func(ctx context.Context, v int) (int, error) {
		return v * 2, nil
	})

	s.WaitAll(ctx)
	v, _ := doubled.Get(ctx)

Correctness rests entirely on pool sizing: a continuation holds a worker
while it waits for its dependency, so a pool with fewer workers than the
chain is deep can starve itself into deadlock. Size the pool deeper than
the longest chain, or keep chains flat.
*/
package taskgraph
