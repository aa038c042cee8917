/*
Package future provides a one-shot promise/future pair for delivering a
single result across goroutines.

The producing and consuming ends are distinct types, so misuse shows up at
compile time rather than runtime:

	promise, fut := future.New[int]()

	go func() {
		promise.Complete(42) // or promise.Fail(err)
	}()

	v, err := fut.Get(ctx) // blocks until resolved

The slot is write-once and read-once. A second Complete or Fail returns
errors.ErrAlreadySet; a second Get after a successful retrieval returns
errors.ErrAlreadyConsumed. Both signal contract violations that would
otherwise hide double-completion or double-read bugs.

Poll reports the current status without blocking, Wait blocks with a
deadline, and Done exposes a channel for select loops. None of the three
consume the result.
*/
package future
