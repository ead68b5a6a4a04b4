// Package asyncx provides the fan-out/join primitives used to run
// several independent operations concurrently and inspect each outcome
// individually.
//
// [AllSettled] launches every function in its own goroutine and waits
// for all of them, returning one [Result] per function in input order.
// It never short-circuits: a failing function cannot cancel or corrupt
// its siblings, which makes it the right join for combining competing
// implementations of the same operation.
//
// [WithTimeout] bounds a single operation with a hard deadline,
// returning context.DeadlineExceeded when the work does not finish in
// time. Goroutines are never abandoned mid-join; every helper waits for
// the work it launched.
package asyncx

import (
	"context"
	"sync"
	"time"
)

// Result holds the outcome of a single settled async operation.
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the result carries no error.
func (r Result[T]) OK() bool { return r.Err == nil }

// AllSettled runs all fns concurrently and waits for every one to
// finish. It always returns one Result per fn, in the order the fns were
// given, regardless of how many of them fail.
func AllSettled[T any](ctx context.Context, fns ...func(context.Context) (T, error)) []Result[T] {
	results := make([]Result[T], len(fns))

	var wg sync.WaitGroup
	wg.Add(len(fns))

	for i, fn := range fns {
		go func() {
			defer wg.Done()
			v, err := fn(ctx)
			results[i] = Result[T]{Value: v, Err: err}
		}()
	}
	wg.Wait()
	return results
}

// WithTimeout runs fn with a deadline of d. Returns
// context.DeadlineExceeded if fn does not finish in time; the goroutine
// running fn keeps the cancelled context and is expected to unwind on
// its own.
func WithTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	type res struct {
		v   T
		err error
	}

	ch := make(chan res, 1)
	go func() {
		v, err := fn(ctx)
		ch <- res{v, err}
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
