package async

import (
	"context"
	"sync"
)

// Future represents the result of an asynchronous computation.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

// Await waits for the asynchronous function to complete and returns its result and error.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// IsComplete reports whether the computation has finished without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Async executes fn in its own goroutine and returns a Future for its result.
func Async[T any, U any](ctx context.Context, param T, fn func(context.Context, T) (U, error)) *Future[U] {
	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)

		// Pre-canceled context: never start the call
		select {
		case <-ctx.Done():
			f.err = ctx.Err()
			return
		default:
		}

		res, err := fn(ctx, param)

		f.once.Do(func() {
			f.result = res
			f.err = err
		})
	}()

	return f
}

// Outcome is the settled state of one future: its position in the input,
// the value it produced and the error it failed with (if any).
type Outcome[U any] struct {
	Index int
	Value U
	Err   error
}

// OK reports whether the future completed without error.
func (o Outcome[U]) OK() bool {
	return o.Err == nil
}

// Settle waits for every future to complete and returns their outcomes in input order.
// A failed future never stops the wait for the others.
func Settle[U any](futures ...*Future[U]) []Outcome[U] {
	outcomes := make([]Outcome[U], len(futures))
	for i, f := range futures {
		v, err := f.Await()
		outcomes[i] = Outcome[U]{Index: i, Value: v, Err: err}
	}
	return outcomes
}

// ForEach starts fn for every item concurrently and settles all of them.
// Outcomes are returned in the order of items.
func ForEach[T any, U any](ctx context.Context, items []T, fn func(context.Context, T) (U, error)) []Outcome[U] {
	futures := make([]*Future[U], len(items))
	for i, item := range items {
		futures[i] = Async(ctx, item, fn)
	}
	return Settle(futures...)
}

// Tally counts successful and failed outcomes.
func Tally[U any](outcomes []Outcome[U]) (succeeded, failed int) {
	for _, o := range outcomes {
		if o.OK() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
