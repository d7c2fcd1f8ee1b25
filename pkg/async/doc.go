// Package async provides generic helpers for running independent remote calls
// concurrently and joining on all of them.
//
// Async starts a function in its own goroutine and returns a *Future. Settle waits
// for a set of futures and reports every Outcome in input order; unlike a
// fail-fast wait it never stops early, so callers can aggregate partial success.
// ForEach combines both for the common fan-out case, and Tally counts the result.
//
// # Usage
//
//	outcomes := async.ForEach(ctx, contactIDs, func(ctx context.Context, id int64) (struct{}, error) {
//		return struct{}{}, dir.AttachContact(ctx, id, categoryID)
//	})
//	ok, failed := async.Tally(outcomes)
//
// If the context is already canceled when a future starts, the function is not
// called and the Future completes with the context error.
package async
