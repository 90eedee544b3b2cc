// Package gather runs independent per-key tasks concurrently with a bounded
// worker pool, collecting a result or an error for every key. One key's
// failure never aborts the batch; the caller decides the inclusion policy.
package gather

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result holds the outcome of a single task.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the task completed without error.
func (r Result[T]) Ok() bool {
	return r.Err == nil
}

// Map runs fn once per key, at most limit tasks at a time, and returns a
// result keyed by input key. Results are matched by key, not by completion
// order. A limit <= 0 means unbounded.
func Map[K comparable, T any](ctx context.Context, keys []K, limit int, fn func(ctx context.Context, key K) (T, error)) map[K]Result[T] {
	results := make([]Result[T], len(keys))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			value, err := fn(ctx, key)
			results[i] = Result[T]{Value: value, Err: err}
			// Errors are captured per key, never propagated to the group,
			// so a single failure cannot cancel sibling tasks.
			return nil
		})
	}

	// Wait never returns an error here; tasks swallow their own.
	_ = g.Wait()

	out := make(map[K]Result[T], len(keys))
	for i, key := range keys {
		out[key] = results[i]
	}
	return out
}
