// Package parallel provides a small bounded fan-out helper used to run a
// many-to-one match concurrently across a batch of subjects.
package parallel

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// MapBounded runs fn over every item in items, running at most limit calls
// concurrently (limit <= 0 means unbounded), and returns the results in the
// same order as items. It stops launching new work and returns the first
// error once any call fails.
func MapBounded[T, R any](ctx context.Context, limit int, items []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(items))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := fn(ctx, item)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
