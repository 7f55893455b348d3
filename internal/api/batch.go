package api

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// MaxRecommendedParallel is the recommended upper limit for concurrent
// requests issued by GetAll.
const MaxRecommendedParallel = 10

// GetAll fetches several resources concurrently and decodes each into a T.
// Results are returned in the same order as paths. If any request fails,
// the remaining ones are canceled and the first error is returned.
// maxParallel limits concurrent requests (values below 1 mean 1).
func GetAll[T any](ctx context.Context, c *Client, paths []string, maxParallel int) ([]T, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	if maxParallel < 1 {
		maxParallel = 1
	}

	results := make([]T, len(paths))
	sem := make(chan struct{}, maxParallel)

	g, ctx := errgroup.WithContext(ctx)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()

			if err := c.Get(ctx, path, nil, &results[i]); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
