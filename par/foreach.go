package par

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultChunk is the number of elements handed to one job when the caller passes a
// non-positive chunk size.
const DefaultChunk = 1024

// ForEach calls fn for every element of items, split into chunks that run
// concurrently. With a nil pool the chunks run on an errgroup limited to GOMAXPROCS.
// The first error cancels the context handed to remaining chunks and is returned.
func ForEach[T any](ctx context.Context, pool *Pool, items []T, chunk int, fn func(i int, v T) error) error {
	if len(items) == 0 {
		return nil
	}
	if chunk <= 0 {
		chunk = DefaultChunk
	}

	g, gctx := errgroup.WithContext(ctx)
	if pool == nil {
		g.SetLimit(runtime.GOMAXPROCS(0))
	}
	for lo := 0; lo < len(items); lo += chunk {
		hi := min(lo+chunk, len(items))
		run := func(ctx context.Context) error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(i, items[i]); err != nil {
					return err
				}
			}
			return nil
		}
		if pool == nil {
			g.Go(func() error { return run(gctx) })
			continue
		}
		h := pool.Submit(gctx, run)
		g.Go(h.Wait)
	}
	return g.Wait()
}
