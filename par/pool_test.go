package par

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPoolExecuteJobs(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	var count atomic.Int32
	job := func(ctx context.Context) error {
		select {
		case <-time.After(5 * time.Millisecond):
			count.Add(1)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	handles := []*Handle{
		pool.Submit(context.Background(), job),
		pool.Submit(context.Background(), job),
		pool.Submit(context.Background(), job),
	}
	for i, h := range handles {
		require.NoError(t, h.Wait(), "job %d", i)
	}
	require.Equal(t, int32(3), count.Load())
}

func TestPoolClosedRejectsJobs(t *testing.T) {
	pool := NewPool(1)
	pool.Close()

	h := pool.Submit(context.Background(), func(context.Context) error { return nil })
	require.ErrorIs(t, h.Wait(), ErrPoolClosed)
}

func TestNilPoolExecutesInline(t *testing.T) {
	var ran atomic.Bool
	var pool *Pool
	h := pool.Submit(context.Background(), func(context.Context) error {
		ran.Store(true)
		return nil
	})
	require.NoError(t, h.Wait())
	require.True(t, ran.Load())
	require.Zero(t, pool.Size())
}

func TestPoolCancelledContext(t *testing.T) {
	pool := NewPool(1)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := pool.Submit(ctx, func(context.Context) error { return nil })
	require.ErrorIs(t, h.Wait(), context.Canceled)
}
