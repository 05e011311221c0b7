package par_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DangerosoDavo/genid/par"
)

func TestForEachVisitsEveryElement(t *testing.T) {
	items := make([]int, 5000)
	for i := range items {
		items[i] = i
	}

	for _, tc := range []struct {
		name string
		pool *par.Pool
	}{
		{name: "errgroup", pool: nil},
		{name: "pool", pool: par.NewPool(4)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			defer tc.pool.Close()

			var sum atomic.Int64
			var seen atomic.Int64
			err := par.ForEach(context.Background(), tc.pool, items, 100, func(i, v int) error {
				assert.Equal(t, i, v)
				sum.Add(int64(v))
				seen.Add(1)
				return nil
			})
			require.NoError(t, err)
			require.Equal(t, int64(len(items)), seen.Load())
			require.Equal(t, int64(len(items)*(len(items)-1)/2), sum.Load())
		})
	}
}

func TestForEachReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	items := make([]int, 64)
	err := par.ForEach(context.Background(), nil, items, 8, func(i, _ int) error {
		if i == 17 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
}

func TestForEachEmpty(t *testing.T) {
	called := false
	err := par.ForEach(context.Background(), nil, []string(nil), 0, func(int, string) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.False(t, called)
}
