package storage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DangerosoDavo/genid"
)

type unit struct{ genid.Dynamic }

type tile struct{ genid.Static }

func requirePanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()
	if errors.Is(target, genid.ErrOutOfSync) && !genid.InvariantsEnabled {
		t.Skip("invariants compiled out")
	}
	defer func() {
		t.Helper()
		r := recover()
		require.NotNil(t, r, "expected panic wrapping %v", target)
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		require.True(t, errors.Is(err, target), "panic %v does not wrap %v", err, target)
	}()
	fn()
}
