package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DangerosoDavo/genid"
	"github.com/DangerosoDavo/genid/storage"
)

func TestIDMapInsertGetRemove(t *testing.T) {
	alloc := genid.NewAllocator[unit]()
	names := storage.NewIDMap[unit, string]()
	a := alloc.Create()
	b := alloc.Create()

	_, replaced := names.Insert(a, "alpha")
	require.False(t, replaced)
	old, replaced := names.Insert(a, "alef")
	require.True(t, replaced)
	require.Equal(t, "alpha", old)

	_, ok := names.Get(b)
	require.False(t, ok)

	removed, ok := names.Remove(a)
	require.True(t, ok)
	require.Equal(t, "alef", removed)
	require.True(t, names.IsEmpty())
}

func TestIDMapKillKeepsSync(t *testing.T) {
	alloc := genid.NewAllocator[unit]()
	names := storage.NewIDMap[unit, string]()
	a := alloc.Create()
	b := alloc.Create()
	names.Insert(a, "a")
	names.Insert(b, "b")

	require.True(t, alloc.Kill(a.ID()))
	v, ok := names.Kill(a.ID())
	require.True(t, ok)
	require.Equal(t, "a", v)

	require.Equal(t, alloc.Checksum(), names.Checksum())
	view := names.Validate(alloc)
	_, ok = view.Get(a.ID())
	require.False(t, ok)
	got, ok := view.Get(b.ID())
	require.True(t, ok)
	require.Equal(t, "b", got)
	view.Release()
}

func TestIDMapKillWithoutValueStillRecords(t *testing.T) {
	alloc := genid.NewAllocator[unit]()
	names := storage.NewIDMap[unit, string]()
	a := alloc.Create()

	alloc.Kill(a.ID())
	_, ok := names.Kill(a.ID())
	require.False(t, ok)
	require.Equal(t, alloc.Checksum(), names.Checksum())
}

func TestIDMapKillMany(t *testing.T) {
	alloc := genid.NewAllocator[unit]()
	names := storage.NewIDMap[unit, int]()
	ids := make([]genid.ID[unit], 0, 5)
	for i := 0; i < 5; i++ {
		v := alloc.Create()
		names.Insert(v, i)
		ids = append(ids, v.ID())
	}

	killed := alloc.KillMany([]genid.ID[unit]{ids[3], ids[1], ids[3]})
	require.Equal(t, []genid.ID[unit]{ids[3], ids[1]}, killed.IDs())

	names.KillMany(killed)
	require.Equal(t, 3, names.Len())
	require.Equal(t, killed.After(), names.Checksum())
}

func TestIDMapKillManyRejectsGap(t *testing.T) {
	alloc := genid.NewAllocator[unit]()
	names := storage.NewIDMap[unit, int]()
	a := alloc.Create()
	b := alloc.Create()

	alloc.Kill(a.ID())
	killed := alloc.KillMany([]genid.ID[unit]{b.ID()})

	requirePanicsWith(t, genid.ErrOutOfSync, func() {
		names.KillMany(killed)
	})
}

func TestIDMapValidateDetectsMissedKill(t *testing.T) {
	alloc := genid.NewAllocator[unit]()
	names := storage.NewIDMap[unit, int]()
	a := alloc.Create()
	names.Insert(a, 1)
	alloc.Kill(a.ID())

	requirePanicsWith(t, genid.ErrOutOfSync, func() {
		names.Validate(alloc)
	})
}

func TestMapViewAccessAfterKillPanics(t *testing.T) {
	alloc := genid.NewAllocator[unit]()
	names := storage.NewIDMap[unit, int]()
	a := alloc.Create()
	names.Insert(a, 1)

	view := names.ValidateMut(alloc)
	require.True(t, view.Update(a.ID(), func(v *int) { *v += 41 }))
	got, _ := view.Get(a.ID())
	require.Equal(t, 42, got)

	alloc.Kill(a.ID())
	requirePanicsWith(t, genid.ErrOutOfSync, func() {
		view.Get(a.ID())
	})
}

func TestMapViewAllVouches(t *testing.T) {
	alloc := genid.NewAllocator[unit]()
	names := storage.NewIDMap[unit, int]()
	for i := 0; i < 4; i++ {
		names.Insert(alloc.Create(), i)
	}

	view := names.Validate(alloc)
	seen := 0
	for id, v := range view.All() {
		assert.True(t, alloc.IsAlive(id.ID()))
		assert.Equal(t, int(id.Index()), v)
		seen++
	}
	require.Equal(t, 4, seen)

	keys := 0
	for range view.Keys() {
		keys++
	}
	require.Equal(t, 4, keys)
}

func TestIDMapSync(t *testing.T) {
	t.Run("one behind", func(t *testing.T) {
		alloc := genid.NewAllocator[unit]()
		names := storage.NewIDMap[unit, int]()
		a := alloc.Create()
		b := alloc.Create()
		names.Insert(a, 1)
		names.Insert(b, 2)

		alloc.Kill(a.ID())
		require.Equal(t, 1, names.Sync(alloc))
		require.Equal(t, alloc.Checksum(), names.Checksum())
		require.Equal(t, 1, names.Len())
	})

	t.Run("outdated", func(t *testing.T) {
		alloc := genid.NewAllocator[unit]()
		names := storage.NewIDMap[unit, int]()
		var ids []genid.Valid[unit]
		for i := 0; i < 6; i++ {
			v := alloc.Create()
			ids = append(ids, v)
			names.Insert(v, i)
		}

		alloc.KillMany([]genid.ID[unit]{ids[0].ID(), ids[2].ID(), ids[5].ID()})
		state, _ := alloc.Compare(names.Checksum())
		require.Equal(t, genid.Outdated, state)

		require.Equal(t, 3, names.Sync(alloc))
		require.Equal(t, 3, names.Len())
		require.NotPanics(t, func() { names.Validate(alloc) })
	})

	t.Run("in sync", func(t *testing.T) {
		alloc := genid.NewAllocator[unit]()
		names := storage.NewIDMap[unit, int]()
		names.Insert(alloc.Create(), 1)
		require.Zero(t, names.Sync(alloc))
		require.Equal(t, 1, names.Len())
	})
}

func TestIDMapStaticKillPanics(t *testing.T) {
	m := storage.NewRawIDMap[tile, int]()
	requirePanicsWith(t, genid.ErrStaticKill, func() {
		m.Kill(genid.FromParts[tile](0, genid.NoGen))
	})
}

func TestIDMapZeroValueUsable(t *testing.T) {
	alloc := genid.NewAllocator[unit]()
	var names storage.IDMap[unit, string]
	a := alloc.Create()
	names.Insert(a, "zero")

	got, ok := names.Get(a)
	require.True(t, ok)
	require.Equal(t, "zero", got)
}
