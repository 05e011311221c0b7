package genid_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DangerosoDavo/genid"
)

func TestGenNextWraps(t *testing.T) {
	require.Equal(t, genid.Gen(2), genid.MinGen.Next())
	require.Equal(t, genid.MinGen, genid.MaxGen.Next())
	require.True(t, genid.NoGen.IsZero())
	require.False(t, genid.MinGen.IsZero())
}

func TestAllocGenIsOrderSensitive(t *testing.T) {
	a := genid.FromParts[unit](0, genid.MinGen)
	b := genid.FromParts[unit](1, genid.MinGen)
	var empty genid.AllocGen[unit]

	require.NotEqual(t, empty, empty.After(a))
	require.Equal(t, empty.After(a, b), empty.After(a).After(b))
	require.NotEqual(t, empty.After(a, b), empty.After(b, a))

	var g genid.AllocGen[unit]
	g.Advance(a)
	require.Equal(t, empty.After(a), g)
	require.Equal(t, g, genid.AllocGenFrom[unit](g.Value()))
	require.Equal(t, "AllocGen(00000000)", empty.String())
}

func TestAllocGenDistinguishesGenerations(t *testing.T) {
	var g genid.AllocGen[unit]
	first := g.After(genid.FromParts[unit](3, genid.MinGen))
	second := g.After(genid.FromParts[unit](3, genid.MinGen.Next()))
	require.NotEqual(t, first, second)
}

func TestIDCompareOrdersByIndexThenGen(t *testing.T) {
	ids := []genid.ID[unit]{
		genid.FromParts[unit](2, 1),
		genid.FromParts[unit](0, 5),
		genid.FromParts[unit](2, 0),
		genid.FromParts[unit](1, 9),
	}
	slices.SortFunc(ids, genid.ID[unit].Compare)
	require.Equal(t, []genid.ID[unit]{
		genid.FromParts[unit](0, 5),
		genid.FromParts[unit](1, 9),
		genid.FromParts[unit](2, 0),
		genid.FromParts[unit](2, 1),
	}, ids)
}

func TestStaticHandlesIgnoreGeneration(t *testing.T) {
	plain := genid.FromParts[tile](3, genid.NoGen)
	tagged := genid.FromParts[tile](3, 9)

	require.Equal(t, plain, tagged)
	require.Zero(t, plain.Compare(tagged))
	require.Equal(t, genid.NoGen, tagged.Gen())
	require.Equal(t, genid.Trust(plain), genid.Trust(tagged))

	require.NotEqual(t, genid.FromParts[unit](3, 1), genid.FromParts[unit](3, 2))
}

func TestIDNone(t *testing.T) {
	none := genid.None[unit]()
	require.True(t, none.IsNone())
	require.False(t, genid.FromParts[unit](0, genid.MinGen).IsNone())
	require.Equal(t, "ID(none)", none.String())
	require.Equal(t, "ID(4:2)", genid.FromParts[unit](4, 2).String())
	require.Equal(t, "ID(4)", genid.FromParts[tile](4, genid.NoGen).String())

	requirePanicsWith(t, genid.ErrInvalidHandle, func() {
		genid.FromParts[unit](none.Index(), genid.MinGen)
	})
}

func TestKindOf(t *testing.T) {
	require.Equal(t, genid.KindDynamic, genid.KindOf[unit]())
	require.Equal(t, genid.KindStatic, genid.KindOf[tile]())
	require.Equal(t, "static", genid.KindStatic.String())
	require.Equal(t, "genid_test.unit", genid.EntityName[unit]())
}

func TestIDRange(t *testing.T) {
	r := genid.RangeOf[tile](3, 6)
	require.Equal(t, 3, r.Len())
	require.True(t, r.Contains(genid.FromParts[tile](5, genid.NoGen)))
	require.False(t, r.Contains(genid.FromParts[tile](6, genid.NoGen)))

	pos, ok := r.Position(genid.FromParts[tile](4, genid.NoGen))
	require.True(t, ok)
	require.Equal(t, 1, pos)
	_, ok = r.Position(genid.FromParts[tile](2, genid.NoGen))
	require.False(t, ok)

	at, ok := r.At(2)
	require.True(t, ok)
	require.Equal(t, uint32(5), at.Index())
	_, ok = r.At(3)
	require.False(t, ok)

	requirePanicsWith(t, genid.ErrInvalidHandle, func() {
		genid.RangeOf[tile](5, 4)
	})
}

func TestIDRangeAppend(t *testing.T) {
	var r genid.IDRange[tile]
	require.True(t, r.IsEmpty())

	r.Append(genid.FromParts[tile](7, genid.NoGen))
	r.Append(genid.FromParts[tile](8, genid.NoGen))
	require.Equal(t, genid.RangeOf[tile](7, 9), r)

	requirePanicsWith(t, genid.ErrRangeAppend, func() {
		r.Append(genid.FromParts[tile](10, genid.NoGen))
	})
	require.Equal(t, 2, r.Len())
}

func TestIDRangeAppendNone(t *testing.T) {
	var r genid.IDRange[tile]
	requirePanicsWith(t, genid.ErrInvalidHandle, func() {
		r.Append(genid.None[tile]())
	})
	require.True(t, r.IsEmpty())
	require.Zero(t, r.Len())
}

func TestRangeAllocator(t *testing.T) {
	tiles := genid.NewRangeAllocator[tile]()
	first := tiles.Create()
	block := tiles.CreateRange(3)

	require.Equal(t, uint32(0), first.Index())
	require.Equal(t, genid.NoGen, first.Gen())
	require.Equal(t, genid.RangeOf[tile](1, 4), block)
	require.Equal(t, 4, tiles.Len())
	require.Equal(t, genid.RangeOf[tile](0, 4), tiles.IDs())
	require.Len(t, slices.Collect(tiles.All()), 4)

	v, ok := tiles.Validate(genid.FromParts[tile](3, genid.NoGen))
	require.True(t, ok)
	require.Equal(t, genid.Trust(genid.FromParts[tile](3, genid.NoGen)), v)
	_, ok = tiles.Validate(genid.FromParts[tile](4, genid.NoGen))
	require.False(t, ok)

	require.Equal(t, genid.AllocGen[tile]{}, tiles.Checksum())
	require.True(t, tiles.CreateRange(0).IsEmpty())
}
