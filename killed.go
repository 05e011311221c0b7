package genid

import (
	"iter"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
)

// Killed is one committed batch of kills together with the allocator checksum just
// before and just after the batch. A batch never holds two handles for one slot.
type Killed[E Entity] struct {
	ids []ID[E]
	// indices holds the killed slots; gens[indices.Rank(i)-1] is the generation
	// killed at slot i.
	indices *roaring.Bitmap
	gens    []Gen
	before  AllocGen[E]
	after   AllocGen[E]
}

func newKilled[E Entity](ids []ID[E], before, after AllocGen[E]) *Killed[E] {
	indices := roaring.New()
	for _, id := range ids {
		indices.Add(id.index)
	}
	gens := make([]Gen, len(ids))
	for _, id := range ids {
		gens[indices.Rank(id.index)-1] = id.gen
	}
	return &Killed[E]{ids: ids, indices: indices, gens: gens, before: before, after: after}
}

// IDs returns the killed handles in kill order. The slice must not be modified.
func (k *Killed[E]) IDs() []ID[E] {
	if k == nil {
		return nil
	}
	return k.ids
}

// All yields the killed handles in kill order.
func (k *Killed[E]) All() iter.Seq[ID[E]] {
	return slices.Values(k.IDs())
}

// Len returns the number of handles killed.
func (k *Killed[E]) Len() int {
	if k == nil {
		return 0
	}
	return len(k.ids)
}

// Before returns the allocator checksum prior to the batch.
func (k *Killed[E]) Before() AllocGen[E] { return k.before }

// After returns the allocator checksum once the batch was applied.
func (k *Killed[E]) After() AllocGen[E] { return k.after }

// Contains reports whether the batch killed exactly id.
func (k *Killed[E]) Contains(id ID[E]) bool {
	if !k.ContainsIndex(id.index) {
		return false
	}
	return k.gens[k.indices.Rank(id.index)-1] == id.gen
}

// ContainsIndex reports whether any handle in the batch occupied index.
func (k *Killed[E]) ContainsIndex(index uint32) bool {
	return k != nil && k.indices.Contains(index)
}

// Replay applies the batch to a dependent collection. It asserts that the collection
// was caught up before the batch and that it reaches the allocator's checksum after.
func (k *Killed[E]) Replay(collection string, checksum func() AllocGen[E], kill func(ID[E])) {
	AssertSynced(checksum(), k.before, collection)
	for _, id := range k.ids {
		kill(id)
	}
	AssertSynced(checksum(), k.after, collection)
}

// Dependent is a collection that follows the kills of an allocator.
type Dependent[E Entity] interface {
	KillMany(killed *Killed[E])
}

// DependentFunc adapts a function to Dependent.
type DependentFunc[E Entity] func(killed *Killed[E])

func (f DependentFunc[E]) KillMany(killed *Killed[E]) {
	f(killed)
}
