// Package links keeps parent/child relations between handles in step with the
// allocators that issued them. One relation core is configured by a Backend for the
// parent side and a cardinality chosen by the constructor.
package links

import (
	"fmt"

	"github.com/DangerosoDavo/genid"
	"github.com/DangerosoDavo/genid/storage"
)

// Backend selects how per-parent data is stored.
type Backend uint8

const (
	// Dense stores per-parent data in a slice indexed by parent slot.
	Dense Backend = iota
	// Sparse stores per-parent data in a map keyed by parent handle.
	Sparse
)

func (b Backend) String() string {
	if b == Sparse {
		return "sparse"
	}
	return "dense"
}

// index holds one value per parent.
type index[K genid.Entity, V any] interface {
	get(id genid.ID[K]) (V, bool)
	set(id genid.ID[K], v V)
	drop(id genid.ID[K])
}

func newIndex[K genid.Entity, V any](backend Backend, fill func() V) index[K, V] {
	if backend == Sparse {
		return &sparseIndex[K, V]{values: storage.NewRawIDMap[K, V]()}
	}
	return &denseIndex[K, V]{values: storage.NewRawComponent[K, V](0), fill: fill}
}

type denseIndex[K genid.Entity, V any] struct {
	values *storage.RawComponent[K, V]
	fill   func() V
}

func (d *denseIndex[K, V]) get(id genid.ID[K]) (V, bool) {
	return d.values.Get(id)
}

func (d *denseIndex[K, V]) set(id genid.ID[K], v V) {
	d.values.InsertWith(id, v, d.fill)
}

func (d *denseIndex[K, V]) drop(id genid.ID[K]) {
	if p := d.values.Ptr(id); p != nil {
		*p = d.fill()
	}
}

type sparseIndex[K genid.Entity, V any] struct {
	values *storage.RawIDMap[K, V]
}

func (s *sparseIndex[K, V]) get(id genid.ID[K]) (V, bool) {
	return s.values.Get(id)
}

func (s *sparseIndex[K, V]) set(id genid.ID[K], v V) {
	s.values.Insert(id, v)
}

func (s *sparseIndex[K, V]) drop(id genid.ID[K]) {
	s.values.Remove(id)
}

func mustBeDynamic[E genid.Entity](op string) {
	if genid.KindOf[E]() == genid.KindStatic {
		panic(fmt.Errorf("%w: %s on %s", genid.ErrStaticKill, op, genid.EntityName[E]()))
	}
}

func proofFor[E genid.Entity](sum genid.AllocGen[E], v genid.Validator[E], collection string) genid.Proof[E] {
	if v == nil {
		if genid.KindOf[E]() == genid.KindStatic {
			return genid.Proof[E]{}
		}
		panic(fmt.Errorf("%w: %s needs a validator for %s", genid.ErrOutOfSync, collection, genid.EntityName[E]()))
	}
	return genid.Check(sum, v, collection)
}
