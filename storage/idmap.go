package storage

import (
	"iter"

	"github.com/DangerosoDavo/genid"
)

const idMapName = "storage.IDMap"

// IDMap is a sparse store whose writes take Valid handles. Reads of the whole map go
// through Validate, which proves the map has seen every kill of its allocator.
type IDMap[E genid.Entity, T any] struct {
	raw RawIDMap[E, T]
}

// NewIDMap constructs an empty sparse store.
func NewIDMap[E genid.Entity, T any]() *IDMap[E, T] {
	return &IDMap[E, T]{raw: *NewRawIDMap[E, T]()}
}

// Raw exposes the handle-keyed layer underneath.
func (m *IDMap[E, T]) Raw() *RawIDMap[E, T] {
	return &m.raw
}

func (m *IDMap[E, T]) Insert(id genid.Valid[E], value T) (T, bool) {
	return m.raw.Insert(id.ID(), value)
}

func (m *IDMap[E, T]) Remove(id genid.Valid[E]) (T, bool) {
	return m.raw.Remove(id.ID())
}

func (m *IDMap[E, T]) Get(id genid.Valid[E]) (T, bool) {
	return m.raw.Get(id.ID())
}

func (m *IDMap[E, T]) Update(id genid.Valid[E], fn func(*T)) bool {
	return m.raw.Update(id.ID(), fn)
}

func (m *IDMap[E, T]) Len() int {
	return m.raw.Len()
}

func (m *IDMap[E, T]) IsEmpty() bool {
	return m.raw.IsEmpty()
}

// Kill removes id and records the kill. Killed handles are no longer Valid, so this
// takes a bare handle.
func (m *IDMap[E, T]) Kill(id genid.ID[E]) (T, bool) {
	return m.raw.Kill(id)
}

func (m *IDMap[E, T]) KillMany(killed *genid.Killed[E]) {
	m.raw.KillMany(killed)
}

func (m *IDMap[E, T]) Checksum() genid.AllocGen[E] {
	return m.raw.Checksum()
}

func (m *IDMap[E, T]) Sync(t genid.Tracker[E]) int {
	return m.raw.Sync(t)
}

// Validate asserts the map is synchronized with v and returns a read view.
func (m *IDMap[E, T]) Validate(v genid.Validator[E]) *MapView[E, T] {
	return &MapView[E, T]{m: &m.raw, proof: genid.Check(m.raw.sum, v, idMapName)}
}

// ValidateMut asserts the map is synchronized with v and returns a writable view.
func (m *IDMap[E, T]) ValidateMut(v genid.Validator[E]) *MutMapView[E, T] {
	return &MutMapView[E, T]{MapView: *m.Validate(v)}
}

func (m *IDMap[E, T]) ResourceKind() string {
	return "storage.IDMap[" + genid.EntityName[E]() + "]"
}

// MapView reads a synchronized IDMap. Every access re-checks the proof, so a kill on
// the allocator without a matching kill on the map panics at the next access.
type MapView[E genid.Entity, T any] struct {
	m     *RawIDMap[E, T]
	proof genid.Proof[E]
}

func (v *MapView[E, T]) Get(id genid.ID[E]) (T, bool) {
	v.proof.Assert()
	return v.m.Get(id)
}

func (v *MapView[E, T]) Len() int {
	return v.m.Len()
}

// All yields every entry with its handle proven alive.
func (v *MapView[E, T]) All() iter.Seq2[genid.Valid[E], T] {
	return func(yield func(genid.Valid[E], T) bool) {
		for id, value := range v.m.values {
			if !yield(v.proof.Vouch(id), value) {
				return
			}
		}
	}
}

// Keys yields every stored handle, proven alive.
func (v *MapView[E, T]) Keys() iter.Seq[genid.Valid[E]] {
	return func(yield func(genid.Valid[E]) bool) {
		for id := range v.m.values {
			if !yield(v.proof.Vouch(id)) {
				return
			}
		}
	}
}

// Release asserts no kill happened while the view was held.
func (v *MapView[E, T]) Release() {
	v.proof.Assert()
}

// MutMapView writes to a synchronized IDMap.
type MutMapView[E genid.Entity, T any] struct {
	MapView[E, T]
}

func (v *MutMapView[E, T]) Update(id genid.ID[E], fn func(*T)) bool {
	v.proof.Assert()
	return v.m.Update(id, fn)
}

func (v *MutMapView[E, T]) Remove(id genid.ID[E]) (T, bool) {
	v.proof.Assert()
	return v.m.Remove(id)
}

var (
	_ genid.Dependent[genid.Dynamic] = (*IDMap[genid.Dynamic, int])(nil)
	_ genid.Resource                 = (*IDMap[genid.Dynamic, int])(nil)
)
