package storage

import (
	"iter"

	"github.com/DangerosoDavo/genid"
)

// RawIDMap is a sparse store keyed by full handles. It records the checksum of every
// kill it is told about so that it can prove it is synchronized with its allocator.
type RawIDMap[E genid.Entity, T any] struct {
	values map[genid.ID[E]]T
	sum    genid.AllocGen[E]
}

// NewRawIDMap constructs an empty sparse store.
func NewRawIDMap[E genid.Entity, T any]() *RawIDMap[E, T] {
	return &RawIDMap[E, T]{values: make(map[genid.ID[E]]T)}
}

func (m *RawIDMap[E, T]) init() {
	if m.values == nil {
		m.values = make(map[genid.ID[E]]T)
	}
}

// Insert stores value for id and returns the value it replaced, if any.
func (m *RawIDMap[E, T]) Insert(id genid.ID[E], value T) (T, bool) {
	m.init()
	old, ok := m.values[id]
	m.values[id] = value
	return old, ok
}

// Remove deletes id without recording a kill.
func (m *RawIDMap[E, T]) Remove(id genid.ID[E]) (T, bool) {
	old, ok := m.values[id]
	if ok {
		delete(m.values, id)
	}
	return old, ok
}

func (m *RawIDMap[E, T]) Get(id genid.ID[E]) (T, bool) {
	v, ok := m.values[id]
	return v, ok
}

// Update applies fn to the value stored for id and writes the result back.
func (m *RawIDMap[E, T]) Update(id genid.ID[E], fn func(*T)) bool {
	v, ok := m.values[id]
	if !ok {
		return false
	}
	fn(&v)
	m.values[id] = v
	return true
}

func (m *RawIDMap[E, T]) Contains(id genid.ID[E]) bool {
	_, ok := m.values[id]
	return ok
}

func (m *RawIDMap[E, T]) Len() int {
	return len(m.values)
}

func (m *RawIDMap[E, T]) IsEmpty() bool {
	return len(m.values) == 0
}

// All yields every entry in unspecified order.
func (m *RawIDMap[E, T]) All() iter.Seq2[genid.ID[E], T] {
	return func(yield func(genid.ID[E], T) bool) {
		for id, v := range m.values {
			if !yield(id, v) {
				return
			}
		}
	}
}

// Kill removes id and folds its kill into the store's checksum. The kill is recorded
// whether or not id had a value.
func (m *RawIDMap[E, T]) Kill(id genid.ID[E]) (T, bool) {
	if genid.KindOf[E]() == genid.KindStatic {
		panic(genid.ErrStaticKill)
	}
	m.sum.Advance(id)
	return m.Remove(id)
}

// KillMany replays a batch committed by the allocator.
func (m *RawIDMap[E, T]) KillMany(killed *genid.Killed[E]) {
	killed.Replay("storage.IDMap", m.Checksum, func(id genid.ID[E]) { m.Kill(id) })
}

// Checksum returns the digest of every kill this store has recorded.
func (m *RawIDMap[E, T]) Checksum() genid.AllocGen[E] {
	return m.sum
}

// Sync brings a store that missed kills back in step with t. When exactly one kill
// was missed only that handle is dropped; otherwise every key is checked for
// liveness. It returns the number of entries dropped.
func (m *RawIDMap[E, T]) Sync(t genid.Tracker[E]) int {
	state, missed := t.Compare(m.sum)
	dropped := 0
	switch state {
	case genid.InSync:
		return 0
	case genid.OneBehind:
		if _, ok := m.Remove(missed); ok {
			dropped++
		}
	default:
		for id := range m.values {
			if !t.IsAlive(id) {
				delete(m.values, id)
				dropped++
			}
		}
	}
	m.sum = t.Checksum()
	return dropped
}

var _ genid.Dependent[genid.Dynamic] = (*RawIDMap[genid.Dynamic, int])(nil)
