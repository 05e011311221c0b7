package storage

import (
	"iter"

	"github.com/DangerosoDavo/genid"
)

// SharedMap is a sparse store where handles holding equal values reference one
// shared instance. Values are immutable per handle: to change one, insert a new value.
type SharedMap[E genid.Entity, T comparable] struct {
	owners  map[genid.ID[E]]uint32
	byValue map[T]uint32
	shared  map[uint32]*sharedValue[T]
	nextRef uint32
	sum     genid.AllocGen[E]
}

type sharedValue[T comparable] struct {
	data     T
	refCount int
}

// NewSharedMap constructs an empty shared store.
func NewSharedMap[E genid.Entity, T comparable]() *SharedMap[E, T] {
	return &SharedMap[E, T]{
		owners:  make(map[genid.ID[E]]uint32),
		byValue: make(map[T]uint32),
		shared:  make(map[uint32]*sharedValue[T]),
		nextRef: 1,
	}
}

func (s *SharedMap[E, T]) Len() int {
	return len(s.owners)
}

func (s *SharedMap[E, T]) Get(id genid.Valid[E]) (T, bool) {
	return s.get(id.ID())
}

func (s *SharedMap[E, T]) get(id genid.ID[E]) (T, bool) {
	ref, ok := s.owners[id]
	if !ok {
		var zero T
		return zero, false
	}
	return s.shared[ref].data, true
}

// Insert points id at value, sharing an existing instance when one is equal.
func (s *SharedMap[E, T]) Insert(id genid.Valid[E], value T) {
	key := id.ID()
	if old, ok := s.owners[key]; ok {
		s.release(old)
	}
	s.owners[key] = s.acquire(value)
}

// Remove drops id's reference without recording a kill.
func (s *SharedMap[E, T]) Remove(id genid.Valid[E]) bool {
	return s.remove(id.ID())
}

func (s *SharedMap[E, T]) remove(id genid.ID[E]) bool {
	ref, ok := s.owners[id]
	if !ok {
		return false
	}
	delete(s.owners, id)
	s.release(ref)
	return true
}

// Kill drops id's reference and records the kill.
func (s *SharedMap[E, T]) Kill(id genid.ID[E]) bool {
	if genid.KindOf[E]() == genid.KindStatic {
		panic(genid.ErrStaticKill)
	}
	s.sum.Advance(id)
	return s.remove(id)
}

func (s *SharedMap[E, T]) KillMany(killed *genid.Killed[E]) {
	killed.Replay("storage.SharedMap", s.Checksum, func(id genid.ID[E]) { s.Kill(id) })
}

func (s *SharedMap[E, T]) Checksum() genid.AllocGen[E] {
	return s.sum
}

// Validate asserts the store is synchronized with v and returns a proof for reads.
func (s *SharedMap[E, T]) Validate(v genid.Validator[E]) genid.Proof[E] {
	return genid.Check(s.sum, v, "storage.SharedMap")
}

// All yields every handle with its shared value.
func (s *SharedMap[E, T]) All() iter.Seq2[genid.ID[E], T] {
	return func(yield func(genid.ID[E], T) bool) {
		for id, ref := range s.owners {
			if !yield(id, s.shared[ref].data) {
				return
			}
		}
	}
}

func (s *SharedMap[E, T]) acquire(value T) uint32 {
	if ref, ok := s.byValue[value]; ok {
		s.shared[ref].refCount++
		return ref
	}
	ref := s.nextRef
	s.nextRef++
	s.byValue[value] = ref
	s.shared[ref] = &sharedValue[T]{data: value, refCount: 1}
	return ref
}

func (s *SharedMap[E, T]) release(ref uint32) {
	v, ok := s.shared[ref]
	if !ok {
		return
	}
	v.refCount--
	if v.refCount <= 0 {
		delete(s.shared, ref)
		delete(s.byValue, v.data)
	}
}

// SharedStats describes how much sharing a SharedMap achieves.
type SharedStats struct {
	Handles      int     // handles holding a value
	UniqueValues int     // distinct values stored
	SharingRatio float64 // handles per unique value
}

func (s *SharedMap[E, T]) Stats() SharedStats {
	return SharedStats{
		Handles:      len(s.owners),
		UniqueValues: len(s.shared),
		SharingRatio: float64(len(s.owners)) / float64(max(len(s.shared), 1)),
	}
}

func (s *SharedMap[E, T]) ResourceKind() string {
	return "storage.SharedMap[" + genid.EntityName[E]() + "]"
}

var (
	_ genid.Dependent[genid.Dynamic] = (*SharedMap[genid.Dynamic, int])(nil)
	_ genid.Resource                 = (*SharedMap[genid.Dynamic, int])(nil)
)
