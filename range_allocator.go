package genid

import (
	"fmt"
	"iter"
)

// RangeAllocator issues append-only handles for a static entity kind.
type RangeAllocator[E StaticEntity] struct {
	next uint32
}

// NewRangeAllocator constructs an empty range allocator.
func NewRangeAllocator[E StaticEntity]() *RangeAllocator[E] {
	return &RangeAllocator[E]{}
}

// Create appends one slot.
func (a *RangeAllocator[E]) Create() Valid[E] {
	return Valid[E]{id: a.CreateRange(1).startID()}
}

// CreateRange appends n contiguous slots.
func (a *RangeAllocator[E]) CreateRange(n int) IDRange[E] {
	if n < 0 || uint64(a.next)+uint64(n) >= noIndex {
		panic(fmt.Errorf("%w: cannot append %d %s slots", ErrInvalidHandle, n, EntityName[E]()))
	}
	r := IDRange[E]{start: a.next, end: a.next + uint32(n)}
	a.next = r.end
	return r
}

// IDs returns the range of every handle issued so far.
func (a *RangeAllocator[E]) IDs() IDRange[E] {
	return IDRange[E]{end: a.next}
}

// All yields every handle as Valid, in index order.
func (a *RangeAllocator[E]) All() iter.Seq[Valid[E]] {
	return func(yield func(Valid[E]) bool) {
		for id := range a.IDs().All() {
			if !yield(Valid[E]{id: id}) {
				return
			}
		}
	}
}

// Len returns the number of slots issued.
func (a *RangeAllocator[E]) Len() int {
	return int(a.next)
}

// Validate accepts any handle whose slot has been created.
func (a *RangeAllocator[E]) Validate(id ID[E]) (Valid[E], bool) {
	if id.index >= a.next {
		return Valid[E]{}, false
	}
	return Valid[E]{id: ID[E]{index: id.index}}, true
}

// Checksum is constant: static kinds never record kills.
func (a *RangeAllocator[E]) Checksum() AllocGen[E] {
	return AllocGen[E]{}
}

func (r IDRange[E]) startID() ID[E] {
	return ID[E]{index: r.start}
}

var _ Validator[Static] = (*RangeAllocator[Static])(nil)
