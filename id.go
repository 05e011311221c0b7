package genid

import (
	"cmp"
	"fmt"
	"math"
)

// noIndex is the reserved slot index of the None handle.
const noIndex = math.MaxUint32

// ID identifies a slot of entity kind E and the generation that occupied it.
// Handles are plain values; holding one does not keep the slot alive.
type ID[E Entity] struct {
	index uint32
	gen   Gen
}

// FromParts constructs a handle from raw components. It panics on the reserved index.
// Static kinds ignore gen: their handles always carry NoGen.
func FromParts[E Entity](index uint32, gen Gen) ID[E] {
	if index == noIndex {
		panic(fmt.Errorf("%w: index %d is reserved", ErrInvalidHandle, index))
	}
	if KindOf[E]() == KindStatic {
		gen = NoGen
	}
	return ID[E]{index: index, gen: gen}
}

// None returns the empty handle. It never refers to a slot.
func None[E Entity]() ID[E] {
	return ID[E]{index: noIndex}
}

// Index returns the slot index.
func (id ID[E]) Index() uint32 {
	return id.index
}

// Gen returns the generation tag. Static handles report NoGen.
func (id ID[E]) Gen() Gen {
	return id.gen
}

// IsNone reports whether id is the empty handle.
func (id ID[E]) IsNone() bool {
	return id.index == noIndex
}

// Compare orders handles by index, then by generation.
func (id ID[E]) Compare(other ID[E]) int {
	if c := cmp.Compare(id.index, other.index); c != 0 {
		return c
	}
	return cmp.Compare(id.gen, other.gen)
}

// String renders the handle for debugging purposes.
func (id ID[E]) String() string {
	if id.IsNone() {
		return "ID(none)"
	}
	if id.gen.IsZero() {
		return fmt.Sprintf("ID(%d)", id.index)
	}
	return fmt.Sprintf("ID(%d:%d)", id.index, id.gen)
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
