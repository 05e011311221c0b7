package genid

import (
	"fmt"
	"iter"
)

// IDRange is a half-open run of contiguous static handles.
type IDRange[E Entity] struct {
	start uint32
	end   uint32
}

// RangeOf returns the range [start, end). It panics if end precedes start.
func RangeOf[E StaticEntity](start, end uint32) IDRange[E] {
	if end < start || end == noIndex {
		panic(fmt.Errorf("%w: range [%d, %d)", ErrInvalidHandle, start, end))
	}
	return IDRange[E]{start: start, end: end}
}

// Start returns the first index in the range.
func (r IDRange[E]) Start() uint32 { return r.start }

// End returns the index one past the last handle.
func (r IDRange[E]) End() uint32 { return r.end }

// Len returns the number of handles in the range.
func (r IDRange[E]) Len() int {
	return int(r.end - r.start)
}

// IsEmpty reports whether the range holds no handles.
func (r IDRange[E]) IsEmpty() bool {
	return r.start == r.end
}

// Contains reports whether id falls inside the range.
func (r IDRange[E]) Contains(id ID[E]) bool {
	return id.index >= r.start && id.index < r.end
}

// Position returns the offset of id within the range.
func (r IDRange[E]) Position(id ID[E]) (int, bool) {
	if !r.Contains(id) {
		return 0, false
	}
	return int(id.index - r.start), true
}

// At returns the handle at offset i.
func (r IDRange[E]) At(i int) (ID[E], bool) {
	if i < 0 || i >= r.Len() {
		return ID[E]{}, false
	}
	return ID[E]{index: r.start + uint32(i)}, true
}

// Append extends the range by id. An empty range adopts id; otherwise id must
// immediately follow the current end. Appending the none handle panics with
// ErrInvalidHandle.
func (r *IDRange[E]) Append(id ID[E]) {
	if id.IsNone() {
		panic(fmt.Errorf("%w: cannot append the none handle", ErrInvalidHandle))
	}
	if r.IsEmpty() {
		r.start = id.index
		r.end = id.index + 1
		return
	}
	if id.index != r.end {
		panic(fmt.Errorf("%w: %v does not follow [%d, %d)", ErrRangeAppend, id, r.start, r.end))
	}
	r.end++
}

// All yields every handle in ascending order.
func (r IDRange[E]) All() iter.Seq[ID[E]] {
	return func(yield func(ID[E]) bool) {
		for i := r.start; i < r.end; i++ {
			if !yield(ID[E]{index: i}) {
				return
			}
		}
	}
}

func (r IDRange[E]) String() string {
	return fmt.Sprintf("IDRange[%d, %d)", r.start, r.end)
}
