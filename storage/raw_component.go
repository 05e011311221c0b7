// Package storage holds value stores indexed by genid handles: the dense Component,
// one slot per possible index, and the sparse IDMap, one entry per present handle.
package storage

import (
	"fmt"
	"iter"

	"github.com/DangerosoDavo/genid"
)

// RawComponent is a dense slice of values indexed by slot index. It does not check
// liveness; stale handles read whatever their slot holds.
type RawComponent[E genid.Entity, T any] struct {
	values []T
}

// NewRawComponent constructs a dense store with room for capacity values.
func NewRawComponent[E genid.Entity, T any](capacity int) *RawComponent[E, T] {
	return &RawComponent[E, T]{values: make([]T, 0, max(capacity, 0))}
}

// Insert writes value at id's index. The index may overwrite an existing slot or
// append at the end; anything further panics with ErrIndexGap.
func (c *RawComponent[E, T]) Insert(id genid.ID[E], value T) {
	idx := int(id.Index())
	switch {
	case idx < len(c.values):
		c.values[idx] = value
	case idx == len(c.values):
		c.values = append(c.values, value)
	default:
		panic(fmt.Errorf("%w: %v into %d values of %s", genid.ErrIndexGap, id, len(c.values), genid.EntityName[E]()))
	}
}

// InsertWith writes value at id's index, filling any gap with values from fill.
func (c *RawComponent[E, T]) InsertWith(id genid.ID[E], value T, fill func() T) {
	idx := int(id.Index())
	c.ensureLen(idx, fill)
	c.Insert(id, value)
}

func (c *RawComponent[E, T]) ensureLen(size int, fill func() T) {
	if size <= len(c.values) {
		return
	}
	old := len(c.values)
	c.values = append(c.values, make([]T, size-old)...)
	if fill == nil {
		return
	}
	for i := old; i < size; i++ {
		c.values[i] = fill()
	}
}

// Get returns the value at id's index.
func (c *RawComponent[E, T]) Get(id genid.ID[E]) (T, bool) {
	idx := int(id.Index())
	if id.IsNone() || idx >= len(c.values) {
		var zero T
		return zero, false
	}
	return c.values[idx], true
}

// Ptr returns a pointer to the value at id's index, or nil when out of range. The
// pointer is invalidated by the next insert that grows the store.
func (c *RawComponent[E, T]) Ptr(id genid.ID[E]) *T {
	idx := int(id.Index())
	if id.IsNone() || idx >= len(c.values) {
		return nil
	}
	return &c.values[idx]
}

func (c *RawComponent[E, T]) Len() int {
	return len(c.values)
}

func (c *RawComponent[E, T]) IsEmpty() bool {
	return len(c.values) == 0
}

// Values exposes the backing slice for read-only use.
func (c *RawComponent[E, T]) Values() []T {
	return c.values
}

// All yields each slot index with its value.
func (c *RawComponent[E, T]) All() iter.Seq2[uint32, T] {
	return func(yield func(uint32, T) bool) {
		for i, v := range c.values {
			if !yield(uint32(i), v) {
				return
			}
		}
	}
}

// FillWith overwrites every value with one produced by fill.
func (c *RawComponent[E, T]) FillWith(fill func() T) {
	for i := range c.values {
		c.values[i] = fill()
	}
}
