package storage

import (
	"context"
	"iter"

	"github.com/DangerosoDavo/genid"
	"github.com/DangerosoDavo/genid/par"
)

// Component is a dense store whose writes and reads take Valid handles.
type Component[E genid.Entity, T any] struct {
	raw RawComponent[E, T]
}

// NewComponent constructs a dense store with room for capacity values.
func NewComponent[E genid.Entity, T any](capacity int) *Component[E, T] {
	return &Component[E, T]{raw: *NewRawComponent[E, T](capacity)}
}

// FromSlice wraps values; values[i] belongs to slot i.
func FromSlice[E genid.Entity, T any](values []T) *Component[E, T] {
	return &Component[E, T]{raw: RawComponent[E, T]{values: values}}
}

// Raw exposes the handle-keyed layer underneath.
func (c *Component[E, T]) Raw() *RawComponent[E, T] {
	return &c.raw
}

// Insert writes value for id. It panics with ErrIndexGap when id skips ahead.
func (c *Component[E, T]) Insert(id genid.Valid[E], value T) {
	c.raw.Insert(id.ID(), value)
}

// InsertWith writes value for id, filling any gap with values from fill.
func (c *Component[E, T]) InsertWith(id genid.Valid[E], value T, fill func() T) {
	c.raw.InsertWith(id.ID(), value, fill)
}

func (c *Component[E, T]) Get(id genid.Valid[E]) (T, bool) {
	return c.raw.Get(id.ID())
}

func (c *Component[E, T]) Ptr(id genid.Valid[E]) *T {
	return c.raw.Ptr(id.ID())
}

func (c *Component[E, T]) Len() int {
	return c.raw.Len()
}

func (c *Component[E, T]) IsEmpty() bool {
	return c.raw.IsEmpty()
}

func (c *Component[E, T]) Values() []T {
	return c.raw.Values()
}

func (c *Component[E, T]) All() iter.Seq2[uint32, T] {
	return c.raw.All()
}

func (c *Component[E, T]) FillWith(fill func() T) {
	c.raw.FillWith(fill)
}

// Slice returns the values of a contiguous range of static handles.
func (c *Component[E, T]) Slice(r genid.IDRange[E]) ([]T, bool) {
	if int(r.End()) > c.raw.Len() {
		return nil, false
	}
	return c.raw.values[r.Start():r.End()], true
}

// ForEachParallel calls fn for every slot from a pool of workers. The store must not
// be written until it returns.
func (c *Component[E, T]) ForEachParallel(ctx context.Context, pool *par.Pool, fn func(index uint32, value T) error) error {
	return par.ForEach(ctx, pool, c.raw.values, 0, func(i int, v T) error {
		return fn(uint32(i), v)
	})
}

func (c *Component[E, T]) ResourceKind() string {
	return "storage.Component[" + genid.EntityName[E]() + "]"
}

var _ genid.Resource = (*Component[genid.Static, int])(nil)
