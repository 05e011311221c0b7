package genid

import "iter"

// CreateOnly narrows an Allocator to operations that never kill. Handles validated
// through it stay valid for as long as the caller only holds the view.
type CreateOnly[E DynamicEntity] struct {
	alloc *Allocator[E]
}

func (c *CreateOnly[E]) Create() Valid[E] {
	return c.alloc.Create()
}

func (c *CreateOnly[E]) IsAlive(id ID[E]) bool {
	return c.alloc.IsAlive(id)
}

func (c *CreateOnly[E]) Validate(id ID[E]) (Valid[E], bool) {
	return c.alloc.Validate(id)
}

func (c *CreateOnly[E]) IDs() iter.Seq[Valid[E]] {
	return c.alloc.IDs()
}

func (c *CreateOnly[E]) Len() int {
	return c.alloc.Len()
}

func (c *CreateOnly[E]) Checksum() AllocGen[E] {
	return c.alloc.Checksum()
}

var _ Validator[Dynamic] = (*CreateOnly[Dynamic])(nil)
