package links

import (
	"iter"
	"maps"
	"slices"

	"github.com/DangerosoDavo/genid"
)

// Children is the set of children of one parent. A nil *Children is empty.
type Children[C genid.Entity] struct {
	set  map[genid.ID[C]]struct{}
	peak int
}

func (c *Children[C]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.set)
}

func (c *Children[C]) Contains(id genid.ID[C]) bool {
	if c == nil {
		return false
	}
	_, ok := c.set[id]
	return ok
}

// All yields the children in unspecified order.
func (c *Children[C]) All() iter.Seq[genid.ID[C]] {
	return func(yield func(genid.ID[C]) bool) {
		if c == nil {
			return
		}
		for id := range c.set {
			if !yield(id) {
				return
			}
		}
	}
}

// Sorted returns the children ordered by handle.
func (c *Children[C]) Sorted() []genid.ID[C] {
	if c == nil {
		return nil
	}
	return slices.SortedFunc(maps.Keys(c.set), genid.ID[C].Compare)
}

// Peak returns the largest size the set reached since it was last shrunk.
func (c *Children[C]) Peak() int {
	if c == nil {
		return 0
	}
	return c.peak
}

func (c *Children[C]) add(id genid.ID[C]) {
	if c.set == nil {
		c.set = make(map[genid.ID[C]]struct{})
	}
	c.set[id] = struct{}{}
	c.peak = max(c.peak, len(c.set))
}

// remove deletes id and reallocates the set once it falls under a quarter of its peak.
func (c *Children[C]) remove(id genid.ID[C]) {
	delete(c.set, id)
	if len(c.set)*4 >= c.peak {
		return
	}
	shrunk := make(map[genid.ID[C]]struct{}, len(c.set))
	for k := range c.set {
		shrunk[k] = struct{}{}
	}
	c.set = shrunk
	c.peak = len(shrunk)
}
