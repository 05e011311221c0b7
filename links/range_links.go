package links

import (
	"fmt"

	"github.com/DangerosoDavo/genid"
	"github.com/DangerosoDavo/genid/storage"
)

// RangeLinks is a one-to-many relation between static kinds where the children of each
// parent form one contiguous range. Children are linked in index order and never
// unlinked.
type RangeLinks[P, C genid.StaticEntity] struct {
	parents  storage.RawComponent[C, genid.ID[P]]
	children index[P, genid.IDRange[C]]
}

// NewRange constructs an empty range relation.
func NewRange[P, C genid.StaticEntity](backend Backend) *RangeLinks[P, C] {
	return &RangeLinks[P, C]{
		children: newIndex[P](backend, func() genid.IDRange[C] { return genid.IDRange[C]{} }),
	}
}

// Link appends child to parent's range. It panics with ErrRelationConflict when child
// already belongs to another parent, ErrRangeAppend when child does not follow the
// parent's range, and ErrIndexGap when child skips ahead of the children linked so far.
func (l *RangeLinks[P, C]) Link(parent genid.Valid[P], child genid.Valid[C]) {
	if owner, ok := l.Parent(child.ID()); ok {
		if owner == parent.ID() {
			return
		}
		panic(fmt.Errorf("%w: %v belongs to %v, not %v", genid.ErrRelationConflict, child, owner, parent))
	}
	r, _ := l.children.get(parent.ID())
	r.Append(child.ID())
	l.parents.Insert(child.ID(), parent.ID())
	l.children.set(parent.ID(), r)
}

// LinkRange links every child of children to parent, in order.
func (l *RangeLinks[P, C]) LinkRange(parent genid.Valid[P], children genid.IDRange[C]) {
	for c := range children.All() {
		l.Link(parent, genid.Trust(c))
	}
}

func (l *RangeLinks[P, C]) Parent(child genid.ID[C]) (genid.ID[P], bool) {
	p, ok := l.parents.Get(child)
	if !ok || p.IsNone() {
		return genid.None[P](), false
	}
	return p, true
}

// Children returns parent's range, which is empty when it has none.
func (l *RangeLinks[P, C]) Children(parent genid.ID[P]) genid.IDRange[C] {
	r, _ := l.children.get(parent)
	return r
}
