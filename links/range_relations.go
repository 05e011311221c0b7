package links

import (
	"fmt"
	"iter"

	"github.com/DangerosoDavo/genid"
	"github.com/DangerosoDavo/genid/storage"
)

// RangeRelation records either the parent of a node or the range of its children.
type RangeRelation[E genid.Entity] struct {
	parent   genid.ID[E]
	children genid.IDRange[E]
	isParent bool
}

// ChildOf records that a node's parent is parent.
func ChildOf[E genid.Entity](parent genid.ID[E]) RangeRelation[E] {
	return RangeRelation[E]{parent: parent}
}

// ParentOf records that a node's children are children.
func ParentOf[E genid.Entity](children genid.IDRange[E]) RangeRelation[E] {
	return RangeRelation[E]{children: children, isParent: true}
}

func (r RangeRelation[E]) IsParent() bool { return r.isParent }

func (r RangeRelation[E]) IsChild() bool { return !r.isParent }

// Parent returns the parent of a child record.
func (r RangeRelation[E]) Parent() (genid.ID[E], bool) {
	if r.isParent {
		return genid.None[E](), false
	}
	return r.parent, true
}

// Children returns the range of a parent record.
func (r RangeRelation[E]) Children() (genid.IDRange[E], bool) {
	if !r.isParent {
		return genid.IDRange[E]{}, false
	}
	return r.children, true
}

// RangeRelations is a tree over one static kind. Every node is recorded exactly once,
// either as a parent of a contiguous range or as a child.
type RangeRelations[E genid.StaticEntity] struct {
	values storage.RawComponent[E, RangeRelation[E]]
}

func NewRangeRelations[E genid.StaticEntity]() *RangeRelations[E] {
	return &RangeRelations[E]{}
}

// Link records parent as the parent of children. Nodes must be recorded in index
// order; recording a node twice panics with ErrRelationConflict. Nothing is recorded
// when Link panics.
func (r *RangeRelations[E]) Link(parent genid.Valid[E], children genid.IDRange[E]) {
	r.mustBeEmpty(parent.ID())
	for c := range children.All() {
		r.mustBeEmpty(c)
	}
	r.mustFollow(parent.ID(), children)

	r.values.Insert(parent.ID(), ParentOf(children))
	for c := range children.All() {
		r.values.Insert(c, ChildOf(parent.ID()))
	}
}

func (r *RangeRelations[E]) mustBeEmpty(id genid.ID[E]) {
	if _, ok := r.values.Get(id); ok {
		panic(fmt.Errorf("%w: %v already has a relation", genid.ErrRelationConflict, id))
	}
}

// mustFollow checks that parent and children fill the next slots without a gap,
// parent first.
func (r *RangeRelations[E]) mustFollow(parent genid.ID[E], children genid.IDRange[E]) {
	next := uint32(r.values.Len())
	if parent.Index() != next {
		panic(fmt.Errorf("%w: %v recorded after %d nodes", genid.ErrIndexGap, parent, next))
	}
	if !children.IsEmpty() && children.Start() != next+1 {
		panic(fmt.Errorf("%w: children %v do not follow %v", genid.ErrIndexGap, children, parent))
	}
}

func (r *RangeRelations[E]) Get(id genid.ID[E]) (RangeRelation[E], bool) {
	return r.values.Get(id)
}

func (r *RangeRelations[E]) Len() int {
	return r.values.Len()
}

// Parents filters ids down to the nodes recorded as parents.
func (r *RangeRelations[E]) Parents(ids iter.Seq[genid.ID[E]]) iter.Seq[genid.ID[E]] {
	return func(yield func(genid.ID[E]) bool) {
		for id := range ids {
			if rel, ok := r.values.Get(id); ok && rel.isParent {
				if !yield(id) {
					return
				}
			}
		}
	}
}
