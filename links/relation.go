package links

import (
	"iter"

	"github.com/DangerosoDavo/genid"
	"github.com/DangerosoDavo/genid/storage"
)

const linksName = "links.Links"

// relation is the state shared by every parent/child cardinality. The parent column
// is indexed by child slot and holds None for unlinked children.
type relation[P, C genid.Entity] struct {
	parents   storage.RawComponent[C, genid.ID[P]]
	children  index[P, *Children[C]]
	sparse    bool
	parentSum genid.AllocGen[P]
	childSum  genid.AllocGen[C]
}

func newRelation[P, C genid.Entity](backend Backend) relation[P, C] {
	return relation[P, C]{
		children: newIndex[P](backend, func() *Children[C] { return nil }),
		sparse:   backend == Sparse,
	}
}

// Parent returns the parent of child.
func (r *relation[P, C]) Parent(child genid.ID[C]) (genid.ID[P], bool) {
	p, ok := r.parents.Get(child)
	if !ok || p.IsNone() {
		return genid.None[P](), false
	}
	return p, true
}

// Children returns the children of parent. The result is nil when there are none.
func (r *relation[P, C]) Children(parent genid.ID[P]) *Children[C] {
	set, _ := r.children.get(parent)
	if set.Len() == 0 {
		return nil
	}
	return set
}

// Linked yields every child that currently has a parent, with that parent.
func (r *relation[P, C]) Linked() iter.Seq2[genid.ID[C], genid.ID[P]] {
	return func(yield func(genid.ID[C], genid.ID[P]) bool) {
		for _, set := range r.parentSets() {
			for c := range set.All() {
				p, _ := r.Parent(c)
				if !yield(c, p) {
					return
				}
			}
		}
	}
}

func (r *relation[P, C]) parentSets() []*Children[C] {
	var sets []*Children[C]
	switch idx := r.children.(type) {
	case *denseIndex[P, *Children[C]]:
		for _, set := range idx.values.Values() {
			if set.Len() > 0 {
				sets = append(sets, set)
			}
		}
	case *sparseIndex[P, *Children[C]]:
		for _, set := range idx.values.All() {
			sets = append(sets, set)
		}
	}
	return sets
}

func (r *relation[P, C]) link(parent genid.ID[P], child genid.ID[C], required bool) {
	r.unlink(child)
	if required {
		r.parents.Insert(child, parent)
	} else {
		r.parents.InsertWith(child, parent, genid.None[P])
	}
	set, _ := r.children.get(parent)
	if set == nil {
		set = &Children[C]{}
		r.children.set(parent, set)
	}
	set.add(child)
}

func (r *relation[P, C]) unlink(child genid.ID[C]) (genid.ID[P], bool) {
	slot := r.parents.Ptr(child)
	if slot == nil || slot.IsNone() {
		return genid.None[P](), false
	}
	parent := *slot
	*slot = genid.None[P]()
	if set, _ := r.children.get(parent); set != nil {
		set.remove(child)
		if set.Len() == 0 && r.sparse {
			r.children.drop(parent)
		}
	}
	return parent, true
}

func (r *relation[P, C]) unlinkParent(parent genid.ID[P]) int {
	set, _ := r.children.get(parent)
	n := set.Len()
	for c := range set.All() {
		if slot := r.parents.Ptr(c); slot != nil {
			*slot = genid.None[P]()
		}
	}
	if set != nil {
		r.children.drop(parent)
	}
	return n
}

// KillChild unlinks child from its parent and records the kill.
func (r *relation[P, C]) KillChild(child genid.ID[C]) {
	mustBeDynamic[C]("KillChild")
	r.unlink(child)
	r.childSum.Advance(child)
}

// KillChildren replays a child kill batch.
func (r *relation[P, C]) KillChildren(killed *genid.Killed[C]) {
	killed.Replay(linksName+".children", r.ChildChecksum, r.KillChild)
}

// ParentChecksum returns the digest of the parent kills recorded.
func (r *relation[P, C]) ParentChecksum() genid.AllocGen[P] {
	return r.parentSum
}

// ChildChecksum returns the digest of the child kills recorded.
func (r *relation[P, C]) ChildChecksum() genid.AllocGen[C] {
	return r.childSum
}

// Validate asserts the relation is synchronized with both allocators. A nil validator
// is accepted for a static side.
func (r *relation[P, C]) Validate(parents genid.Validator[P], children genid.Validator[C]) *View[P, C] {
	return &View[P, C]{
		r:        r,
		parents:  proofFor(r.parentSum, parents, linksName+".parents"),
		children: proofFor(r.childSum, children, linksName+".children"),
	}
}

// View reads a synchronized relation and hands out proven handles.
type View[P, C genid.Entity] struct {
	r        *relation[P, C]
	parents  genid.Proof[P]
	children genid.Proof[C]
}

func (v *View[P, C]) Parent(child genid.Valid[C]) (genid.Valid[P], bool) {
	v.children.Assert()
	p, ok := v.r.Parent(child.ID())
	if !ok {
		return genid.Valid[P]{}, false
	}
	return v.parents.Vouch(p), true
}

func (v *View[P, C]) Children(parent genid.Valid[P]) iter.Seq[genid.Valid[C]] {
	v.parents.Assert()
	set := v.r.Children(parent.ID())
	return func(yield func(genid.Valid[C]) bool) {
		for c := range set.All() {
			if !yield(v.children.Vouch(c)) {
				return
			}
		}
	}
}

func (v *View[P, C]) Release() {
	v.parents.Assert()
	v.children.Assert()
}
