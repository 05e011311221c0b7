package links

import "github.com/DangerosoDavo/genid"

// OptionalLinks is a one-to-many relation whose children may be unlinked, and whose
// parents may die, leaving their children without a parent.
type OptionalLinks[P, C genid.Entity] struct {
	relation[P, C]
}

// NewOptional constructs an empty relation.
func NewOptional[P, C genid.Entity](backend Backend) *OptionalLinks[P, C] {
	return &OptionalLinks[P, C]{relation: newRelation[P, C](backend)}
}

// Link makes parent the parent of child, first removing child from any old parent.
func (l *OptionalLinks[P, C]) Link(parent genid.Valid[P], child genid.Valid[C]) {
	l.link(parent.ID(), child.ID(), false)
}

// Unlink detaches child from its parent.
func (l *OptionalLinks[P, C]) Unlink(child genid.Valid[C]) bool {
	_, ok := l.unlink(child.ID())
	return ok
}

// UnlinkParent detaches every child of parent and returns how many there were.
func (l *OptionalLinks[P, C]) UnlinkParent(parent genid.Valid[P]) int {
	return l.unlinkParent(parent.ID())
}

// KillParent detaches the children of parent and records the kill.
func (l *OptionalLinks[P, C]) KillParent(parent genid.ID[P]) {
	mustBeDynamic[P]("KillParent")
	l.unlinkParent(parent)
	l.parentSum.Advance(parent)
}

// KillParents replays a parent kill batch.
func (l *OptionalLinks[P, C]) KillParents(killed *genid.Killed[P]) {
	killed.Replay(linksName+".parents", l.ParentChecksum, l.KillParent)
}

// RequiredLinks is a one-to-many relation in which every child is given its parent
// in index order when it is created. Parents are static, so they never die.
type RequiredLinks[P genid.StaticEntity, C genid.Entity] struct {
	relation[P, C]
}

// NewRequired constructs an empty relation.
func NewRequired[P genid.StaticEntity, C genid.Entity](backend Backend) *RequiredLinks[P, C] {
	return &RequiredLinks[P, C]{relation: newRelation[P, C](backend)}
}

// Link makes parent the parent of child. A child slot that skips ahead of the children
// linked so far panics with ErrIndexGap.
func (l *RequiredLinks[P, C]) Link(parent genid.Valid[P], child genid.Valid[C]) {
	l.link(parent.ID(), child.ID(), true)
}
