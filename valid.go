package genid

import "fmt"

// Valid is a handle that was alive when it was minted. Valid values are produced by
// allocators, by proofs over synchronized collections, and by Trust for static kinds.
// A Valid handle must not be retained across a kill on its allocator.
type Valid[E Entity] struct {
	id ID[E]
}

// ID returns the underlying handle.
func (v Valid[E]) ID() ID[E] { return v.id }

// Index returns the slot index.
func (v Valid[E]) Index() uint32 { return v.id.index }

// Gen returns the generation tag.
func (v Valid[E]) Gen() Gen { return v.id.gen }

func (v Valid[E]) String() string { return v.id.String() }

// Trust upgrades a static handle. Static slots never die, so every handle is valid
// once its slot has been created.
func Trust[E StaticEntity](id ID[E]) Valid[E] {
	return Valid[E]{id: ID[E]{index: id.index}}
}

// Validator proves liveness of handles of kind E.
type Validator[E Entity] interface {
	Validate(id ID[E]) (Valid[E], bool)
	Checksum() AllocGen[E]
}

// Tracker is the allocator surface used by collections that resynchronize lazily.
type Tracker[E Entity] interface {
	IsAlive(id ID[E]) bool
	Checksum() AllocGen[E]
	Compare(g AllocGen[E]) (Sync, ID[E])
}

// AssertSynced panics with ErrOutOfSync when have and want differ. It is a no-op when
// invariants are compiled out.
func AssertSynced[E Entity](have, want AllocGen[E], collection string) {
	if !InvariantsEnabled || have == want {
		return
	}
	panic(fmt.Errorf("%w: %s[%s] has %v, allocator has %v",
		ErrOutOfSync, collection, EntityName[E](), have, want))
}

// Proof records that a collection matched its validator. It re-checks the validator
// on every Vouch so that a kill between acquisition and use is caught at the access.
type Proof[E Entity] struct {
	v          Validator[E]
	at         AllocGen[E]
	collection string
}

// Check asserts that have matches v and returns a proof scoped to that snapshot.
func Check[E Entity](have AllocGen[E], v Validator[E], collection string) Proof[E] {
	at := v.Checksum()
	AssertSynced(have, at, collection)
	return Proof[E]{v: v, at: at, collection: collection}
}

// Current reports whether no kill has happened since the proof was taken.
func (p Proof[E]) Current() bool {
	return p.v == nil || p.v.Checksum() == p.at
}

// Vouch mints a Valid handle for an id held by the proven collection.
func (p Proof[E]) Vouch(id ID[E]) Valid[E] {
	if p.v != nil {
		AssertSynced(p.at, p.v.Checksum(), p.collection)
	}
	return Valid[E]{id: id}
}

// Assert panics with ErrOutOfSync if a kill happened since the proof was taken. Scope
// guards call it on release; views call it on every access.
func (p Proof[E]) Assert() {
	if p.v != nil {
		AssertSynced(p.at, p.v.Checksum(), p.collection)
	}
}
