package genid

import (
	"context"
	"fmt"
	"iter"

	"github.com/DangerosoDavo/genid/par"
)

type slotState uint8

const (
	slotDead slotState = iota
	slotAlive
	slotRetired
)

// entry is one slot. Dead entries thread the free list through next, which holds
// the following free index plus one so that zero terminates the list.
type entry struct {
	gen   Gen
	state slotState
	next  uint32
}

type lastKill[E Entity] struct {
	before AllocGen[E]
	id     ID[E]
	ok     bool
}

// AllocatorOption configures an Allocator.
type AllocatorOption func(*allocatorConfig)

type allocatorConfig struct {
	capacity int
	retire   bool
}

// WithCapacity preallocates room for n slots.
func WithCapacity(n int) AllocatorOption {
	return func(c *allocatorConfig) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithSlotRetirement retires a slot instead of reusing it once its generation would
// wrap back to MinGen. Retired slots are never handed out again, so a handle can
// never alias a later occupant of its slot.
func WithSlotRetirement() AllocatorOption {
	return func(c *allocatorConfig) {
		c.retire = true
	}
}

// Allocator owns the liveness state of one dynamic entity kind. The zero value is
// ready to use. An Allocator is not safe for concurrent mutation.
type Allocator[E DynamicEntity] struct {
	entries []entry
	free    uint32
	live    int
	retired int
	sum     AllocGen[E]
	retire  bool
	last    lastKill[E]
}

// NewAllocator constructs an empty allocator.
func NewAllocator[E DynamicEntity](opts ...AllocatorOption) *Allocator[E] {
	var cfg allocatorConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Allocator[E]{
		entries: make([]entry, 0, cfg.capacity),
		retire:  cfg.retire,
	}
}

// Create issues a handle, reusing the most recently freed slot when one exists.
func (a *Allocator[E]) Create() Valid[E] {
	if a.free != 0 {
		index := a.free - 1
		e := &a.entries[index]
		if e.state != slotDead {
			panic(fmt.Errorf("%w: %s slot %d", ErrCorruptFreeList, EntityName[E](), index))
		}
		a.free = e.next
		e.state = slotAlive
		e.next = 0
		a.live++
		return Valid[E]{id: ID[E]{index: index, gen: e.gen}}
	}

	index := uint32(len(a.entries))
	if index == noIndex {
		panic(fmt.Errorf("%w: %s slot space exhausted", ErrInvalidHandle, EntityName[E]()))
	}
	a.entries = append(a.entries, entry{gen: MinGen, state: slotAlive})
	a.live++
	return Valid[E]{id: ID[E]{index: index, gen: MinGen}}
}

// Kill releases id. It returns false when the slot is out of range, already dead, or
// occupied by a different generation.
func (a *Allocator[E]) Kill(id ID[E]) bool {
	if id.index >= uint32(len(a.entries)) {
		return false
	}
	e := &a.entries[id.index]
	if e.state != slotAlive || e.gen != id.gen {
		return false
	}

	a.last = lastKill[E]{before: a.sum, id: id, ok: true}
	a.sum.Advance(id)
	a.live--

	next := id.gen.Next()
	e.gen = next
	if a.retire && next == MinGen {
		e.state = slotRetired
		a.retired++
		return true
	}
	e.state = slotDead
	e.next = a.free
	a.free = id.index + 1
	return true
}

// KillMany kills ids in order, silently skipping stale and duplicate handles. The
// returned batch lists only the handles that were actually killed.
func (a *Allocator[E]) KillMany(ids []ID[E]) *Killed[E] {
	before := a.sum
	killed := make([]ID[E], 0, len(ids))
	for _, id := range ids {
		if a.Kill(id) {
			killed = append(killed, id)
		}
	}
	return newKilled(killed, before, a.sum)
}

// IsAlive reports whether id refers to a currently allocated slot.
func (a *Allocator[E]) IsAlive(id ID[E]) bool {
	if id.index >= uint32(len(a.entries)) {
		return false
	}
	e := a.entries[id.index]
	return e.state == slotAlive && e.gen == id.gen
}

// Validate upgrades id to a Valid handle when it is alive.
func (a *Allocator[E]) Validate(id ID[E]) (Valid[E], bool) {
	if !a.IsAlive(id) {
		return Valid[E]{}, false
	}
	return Valid[E]{id: id}, true
}

// IDs yields every live handle in slot order. The sequence reads the allocator when
// it is ranged over.
func (a *Allocator[E]) IDs() iter.Seq[Valid[E]] {
	return func(yield func(Valid[E]) bool) {
		for i, e := range a.entries {
			if e.state != slotAlive {
				continue
			}
			if !yield(Valid[E]{id: ID[E]{index: uint32(i), gen: e.gen}}) {
				return
			}
		}
	}
}

// Slots yields one element per slot in index order; the bool is false for dead and
// retired slots.
func (a *Allocator[E]) Slots() iter.Seq2[Valid[E], bool] {
	return func(yield func(Valid[E], bool) bool) {
		for i, e := range a.entries {
			if e.state != slotAlive {
				if !yield(Valid[E]{}, false) {
					return
				}
				continue
			}
			if !yield(Valid[E]{id: ID[E]{index: uint32(i), gen: e.gen}}, true) {
				return
			}
		}
	}
}

// ForEachParallel calls fn for every live handle from a pool of workers. The
// allocator must not be mutated until it returns.
func (a *Allocator[E]) ForEachParallel(ctx context.Context, pool *par.Pool, fn func(Valid[E]) error) error {
	return par.ForEach(ctx, pool, a.entries, 0, func(i int, e entry) error {
		if e.state != slotAlive {
			return nil
		}
		return fn(Valid[E]{id: ID[E]{index: uint32(i), gen: e.gen}})
	})
}

// Len returns the number of live handles.
func (a *Allocator[E]) Len() int {
	return a.live
}

// Cap returns the number of slots ever appended.
func (a *Allocator[E]) Cap() int {
	return len(a.entries)
}

// Retired returns the number of slots withdrawn by slot retirement.
func (a *Allocator[E]) Retired() int {
	return a.retired
}

// Checksum returns the digest of every kill so far.
func (a *Allocator[E]) Checksum() AllocGen[E] {
	return a.sum
}

// Sync describes how far a recorded checksum lags the allocator.
type Sync uint8

const (
	// InSync means the checksum matches.
	InSync Sync = iota
	// OneBehind means exactly one kill happened since the checksum was recorded.
	OneBehind
	// Outdated means the history cannot be reconstructed cheaply.
	Outdated
)

// Compare classifies a recorded checksum against the allocator. For OneBehind it
// also returns the handle killed since.
func (a *Allocator[E]) Compare(g AllocGen[E]) (Sync, ID[E]) {
	switch {
	case g == a.sum:
		return InSync, None[E]()
	case a.last.ok && a.last.before == g:
		return OneBehind, a.last.id
	default:
		return Outdated, None[E]()
	}
}

// CreateOnly returns a view that can issue handles but never kill them.
func (a *Allocator[E]) CreateOnly() *CreateOnly[E] {
	return &CreateOnly[E]{alloc: a}
}

var _ Validator[Dynamic] = (*Allocator[Dynamic])(nil)
var _ Tracker[Dynamic] = (*Allocator[Dynamic])(nil)
