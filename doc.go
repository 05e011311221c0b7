// Package genid issues generational handles and keeps the collections indexed by
// them in step with the allocator that issued them.
//
// An entity kind is a tag type that embeds Static or Dynamic:
//
//	type Unit struct{ genid.Dynamic }
//	type Tile struct{ genid.Static }
//
// Dynamic kinds are created and killed through an Allocator, which reuses slots and
// advances their generation so that a stale handle never matches the new occupant.
// Static kinds are append-only and come from a RangeAllocator.
//
// Every kill folds into an AllocGen checksum. A dependent collection records the
// same kills, either one by one or from a Killed batch, and proves it has not missed
// any by comparing checksums before it hands out Valid handles. Arena ties one
// allocator to its dependents so that a kill batch reaches all of them.
//
// Generations are 16 bits and wrap from MaxGen back to MinGen. A handle held across
// 65535 reuses of its slot aliases the new occupant unless the allocator was built
// with WithSlotRetirement.
//
// Checksum assertions panic with an error wrapping ErrOutOfSync. Building with the
// genid_noinvariants tag compiles them out.
package genid
