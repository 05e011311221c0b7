package genid

import "errors"

var (
	// ErrInvalidHandle indicates a handle built from the reserved sentinel index.
	ErrInvalidHandle = errors.New("genid: invalid handle")
	// ErrOutOfSync indicates a dependent collection missed or replayed kills of its allocator.
	ErrOutOfSync = errors.New("genid: collection out of sync with allocator")
	// ErrIndexGap indicates a dense insert past the next sequential index.
	ErrIndexGap = errors.New("genid: insert skips ahead of dense storage")
	// ErrRangeAppend indicates a non-adjacent append to a contiguous range.
	ErrRangeAppend = errors.New("genid: non-adjacent range append")
	// ErrRelationConflict indicates a child claimed by a second parent.
	ErrRelationConflict = errors.New("genid: child already claimed by another parent")
	// ErrStaticKill indicates a kill routed to a static entity kind.
	ErrStaticKill = errors.New("genid: static entities cannot be killed")
	// ErrCorruptFreeList indicates a live slot was found on the free list.
	ErrCorruptFreeList = errors.New("genid: live slot on free list")
	// ErrInvalidEncoding is returned when decoding receives malformed bytes.
	ErrInvalidEncoding = errors.New("genid: invalid encoding")
	// ErrCorruptSnapshot is returned when a decoded allocator breaks its invariants.
	ErrCorruptSnapshot = errors.New("genid: corrupt allocator snapshot")
	// ErrEmptyName is returned when a registry receives an empty resource name.
	ErrEmptyName = errors.New("genid: empty resource name")
	// ErrNilResource is returned when registering a nil resource.
	ErrNilResource = errors.New("genid: nil resource")
	// ErrAlreadyRegistered indicates an attempt to register the same name twice.
	ErrAlreadyRegistered = errors.New("genid: resource already registered")
	// ErrNotRegistered signals lookup of an unknown resource.
	ErrNotRegistered = errors.New("genid: resource not registered")
	// ErrResourceType signals a resource of an unexpected type.
	ErrResourceType = errors.New("genid: resource has unexpected type")
	// ErrNilBuffer is returned when applying a nil command buffer.
	ErrNilBuffer = errors.New("genid: nil command buffer")
)
