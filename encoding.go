package genid

import (
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	gojson "github.com/goccy/go-json"
)

// Binary layouts are little-endian:
//
//	Gen       u16
//	AllocGen  u32
//	ID        u32 index, then u16 gen for dynamic kinds
//	Allocator "GIDA" | version u8 | flags u8 | slots u32 | free u32 | checksum u32
//	          then per slot: gen u16 | state u8 | next u32
const (
	snapshotMagic   = "GIDA"
	snapshotVersion = 1
	snapshotHeader  = 4 + 1 + 1 + 4 + 4 + 4
	snapshotSlot    = 2 + 1 + 4

	flagRetire = 1 << 0
)

// MarshalBinary encodes g as two bytes.
func (g Gen) MarshalBinary() ([]byte, error) {
	return binary.LittleEndian.AppendUint16(nil, uint16(g)), nil
}

// UnmarshalBinary decodes two bytes.
func (g *Gen) UnmarshalBinary(data []byte) error {
	if len(data) != 2 {
		return fmt.Errorf("%w: gen needs 2 bytes, got %d", ErrInvalidEncoding, len(data))
	}
	*g = Gen(binary.LittleEndian.Uint16(data))
	return nil
}

// MarshalBinary encodes the accumulator as four bytes.
func (g AllocGen[E]) MarshalBinary() ([]byte, error) {
	return binary.LittleEndian.AppendUint32(nil, g.sum), nil
}

// UnmarshalBinary decodes four bytes.
func (g *AllocGen[E]) UnmarshalBinary(data []byte) error {
	if len(data) != 4 {
		return fmt.Errorf("%w: checksum needs 4 bytes, got %d", ErrInvalidEncoding, len(data))
	}
	g.sum = binary.LittleEndian.Uint32(data)
	return nil
}

func (g AllocGen[E]) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(g.sum)
}

func (g *AllocGen[E]) UnmarshalJSON(data []byte) error {
	return gojson.Unmarshal(data, &g.sum)
}

func idSize[E Entity]() int {
	if KindOf[E]() == KindStatic {
		return 4
	}
	return 6
}

// MarshalBinary encodes the handle. Static handles omit the generation.
func (id ID[E]) MarshalBinary() ([]byte, error) {
	if id.IsNone() {
		return nil, fmt.Errorf("%w: cannot encode the none handle", ErrInvalidEncoding)
	}
	buf := binary.LittleEndian.AppendUint32(make([]byte, 0, 6), id.index)
	if idSize[E]() == 6 {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(id.gen))
	}
	return buf, nil
}

// UnmarshalBinary decodes a handle produced by MarshalBinary.
func (id *ID[E]) UnmarshalBinary(data []byte) error {
	want := idSize[E]()
	if len(data) != want {
		return fmt.Errorf("%w: %s handle needs %d bytes, got %d", ErrInvalidEncoding, EntityName[E](), want, len(data))
	}
	index := binary.LittleEndian.Uint32(data)
	if index == noIndex {
		return fmt.Errorf("%w: reserved index", ErrInvalidEncoding)
	}
	var gen Gen
	if want == 6 {
		gen = Gen(binary.LittleEndian.Uint16(data[4:]))
		if gen.IsZero() {
			return fmt.Errorf("%w: dynamic handle with zero generation", ErrInvalidEncoding)
		}
	}
	*id = ID[E]{index: index, gen: gen}
	return nil
}

type idJSON struct {
	Index uint32 `json:"index"`
	Gen   Gen    `json:"gen,omitempty"`
}

// MarshalJSON encodes the handle as an object; the none handle encodes as null.
func (id ID[E]) MarshalJSON() ([]byte, error) {
	if id.IsNone() {
		return []byte("null"), nil
	}
	return gojson.Marshal(idJSON{Index: id.index, Gen: id.gen})
}

func (id *ID[E]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = None[E]()
		return nil
	}
	var raw idJSON
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	if raw.Index == noIndex {
		return fmt.Errorf("%w: reserved index", ErrInvalidEncoding)
	}
	if KindOf[E]() == KindStatic {
		raw.Gen = NoGen
	} else if raw.Gen.IsZero() {
		return fmt.Errorf("%w: dynamic handle with zero generation", ErrInvalidEncoding)
	}
	*id = ID[E]{index: raw.Index, gen: raw.Gen}
	return nil
}

// MarshalBinary encodes the full slot table, free list and checksum.
func (a *Allocator[E]) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, snapshotHeader+snapshotSlot*len(a.entries))
	buf = append(buf, snapshotMagic...)
	buf = append(buf, snapshotVersion)
	var flags byte
	if a.retire {
		flags |= flagRetire
	}
	buf = append(buf, flags)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(a.entries)))
	buf = binary.LittleEndian.AppendUint32(buf, a.free)
	buf = binary.LittleEndian.AppendUint32(buf, a.sum.sum)
	for _, e := range a.entries {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(e.gen))
		buf = append(buf, byte(e.state))
		buf = binary.LittleEndian.AppendUint32(buf, e.next)
	}
	return buf, nil
}

// UnmarshalBinary replaces the allocator with a decoded snapshot.
func (a *Allocator[E]) UnmarshalBinary(data []byte) error {
	if len(data) < snapshotHeader || string(data[:4]) != snapshotMagic {
		return fmt.Errorf("%w: missing allocator header", ErrInvalidEncoding)
	}
	if data[4] != snapshotVersion {
		return fmt.Errorf("%w: unsupported snapshot version %d", ErrInvalidEncoding, data[4])
	}
	flags := data[5]
	count := binary.LittleEndian.Uint32(data[6:])
	free := binary.LittleEndian.Uint32(data[10:])
	sum := binary.LittleEndian.Uint32(data[14:])
	body := data[snapshotHeader:]
	if uint64(len(body)) != uint64(count)*snapshotSlot {
		return fmt.Errorf("%w: %d slots need %d bytes, got %d", ErrInvalidEncoding, count, uint64(count)*snapshotSlot, len(body))
	}

	entries := make([]entry, count)
	for i := range entries {
		off := i * snapshotSlot
		entries[i] = entry{
			gen:   Gen(binary.LittleEndian.Uint16(body[off:])),
			state: slotState(body[off+2]),
			next:  binary.LittleEndian.Uint32(body[off+3:]),
		}
	}
	return a.restore(entries, free, sum, flags&flagRetire != 0)
}

type allocatorJSON struct {
	Retire   bool       `json:"retire,omitempty"`
	Free     uint32     `json:"free"`
	Checksum uint32     `json:"checksum"`
	Slots    []slotJSON `json:"slots"`
}

type slotJSON struct {
	Gen   Gen    `json:"gen"`
	State uint8  `json:"state"`
	Next  uint32 `json:"next,omitempty"`
}

func (a *Allocator[E]) MarshalJSON() ([]byte, error) {
	snap := allocatorJSON{
		Retire:   a.retire,
		Free:     a.free,
		Checksum: a.sum.sum,
		Slots:    make([]slotJSON, len(a.entries)),
	}
	for i, e := range a.entries {
		snap.Slots[i] = slotJSON{Gen: e.gen, State: uint8(e.state), Next: e.next}
	}
	return gojson.Marshal(snap)
}

func (a *Allocator[E]) UnmarshalJSON(data []byte) error {
	var snap allocatorJSON
	if err := gojson.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	entries := make([]entry, len(snap.Slots))
	for i, s := range snap.Slots {
		entries[i] = entry{gen: s.Gen, state: slotState(s.State), next: s.Next}
	}
	return a.restore(entries, snap.Free, snap.Checksum, snap.Retire)
}

// restore installs decoded state after checking that every slot is well formed and
// that the free list visits each dead slot exactly once.
func (a *Allocator[E]) restore(entries []entry, free, sum uint32, retire bool) error {
	var live, retired, dead int
	for i, e := range entries {
		if e.gen.IsZero() {
			return fmt.Errorf("%w: slot %d has zero generation", ErrCorruptSnapshot, i)
		}
		switch e.state {
		case slotAlive:
			live++
		case slotRetired:
			retired++
		case slotDead:
			dead++
			continue
		default:
			return fmt.Errorf("%w: slot %d has state %d", ErrCorruptSnapshot, i, e.state)
		}
		if e.next != 0 {
			return fmt.Errorf("%w: non-free slot %d links the free list", ErrCorruptSnapshot, i)
		}
	}
	if retired > 0 && !retire {
		return fmt.Errorf("%w: retired slots without slot retirement", ErrCorruptSnapshot)
	}

	visited := roaring.New()
	for link := free; link != 0; {
		index := link - 1
		if index >= uint32(len(entries)) {
			return fmt.Errorf("%w: free list points past slot %d", ErrCorruptSnapshot, len(entries))
		}
		if entries[index].state != slotDead {
			return fmt.Errorf("%w: free list reaches non-dead slot %d", ErrCorruptSnapshot, index)
		}
		if !visited.CheckedAdd(index) {
			return fmt.Errorf("%w: free list cycles at slot %d", ErrCorruptSnapshot, index)
		}
		link = entries[index].next
	}
	if int(visited.GetCardinality()) != dead {
		return fmt.Errorf("%w: %d dead slots, %d reachable from the free list", ErrCorruptSnapshot, dead, visited.GetCardinality())
	}

	*a = Allocator[E]{
		entries: entries,
		free:    free,
		live:    live,
		retired: retired,
		sum:     AllocGen[E]{sum: sum},
		retire:  retire,
	}
	return nil
}
