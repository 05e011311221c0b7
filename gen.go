package genid

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
)

// Gen is the generation tag of a dynamic handle. Zero is reserved: it is the tag of
// every static handle and never matches a dynamic slot.
type Gen uint16

const (
	// NoGen is the tag carried by static handles.
	NoGen Gen = 0
	// MinGen is the generation of a freshly appended dynamic slot.
	MinGen Gen = 1
	// MaxGen is the last generation before wrapping back to MinGen.
	MaxGen Gen = math.MaxUint16
)

// Next returns the generation that follows g, wrapping from MaxGen to MinGen.
func (g Gen) Next() Gen {
	if g >= MaxGen {
		return MinGen
	}
	return g + 1
}

// IsZero reports whether g is the reserved unused tag.
func (g Gen) IsZero() bool {
	return g == NoGen
}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// AllocGen is an order-sensitive digest over every kill observed for one entity kind.
// Two values are equal iff they have seen the same kills in the same order. The zero
// value is the empty history.
type AllocGen[E Entity] struct {
	sum uint32
}

// AllocGenFrom rebuilds a checksum from its accumulator value.
func AllocGenFrom[E Entity](sum uint32) AllocGen[E] {
	return AllocGen[E]{sum: sum}
}

// Value returns the raw accumulator.
func (g AllocGen[E]) Value() uint32 {
	return g.sum
}

// Advance folds the kill of id into the digest.
func (g *AllocGen[E]) Advance(id ID[E]) {
	var buf [6]byte
	binary.LittleEndian.PutUint32(buf[:4], id.index)
	binary.LittleEndian.PutUint16(buf[4:], uint16(id.gen.Next()))
	g.sum = crc32.Update(g.sum, castagnoli, buf[:])
}

// After returns the digest that results from killing ids in order.
func (g AllocGen[E]) After(ids ...ID[E]) AllocGen[E] {
	for _, id := range ids {
		g.Advance(id)
	}
	return g
}

func (g AllocGen[E]) String() string {
	return fmt.Sprintf("AllocGen(%08x)", g.sum)
}
