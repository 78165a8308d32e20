package recs

import (
	"math/bits"

	"github.com/kelindar/bitmap"
)

// maskWords is the number of 64-bit words backing a ComponentMask, giving it
// room for MaxTypes bits.
const maskWords = MaxTypes / 64

// ComponentMask is a fixed-width set of TypeIDs. It is the archetype key:
// two entities with the same ComponentMask live in the same Archetype.
//
// The bits live in a plain [maskWords]uint64 rather than a bitmap.Bitmap
// directly, because a ComponentMask is used as a map key throughout (the
// archetype table, the query cache) and a slice-backed type cannot satisfy
// Go's comparability requirement for map keys. Set and PopCount borrow a
// bitmap.Bitmap view over that same backing array; the other operations
// work on the words directly.
type ComponentMask struct {
	bits [maskWords]uint64
}

// Set marks t as present in the mask.
func (m *ComponentMask) Set(t TypeID) {
	bm := bitmap.Bitmap(m.bits[:])
	bm.Set(uint32(t))
}

// Reset clears t from the mask.
func (m *ComponentMask) Reset(t TypeID) {
	word, bit := int(t/64), uint(t%64)
	m.bits[word] &^= uint64(1) << bit
}

// Test reports whether t is present in the mask.
func (m ComponentMask) Test(t TypeID) bool {
	word, bit := int(t/64), uint(t%64)
	return m.bits[word]&(uint64(1)<<bit) != 0
}

// Intersect returns the bitwise AND of m and other.
func (m ComponentMask) Intersect(other ComponentMask) ComponentMask {
	var out ComponentMask
	for i := range out.bits {
		out.bits[i] = m.bits[i] & other.bits[i]
	}
	return out
}

// Union returns the bitwise OR of m and other.
func (m ComponentMask) Union(other ComponentMask) ComponentMask {
	var out ComponentMask
	for i := range out.bits {
		out.bits[i] = m.bits[i] | other.bits[i]
	}
	return out
}

// Equal reports whether m and other have exactly the same bits set.
func (m ComponentMask) Equal(other ComponentMask) bool {
	return m.bits == other.bits
}

// Empty reports whether no bit is set.
func (m ComponentMask) Empty() bool {
	return m.bits == [maskWords]uint64{}
}

// PopCount returns the number of set bits.
func (m ComponentMask) PopCount() int {
	bm := m.bits
	return bitmap.Bitmap(bm[:]).Count()
}

// TestAll reports whether every bit set in required is also set in m. This
// is the relation the World's archetype and query lookups use: an
// archetype satisfies a query's access mask when it TestAll-contains it.
func (m ComponentMask) TestAll(required ComponentMask) bool {
	intersect := m.Intersect(required)
	return intersect.PopCount() == required.PopCount()
}

// TestAny reports whether m and other share at least one set bit.
func (m ComponentMask) TestAny(other ComponentMask) bool {
	for i := range m.bits {
		if m.bits[i]&other.bits[i] != 0 {
			return true
		}
	}
	return false
}

// PopCountLeftOf counts the set bits whose position is strictly less than
// pos. Chunk column storage is ordered by ascending type id, so this is
// exactly the column ordinal for the component at position pos: the number
// of other present components that sort before it.
func (m ComponentMask) PopCountLeftOf(pos int) int {
	word, bit := pos/64, uint(pos%64)
	count := 0
	for i := 0; i < word; i++ {
		count += bits.OnesCount64(m.bits[i])
	}
	count += bits.OnesCount64(m.bits[word] & (uint64(1)<<bit - 1))
	return count
}

// CountLeadingZeros returns the number of unset bits before the
// highest-position set bit, scanning from the top of the mask.
func (m ComponentMask) CountLeadingZeros() int {
	for i := maskWords - 1; i >= 0; i-- {
		if m.bits[i] != 0 {
			return (maskWords-1-i)*64 + bits.LeadingZeros64(m.bits[i])
		}
	}
	return MaxTypes
}

// CountLeadingOnes returns the number of set bits at the very top of the
// mask, before the first unset bit.
func (m ComponentMask) CountLeadingOnes() int {
	count := 0
	for i := maskWords - 1; i >= 0; i-- {
		lz := bits.LeadingZeros64(^m.bits[i])
		count += lz
		if lz != 64 {
			return count
		}
	}
	return count
}

// CountTrailingZeros returns the number of unset bits before the
// lowest-position set bit.
func (m ComponentMask) CountTrailingZeros() int {
	for i := 0; i < maskWords; i++ {
		if m.bits[i] != 0 {
			return i*64 + bits.TrailingZeros64(m.bits[i])
		}
	}
	return MaxTypes
}

// CountTrailingOnes returns the number of set bits at the very bottom of
// the mask, before the first unset bit.
func (m ComponentMask) CountTrailingOnes() int {
	count := 0
	for i := 0; i < maskWords; i++ {
		to := bits.TrailingZeros64(^m.bits[i])
		count += to
		if to != 64 {
			return count
		}
	}
	return count
}

// Hash mixes every word of the mask into a single 64-bit value, suitable
// for a custom map/cache bucketing scheme outside of Go's native map keys.
// It follows the PCG-XSL-RR mixing step applied once per word.
func (m ComponentMask) Hash() uint64 {
	var ret uint64
	for _, block := range m.bits {
		ret = bits.RotateLeft64(ret^block, -int(block>>58))
	}
	return ret
}

// TypeIDs returns the set type ids in ascending bit-position order,
// matching the column order chunks store components in.
func (m ComponentMask) TypeIDs() []TypeID {
	out := make([]TypeID, 0, m.PopCount())
	for pos := 0; pos < MaxTypes; pos++ {
		if m.Test(TypeID(pos)) {
			out = append(out, TypeID(pos))
		}
	}
	return out
}

// maskWith returns a copy of m with t set.
func maskWith(m ComponentMask, t TypeID) ComponentMask {
	m.Set(t)
	return m
}

// maskWithout returns a copy of m with t cleared.
func maskWithout(m ComponentMask, t TypeID) ComponentMask {
	m.Reset(t)
	return m
}
