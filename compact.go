package filtervec

import "math/bits"

// compactor writes the lanes of a window selected by a mask contiguously, in
// ascending lane order, and reports how many it selected. The lane indices are
// passed by value so the window loop's payload stays on the stack.
type compactor interface {
	// Lanes returns the window width.
	Lanes() int
	// Compact writes the selected lanes of ids to the front of dst and returns
	// popcount(mask). dst must have room for a full window.
	Compact(dst []uint32, ids [maxLanes]uint32, mask uint32) int
}

// permTable8 maps every 8-lane mask to the lane order that moves its set lanes
// to the front. Read-only after package initialization.
var permTable8 = buildPermTable8()

func buildPermTable8() *[1 << lanes8][lanes8]uint32 {
	var t [1 << lanes8][lanes8]uint32
	for m := range t {
		permutation(uint32(m), lanes8, t[m][:])
	}
	return &t
}

// permutation fills dst[:width] with the positions of the set bits of mask in
// ascending order, followed by lane 0 in the unused slots.
func permutation(mask uint32, width int, dst []uint32) {
	n := 0
	for lane := range width {
		if mask&(1<<lane) != 0 {
			dst[n] = uint32(lane)
			n++
		}
	}
	clear(dst[n:width])
}

// tableCompactor permutes a full 8-lane window with permTable8 and stores all
// of it; only the first popcount(mask) slots are meaningful. The trailing
// slots are overwritten by the next window or cut off by the final length.
type tableCompactor struct {
	table *[1 << lanes8][lanes8]uint32
}

func (tableCompactor) Lanes() int { return lanes8 }

func (c tableCompactor) Compact(dst []uint32, ids [maxLanes]uint32, mask uint32) int {
	perm := &c.table[mask&0xff]
	out := dst[:lanes8:lanes8]
	for i, p := range perm {
		out[i] = ids[p&(lanes8-1)]
	}
	return bits.OnesCount32(mask & 0xff)
}

// compressCompactor stores only the selected lanes of a 16-lane window, like
// a masked compress-store. Nothing past popcount(mask) is written.
type compressCompactor struct{}

func (compressCompactor) Lanes() int { return lanes16 }

func (compressCompactor) Compact(dst []uint32, ids [maxLanes]uint32, mask uint32) int {
	n := 0
	for m := mask & 0xffff; m != 0; m &= m - 1 {
		dst[n] = ids[bits.TrailingZeros32(m)]
		n++
	}
	return n
}

// filterWindows is the portable window loop: mask, compact, advance the
// cursor by the popcount and the lane indices by the width. len(input) must be
// a multiple of c.Lanes() and dst must hold len(input) values.
func filterWindows(dst, input []uint32, r Range, c compactor, mask maskFunc) int {
	width := c.Lanes()
	lo, hi := r.signed()
	ids := newLaneIDs(width)
	cur := cursor{buf: dst}
	for off := 0; off+width <= len(input); off += width {
		m := mask(input[off:off+width], lo, hi)
		cur.advance(c.Compact(cur.tail(), ids.ids, m))
		ids.advance()
	}
	return cur.off
}

func filterTable8Generic(dst, input []uint32, r Range) int {
	return filterWindows(dst, input, r, tableCompactor{table: permTable8}, maskOutside)
}

func filterCompress16Generic(dst, input []uint32, r Range) int {
	return filterWindows(dst, input, r, compressCompactor{}, maskInside)
}
