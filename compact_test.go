package filtervec

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermTable8(t *testing.T) {
	require.Len(t, permTable8[:], 256)
	assert.Equal(t, [lanes8]uint32{}, permTable8[0])
	assert.Equal(t, [lanes8]uint32{0, 1, 2, 3, 4, 5, 6, 7}, permTable8[0xff])
	assert.Equal(t, [lanes8]uint32{1, 3, 4, 7, 0, 0, 0, 0}, permTable8[0b10011010])
	assert.Equal(t, [lanes8]uint32{7, 0, 0, 0, 0, 0, 0, 0}, permTable8[0x80])

	for m := range permTable8 {
		row := permTable8[m]
		n := bits.OnesCount(uint(m))
		for i := 0; i < n; i++ {
			assert.NotZerof(t, m&(1<<row[i]), "mask %08b slot %d lane %d not selected", m, i, row[i])
			if i > 0 {
				assert.Greaterf(t, row[i], row[i-1], "mask %08b not ascending", m)
			}
		}
		for i := n; i < lanes8; i++ {
			assert.Zerof(t, row[i], "mask %08b filler slot %d", m, i)
		}
	}
}

func TestPermutationOtherWidths(t *testing.T) {
	dst := make([]uint32, 4)
	permutation(0b1010, 4, dst)
	assert.Equal(t, []uint32{1, 3, 0, 0}, dst)

	dst = make([]uint32, lanes16)
	permutation(0x8001, lanes16, dst)
	assert.Equal(t, []uint32{0, 15, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, dst)
}

func TestCompactorsAgree(t *testing.T) {
	ids := newLaneIDs(lanes16).ids
	for i := range ids {
		ids[i] += 1000
	}
	table := tableCompactor{table: permTable8}
	compress := compressCompactor{}
	for m := uint32(0); m < 1<<lanes8; m++ {
		a := make([]uint32, lanes8)
		b := make([]uint32, lanes8)
		na := table.Compact(a, ids, m)
		nb := compress.Compact(b, ids, m)
		require.Equal(t, bits.OnesCount32(m), na)
		require.Equal(t, na, nb)
		assert.Equalf(t, a[:na], b[:nb], "mask %08b", m)
	}
}

func TestCompressCompactorWritesOnlySelected(t *testing.T) {
	ids := newLaneIDs(lanes16).ids
	dst := []uint32{99, 99, 99, 99, 99}
	n := compressCompactor{}.Compact(dst, ids, 0b1000_0000_0010_0100)
	assert.Equal(t, 3, n)
	assert.Equal(t, []uint32{2, 5, 15, 99, 99}, dst)
}

func TestTableCompactorWritesFullWindow(t *testing.T) {
	ids := newLaneIDs(lanes8).ids
	dst := []uint32{99, 99, 99, 99, 99, 99, 99, 99, 99}
	n := tableCompactor{table: permTable8}.Compact(dst, ids, 0b0110)
	assert.Equal(t, 2, n)
	// Filler slots hold lane 0; the slot past the window is untouched.
	assert.Equal(t, []uint32{1, 2, 0, 0, 0, 0, 0, 0, 99}, dst)
}

func TestLaneIDs(t *testing.T) {
	ids := newLaneIDs(lanes8)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7}, ids.ids[:lanes8])
	ids.advance()
	ids.advance()
	assert.Equal(t, []uint32{16, 17, 18, 19, 20, 21, 22, 23}, ids.ids[:lanes8])
	assert.Zero(t, ids.ids[lanes8], "inactive lanes stay untouched")

	ids = newLaneIDs(lanes16)
	ids.advance()
	assert.Equal(t, uint32(16), ids.ids[0])
	assert.Equal(t, uint32(31), ids.ids[15])
}

func TestCursorOffsets(t *testing.T) {
	// Window k starts writing at the sum of the popcounts of windows 0..k-1.
	rng := rand.New(rand.NewSource(2))
	input := genValues(rng, 16*lanes16, 10)
	r := Range{Lo: 2, Hi: 6}
	slo, shi := r.signed()

	cur := cursor{buf: make([]uint32, len(input))}
	ids := newLaneIDs(lanes16)
	prefix := 0
	for off := 0; off < len(input); off += lanes16 {
		assert.Equal(t, prefix, cur.off)
		m := maskInside(input[off:off+lanes16], slo, shi)
		cur.advance(compressCompactor{}.Compact(cur.tail(), ids.ids, m))
		ids.advance()
		prefix += bits.OnesCount32(m)
	}
	assert.Equal(t, reference(input, r), cur.buf[:cur.off])
}

func TestGenericVectorKernels(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for _, n := range []int{0, lanes16, 10 * lanes16, 100 * lanes16} {
		input := genValues(rng, n, 20)
		r := Range{Lo: 5, Hi: 14}
		want := reference(input, r)

		dst := make([]uint32, n)
		got := dst[:filterTable8Generic(dst, input, r)]
		assert.Equal(t, len(want), len(got))
		if len(want) > 0 {
			assert.Equal(t, want, got)
		}

		dst = make([]uint32, n)
		got = dst[:filterCompress16Generic(dst, input, r)]
		assert.Equal(t, len(want), len(got))
		if len(want) > 0 {
			assert.Equal(t, want, got)
		}
	}
}
