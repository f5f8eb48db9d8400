package filtervec

// laneIDs is the index payload of the window loop: the global positions held
// by the lanes of the current window. It starts as [0, 1, ..., width-1] and is
// advanced by a broadcast width after each window.
type laneIDs struct {
	ids   [maxLanes]uint32
	width int
}

func newLaneIDs(width int) laneIDs {
	l := laneIDs{width: width}
	for i := range width {
		l.ids[i] = uint32(i)
	}
	return l
}

// advance moves the payload to the next window.
func (l *laneIDs) advance() {
	shift := uint32(l.width)
	for i := range l.width {
		l.ids[i] += shift
	}
}

// cursor is the append position into an output buffer reserved to the input
// length. Positions past off may hold scratch written by a compactor; they are
// dropped when the buffer is truncated to off.
type cursor struct {
	buf []uint32
	off int
}

// tail returns the writable region starting at the cursor.
func (c *cursor) tail() []uint32 {
	return c.buf[c.off:]
}

func (c *cursor) advance(n int) {
	c.off += n
}
