package filtervec

import "fmt"

// MaxBound is the largest accepted range bound. The vector kernels compare
// lanes as signed 32-bit integers, which only agrees with the unsigned order
// on the non-negative half.
const MaxBound = 1<<31 - 1

// Range is an inclusive interval [Lo, Hi] of uint32 values.
type Range struct {
	Lo uint32
	Hi uint32
}

// NewRange returns the validated range [lo, hi].
func NewRange(lo, hi uint32) (Range, error) {
	r := Range{Lo: lo, Hi: hi}
	if err := r.Validate(); err != nil {
		return Range{}, err
	}
	return r, nil
}

// Validate reports ErrInvalidRange unless 0 <= Lo <= Hi <= MaxBound.
func (r Range) Validate() error {
	if r.Hi > MaxBound {
		return fmt.Errorf("%w: upper bound %d exceeds %d", ErrInvalidRange, r.Hi, MaxBound)
	}
	if r.Lo > r.Hi {
		return fmt.Errorf("%w: lower bound %d greater than upper bound %d", ErrInvalidRange, r.Lo, r.Hi)
	}
	return nil
}

// Contains reports whether Lo <= v <= Hi.
func (r Range) Contains(v uint32) bool {
	return r.Lo <= v && v <= r.Hi
}

// String formats the range as [lo, hi].
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d]", r.Lo, r.Hi)
}

// signed returns the bounds as the lane values broadcast by the vector
// kernels. Only meaningful for validated ranges.
func (r Range) signed() (lo, hi int32) {
	return int32(r.Lo), int32(r.Hi)
}
