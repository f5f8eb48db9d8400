package filtervec

import (
	"iter"
	"slices"
)

// Scalar kernels. They need no lane alignment and serve as the reference the
// vector kernels are checked against, as the fallback on hardware without
// vector support, and as the cleanup pass over unaligned tails.

// FilterScalar filters with a branch per element.
func FilterScalar(dst, input []uint32, r Range) ([]uint32, error) {
	return FilterKernel(KernelScalar, dst, input, r)
}

// FilterBranchless filters without a data-dependent branch: every index is
// written and the output advances by the predicate result.
func FilterBranchless(dst, input []uint32, r Range) ([]uint32, error) {
	return FilterKernel(KernelBranchless, dst, input, r)
}

// FilterIter filters by collecting Matches.
func FilterIter(dst, input []uint32, r Range) ([]uint32, error) {
	return FilterKernel(KernelIter, dst, input, r)
}

// Matches yields the ascending positions of input whose value lies in r.
// The range is not validated; any Lo and Hi are accepted.
func Matches(input []uint32, r Range) iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i, v := range input {
			if r.Contains(v) && !yield(uint32(i)) {
				return
			}
		}
	}
}

func filterScalar(dst, input []uint32, r Range) int {
	n := 0
	for i, v := range input {
		if r.Contains(v) {
			dst[n] = uint32(i)
			n++
		}
	}
	return n
}

func filterBranchless(dst, input []uint32, r Range) int {
	return filterBranchlessFrom(dst, input, r, 0)
}

// filterBranchlessFrom numbers the positions starting at base. dst must hold
// len(input) values.
func filterBranchlessFrom(dst, input []uint32, r Range, base uint32) int {
	if len(input) == 0 {
		return 0
	}
	dst = dst[:len(input)]
	n := 0
	for i, v := range input {
		dst[n] = base + uint32(i)
		n += int(b2u(r.Contains(v)))
	}
	return n
}

// filterIter appends into dst's storage; the capacity reserved by the caller
// keeps AppendSeq from reallocating.
func filterIter(dst, input []uint32, r Range) int {
	return len(slices.AppendSeq(dst[:0], Matches(input, r)))
}
