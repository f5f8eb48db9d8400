// Package filtervec implements a range-selection kernel over dense uint32
// arrays.
//
// Given the input values and an inclusive range [lo, hi], the kernel writes the
// ascending positions whose value lies in the range. The vectorized kernels
// process fixed-width lane windows: every window yields an inclusion bitmask,
// and the lane indices selected by that mask are compacted contiguously into
// the output. Two compaction strategies are provided:
//
//   - table8: a 256-entry permutation table moves the selected indices of an
//     8-lane window to the front of the register (AVX2 VPERMD on amd64).
//   - compress16: a masked compress-store writes the selected indices of a
//     16-lane window (AVX-512 VPCOMPRESSD on amd64).
//
// On hardware without the required instructions both strategies run as
// portable Go code with identical results. Callers provide the destination
// slice so buffers can be reused across calls without repeated heap
// allocations. The package maintains no global mutable state beyond the
// kernel selection made once at init.
package filtervec

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when the range bounds are outside
	// 0 <= lo <= hi <= MaxBound.
	ErrInvalidRange = errors.New("filtervec: invalid range")

	// ErrMisalignedLength is returned when a vector kernel receives an input
	// whose length is not a multiple of its lane width.
	ErrMisalignedLength = errors.New("filtervec: misaligned length")

	// ErrUnknownKernel is returned by FilterKernel for an undefined Kernel.
	ErrUnknownKernel = errors.New("filtervec: unknown kernel")
)

// Filter writes into dst the ascending positions i with r.Lo <= input[i] <= r.Hi
// and returns the resulting slice. Previous contents of dst are discarded;
// its storage is reused when the capacity covers len(input).
//
// Filter runs the active kernel (see ActiveKernel) over the largest prefix of
// input that is a multiple of the kernel's lane width and finishes the
// remaining elements with the branchless scalar scan, so input may have any
// length.
func Filter(dst, input []uint32, r Range) ([]uint32, error) {
	if err := r.Validate(); err != nil {
		return dst[:0], err
	}
	k := activeKernel
	lanes := k.Lanes()
	head := len(input) - len(input)%lanes

	dst = reserve(dst, len(input))
	n := kernelImpl(k)(dst[:head], input[:head], r)
	n += filterBranchlessFrom(dst[n:], input[head:], r, uint32(head))
	return dst[:n], nil
}

// FilterKernel runs the given kernel. Vector kernels require len(input) to be
// a multiple of k.Lanes() and fail with ErrMisalignedLength otherwise.
func FilterKernel(k Kernel, dst, input []uint32, r Range) ([]uint32, error) {
	if !k.valid() {
		return dst[:0], fmt.Errorf("%w: %d", ErrUnknownKernel, uint8(k))
	}
	if err := r.Validate(); err != nil {
		return dst[:0], err
	}
	if err := checkAligned(len(input), k.Lanes()); err != nil {
		return dst[:0], err
	}
	dst = reserve(dst, len(input))
	n := kernelImpl(k)(dst, input, r)
	return dst[:n], nil
}

// FilterTable8 filters with the permutation-table strategy on 8-lane windows.
// len(input) must be a multiple of 8.
func FilterTable8(dst, input []uint32, r Range) ([]uint32, error) {
	return FilterKernel(KernelTable8, dst, input, r)
}

// FilterCompress16 filters with the compress-store strategy on 16-lane
// windows. len(input) must be a multiple of 16.
func FilterCompress16(dst, input []uint32, r Range) ([]uint32, error) {
	return FilterKernel(KernelCompress16, dst, input, r)
}

// reserve returns a slice of length n over dst's storage, or a fresh one when
// dst is too small. Old contents are never carried over: every kernel writes
// from offset 0 and the caller truncates to the written count.
func reserve(dst []uint32, n int) []uint32 {
	if cap(dst) >= n {
		return dst[:n]
	}
	return make([]uint32, n)
}
