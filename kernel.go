package filtervec

import (
	"fmt"
	"strings"
)

// Kernel identifies one implementation of the filter operation. All kernels
// produce identical output for the same input and range.
type Kernel uint8

const (
	// KernelScalar is the branch-based linear scan.
	KernelScalar Kernel = iota
	// KernelBranchless writes every index and advances the output by the
	// predicate result.
	KernelBranchless
	// KernelIter collects an iterator over the matching positions.
	KernelIter
	// KernelTable8 compacts 8-lane windows through a permutation table.
	KernelTable8
	// KernelCompress16 compacts 16-lane windows with a masked compress-store.
	KernelCompress16

	numKernels
)

// Lane widths of the vector kernels.
const (
	lanes8  = 8
	lanes16 = 16
	// maxLanes bounds the lane index vector and the window mask.
	maxLanes = lanes16
)

var kernelNames = [numKernels]string{
	KernelScalar:     "scalar",
	KernelBranchless: "branchless",
	KernelIter:       "iter",
	KernelTable8:     "table8",
	KernelCompress16: "compress16",
}

// Kernels returns every defined kernel, scalar ones first.
func Kernels() []Kernel {
	ks := make([]Kernel, 0, numKernels)
	for k := range numKernels {
		ks = append(ks, k)
	}
	return ks
}

// ParseKernel maps a kernel name (case-insensitive) to its Kernel.
func ParseKernel(s string) (Kernel, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kernelNames {
		if name == s {
			return Kernel(k), true
		}
	}
	return KernelScalar, false
}

// String returns the kernel name.
func (k Kernel) String() string {
	if !k.valid() {
		return fmt.Sprintf("kernel(%d)", uint8(k))
	}
	return kernelNames[k]
}

// Lanes returns the number of values processed per window. Scalar kernels
// report 1 and therefore accept any input length.
func (k Kernel) Lanes() int {
	switch k {
	case KernelTable8:
		return lanes8
	case KernelCompress16:
		return lanes16
	default:
		return 1
	}
}

// Vector reports whether k processes multi-lane windows.
func (k Kernel) Vector() bool {
	return k.Lanes() > 1
}

func (k Kernel) valid() bool {
	return k < numKernels
}

// checkAligned fails unless n is a multiple of lanes.
func checkAligned(n, lanes int) error {
	if n%lanes != 0 {
		return fmt.Errorf("%w: length %d is not a multiple of %d lanes", ErrMisalignedLength, n, lanes)
	}
	return nil
}
