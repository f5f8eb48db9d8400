package filtervec

import "github.com/kelseyhightower/envconfig"

// filterFunc writes the matching positions of input into dst, which holds at
// least len(input) values, and returns how many it wrote. The range is valid
// and input is aligned to the kernel's lane width.
type filterFunc func(dst, input []uint32, r Range) int

// Vector kernel implementations. They start as the portable Go renditions and
// are replaced by initSIMDSelection when the CPU has the instructions.
var (
	filterTable8Impl     filterFunc = filterTable8Generic
	filterCompress16Impl filterFunc = filterCompress16Generic
)

var (
	// activeKernel is the kernel used by Filter.
	activeKernel = KernelBranchless
	// kernelOverride is true if FILTERVEC_KERNEL selected activeKernel.
	kernelOverride bool

	table8Accelerated     bool
	compress16Accelerated bool
)

// settings are read from the environment with the FILTERVEC prefix.
type settings struct {
	// Kernel forces the kernel used by Filter, e.g. FILTERVEC_KERNEL=table8.
	Kernel string
}

func init() {
	initSIMDSelection()
	activeKernel = selectKernel()

	if k, ok := kernelFromEnv(); ok {
		activeKernel = k
		kernelOverride = true
	}
}

// kernelFromEnv returns the kernel named by FILTERVEC_KERNEL. Empty and
// unknown names report false.
func kernelFromEnv() (Kernel, bool) {
	var s settings
	if err := envconfig.Process("filtervec", &s); err != nil || s.Kernel == "" {
		return KernelScalar, false
	}
	return ParseKernel(s.Kernel)
}

// selectKernel prefers hardware compress-store, then the hardware table
// permutation. Without either, the portable vector kernels are slower than a
// plain scan, so the branchless scalar kernel is used.
func selectKernel() Kernel {
	switch {
	case compress16Accelerated:
		return KernelCompress16
	case table8Accelerated:
		return KernelTable8
	default:
		return KernelBranchless
	}
}

func kernelImpl(k Kernel) filterFunc {
	switch k {
	case KernelTable8:
		return filterTable8Impl
	case KernelCompress16:
		return filterCompress16Impl
	case KernelBranchless:
		return filterBranchless
	case KernelIter:
		return filterIter
	default:
		return filterScalar
	}
}

// ActiveKernel returns the kernel used by Filter.
func ActiveKernel() Kernel {
	return activeKernel
}

// IsOverridden reports whether FILTERVEC_KERNEL selected the active kernel.
func IsOverridden() bool {
	return kernelOverride
}

// Accelerated reports whether k runs on dedicated vector instructions rather
// than on its portable Go rendition. Scalar kernels report false.
func Accelerated(k Kernel) bool {
	switch k {
	case KernelTable8:
		return table8Accelerated
	case KernelCompress16:
		return compress16Accelerated
	default:
		return false
	}
}
