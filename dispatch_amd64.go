//go:build amd64 && !purego

package filtervec

import "golang.org/x/sys/cpu"

//go:generate go run -tags avogen ./internal/avo -pkg filtervec -out filter_amd64.s -stubs filter_amd64_stub.go

func initSIMDSelection() {
	if !cpu.X86.HasPOPCNT {
		return
	}
	if cpu.X86.HasAVX2 {
		filterTable8Impl = filterTable8AVX2Wrapper
		table8Accelerated = true
	}
	if cpu.X86.HasAVX512F {
		filterCompress16Impl = filterCompress16AVX512Wrapper
		compress16Accelerated = true
	}
}

// filterTable8AVX2Wrapper runs the whole window loop in assembly. The kernel
// stores full 8-lane registers, so dst must hold len(input) values.
func filterTable8AVX2Wrapper(dst, input []uint32, r Range) int {
	if len(input) == 0 {
		return 0
	}
	_ = dst[len(input)-1]
	return filterTable8AVX2(&input[0], len(input)/lanes8, r.Lo, r.Hi, &dst[0], permTable8)
}

func filterCompress16AVX512Wrapper(dst, input []uint32, r Range) int {
	if len(input) == 0 {
		return 0
	}
	_ = dst[len(input)-1]
	return filterCompress16AVX512(&input[0], len(input)/lanes16, r.Lo, r.Hi, &dst[0])
}
