package filtervec

// Window masks carry one bit per lane: bit i is set iff lane i matched.
// Lanes are compared as signed 32-bit integers, like the hardware
// comparisons; values at or above 1<<31 turn negative and fall below any
// valid lower bound.

// maskFunc computes the inclusion mask of a window.
type maskFunc func(win []uint32, lo, hi int32) uint32

// maskOutside computes the mask as NOT(v < lo OR v > hi), the form used by the
// AVX2 kernel (VPCMPGTD twice, VPOR, VMOVMSKPS).
func maskOutside(win []uint32, lo, hi int32) uint32 {
	var tooLow, tooHigh uint32
	for i, v := range win {
		tooLow |= b2u(lo > int32(v)) << i
		tooHigh |= b2u(int32(v) > hi) << i
	}
	return ^(tooLow | tooHigh) & laneMask(len(win))
}

// maskInside computes the mask as (lo <= v) AND (v <= hi), the form used by
// the AVX-512 kernel (two VPCMPD with predicate LE).
func maskInside(win []uint32, lo, hi int32) uint32 {
	var geLo, leHi uint32
	for i, v := range win {
		geLo |= b2u(lo <= int32(v)) << i
		leHi |= b2u(int32(v) <= hi) << i
	}
	return geLo & leHi
}

// laneMask has the low n bits set.
func laneMask(n int) uint32 {
	return uint32(1)<<n - 1
}

// b2u converts without a branch; the compiler lowers it to SETcc.
func b2u(b bool) uint32 {
	var u uint32
	if b {
		u = 1
	}
	return u
}
