//go:build avogen
// +build avogen

package main

import (
	"fmt"

	. "github.com/mmcloughlin/avo/build"
	op "github.com/mmcloughlin/avo/operand"
	"github.com/mmcloughlin/avo/reg"
)

// This file generates the range filter window loops.
//
// Both kernels keep a vector of lane indices that starts at [0, 1, ..., W-1]
// and is incremented by W after every window. The inclusion mask of a window
// selects which of those indices reach the output, and the output pointer
// advances by popcount(mask).
//
// table8 (AVX2) has no compress instruction. It looks up a permutation for
// the 8-bit mask in a 256-entry table supplied by the Go side, moves the kept
// indices to the front with VPERMD and stores the whole register. The store
// may write up to 8 values past the final length, so the output must be
// reserved to the input length.
//
// compress16 (AVX-512F) builds the mask in an opmask register and stores the
// kept indices with VPCOMPRESSD, which writes nothing else.
//
// Lanes are compared as signed int32. The Go side restricts bounds to
// [0, 1<<31-1] so the signed order matches the unsigned one.

// laneConstants emits the initial lane indices and the per-window increment.
func laneConstants(width int) (ids, shift op.Mem) {
	ids = GLOBL(fmt.Sprintf("lane_ids%d", width), RODATA|NOPTR)
	for i := 0; i < width; i++ {
		DATA(4*i, op.U32(i))
	}
	shift = GLOBL(fmt.Sprintf("lane_shift%d", width), RODATA|NOPTR)
	for i := 0; i < width; i++ {
		DATA(4*i, op.U32(width))
	}
	return ids, shift
}

func genTable8Kernel() {
	idsConst, shiftConst := laneConstants(8)

	TEXT("filterTable8AVX2", NOSPLIT, "func(in *uint32, words int, lo, hi uint32, out *uint32, perm *[256][8]uint32) int")
	Doc(
		"filterTable8AVX2 filters words 8-lane windows of in into out using the permutation table perm.",
		"Every window stores a full register; the return value is the number of indices kept.",
	)
	Pragma("noescape")

	in := Load(Param("in"), GP64()).(reg.GPVirtual)
	words := Load(Param("words"), GP64())
	outBase := Load(Param("out"), GP64())
	perm := Load(Param("perm"), GP64())

	outPtr := GP64()
	MOVQ(outBase, outPtr)

	bound := GP32()
	loVec, hiVec := YMM(), YMM()
	loLane, hiLane := XMM(), XMM()
	Load(Param("lo"), bound)
	VMOVD(bound, loLane)
	VPBROADCASTD(loLane, loVec)
	Load(Param("hi"), bound)
	VMOVD(bound, hiLane)
	VPBROADCASTD(hiLane, hiVec)

	ids, shift := YMM(), YMM()
	VMOVDQU(idsConst, ids)
	VMOVDQU(shiftConst, shift)

	loop := "table8_loop"
	done := "table8_done"

	TESTQ(words, words)
	JZ(op.LabelRef(done))

	Label(loop)
	val, tooLow, tooHigh := YMM(), YMM(), YMM()
	Comment("too_low = lo > v, too_high = v > hi")
	VMOVDQU(op.Mem{Base: in}, val)
	VPCMPGTD(val, loVec, tooLow)
	VPCMPGTD(hiVec, val, tooHigh)
	VPOR(tooLow, tooHigh, tooLow)

	Comment("keep = ^movemask(too_low | too_high)")
	keep := GP32()
	VMOVMSKPS(tooLow, keep)
	XORL(op.Imm(0xff), keep)

	Comment("Move the kept lane indices to the front and store the whole register.")
	row := GP64()
	MOVL(keep, row.As32())
	SHLQ(op.Imm(5), row)
	packed := YMM()
	VMOVDQU(op.Mem{Base: perm, Index: row, Scale: 1}, packed)
	VPERMD(ids, packed, packed)
	VMOVDQU(packed, op.Mem{Base: outPtr})

	Comment("Advance the output by popcount(keep) and the indices by 8.")
	POPCNTL(keep, keep)
	LEAQ(op.Mem{Base: outPtr, Index: keep.As64(), Scale: 4}, outPtr)
	VPADDD(shift, ids, ids)
	ADDQ(op.Imm(32), in)
	DECQ(words)
	JNZ(op.LabelRef(loop))

	Label(done)
	SUBQ(outBase, outPtr)
	SHRQ(op.Imm(2), outPtr)
	Store(outPtr, ReturnIndex(0))
	VZEROUPPER()
	RET()
}

func genCompress16Kernel() {
	idsConst, shiftConst := laneConstants(16)

	TEXT("filterCompress16AVX512", NOSPLIT, "func(in *uint32, words int, lo, hi uint32, out *uint32) int")
	Doc(
		"filterCompress16AVX512 filters words 16-lane windows of in into out with VPCOMPRESSD.",
		"Only the selected lanes are stored; the return value is the number of indices kept.",
	)
	Pragma("noescape")

	in := Load(Param("in"), GP64()).(reg.GPVirtual)
	words := Load(Param("words"), GP64())
	outBase := Load(Param("out"), GP64())

	outPtr := GP64()
	MOVQ(outBase, outPtr)

	bound := GP32()
	loVec, hiVec := ZMM(), ZMM()
	Load(Param("lo"), bound)
	VPBROADCASTD(bound, loVec)
	Load(Param("hi"), bound)
	VPBROADCASTD(bound, hiVec)

	ids, shift := ZMM(), ZMM()
	VMOVDQU32(idsConst, ids)
	VMOVDQU32(shiftConst, shift)

	loop := "compress16_loop"
	done := "compress16_done"

	TESTQ(words, words)
	JZ(op.LabelRef(done))

	Label(loop)
	val := ZMM()
	geLo, keep := K(), K()
	Comment("keep = (lo <= v) & (v <= hi)")
	VMOVDQU32(op.Mem{Base: in}, val)
	VPCMPD(op.Imm(2), val, loVec, geLo)
	VPCMPD(op.Imm(2), hiVec, val, geLo, keep)

	Comment("Store only the kept lane indices.")
	VPCOMPRESSD(ids, keep, op.Mem{Base: outPtr})

	Comment("Advance the output by popcount(keep) and the indices by 16.")
	count := GP32()
	KMOVW(keep, count)
	POPCNTL(count, count)
	LEAQ(op.Mem{Base: outPtr, Index: count.As64(), Scale: 4}, outPtr)
	VPADDD(shift, ids, ids)
	ADDQ(op.Imm(64), in)
	DECQ(words)
	JNZ(op.LabelRef(loop))

	Label(done)
	SUBQ(outBase, outPtr)
	SHRQ(op.Imm(2), outPtr)
	Store(outPtr, ReturnIndex(0))
	VZEROUPPER()
	RET()
}
