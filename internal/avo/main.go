//go:build avogen
// +build avogen

package main

import (
	. "github.com/mmcloughlin/avo/build"
)

func main() {
	Package("github.com/Akron/filtervec")
	ConstraintExpr("amd64,!purego")

	genTable8Kernel()
	genCompress16Kernel()

	Generate()
}
