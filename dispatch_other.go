//go:build !amd64 || purego

package filtervec

// initSIMDSelection keeps the portable kernels.
func initSIMDSelection() {}
