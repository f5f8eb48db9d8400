package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"
	"github.com/fatih/color"
	"github.com/klauspost/cpuid/v2"

	"github.com/Akron/filtervec"
)

// infoCommand prints the probed CPU features and the kernel selection.
type infoCommand struct{}

func (cmd *infoCommand) run(*kingpin.ParseContext) error {
	bold := color.New(color.Bold)

	bold.Println("CPU:")
	fmt.Printf("\tbrand: %s, vendor: %s\n", cpuid.CPU.BrandName, cpuid.CPU.VendorString)
	fmt.Printf("\tcores: %d physical, %d logical\n", cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)
	for _, f := range []struct {
		name string
		id   cpuid.FeatureID
	}{
		{"popcnt", cpuid.POPCNT},
		{"avx2", cpuid.AVX2},
		{"avx512f", cpuid.AVX512F},
	} {
		fmt.Printf("\t%s: %v\n", f.name, cpuid.CPU.Supports(f.id))
	}

	bold.Println("Kernels:")
	active := filtervec.ActiveKernel()
	for _, k := range filtervec.Kernels() {
		mark := " "
		if k == active {
			mark = "*"
		}
		fmt.Printf("\t%s %-10s lanes: %2d, accelerated: %v\n", mark, k, k.Lanes(), filtervec.Accelerated(k))
	}
	if filtervec.IsOverridden() {
		fmt.Println("\tactive kernel set by FILTERVEC_KERNEL")
	}
	return nil
}

func addInfoCommand(app *kingpin.Application) {
	cmd := &infoCommand{}
	app.Command("info", "Print CPU features and the kernel selection.").Action(cmd.run)
}
