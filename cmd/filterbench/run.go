package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/Akron/filtervec"
)

// runCommand filters the same generated input with every selected kernel and
// reports the throughput in input elements per second.
type runCommand struct {
	logger func() log.Logger

	size       *int
	maxValue   *uint32
	lo, hi     *uint32
	iterations *int
	seed       *uint64
	kernels    *[]string
}

func (cmd *runCommand) run(*kingpin.ParseContext) error {
	logger := cmd.logger()

	r, err := filtervec.NewRange(*cmd.lo, *cmd.hi)
	if err != nil {
		return err
	}
	if *cmd.maxValue == 0 {
		return errors.New("max-value must be positive")
	}
	kernels, err := cmd.selectedKernels()
	if err != nil {
		return err
	}

	input := generate(*cmd.size, *cmd.maxValue, *cmd.seed)
	want, err := filtervec.FilterScalar(nil, input, r)
	if err != nil {
		return err
	}
	level.Info(logger).Log("msg", "generated input", "size", len(input), "max_value", *cmd.maxValue, "range", r, "matches", len(want))

	bold := color.New(color.Bold)
	bold.Printf("filter-interval %v over %s values\n", r, humanize.Comma(int64(len(input))))

	output := make([]uint32, 0, len(input))
	for _, k := range kernels {
		output, err = filtervec.FilterKernel(k, output, input, r)
		if errors.Is(err, filtervec.ErrMisalignedLength) {
			level.Warn(logger).Log("msg", "skipping kernel", "kernel", k, "err", err)
			continue
		}
		if err != nil {
			return err
		}
		if !slices.Equal(output, want) {
			return fmt.Errorf("kernel %s: got %d matches, want %d", k, len(output), len(want))
		}

		start := time.Now()
		for range *cmd.iterations {
			output, _ = filtervec.FilterKernel(k, output, input, r)
		}
		elapsed := time.Since(start)

		rate := float64(len(input)) * float64(*cmd.iterations) / elapsed.Seconds()
		fmt.Printf("\t%-10s thrpt: %s (accelerated: %v)\n", k, humanize.SI(rate, "elem/s"), filtervec.Accelerated(k))
		level.Debug(logger).Log("msg", "kernel done", "kernel", k, "iterations", *cmd.iterations, "elapsed", elapsed)
	}
	return nil
}

func (cmd *runCommand) selectedKernels() ([]filtervec.Kernel, error) {
	if len(*cmd.kernels) == 0 {
		return filtervec.Kernels(), nil
	}
	kernels := make([]filtervec.Kernel, 0, len(*cmd.kernels))
	for _, name := range *cmd.kernels {
		k, ok := filtervec.ParseKernel(name)
		if !ok {
			return nil, fmt.Errorf("unknown kernel %q", name)
		}
		kernels = append(kernels, k)
	}
	return kernels, nil
}

// generate returns size values drawn uniformly from [0, maxValue).
func generate(size int, maxValue uint32, seed uint64) []uint32 {
	rng := rand.New(rand.NewPCG(seed, seed))
	values := make([]uint32, size)
	for i := range values {
		values[i] = rng.Uint32N(maxValue)
	}
	return values
}

func addRunCommand(app *kingpin.Application, logger func() log.Logger) {
	cmd := &runCommand{logger: logger}
	run := app.Command("run", "Time every kernel on generated input.").Default().Action(cmd.run)
	cmd.size = run.Flag("size", "Number of input values.").Default("1048576").Int()
	cmd.maxValue = run.Flag("max-value", "Input values are drawn from [0, max-value).").Default("16").Uint32()
	cmd.lo = run.Flag("lo", "Inclusive lower bound.").Default("4").Uint32()
	cmd.hi = run.Flag("hi", "Inclusive upper bound.").Default("12").Uint32()
	cmd.iterations = run.Flag("iterations", "Timed iterations per kernel.").Default("100").Int()
	cmd.seed = run.Flag("seed", "Random seed for the input.").Default("42").Uint64()
	cmd.kernels = run.Flag("kernel", "Kernel to run (repeatable); all kernels by default.").Enums(kernelNames()...)
}

func kernelNames() []string {
	var names []string
	for _, k := range filtervec.Kernels() {
		names = append(names, k.String())
	}
	return names
}
