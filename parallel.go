package filtervec

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// chunkAlign keeps every chunk but the last a multiple of all lane widths, so
// each chunk runs entirely on the vector kernel.
const chunkAlign = lanes16

// minChunk is the smallest chunk worth a goroutine.
const minChunk = 1 << 14

// FilterParallel splits input into lane-aligned chunks and filters them on up
// to workers goroutines (GOMAXPROCS if workers <= 0). Each chunk gets a
// disjoint slice of input and of the reserved output, so the single-threaded
// kernel never shares state. The result equals Filter's.
//
// Cancelling ctx stops chunks that have not started; the error is then
// ctx.Err() and dst holds no output.
func FilterParallel(ctx context.Context, dst, input []uint32, r Range, workers int) ([]uint32, error) {
	if err := r.Validate(); err != nil {
		return dst[:0], err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := chunkSize(len(input), workers)
	if chunk >= len(input) {
		return Filter(dst, input, r)
	}

	dst = reserve(dst, len(input))
	numChunks := (len(input) + chunk - 1) / chunk
	counts := make([]int, numChunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for c := range numChunks {
		start := c * chunk
		end := min(start+chunk, len(input))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := Filter(dst[start:start:end], input[start:end], r)
			if err != nil {
				return err
			}
			rebase(out, uint32(start))
			counts[c] = len(out)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return dst[:0], err
	}

	// Chunk c's results sit at its own start; move them down behind the
	// previous chunks. Destinations never pass their source, so copy is safe.
	n := 0
	for c, cnt := range counts {
		start := c * chunk
		n += copy(dst[n:], dst[start:start+cnt])
	}
	return dst[:n], nil
}

// chunkSize divides n values among workers, rounded up to chunkAlign.
func chunkSize(n, workers int) int {
	size := max((n+workers-1)/workers, minChunk)
	return (size + chunkAlign - 1) / chunkAlign * chunkAlign
}

// rebase shifts chunk-local positions to input positions.
func rebase(ids []uint32, base uint32) {
	if base == 0 {
		return
	}
	for i := range ids {
		ids[i] += base
	}
}
