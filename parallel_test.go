package filtervec

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterParallelMatchesFilter(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	r := Range{Lo: 4, Hi: 12}
	for _, n := range []int{0, 100, minChunk, 3*minChunk + 5, 10*minChunk + 13} {
		input := genValues(rng, n, 16)
		want, err := Filter(nil, input, r)
		require.NoError(t, err)

		for _, workers := range []int{0, 1, 2, 3, 8} {
			got, err := FilterParallel(context.Background(), nil, input, r, workers)
			require.NoError(t, err)
			assert.Equalf(t, want, got, "n=%d workers=%d", n, workers)
		}
	}
}

func TestFilterParallelReusesOutput(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	input := genValues(rng, 4*minChunk, 16)
	dst := make([]uint32, 0, len(input))
	got, err := FilterParallel(context.Background(), dst, input, Range{Lo: 0, Hi: 7}, 4)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Same(t, &dst[:1][0], &got[0])
}

func TestFilterParallelInvalidRange(t *testing.T) {
	got, err := FilterParallel(context.Background(), nil, []uint32{1, 2}, Range{Lo: 5, Hi: 1}, 2)
	assert.ErrorIs(t, err, ErrInvalidRange)
	assert.Empty(t, got)
}

func TestFilterParallelCancelled(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	input := genValues(rng, 8*minChunk, 16)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, err := FilterParallel(ctx, nil, input, Range{Lo: 4, Hi: 12}, 4)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, got)
}

func TestChunkSize(t *testing.T) {
	assert.Equal(t, minChunk, chunkSize(100, 4))
	for _, tc := range []struct{ n, workers int }{
		{1 << 20, 3}, {1<<20 + 7, 5}, {5 * minChunk, 7},
	} {
		size := chunkSize(tc.n, tc.workers)
		assert.Zero(t, size%chunkAlign)
		assert.GreaterOrEqual(t, size*tc.workers, tc.n)
	}
}

func TestRebase(t *testing.T) {
	ids := []uint32{0, 3, 9}
	rebase(ids, 64)
	assert.Equal(t, []uint32{64, 67, 73}, ids)
}
