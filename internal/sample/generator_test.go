package sample

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCount(t *testing.T) {
	gen := New()
	for _, n := range []int{MinCount, 2, 30, 500, MaxCount} {
		values, err := gen.Generate(n)
		require.NoError(t, err)
		assert.Len(t, values, n)
	}
}

func TestGenerateInvalidCount(t *testing.T) {
	gen := New()
	for _, n := range []int{-1, 0, MaxCount + 1, MaxCount * 10} {
		_, err := gen.Generate(n)
		require.Error(t, err, "n=%d", n)
		assert.ErrorIs(t, err, ErrInvalidCount)
	}
}

func TestGenerateDistributionShape(t *testing.T) {
	gen := New()
	values, err := gen.Generate(MaxCount)
	require.NoError(t, err)

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	// Loose sanity bound; the sample mean of 10k standard-normal draws
	// lands within 0.1 of zero except with vanishing probability.
	assert.Less(t, math.Abs(mean), 0.1)
}

func TestGenerateConcurrent(t *testing.T) {
	// One Generator serves every HTTP session, so concurrent draws on a
	// single instance must be safe under the race detector.
	gen := New()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				values, err := gen.Generate(100)
				assert.NoError(t, err)
				assert.Len(t, values, 100)
			}
		}()
	}
	wg.Wait()
}

func TestGenerateFreshValues(t *testing.T) {
	gen := New()
	first, err := gen.Generate(100)
	require.NoError(t, err)
	second, err := gen.Generate(100)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
