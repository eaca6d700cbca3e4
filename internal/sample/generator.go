// Package sample produces random numeric samples.
package sample

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Bounds for the per-request sample size.
const (
	MinCount = 1
	MaxCount = 10000
)

// ErrInvalidCount reports a sample size outside [MinCount, MaxCount].
var ErrInvalidCount = errors.New("sample count out of range")

// Generator draws standard-normal samples. It is safe for concurrent
// use; one Generator is shared across all HTTP sessions.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Generate returns n independent standard-normal draws. Each call uses
// fresh randomness; determinism is not guaranteed.
func (g *Generator) Generate(n int) ([]float64, error) {
	if n < MinCount || n > MaxCount {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidCount, n, MinCount, MaxCount)
	}
	values := make([]float64, n)
	g.mu.Lock()
	for i := range values {
		values[i] = g.rnd.NormFloat64()
	}
	g.mu.Unlock()
	return values, nil
}
