package stats

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinTotals(t *testing.T) {
	values := []float64{-2, -1, -0.5, 0, 0.5, 1, 2}
	h := Bin(values, 4)

	require.Len(t, h.Counts, 4)
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	assert.Equal(t, len(values), total)
	assert.Equal(t, len(values), h.Samples)
	assert.Equal(t, -2.0, h.Min)
	assert.Equal(t, 2.0, h.Max)
}

func TestBinDegenerate(t *testing.T) {
	assert.Equal(t, Histogram{}, Bin(nil, 30))
	assert.Equal(t, Histogram{}, Bin([]float64{1, 2}, 0))
}

func TestBinIdenticalValues(t *testing.T) {
	h := Bin([]float64{3, 3, 3}, 5)
	require.Len(t, h.Counts, 5)
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	assert.Equal(t, 3, total)
}

func TestRenderHistogram(t *testing.T) {
	var buf bytes.Buffer
	h := Bin([]float64{-1, -0.5, 0, 0, 0.5, 1}, 3)

	err := RenderHistogram(&buf, Title(6), h, 60, 0)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Histogram of 6 draws")
	assert.Contains(t, out, "n=6")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// Title + one row per bin + summary line.
	assert.Len(t, lines, 1+3+1)
}

func TestRenderHistogramCollapsed(t *testing.T) {
	var buf bytes.Buffer
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	h := Bin(values, DefaultBins)

	err := RenderHistogram(&buf, "", h, 60, 10)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// 10 collapsed rows + summary line.
	assert.Len(t, lines, 11)
}

func TestRenderHistogramEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHistogram(&buf, "x", Histogram{}, 60, 0))
	assert.Contains(t, buf.String(), "No samples yet.")
}
