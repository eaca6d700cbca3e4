// Package stats contains histogram binning and text rendering.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultBins is the fixed display scheme for sample histograms.
const DefaultBins = 30

const (
	barRune             = '█'
	axisSeparator       = " │ "
	minBarWidth         = 10
	terminalWidthBackup = 80
)

// Histogram holds binned counts over a value range.
type Histogram struct {
	Counts   []int
	Min      float64
	Max      float64
	BinWidth float64
	Samples  int
}

// Bin distributes values into the given number of equal-width bins.
// Degenerate inputs (no values, bins < 1) yield a zero Histogram.
func Bin(values []float64, bins int) Histogram {
	if len(values) == 0 || bins < 1 {
		return Histogram{}
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-12 {
		// All values identical; widen the range so every value lands in
		// one well-defined bin.
		minVal--
		maxVal++
	}
	width := (maxVal - minVal) / float64(bins)
	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - minVal) / width)
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return Histogram{
		Counts:   counts,
		Min:      minVal,
		Max:      maxVal,
		BinWidth: width,
		Samples:  len(values),
	}
}

// Title builds the fixed histogram title for a sample of size n.
func Title(n int) string {
	return fmt.Sprintf("Histogram of %d draws", n)
}

// RenderHistogram writes a row-per-bin text histogram. A width <= 0
// falls back to the terminal width; a height in (0, bins) collapses
// adjacent bins so the plot fits.
func RenderHistogram(w io.Writer, title string, h Histogram, width, height int) error {
	if h.Samples == 0 || len(h.Counts) == 0 {
		_, err := fmt.Fprintln(w, "No samples yet.")
		return err
	}
	if width <= 0 {
		width = terminalWidth()
	}

	counts := h.Counts
	binWidth := h.BinWidth
	if height > 0 && height < len(counts) {
		counts = collapseCounts(counts, height)
		binWidth = (h.Max - h.Min) / float64(len(counts))
	}

	labels := make([]string, len(counts))
	labelWidth := 0
	for i := range counts {
		lo := h.Min + float64(i)*binWidth
		labels[i] = fmt.Sprintf("%8.2f", lo)
		if lw := runewidth.StringWidth(labels[i]); lw > labelWidth {
			labelWidth = lw
		}
	}

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	barWidth := width - labelWidth - runewidth.StringWidth(axisSeparator)
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for i, c := range counts {
		bar := ""
		if maxCount > 0 && c > 0 {
			n := int(math.Round(float64(c) / float64(maxCount) * float64(barWidth)))
			if n < 1 {
				n = 1
			}
			bar = strings.Repeat(string(barRune), n)
		}
		prefix := runewidth.FillLeft(labels[i], labelWidth)
		if _, err := fmt.Fprintf(w, "%s%s%s %d\n", prefix, axisSeparator, bar, c); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "n=%d  min=%.2f  max=%.2f\n", h.Samples, h.Min, h.Max); err != nil {
		return err
	}
	return nil
}

func collapseCounts(counts []int, target int) []int {
	out := make([]int, target)
	for i := 0; i < target; i++ {
		start := i * len(counts) / target
		end := (i + 1) * len(counts) / target
		if end <= start {
			end = start + 1
		}
		if end > len(counts) {
			end = len(counts)
		}
		for _, c := range counts[start:end] {
			out[i] += c
		}
	}
	return out
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
