package report

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBins is the number of bins used for wait-time histograms.
const DefaultBins = 20

const barWidth = 40

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram buckets values into bins equal-width bins spanning [min, max].
// The maximum falls into the last bin. Returns nil for no values or bins < 1.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins < 1 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if hi == lo {
		hi = lo + 1
	}
	dividers := make([]float64, bins+1)
	floats.Span(dividers, lo, hi)
	// stat.Histogram needs every value strictly below the last divider
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)
	out := make([]Bin, bins)
	for i := range out {
		out[i] = Bin{Lo: dividers[i], Hi: dividers[i+1], Count: int(counts[i])}
	}
	return out
}

// RenderHistogram draws an ASCII histogram of values. With no values it prints
// a single notice line instead.
func RenderHistogram(w io.Writer, title string, values []float64) {
	heading(w, "Visualizations")
	bins := Histogram(values, DefaultBins)
	if bins == nil {
		fmt.Fprintf(w, "No wait time data to plot for %s.\n", title)
		return
	}
	fmt.Fprintf(w, "Distribution of Wait Times at %s (minutes, %d orders)\n", title, len(values))
	peak := 0
	for _, b := range bins {
		peak = max(peak, b.Count)
	}
	for _, b := range bins {
		n := 0
		if peak > 0 {
			n = b.Count * barWidth / peak
		}
		fmt.Fprintf(w, "%8.2f - %-8.2f |%-*s %d\n", b.Lo, b.Hi, barWidth, strings.Repeat("#", n), b.Count)
	}
}
