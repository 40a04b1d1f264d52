// sim/metrics_utils.go
package sim

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// CalculateMean returns the arithmetic mean of data, or false when data is empty.
func CalculateMean(data []float64) (float64, bool) {
	if len(data) == 0 {
		return 0, false
	}
	return stat.Mean(data, nil), true
}

// CalculatePercentile returns the p-th percentile (0 <= p <= 100) of data using
// the empirical quantile. Returns 0 for empty data. data is not modified.
func CalculatePercentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)
	q := math.Min(1, math.Max(0, p/100))
	return stat.Quantile(q, stat.Empirical, sorted, nil)
}

// CalculateMax returns the largest value of data, or 0 for empty data.
func CalculateMax(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return floats.Max(data)
}

// EstimatedUtilization approximates a station's utilization as a percentage:
//
//	(completed × meanProcessing) / (capacity × totalTime) × 100, clamped to [0, 100]
//
// It uses the configured mean, not realized busy time. Returns 0 when totalTime <= 0.
func EstimatedUtilization(completed int, meanProcessing float64, capacity int, totalTime float64) float64 {
	if totalTime <= 0 || capacity <= 0 {
		return 0
	}
	busy := float64(completed) * meanProcessing
	return clampPercent(busy / (float64(capacity) * totalTime) * 100)
}

// MeasuredUtilization is the fraction of available server-time actually held, as a percentage.
func MeasuredUtilization(busyTime float64, capacity int, totalTime float64) float64 {
	if totalTime <= 0 || capacity <= 0 {
		return 0
	}
	return clampPercent(busyTime / (float64(capacity) * totalTime) * 100)
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Min(v, 100)
}
