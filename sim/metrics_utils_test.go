package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateMean(t *testing.T) {
	_, ok := CalculateMean(nil)
	assert.False(t, ok, "empty data must report no data")

	mean, ok := CalculateMean([]float64{1, 2, 3, 6})
	assert.True(t, ok)
	assert.Equal(t, 3.0, mean)
}

func TestCalculatePercentile_DoesNotReorderInput(t *testing.T) {
	data := []float64{5, 1, 4, 2, 3}
	assert.Equal(t, 5.0, CalculatePercentile(data, 100))
	assert.Equal(t, 1.0, CalculatePercentile(data, 0))
	assert.Equal(t, 3.0, CalculatePercentile(data, 50))
	assert.Equal(t, []float64{5, 1, 4, 2, 3}, data)
	assert.Equal(t, 0.0, CalculatePercentile(nil, 90))
}

func TestCalculateMax(t *testing.T) {
	assert.Equal(t, 0.0, CalculateMax(nil))
	assert.Equal(t, 9.0, CalculateMax([]float64{3, 9, 1}))
}

func TestEstimatedUtilization(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		mean      float64
		capacity  int
		total     float64
		want      float64
	}{
		{"half busy", 5, 10, 1, 100, 50},
		{"two servers", 10, 8, 2, 160, 25},
		{"clamped at 100", 20, 12, 1, 100, 100},
		{"zero time", 3, 10, 1, 0, 0},
		{"no completions", 0, 10, 2, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, EstimatedUtilization(tt.completed, tt.mean, tt.capacity, tt.total), 1e-9)
		})
	}
}

func TestMeasuredUtilization(t *testing.T) {
	assert.InDelta(t, 40.0, MeasuredUtilization(80, 2, 100), 1e-9)
	assert.Equal(t, 0.0, MeasuredUtilization(10, 1, 0))
	assert.Equal(t, 100.0, MeasuredUtilization(500, 1, 100))
}
