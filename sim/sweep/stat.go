package sweep

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stat describes a sample of one scalar across runs.
type Stat struct {
	N      int
	Mean   float64
	StdDev float64 // sample standard deviation; 0 when N < 2
	Min    float64
	Max    float64
}

// NewStat computes a Stat over values. An empty sample yields the zero Stat.
func NewStat(values []float64) Stat {
	if len(values) == 0 {
		return Stat{}
	}
	s := Stat{
		N:   len(values),
		Min: floats.Min(values),
		Max: floats.Max(values),
	}
	if len(values) < 2 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	return s
}

func (s Stat) String() string {
	if s.N == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.2f ± %.2f [%.2f, %.2f]", s.Mean, s.StdDev, s.Min, s.Max)
}
