package sim

import (
	"math"
	"math/rand"
)

// DurationSampler draws a simulated duration in minutes.
type DurationSampler interface {
	// Sample returns a non-negative duration.
	Sample(rng *rand.Rand) float64
}

// NormalSampler produces Gaussian processing times floored at Floor.
// The floor truncates the left tail so a draw is never below Floor.
type NormalSampler struct {
	Mean, StdDev float64
	Floor        float64
}

func (s NormalSampler) Sample(rng *rand.Rand) float64 {
	val := rng.NormFloat64()*s.StdDev + s.Mean
	return math.Max(s.Floor, val)
}

// ExponentialSampler produces exponentially-distributed inter-arrival times
// with rate 1/Mean. Draws are always strictly positive.
type ExponentialSampler struct {
	Mean float64
}

func (s ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.Mean
}

// FixedSampler always returns Value. Useful for hand-checked scenarios.
type FixedSampler struct {
	Value float64
}

func (s FixedSampler) Sample(*rand.Rand) float64 {
	return s.Value
}
