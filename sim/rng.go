package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey, target and factory configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemArrivals is the RNG subsystem for order inter-arrival times.
// Uses the master seed directly.
const SubsystemArrivals = "arrivals"

// SubsystemStage returns the subsystem name for a station's processing times.
func SubsystemStage(stage Stage) string {
	return "stage_" + stage.String()
}

// PartitionedRNG hands each part of the bottling line its own random stream:
// one for order arrivals and one per station for processing times.
//
// With a single shared stream, widening the Capping station or changing how
// Labeling samples would shift every later draw on the line, so an experiment
// on one station would also change arrivals and every other station's times.
// Separate streams keep the arrival sequence fixed for a seed and leave each
// station's draws depending only on how many orders it has served.
//
// Arrivals use the master seed as is; a station's stream is seeded with
// masterSeed XOR fnv1a64("stage_<name>").
//
// Not safe for concurrent use; each Simulator owns one.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the stream for SubsystemArrivals or a SubsystemStage name,
// creating it on first use. Later calls with the same name continue that stream.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}

	var derivedSeed int64
	if name == SubsystemArrivals {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	rng := rand.New(rand.NewSource(derivedSeed))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
