package sim

import (
	"math"
	"math/rand"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// BDD: Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 3; i++ {
		v1 := rng1.ForSubsystem(SubsystemStage(StageFilling)).Float64()
		v2 := rng2.ForSubsystem(SubsystemStage(StageFilling)).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// BDD: Drawing from the arrivals stream doesn't affect a stage stream
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemArrivals).Float64()
	}
	aMixingFirst := rngA.ForSubsystem(SubsystemStage(StageMixing)).Float64()

	fresh := NewPartitionedRNG(NewSimulationKey(42))
	expectedFirst := fresh.ForSubsystem(SubsystemStage(StageMixing)).Float64()

	if aMixingFirst != expectedFirst {
		t.Errorf("mixing first value = %v, want %v (isolation broken)", aMixingFirst, expectedFirst)
	}
}

func TestPartitionedRNG_ArrivalsUseMasterSeed(t *testing.T) {
	// BDD: "arrivals" subsystem uses master seed directly
	seed := int64(42)
	arrivals := NewPartitionedRNG(NewSimulationKey(seed)).ForSubsystem(SubsystemArrivals)
	directRNG := rand.New(rand.NewSource(seed))

	for i := 0; i < 10; i++ {
		if got, want := arrivals.Float64(), directRNG.Float64(); got != want {
			t.Errorf("Value %d: arrivals RNG = %v, direct RNG = %v", i, got, want)
		}
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	if rng.ForSubsystem(SubsystemArrivals) != rng.ForSubsystem(SubsystemArrivals) {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	if len(rng.subsystems) != 0 {
		t.Errorf("New PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}
	rng.ForSubsystem(SubsystemArrivals)
	if len(rng.subsystems) != 1 {
		t.Errorf("After one ForSubsystem call, have %d subsystems, want 1", len(rng.subsystems))
	}
}

// === fnv1a64 Tests ===

func TestFnv1a64_NoCollisionAcrossSubsystems(t *testing.T) {
	names := []string{SubsystemArrivals, ""}
	for _, stage := range Stages() {
		names = append(names, SubsystemStage(stage))
	}

	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}

func TestSubsystemStage(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageMixing, "stage_mixing"},
		{StageFilling, "stage_filling"},
		{StagePackaging, "stage_packaging"},
	}
	for _, tt := range tests {
		if got := SubsystemStage(tt.stage); got != tt.want {
			t.Errorf("SubsystemStage(%v) = %q, want %q", tt.stage, got, tt.want)
		}
	}
}

// === Benchmark ===

func BenchmarkPartitionedRNG_ForSubsystem_CacheHit(b *testing.B) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	rng.ForSubsystem(SubsystemArrivals)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.ForSubsystem(SubsystemArrivals)
	}
}
