package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testConfig returns the default factory with every station overridden to capacity c.
func testConfig(seed int64, c int) FactoryConfig {
	cfg := DefaultFactoryConfig()
	cfg.Seed = seed
	for name, sc := range cfg.Stations {
		sc.Capacity = c
		cfg.Stations[name] = sc
	}
	return cfg
}

// mustSimulator builds a simulator or fails the test.
func mustSimulator(t *testing.T, cfg FactoryConfig, target int64, opts ...Option) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg, target, opts...)
	require.NoError(t, err)
	return s
}

// stageKey is the (stage, wait, timestamp) tuple compared in determinism checks.
type stageKey struct {
	orderID   int
	stage     string
	wait      float64
	completed float64
}

func traceKeys(s *Simulator) []stageKey {
	keys := make([]stageKey, 0, len(s.Trace.Stages))
	for _, r := range s.Trace.Stages {
		keys = append(keys, stageKey{orderID: r.OrderID, stage: r.Stage, wait: r.Wait(), completed: r.CompletedAt})
	}
	return keys
}
