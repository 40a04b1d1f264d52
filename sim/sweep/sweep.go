// Package sweep runs many independently seeded simulations of the same factory
// concurrently and aggregates their summaries.
//
// Each run owns its Simulator; seeds are BaseSeed, BaseSeed+1, ... so a sweep is
// reproducible regardless of how many runs execute in parallel.
package sweep

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bottling-sim/bottling-sim/sim"
	"github.com/bottling-sim/bottling-sim/sim/trace"
)

// Options configures a sweep.
type Options struct {
	Runs     int   // number of runs (must be > 0)
	Parallel int   // max concurrent runs; <= 0 means runtime.NumCPU()
	BaseSeed int64 // seed of the first run
	Target   int64 // bottle target of every run
	Config   sim.FactoryConfig

	// OnRunDone, when set, is called after each run finishes. It may be
	// called from several goroutines at once.
	OnRunDone func(RunResult)
}

// RunResult is one finished run.
type RunResult struct {
	Index   int
	Seed    int64
	Summary *sim.Summary
}

// Aggregate holds the per-run results, ordered by index, and their statistics.
type Aggregate struct {
	Runs            int
	Results         []RunResult
	SimulatedTime   Stat
	BottlesProduced Stat
	// MeanCycleTime and StageMeanWait only include runs that have samples.
	MeanCycleTime Stat
	StageMeanWait [sim.NumStages]Stat
}

// Run executes the sweep. The first run error, or ctx cancellation, aborts the
// remaining runs.
func Run(ctx context.Context, opts Options) (*Aggregate, error) {
	if opts.Runs <= 0 {
		return nil, fmt.Errorf("%w: runs must be > 0, got %d", sim.ErrInvalidConfig, opts.Runs)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	parallel := opts.Parallel
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}

	results := make([]RunResult, opts.Runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < opts.Runs; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := runOne(i, opts)
			if err != nil {
				return err
			}
			results[i] = res
			if opts.OnRunDone != nil {
				opts.OnRunDone(res)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return aggregate(results), nil
}

func runOne(i int, opts Options) (RunResult, error) {
	cfg := opts.Config.Clone()
	cfg.Seed = opts.BaseSeed + int64(i)
	s, err := sim.NewSimulator(cfg, opts.Target, sim.WithTraceLevel(trace.TraceLevelNone))
	if err != nil {
		return RunResult{}, fmt.Errorf("run %d (seed %d): %w", i, cfg.Seed, err)
	}
	s.Run()
	sum := s.Summarize()
	logrus.WithFields(logrus.Fields{"run": i, "seed": cfg.Seed}).
		Debugf("sweep run done: %d bottles in %.2f min", sum.BottlesProduced, sum.SimulatedTime)
	return RunResult{Index: i, Seed: cfg.Seed, Summary: sum}, nil
}

func aggregate(results []RunResult) *Aggregate {
	var simTime, bottles, cycle []float64
	var waits [sim.NumStages][]float64
	for _, r := range results {
		sum := r.Summary
		simTime = append(simTime, sum.SimulatedTime)
		bottles = append(bottles, float64(sum.BottlesProduced))
		if sum.HasCycleData {
			cycle = append(cycle, sum.MeanCycleTime)
		}
		for _, ss := range sum.Stages {
			if ss.HasWaitData {
				waits[ss.Stage] = append(waits[ss.Stage], ss.MeanWait)
			}
		}
	}
	agg := &Aggregate{
		Runs:            len(results),
		Results:         results,
		SimulatedTime:   NewStat(simTime),
		BottlesProduced: NewStat(bottles),
		MeanCycleTime:   NewStat(cycle),
	}
	for i := range waits {
		agg.StageMeanWait[i] = NewStat(waits[i])
	}
	return agg
}
