package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bottling-sim/bottling-sim/sim"
	"github.com/bottling-sim/bottling-sim/sim/report"
	"github.com/bottling-sim/bottling-sim/sim/sweep"
)

var (
	sweepRuns     int   // Number of seeded runs
	sweepParallel int   // Max concurrent runs
	sweepTarget   int64 // Bottle target of every run
)

// sweepCmd runs many seeds of the same factory and reports their spread
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run independent seeded simulations concurrently and summarize them",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadFactoryConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		bar := newProgressBar(sweepRuns)
		agg, err := sweep.Run(ctx, sweep.Options{
			Runs:      sweepRuns,
			Parallel:  sweepParallel,
			BaseSeed:  cfg.Seed,
			Target:    sweepTarget,
			Config:    cfg,
			OnRunDone: func(sweep.RunResult) { _ = bar.Add(1) },
		})
		_ = bar.Finish()
		if err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
		report.RenderSweep(cmd.OutOrStdout(), agg)
	},
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Simulating"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func init() {
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 20, "Number of runs; run i uses seed+i")
	sweepCmd.Flags().IntVar(&sweepParallel, "parallel", 0, "Max concurrent runs (0 = number of CPUs)")
	sweepCmd.Flags().Int64Var(&sweepTarget, "target", 10000, "Total number of bottles to produce in each run")
	sweepCmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "Seed of the first run")

	rootCmd.AddCommand(sweepCmd)
}
