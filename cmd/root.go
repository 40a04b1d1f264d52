package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bottling-sim/bottling-sim/sim"
	"github.com/bottling-sim/bottling-sim/sim/export"
	"github.com/bottling-sim/bottling-sim/sim/report"
	"github.com/bottling-sim/bottling-sim/sim/trace"
)

var (
	// CLI flags shared by every subcommand
	logLevel   string // Log verbosity level
	configPath string // Factory config YAML; empty means built-in defaults

	// CLI flags for run / sweep
	seed          int64  // Master seed of the run (overrides the config file)
	targetBottles int64  // Bottles to produce; prompted for when not given
	showHistogram bool   // Print the Packaging wait histogram
	xlsxPath      string // Optional xlsx export path
	metricsFile   string // Optional Prometheus textfile export path
	traceLevel    string // Stage trace level (none, stages)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "bottling-sim",
	Short: "Discrete-event simulator for a five-stage bottling line",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
}

// runCmd executes one simulation and prints its report
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bottling line simulation until the bottle target is met",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadFactoryConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		target := targetBottles
		if !cmd.Flags().Changed("target") {
			target, err = promptTarget(os.Stdin, os.Stdout)
			if err != nil {
				logrus.Fatalf("No bottle target: %v", err)
			}
		}

		out := cmd.OutOrStdout()
		s, err := runSimulation(out, cfg, target, runOutputs{
			histogram:   showHistogram,
			xlsxPath:    xlsxPath,
			metricsFile: metricsFile,
			traceLevel:  trace.TraceLevel(traceLevel),
		})
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.WithField("run", s.RunID).Info("Simulation complete.")
	},
}

// runOutputs selects the optional artifacts written after a run.
type runOutputs struct {
	histogram   bool
	xlsxPath    string
	metricsFile string
	traceLevel  trace.TraceLevel // empty keeps the simulator default
}

// runSimulation builds and runs one simulator, renders the report to out and
// writes any requested exports.
func runSimulation(out io.Writer, cfg sim.FactoryConfig, target int64, opts runOutputs) (*sim.Simulator, error) {
	var simOpts []sim.Option
	if opts.traceLevel != "" {
		simOpts = append(simOpts, sim.WithTraceLevel(opts.traceLevel))
	}
	s, err := sim.NewSimulator(cfg, target, simOpts...)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Simulating production of %d bottles, with %d bottles per order/batch.\n", target, cfg.BottlesPerOrder)
	fmt.Fprintf(out, "--- Soft Drink Factory Simulation Starting: Target %d Bottles ---\n", target)

	s.Run()
	sum := s.Summarize()
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		ts := trace.Summarize(s.Trace)
		for _, stage := range sim.Stages() {
			st := ts.PerStage[stage.String()]
			logrus.WithFields(logrus.Fields{"run": s.RunID, "stage": stage.String()}).
				Debugf("%d passes, %d queued, max wait %.2f min", st.Count, st.Queued, st.MaxWait)
		}
	}
	report.Render(out, sum)
	if opts.histogram {
		report.RenderHistogram(out, sim.StagePackaging.Label(), s.Metrics.StageWaits[sim.StagePackaging])
	}

	if opts.xlsxPath != "" {
		if err := export.WriteWorkbook(opts.xlsxPath, sum, s.Orders, s.Trace.Stages); err != nil {
			return s, err
		}
		logrus.Infof("Wrote workbook to %s", opts.xlsxPath)
	}
	if opts.metricsFile != "" {
		if err := export.WriteTextfile(opts.metricsFile, sum); err != nil {
			return s, fmt.Errorf("failed to write metrics file %s: %w", opts.metricsFile, err)
		}
		logrus.Infof("Wrote metrics to %s", opts.metricsFile)
	}
	return s, nil
}

// loadFactoryConfig resolves --config. --seed overrides the file only when set explicitly.
func loadFactoryConfig(cmd *cobra.Command) (sim.FactoryConfig, error) {
	cfg := sim.DefaultFactoryConfig()
	if configPath != "" {
		loaded, err := sim.LoadFactoryConfig(configPath)
		if err != nil {
			return sim.FactoryConfig{}, err
		}
		cfg = loaded
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		cfg.Seed = seed
	}
	return cfg, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to factory config YAML (defaults are used for missing keys)")

	runCmd.Flags().Int64Var(&seed, "seed", sim.DefaultSeed, "Master seed for arrival and processing-time streams")
	runCmd.Flags().Int64Var(&targetBottles, "target", 0, "Total number of bottles to produce (prompted for when omitted)")
	runCmd.Flags().BoolVar(&showHistogram, "histogram", true, "Print the Packaging Station wait-time histogram")
	runCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write orders, stage passes and summary to this xlsx file")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write final gauges in Prometheus text format to this file")
	runCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelStages), "Stage trace level (none, stages); xlsx stage passes need stages")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
