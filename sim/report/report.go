// Package report renders end-of-run and sweep summaries as plain text.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bottling-sim/bottling-sim/sim"
	"github.com/bottling-sim/bottling-sim/sim/sweep"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", headingStyle.Render("--- "+title+" ---"))
}

// Render writes the end-of-run report for sum.
func Render(w io.Writer, sum *sim.Summary) {
	heading(w, "Simulation Ended")
	fmt.Fprintf(w, "Target bottles to produce: %d\n", sum.Target)
	fmt.Fprintf(w, "Actual bottles produced: %d (from %d completed orders/batches)\n",
		sum.BottlesProduced, sum.Stages[sim.StagePackaging].Completed)
	fmt.Fprintf(w, "Total simulation time: %.2f minutes\n", sum.SimulatedTime)
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("Run %s, seed %d", sum.RunID, sum.Seed)))

	heading(w, "Order / Batch Summary")
	fmt.Fprintf(w, "Total orders (batches) arrived at system: %d\n", sum.OrdersArrived)
	fmt.Fprintf(w, "Total orders (batches) departed from system: %d\n", sum.OrdersDeparted)
	for _, ss := range sum.Stages {
		fmt.Fprintf(w, "Orders (batches) processed by %s: %d\n", ss.Stage.Label(), ss.Completed)
	}

	heading(w, "Wait Time Statistics (for orders/batches)")
	for _, ss := range sum.Stages {
		if !ss.HasWaitData {
			fmt.Fprintf(w, "No orders recorded waiting for %s.\n", ss.Stage.Label())
			continue
		}
		fmt.Fprintf(w, "Average wait time for %s: %.2f minutes (p50 %.2f, p90 %.2f, p99 %.2f, max %.2f)\n",
			ss.Stage.Label(), ss.MeanWait, ss.P50Wait, ss.P90Wait, ss.P99Wait, ss.MaxWait)
	}

	heading(w, "System Performance")
	if sum.HasCycleData {
		fmt.Fprintf(w, "Average cycle time for %d completed orders/batches: %.2f minutes (max %.2f)\n",
			sum.OrdersDeparted, sum.MeanCycleTime, sum.MaxCycleTime)
	} else {
		fmt.Fprintln(w, "No orders completed processing for cycle time calculation.")
	}

	heading(w, "Resource Utilization (Estimated for Orders/Batches)")
	if sum.SimulatedTime <= 0 {
		fmt.Fprintln(w, "Simulation duration was zero. Cannot calculate utilization.")
	} else {
		for _, ss := range sum.Stages {
			fmt.Fprintf(w, "Estimated utilization for %s(s): %.2f%% (measured %.2f%%, based on %d orders over %.2f min)\n",
				ss.Stage.Label(), ss.EstimatedUtilization, ss.MeasuredUtilization, ss.Completed, sum.SimulatedTime)
		}
	}

	heading(w, fmt.Sprintf("Resource State at End of Simulation (Time: %.2f)", sum.SimulatedTime))
	for _, ss := range sum.Stages {
		fmt.Fprintf(w, "%-22s Processing: %d, In Queue: %d\n", ss.Stage.Label()+"(s):", ss.InUse, ss.QueueLen)
	}

	fmt.Fprintf(w, "\nActual wall-clock time for simulation run: %.4f seconds\n", sum.WallClock.Seconds())
}

// RenderSweep writes the cross-run statistics of a sweep.
func RenderSweep(w io.Writer, agg *sweep.Aggregate) {
	heading(w, fmt.Sprintf("Sweep Summary (%d runs)", agg.Runs))
	fmt.Fprintln(w, mutedStyle.Render("mean ± stddev [min, max]"))
	rows := [][2]string{
		{"Simulated time (min)", agg.SimulatedTime.String()},
		{"Bottles produced", agg.BottlesProduced.String()},
		{"Mean cycle time (min)", agg.MeanCycleTime.String()},
	}
	for _, stage := range sim.Stages() {
		rows = append(rows, [2]string{"Mean wait, " + stage.Label(), agg.StageMeanWait[stage].String()})
	}
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s%s  %s\n", r[0], strings.Repeat(" ", width-len(r[0])), r[1])
	}
}
