package export

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bottling-sim/bottling-sim/sim"
)

// WriteTextfile writes the final gauges of a run in the Prometheus text
// exposition format, suitable for the node_exporter textfile collector.
func WriteTextfile(path string, sum *sim.Summary) error {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"run_id": sum.RunID}

	gauge := func(name, help string, v float64) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help, ConstLabels: labels})
		g.Set(v)
		reg.MustRegister(g)
	}
	gauge("bottling_target_bottles", "Bottle target of the run", float64(sum.Target))
	gauge("bottling_bottles_produced", "Bottles credited at packaging completion", float64(sum.BottlesProduced))
	gauge("bottling_simulated_minutes", "Simulated time at the end of the run", sum.SimulatedTime)
	gauge("bottling_orders_arrived", "Orders that entered the factory", float64(sum.OrdersArrived))
	gauge("bottling_orders_departed", "Orders that finished packaging", float64(sum.OrdersDeparted))
	gauge("bottling_mean_cycle_minutes", "Mean time in system of departed orders", sum.MeanCycleTime)

	stageVec := func(name, help string, extra ...string) *prometheus.GaugeVec {
		v := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help, ConstLabels: labels},
			append([]string{"stage"}, extra...))
		reg.MustRegister(v)
		return v
	}
	capacity := stageVec("bottling_stage_capacity", "Parallel servers per station")
	completed := stageVec("bottling_stage_completed", "Batches finished per station")
	meanWait := stageVec("bottling_stage_mean_wait_minutes", "Mean request-to-grant wait per station")
	maxWait := stageVec("bottling_stage_max_wait_minutes", "Longest request-to-grant wait per station")
	util := stageVec("bottling_stage_utilization_percent", "Station utilization", "kind")

	for _, ss := range sum.Stages {
		stage := ss.Stage.String()
		capacity.WithLabelValues(stage).Set(float64(ss.Capacity))
		completed.WithLabelValues(stage).Set(float64(ss.Completed))
		meanWait.WithLabelValues(stage).Set(ss.MeanWait)
		maxWait.WithLabelValues(stage).Set(ss.MaxWait)
		util.WithLabelValues(stage, "estimated").Set(ss.EstimatedUtilization)
		util.WithLabelValues(stage, "measured").Set(ss.MeasuredUtilization)
	}
	return prometheus.WriteToTextfile(path, reg)
}
