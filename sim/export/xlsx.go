// Package export writes run results to files for analysis outside the simulator.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/bottling-sim/bottling-sim/sim"
	"github.com/bottling-sim/bottling-sim/sim/trace"
)

// Sheet names of the workbook written by WriteWorkbook.
const (
	SheetOrders  = "Orders"
	SheetStages  = "Stages"
	SheetSummary = "Summary"
)

// WriteWorkbook saves an xlsx file with one row per order, one row per stage
// pass and a summary sheet.
func WriteWorkbook(path string, sum *sim.Summary, orders []*sim.Order, records []trace.StageRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOrders); err != nil {
		return err
	}
	for _, name := range []string{SheetStages, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	if err := writeOrders(f, orders); err != nil {
		return fmt.Errorf("orders sheet: %w", err)
	}
	if err := writeStages(f, records); err != nil {
		return fmt.Errorf("stages sheet: %w", err)
	}
	if err := writeSummary(f, sum); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeOrders(f *excelize.File, orders []*sim.Order) error {
	header := []any{"order_id", "name", "bottles", "state", "arrival", "departure", "cycle_time"}
	for _, stage := range sim.Stages() {
		header = append(header, "wait_"+stage.String())
	}
	if err := setRow(f, SheetOrders, 1, header); err != nil {
		return err
	}
	for i, o := range orders {
		row := []any{o.ID, o.Name, o.Bottles, o.State.String(), o.ArrivalTime}
		if o.Departed() {
			row = append(row, o.DepartureTime, o.CycleTime())
		} else {
			row = append(row, "", "")
		}
		for _, stage := range sim.Stages() {
			row = append(row, o.Wait(stage))
		}
		if err := setRow(f, SheetOrders, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeStages(f *excelize.File, records []trace.StageRecord) error {
	header := []any{"order_id", "stage", "requested_at", "granted_at", "completed_at", "wait", "duration"}
	if err := setRow(f, SheetStages, 1, header); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{r.OrderID, r.Stage, r.RequestedAt, r.GrantedAt, r.CompletedAt, r.Wait(), r.Duration()}
		if err := setRow(f, SheetStages, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, sum *sim.Summary) error {
	rows := [][]any{
		{"run_id", sum.RunID},
		{"seed", sum.Seed},
		{"target_bottles", sum.Target},
		{"bottles_per_order", sum.BottlesPerOrder},
		{"bottles_produced", sum.BottlesProduced},
		{"simulated_minutes", sum.SimulatedTime},
		{"orders_arrived", sum.OrdersArrived},
		{"orders_departed", sum.OrdersDeparted},
		{"mean_cycle_time", sum.MeanCycleTime},
		{"max_cycle_time", sum.MaxCycleTime},
		{},
		{"stage", "capacity", "completed", "mean_wait", "p50_wait", "p90_wait", "p99_wait", "max_wait",
			"estimated_utilization", "measured_utilization"},
	}
	for _, ss := range sum.Stages {
		rows = append(rows, []any{ss.Stage.String(), ss.Capacity, ss.Completed, ss.MeanWait, ss.P50Wait,
			ss.P90Wait, ss.P99Wait, ss.MaxWait, ss.EstimatedUtilization, ss.MeasuredUtilization})
	}
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := setRow(f, SheetSummary, i+1, row); err != nil {
			return err
		}
	}
	return nil
}
