package export

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bottling-sim/bottling-sim/sim"
)

func finishedRun(t *testing.T) *sim.Simulator {
	t.Helper()
	s, err := sim.NewSimulator(sim.DefaultFactoryConfig(), 4000)
	require.NoError(t, err)
	s.Run()
	return s
}

func TestWriteWorkbook_SheetsAndRows(t *testing.T) {
	// GIVEN a finished run
	s := finishedRun(t)
	path := filepath.Join(t.TempDir(), "run.xlsx")

	// WHEN exported
	require.NoError(t, WriteWorkbook(path, s.Summarize(), s.Orders, s.Trace.Stages))

	// THEN the workbook has a header plus one row per order and per stage pass
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetOrders, SheetStages, SheetSummary}, f.GetSheetList())

	orders, err := f.GetRows(SheetOrders)
	require.NoError(t, err)
	require.Len(t, orders, len(s.Orders)+1)
	assert.Equal(t, "order_id", orders[0][0])
	assert.Equal(t, "wait_packaging", orders[0][len(orders[0])-1])
	assert.Equal(t, "Order-1", orders[1][1])
	assert.Equal(t, "departed", orders[1][3])

	stages, err := f.GetRows(SheetStages)
	require.NoError(t, err)
	assert.Len(t, stages, len(s.Trace.Stages)+1)

	summary, err := f.GetRows(SheetSummary)
	require.NoError(t, err)
	assert.Equal(t, []string{"run_id", s.RunID}, summary[0])
	assert.Equal(t, []string{"bottles_produced", strconv.FormatInt(s.Metrics.BottlesProduced, 10)}, summary[4])
	assert.Equal(t, "packaging", summary[len(summary)-1][0])
}

func TestWriteWorkbook_BadPath_ReturnsError(t *testing.T) {
	s := finishedRun(t)
	path := filepath.Join(t.TempDir(), "missing", "dir", "run.xlsx")
	assert.Error(t, WriteWorkbook(path, s.Summarize(), s.Orders, s.Trace.Stages))
}

func TestWriteTextfile_ContainsGauges(t *testing.T) {
	s := finishedRun(t)
	path := filepath.Join(t.TempDir(), "bottling.prom")
	require.NoError(t, WriteTextfile(path, s.Summarize()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	for _, want := range []string{
		"# TYPE bottling_bottles_produced gauge",
		"bottling_simulated_minutes{run_id=\"" + s.RunID + "\"}",
		"bottling_stage_capacity{run_id=\"" + s.RunID + "\",stage=\"filling\"} 2",
		"bottling_stage_utilization_percent{kind=\"measured\",run_id=\"" + s.RunID + "\",stage=\"mixing\"}",
	} {
		assert.Contains(t, out, want)
	}
}
