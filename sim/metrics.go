// Tracks run-wide production counters and per-stage wait samples, and derives
// the end-of-run summary from them.

package sim

import (
	"time"
)

// Metrics holds the running totals of one simulation run.
// It is created with the Simulator and discarded with it; nothing is global.
type Metrics struct {
	BottlesProduced int64                // cumulative bottles, credited only at Packaging completion
	OrdersArrived   int                  // orders that entered Mixing's queue
	OrdersDeparted  int                  // orders that finished Packaging
	StageCompleted  [NumStages]int       // batches finished per stage
	StageWaits      [NumStages][]float64 // request-to-grant samples per stage (minutes)
	ArrivalTimes    []float64
	DepartureTimes  []float64
	CycleTimes      []float64 // departure - arrival of each departed order, in departure order
	SimEndedTime    float64
}

// NewMetrics returns zeroed running totals.
func NewMetrics() *Metrics {
	m := &Metrics{
		ArrivalTimes:   make([]float64, 0),
		DepartureTimes: make([]float64, 0),
		CycleTimes:     make([]float64, 0),
	}
	for i := range m.StageWaits {
		m.StageWaits[i] = make([]float64, 0)
	}
	return m
}

func (m *Metrics) recordArrival(now float64) {
	m.OrdersArrived++
	m.ArrivalTimes = append(m.ArrivalTimes, now)
}

func (m *Metrics) recordWait(stage Stage, wait float64) {
	m.StageWaits[stage] = append(m.StageWaits[stage], wait)
}

func (m *Metrics) recordDeparture(now, cycle float64) {
	m.OrdersDeparted++
	m.DepartureTimes = append(m.DepartureTimes, now)
	m.CycleTimes = append(m.CycleTimes, cycle)
}

// StageSummary is the derived view of one station at the end of a run.
type StageSummary struct {
	Stage     Stage
	Capacity  int
	Completed int

	WaitSamples int
	HasWaitData bool // false when no order was ever granted this station
	MeanWait    float64
	P50Wait     float64
	P90Wait     float64
	P99Wait     float64
	MaxWait     float64

	// EstimatedUtilization approximates busy time as completed × configured mean
	// processing time; MeasuredUtilization integrates actual server occupancy.
	// Both are percentages in [0, 100].
	EstimatedUtilization float64
	MeasuredUtilization  float64

	InUse    int // servers held at the end of the run
	QueueLen int // orders waiting at the end of the run
}

// Summary is the end-of-run report data.
type Summary struct {
	RunID           string
	Seed            int64
	Target          int64
	BottlesPerOrder int64
	BottlesProduced int64
	SimulatedTime   float64 // minutes

	OrdersArrived  int
	OrdersDeparted int
	HasCycleData   bool
	MeanCycleTime  float64
	MaxCycleTime   float64

	Stages    [NumStages]StageSummary
	WallClock time.Duration
}

// Summarize derives averages, utilization and the final station snapshot.
// Call after Run; the result does not alias the simulator's state.
func (sim *Simulator) Summarize() *Summary {
	m := sim.Metrics
	total := m.SimEndedTime
	s := &Summary{
		RunID:           sim.RunID,
		Seed:            sim.Config.Seed,
		Target:          sim.Source.Target,
		BottlesPerOrder: sim.Config.BottlesPerOrder,
		BottlesProduced: m.BottlesProduced,
		SimulatedTime:   total,
		OrdersArrived:   m.OrdersArrived,
		OrdersDeparted:  m.OrdersDeparted,
		WallClock:       sim.WallClock(),
	}
	if mean, ok := CalculateMean(m.CycleTimes); ok {
		s.HasCycleData = true
		s.MeanCycleTime = mean
		s.MaxCycleTime = CalculateMax(m.CycleTimes)
	}
	for _, stage := range Stages() {
		st := sim.Stations[stage]
		waits := m.StageWaits[stage]
		ss := StageSummary{
			Stage:       stage,
			Capacity:    st.Capacity(),
			Completed:   m.StageCompleted[stage],
			WaitSamples: len(waits),
			InUse:       st.InUse(),
			QueueLen:    st.QueueLen(),
			EstimatedUtilization: EstimatedUtilization(
				m.StageCompleted[stage], sim.Config.Station(stage).Mean, st.Capacity(), total),
			MeasuredUtilization: MeasuredUtilization(st.BusyTime(total), st.Capacity(), total),
		}
		if mean, ok := CalculateMean(waits); ok {
			ss.HasWaitData = true
			ss.MeanWait = mean
			ss.P50Wait = CalculatePercentile(waits, 50)
			ss.P90Wait = CalculatePercentile(waits, 90)
			ss.P99Wait = CalculatePercentile(waits, 99)
			ss.MaxWait = CalculateMax(waits)
		}
		s.Stages[stage] = ss
	}
	return s
}

// Snapshot returns the occupancy of every station right now.
func (sim *Simulator) Snapshot() [NumStages]StationSnapshot {
	var out [NumStages]StationSnapshot
	for i, st := range sim.Stations {
		out[i] = st.Snapshot()
	}
	return out
}
