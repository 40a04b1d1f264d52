package trace

// StageTraceSummary aggregates the records of one station.
type StageTraceSummary struct {
	Count    int
	MeanWait float64
	MaxWait  float64
	Queued   int // records with a strictly positive wait
}

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalStageRecords int
	Departures        int
	MeanCycleTime     float64
	MaxCycleTime      float64
	PerStage          map[string]StageTraceSummary // stage name → summary
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		PerStage: make(map[string]StageTraceSummary),
	}
	if st == nil {
		return summary
	}

	summary.TotalStageRecords = len(st.Stages)
	waitSums := make(map[string]float64)
	for _, r := range st.Stages {
		s := summary.PerStage[r.Stage]
		w := r.Wait()
		s.Count++
		waitSums[r.Stage] += w
		if w > s.MaxWait {
			s.MaxWait = w
		}
		if w > 0 {
			s.Queued++
		}
		summary.PerStage[r.Stage] = s
	}
	for name, s := range summary.PerStage {
		s.MeanWait = waitSums[name] / float64(s.Count)
		summary.PerStage[name] = s
	}

	summary.Departures = len(st.Departures)
	if len(st.Departures) > 0 {
		total := 0.0
		for _, d := range st.Departures {
			total += d.CycleTime
			if d.CycleTime > summary.MaxCycleTime {
				summary.MaxCycleTime = d.CycleTime
			}
		}
		summary.MeanCycleTime = total / float64(len(st.Departures))
	}

	return summary
}
