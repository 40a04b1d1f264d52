package trace

// TraceLevel controls the verbosity of stage tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelStages captures every stage pass and departure.
	TraceLevelStages TraceLevel = "stages"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelStages: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects stage records during a simulation run.
type SimulationTrace struct {
	Config     TraceConfig
	Stages     []StageRecord
	Departures []DepartureRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Stages:     make([]StageRecord, 0),
		Departures: make([]DepartureRecord, 0),
	}
}

// Enabled reports whether records should be collected.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelStages
}

// RecordStage appends a stage record. No-op when tracing is disabled.
func (st *SimulationTrace) RecordStage(record StageRecord) {
	if !st.Enabled() {
		return
	}
	st.Stages = append(st.Stages, record)
}

// RecordDeparture appends a departure record. No-op when tracing is disabled.
func (st *SimulationTrace) RecordDeparture(record DepartureRecord) {
	if !st.Enabled() {
		return
	}
	st.Departures = append(st.Departures, record)
}

// ForStage returns the stage records for one station, in completion order.
func (st *SimulationTrace) ForStage(stage string) []StageRecord {
	if st == nil {
		return nil
	}
	var out []StageRecord
	for _, r := range st.Stages {
		if r.Stage == stage {
			out = append(out, r)
		}
	}
	return out
}
