package trace

import (
	"testing"
)

func TestSimulationTrace_RecordStage_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for stages
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelStages})

	// WHEN a stage record is recorded
	st.RecordStage(StageRecord{OrderID: 1, Stage: "mixing", RequestedAt: 3, GrantedAt: 5, CompletedAt: 14})

	// THEN the trace contains one record with correct derived intervals
	if len(st.Stages) != 1 {
		t.Fatalf("expected 1 stage record, got %d", len(st.Stages))
	}
	if got := st.Stages[0].Wait(); got != 2 {
		t.Errorf("expected wait 2, got %v", got)
	}
	if got := st.Stages[0].Duration(); got != 9 {
		t.Errorf("expected duration 9, got %v", got)
	}
}

func TestSimulationTrace_LevelNone_RecordsNothing(t *testing.T) {
	// GIVEN a trace with tracing disabled
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelNone})

	// WHEN records are submitted
	st.RecordStage(StageRecord{OrderID: 1, Stage: "mixing"})
	st.RecordDeparture(DepartureRecord{OrderID: 1, Clock: 40})

	// THEN nothing is kept
	if len(st.Stages) != 0 || len(st.Departures) != 0 {
		t.Errorf("expected empty trace, got %d stages and %d departures", len(st.Stages), len(st.Departures))
	}
}

func TestSimulationTrace_NilTrace_SafeToRecord(t *testing.T) {
	var st *SimulationTrace
	st.RecordStage(StageRecord{OrderID: 1})
	st.RecordDeparture(DepartureRecord{OrderID: 1})
	if st.Enabled() {
		t.Error("nil trace must report disabled")
	}
	if got := st.ForStage("mixing"); got != nil {
		t.Errorf("expected nil records, got %v", got)
	}
}

func TestSimulationTrace_ForStage_FiltersInOrder(t *testing.T) {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelStages})
	st.RecordStage(StageRecord{OrderID: 1, Stage: "mixing"})
	st.RecordStage(StageRecord{OrderID: 1, Stage: "filling"})
	st.RecordStage(StageRecord{OrderID: 2, Stage: "mixing"})

	got := st.ForStage("mixing")
	if len(got) != 2 {
		t.Fatalf("expected 2 mixing records, got %d", len(got))
	}
	if got[0].OrderID != 1 || got[1].OrderID != 2 {
		t.Errorf("expected order IDs [1 2], got [%d %d]", got[0].OrderID, got[1].OrderID)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		want  bool
	}{
		{"none", true},
		{"stages", true},
		{"", true},
		{"decisions", false},
		{"STAGES", false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.want {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}
