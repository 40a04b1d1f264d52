package sim

import (
	"fmt"
	"strings"
)

// Stage identifies one of the five production stations an order passes through.
type Stage int

const (
	StageMixing Stage = iota
	StageFilling
	StageCapping
	StageLabeling
	StagePackaging
)

// NumStages is the number of stations in the pipeline.
const NumStages = 5

var stageNames = [NumStages]string{"mixing", "filling", "capping", "labeling", "packaging"}

var stageLabels = [NumStages]string{
	"Mixing Station",
	"Filling Line",
	"Capping Machine",
	"Labeling Machine",
	"Packaging Station",
}

// Stages returns all stages in pipeline order.
func Stages() []Stage {
	return []Stage{StageMixing, StageFilling, StageCapping, StageLabeling, StagePackaging}
}

// String returns the config key of the stage (e.g. "mixing").
func (s Stage) String() string {
	if s < 0 || int(s) >= NumStages {
		return fmt.Sprintf("unknown(%d)", int(s))
	}
	return stageNames[s]
}

// Label returns the human-readable station name used in reports.
func (s Stage) Label() string {
	if s < 0 || int(s) >= NumStages {
		return s.String()
	}
	return stageLabels[s]
}

// Next returns the stage that follows s, or false when s is the last stage.
func (s Stage) Next() (Stage, bool) {
	if s >= StagePackaging {
		return s, false
	}
	return s + 1, true
}

// ParseStage parses a stage config key, case-insensitively.
func ParseStage(name string) (Stage, error) {
	for i, n := range stageNames {
		if strings.EqualFold(n, name) {
			return Stage(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stage %q (must be one of %s)", name, strings.Join(stageNames[:], ", "))
}
