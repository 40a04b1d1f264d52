package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStages_PipelineOrder(t *testing.T) {
	got := Stages()
	require.Len(t, got, NumStages)
	names := make([]string, len(got))
	for i, s := range got {
		names[i] = s.String()
	}
	assert.Equal(t, []string{"mixing", "filling", "capping", "labeling", "packaging"}, names)
}

func TestStage_Next(t *testing.T) {
	next, ok := StageMixing.Next()
	assert.True(t, ok)
	assert.Equal(t, StageFilling, next)

	_, ok = StagePackaging.Next()
	assert.False(t, ok)
}

func TestParseStage(t *testing.T) {
	s, err := ParseStage("Labeling")
	require.NoError(t, err)
	assert.Equal(t, StageLabeling, s)

	_, err = ParseStage("corking")
	assert.Error(t, err)
}

func TestStage_Label(t *testing.T) {
	assert.Equal(t, "Packaging Station", StagePackaging.Label())
	assert.Equal(t, "unknown(9)", Stage(9).String())
}
