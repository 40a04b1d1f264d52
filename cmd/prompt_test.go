package cmd

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bottling-sim/bottling-sim/sim"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{"5000", 5000, nil},
		{"  1200\n", 1200, nil},
		{"0", 0, errNotPositive},
		{"-10", 0, errNotPositive},
		{"12.5", 0, errNotWholeNumber},
		{"lots", 0, errNotWholeNumber},
		{"", 0, errNotWholeNumber},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTarget(tt.in)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.True(t, errors.Is(err, sim.ErrInvalidInput))
		})
	}
}

func TestPromptTarget_RepromptsUntilValid(t *testing.T) {
	// GIVEN a user who types garbage, then a negative number, then a valid target
	in := strings.NewReader("abc\n-5\n3000\n")
	var out bytes.Buffer

	// WHEN prompted
	n, err := promptTarget(in, &out)

	// THEN the valid value is returned after one message per bad line
	require.NoError(t, err)
	assert.Equal(t, int64(3000), n)
	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "Enter the total number of bottles to produce (e.g., 5000): "))
	assert.Contains(t, text, "Invalid input. Please enter a whole number.")
	assert.Contains(t, text, "Please enter a positive number of bottles.")
}

func TestPromptTarget_EOF_ReturnsError(t *testing.T) {
	var out bytes.Buffer
	_, err := promptTarget(strings.NewReader("nope\n"), &out)
	assert.ErrorIs(t, err, io.EOF)
}
