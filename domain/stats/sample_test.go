package stats

import (
	"math"
	"testing"

	"chronostat/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSampleCopiesValues(t *testing.T) {
	values := []float64{1, 2, 3}
	s := NewSample("standard", values)
	values[0] = 99

	assert.Equal(t, []float64{1, 2, 3}, s.Values)
	assert.Equal(t, 3, s.Len())
}

func TestValidateValues(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		min     int
		wantErr error
	}{
		{"ok", []float64{1}, 1, nil},
		{"empty", nil, 1, core.ErrEmptySample},
		{"too short", []float64{1}, 2, core.ErrInsufficientData},
		{"nan", []float64{1, math.NaN()}, 1, core.ErrNonFiniteValue},
		{"inf", []float64{math.Inf(-1)}, 1, core.ErrNonFiniteValue},
		{"zero min treated as one", nil, 0, core.ErrEmptySample},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateValues("x", tt.values, tt.min)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateNamesOffendingIndex(t *testing.T) {
	err := NewSample("delayed", []float64{1, 2, math.NaN()}).Validate(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delayed[2]")
	assert.True(t, core.IsNonFinite(err))
}
