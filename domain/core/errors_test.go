package core

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		invalid  bool
		nonFin   bool
		input    bool
		notFound bool
	}{
		{"empty sample", ErrEmptySample, true, false, true, false},
		{"trials", fmt.Errorf("run: %w", ErrInvalidTrials), true, false, true, false},
		{"nan", NewNonFiniteError("a", 2, math.NaN()), false, true, true, false},
		{"cell", NewUnparsableCellError("standard", 4, "abc"), false, true, true, false},
		{"degenerate", ErrDegenerateSample, false, false, true, false},
		{"condition", NewConditionMissingError("delayed"), false, false, false, true},
		{"other", errors.New("boom"), false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInvalidInput(tt.err); got != tt.invalid {
				t.Errorf("IsInvalidInput = %v, want %v", got, tt.invalid)
			}
			if got := IsNonFinite(tt.err); got != tt.nonFin {
				t.Errorf("IsNonFinite = %v, want %v", got, tt.nonFin)
			}
			if got := IsInputError(tt.err); got != tt.input {
				t.Errorf("IsInputError = %v, want %v", got, tt.input)
			}
			if got := IsNotFoundError(tt.err); got != tt.notFound {
				t.Errorf("IsNotFoundError = %v, want %v", got, tt.notFound)
			}
		})
	}
}
