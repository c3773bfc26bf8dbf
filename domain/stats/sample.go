package stats

import (
	"fmt"
	"math"

	"chronostat/domain/core"
)

// Sample is an ordered sequence of observations for a single condition.
// Values are copied on construction; callers must not rely on aliasing.
type Sample struct {
	Name   string    `json:"name" yaml:"name"`
	Values []float64 `json:"values" yaml:"values"`
}

// NewSample creates a sample owning a private copy of values
func NewSample(name string, values []float64) Sample {
	owned := make([]float64, len(values))
	copy(owned, values)
	return Sample{Name: name, Values: owned}
}

// Len returns the number of observations
func (s Sample) Len() int {
	return len(s.Values)
}

// Validate checks that the sample holds at least min finite observations.
func (s Sample) Validate(min int) error {
	return ValidateValues(s.Name, s.Values, min)
}

// ValidateValues fails with ErrEmptySample / ErrInsufficientData when values is
// shorter than min and with ErrNonFiniteValue on the first NaN or infinity.
func ValidateValues(name string, values []float64, min int) error {
	if min < 1 {
		min = 1
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: %s", core.ErrEmptySample, name)
	}
	if len(values) < min {
		return fmt.Errorf("%w: %s has %d observations, need %d", core.ErrInsufficientData, name, len(values), min)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewNonFiniteError(name, i, v)
		}
	}
	return nil
}
