package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrInvalidInput     = errors.New("invalid input")
	ErrEmptySample      = fmt.Errorf("%w: empty sample", ErrInvalidInput)
	ErrInvalidTrials    = fmt.Errorf("%w: trial count must be positive", ErrInvalidInput)
	ErrMissingRNG       = fmt.Errorf("%w: random source is nil", ErrInvalidInput)
	ErrInsufficientData = fmt.Errorf("%w: insufficient data for analysis", ErrInvalidInput)
	ErrNonFiniteValue   = errors.New("non-finite value")

	// Statistic errors
	ErrDegenerateSample = errors.New("degenerate sample: zero variance")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")

	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrConditionMissing = fmt.Errorf("%w: condition column", ErrNotFound)
)

// NewNonFiniteError reports the first offending value of a sample.
func NewNonFiniteError(sample string, index int, value float64) error {
	return fmt.Errorf("%w: %s[%d] = %v", ErrNonFiniteValue, sample, index, value)
}

// NewUnparsableCellError reports a table cell that is not a number.
func NewUnparsableCellError(column string, row int, raw string) error {
	return fmt.Errorf("%w: column %q row %d holds %q", ErrNonFiniteValue, column, row, raw)
}

// NewConditionMissingError reports a condition that has no column in the table.
func NewConditionMissingError(name string) error {
	return fmt.Errorf("%w %q", ErrConditionMissing, name)
}

// Error checking helpers
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsNonFinite(err error) bool {
	return errors.Is(err, ErrNonFiniteValue)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInputError reports whether err is a caller mistake rather than a fault.
func IsInputError(err error) bool {
	return IsInvalidInput(err) || IsNonFinite(err) || errors.Is(err, ErrDegenerateSample)
}
