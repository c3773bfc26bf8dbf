package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	ReportID     ID
	RunID        ID
	ConditionKey ID
)

func (id ReportID) String() string     { return ID(id).String() }
func (id RunID) String() string        { return ID(id).String() }
func (id ConditionKey) String() string { return ID(id).String() }

// NewReportID creates a fresh report identifier
func NewReportID() ReportID { return ReportID(NewID()) }

// ParseRunID parses a user-chosen run name. Runs sharing a seed draw
// independent permutations when their names differ.
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: run ID cannot be empty", ErrInvalidInput)
	}
	return RunID(s), nil
}

// ParseConditionKey parses a column name into a ConditionKey.
// Keys are case-insensitive and trimmed.
func ParseConditionKey(s string) (ConditionKey, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return "", fmt.Errorf("condition key cannot be empty")
	}
	return ConditionKey(key), nil
}
