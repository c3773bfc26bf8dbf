package dataset

import (
	"fmt"
	"strings"

	"chronostat/domain/core"
	"chronostat/domain/stats"
)

// Column is one condition of a results table with missing cells dropped
type Column struct {
	Name    string    `json:"name"`
	Values  []float64 `json:"values"`
	Missing int       `json:"missing"`
}

// Table is a transient results table loaded for one analysis
type Table struct {
	Source  string   `json:"source"`
	Columns []Column `json:"columns"`
}

// NewTable builds a table from ordered columns
func NewTable(source string, columns ...Column) *Table {
	return &Table{Source: source, Columns: columns}
}

// Names returns column names in table order
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name, ignoring case and surrounding space
func (t *Table) Column(name string) (*Column, bool) {
	key, err := core.ParseConditionKey(name)
	if err != nil {
		return nil, false
	}
	for i := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(t.Columns[i].Name), string(key)) {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Sample returns the named column as an immutable sample
func (t *Table) Sample(name string) (stats.Sample, error) {
	col, ok := t.Column(name)
	if !ok {
		return stats.Sample{}, core.NewConditionMissingError(name)
	}
	return stats.NewSample(col.Name, col.Values), nil
}

// Rename assigns new names to the first len(names) columns in order
func (t *Table) Rename(names []string) error {
	if len(names) > len(t.Columns) {
		return fmt.Errorf("%w: %d names for %d columns", core.ErrInvalidInput, len(names), len(t.Columns))
	}
	for i, n := range names {
		t.Columns[i].Name = strings.TrimSpace(n)
	}
	return nil
}
