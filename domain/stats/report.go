package stats

import (
	"fmt"

	"chronostat/domain/core"
)

// PairwiseComparison is a permutation comparison between two conditions.
// A failed comparison carries Error and no result.
type PairwiseComparison struct {
	A        string             `json:"a" yaml:"a"`
	B        string             `json:"b" yaml:"b"`
	MeanDiff float64            `json:"mean_diff" yaml:"mean_diff"`
	CohenD   float64            `json:"cohen_d" yaml:"cohen_d"`
	Result   *PermutationResult `json:"result,omitempty" yaml:"result,omitempty"`
	Welch    *TTestResult       `json:"welch,omitempty" yaml:"welch,omitempty"`
	Error    string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// Label returns "a vs b"
func (c PairwiseComparison) Label() string {
	return fmt.Sprintf("%s vs %s", c.A, c.B)
}

// ReferenceComparison is a one-sample t-test of a condition against a reference value
type ReferenceComparison struct {
	Condition string       `json:"condition" yaml:"condition"`
	Reference float64      `json:"reference" yaml:"reference"`
	Result    *TTestResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error     string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// PairedComparison is a paired t-test between a pre and a post column
type PairedComparison struct {
	Pre    string       `json:"pre" yaml:"pre"`
	Post   string       `json:"post" yaml:"post"`
	Result *TTestResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string       `json:"error,omitempty" yaml:"error,omitempty"`
}

// Label returns "pre vs post"
func (c PairedComparison) Label() string {
	return fmt.Sprintf("%s vs %s", c.Pre, c.Post)
}

// Report collects every comparison computed for one results table
type Report struct {
	ID           core.ReportID         `json:"id" yaml:"id"`
	Source       string                `json:"source" yaml:"source"`
	CreatedAt    core.Timestamp        `json:"created_at" yaml:"created_at"`
	Trials       int                   `json:"trials" yaml:"trials"`
	Seed         int64                 `json:"seed" yaml:"seed"`
	RunID        core.RunID            `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Descriptives []Descriptives        `json:"descriptives" yaml:"descriptives"`
	Pairwise     []PairwiseComparison  `json:"pairwise,omitempty" yaml:"pairwise,omitempty"`
	OneSample    []ReferenceComparison `json:"one_sample,omitempty" yaml:"one_sample,omitempty"`
	Paired       []PairedComparison    `json:"paired,omitempty" yaml:"paired,omitempty"`
}

// Failures counts comparisons that could not be computed
func (r *Report) Failures() int {
	n := 0
	for _, c := range r.Pairwise {
		if c.Error != "" {
			n++
		}
	}
	for _, c := range r.OneSample {
		if c.Error != "" {
			n++
		}
	}
	for _, c := range r.Paired {
		if c.Error != "" {
			n++
		}
	}
	return n
}
