package app

import (
	"fmt"
	"strconv"
	"strings"

	"chronostat/domain/core"
	"chronostat/domain/dataset"
)

// Reference is a one-sample t-test target for one condition
type Reference struct {
	Condition string  `json:"condition"`
	Value     float64 `json:"value"`
}

// PairSpec names a pre/post column pair for a paired t-test
type PairSpec struct {
	Pre  string `json:"pre"`
	Post string `json:"post"`
}

// Plan lists the comparisons to run against one table
type Plan struct {
	// Conditions are compared pairwise by permutation, in (i, j>i) order.
	Conditions []string `json:"conditions"`
	// Target, when set, replaces the pairwise sweep: every other condition
	// is compared against it alone. With no Conditions every other column
	// of the table is used.
	Target     string      `json:"target,omitempty"`
	References []Reference `json:"references,omitempty"`
	Pairs      []PairSpec  `json:"pairs,omitempty"`
	// Welch adds a Welch t-test next to each permutation comparison.
	Welch bool `json:"welch,omitempty"`
}

// Validate checks that the plan asks for at least one comparison
func (p Plan) Validate() error {
	if p.Target != "" {
		if len(p.Conditions) > 0 && len(p.ConditionPairs()) == 0 {
			return fmt.Errorf("%w: no condition to compare against target %s", core.ErrInvalidInput, p.Target)
		}
	} else if len(p.Conditions) == 1 {
		return fmt.Errorf("%w: pairwise comparison needs at least two conditions", core.ErrInvalidInput)
	}
	if p.Target == "" && len(p.Conditions) == 0 && len(p.References) == 0 && len(p.Pairs) == 0 {
		return fmt.Errorf("%w: plan has no comparisons", core.ErrInvalidInput)
	}
	for _, pair := range p.Pairs {
		if pair.Pre == "" || pair.Post == "" {
			return fmt.Errorf("%w: paired comparison needs both columns", core.ErrInvalidInput)
		}
	}
	return nil
}

// ConditionPairs returns every (a, b) condition pair in plan order, or every
// (condition, target) pair when the plan has a target
func (p Plan) ConditionPairs() [][2]string {
	var pairs [][2]string
	if p.Target != "" {
		for _, c := range p.Conditions {
			if !sameColumn(c, p.Target) {
				pairs = append(pairs, [2]string{c, p.Target})
			}
		}
		return pairs
	}
	for i := 0; i < len(p.Conditions); i++ {
		for j := i + 1; j < len(p.Conditions); j++ {
			pairs = append(pairs, [2]string{p.Conditions[i], p.Conditions[j]})
		}
	}
	return pairs
}

// NeedsTable reports whether the comparisons depend on the table's columns
func (p Plan) NeedsTable() bool {
	return p.Target != "" && len(p.Conditions) == 0
}

// Resolve fills the conditions of a target plan from the table's columns
func (p Plan) Resolve(table *dataset.Table) Plan {
	if p.NeedsTable() {
		p.Conditions = table.Names()
	}
	return p
}

// Columns returns every column the plan touches, first mention first
func (p Plan) Columns() []string {
	seen := make(map[string]bool)
	var cols []string
	add := func(name string) {
		key := strings.ToLower(strings.TrimSpace(name))
		if key != "" && !seen[key] {
			seen[key] = true
			cols = append(cols, name)
		}
	}
	for _, c := range p.Conditions {
		add(c)
	}
	add(p.Target)
	for _, r := range p.References {
		add(r.Condition)
	}
	for _, pair := range p.Pairs {
		add(pair.Pre)
		add(pair.Post)
	}
	return cols
}

func sameColumn(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ParseReferences pairs reference values with conditions by position
func ParseReferences(conditions []string, values string) ([]Reference, error) {
	if strings.TrimSpace(values) == "" {
		return nil, nil
	}
	parts := strings.Split(values, ",")
	if len(parts) != len(conditions) {
		return nil, fmt.Errorf("%w: %d reference values for %d conditions", core.ErrInvalidInput, len(parts), len(conditions))
	}
	refs := make([]Reference, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: reference %q", core.ErrInvalidInput, part)
		}
		refs[i] = Reference{Condition: conditions[i], Value: v}
	}
	return refs, nil
}

// ParsePairs parses "pre:post" specs
func ParsePairs(specs []string) ([]PairSpec, error) {
	pairs := make([]PairSpec, 0, len(specs))
	for _, spec := range specs {
		pre, post, ok := strings.Cut(spec, ":")
		pre, post = strings.TrimSpace(pre), strings.TrimSpace(post)
		if !ok || pre == "" || post == "" {
			return nil, fmt.Errorf("%w: pair %q must look like pre:post", core.ErrInvalidInput, spec)
		}
		pairs = append(pairs, PairSpec{Pre: pre, Post: post})
	}
	return pairs, nil
}
