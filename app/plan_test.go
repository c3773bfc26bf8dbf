package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronostat/domain/core"
	"chronostat/domain/dataset"
)

func TestPlanValidate(t *testing.T) {
	tests := []struct {
		name    string
		plan    Plan
		wantErr bool
	}{
		{"three conditions", Plan{Conditions: []string{"standard", "advanced", "delayed"}}, false},
		{"references only", Plan{References: []Reference{{Condition: "standard", Value: 750}}}, false},
		{"pairs only", Plan{Pairs: []PairSpec{{Pre: "a_pre", Post: "a_post"}}}, false},
		{"single condition", Plan{Conditions: []string{"standard"}}, true},
		{"empty", Plan{}, true},
		{"half pair", Plan{Pairs: []PairSpec{{Pre: "a_pre"}}}, true},
		{"target with one condition", Plan{Conditions: []string{"standard"}, Target: "delayed"}, false},
		{"target resolved from table", Plan{Target: "delayed"}, false},
		{"target only against itself", Plan{Conditions: []string{"Delayed"}, Target: "delayed"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPlanConditionPairs(t *testing.T) {
	plan := Plan{Conditions: []string{"standard", "advanced", "delayed"}}
	assert.Equal(t, [][2]string{
		{"standard", "advanced"},
		{"standard", "delayed"},
		{"advanced", "delayed"},
	}, plan.ConditionPairs())
}

func TestPlanTargetPairs(t *testing.T) {
	plan := Plan{Conditions: []string{"standard", "advanced", "Delayed", "slow"}, Target: "delayed"}
	assert.Equal(t, [][2]string{
		{"standard", "delayed"},
		{"advanced", "delayed"},
		{"slow", "delayed"},
	}, plan.ConditionPairs())
	assert.Equal(t, []string{"standard", "advanced", "Delayed", "slow"}, plan.Columns())
	assert.False(t, plan.NeedsTable())
}

func TestPlanResolveTarget(t *testing.T) {
	table := dataset.NewTable("distance.csv",
		dataset.Column{Name: "c1"}, dataset.Column{Name: "c2"}, dataset.Column{Name: "c3"},
		dataset.Column{Name: "c4"}, dataset.Column{Name: "c5"},
	)

	plan := Plan{Target: "c4"}
	require.True(t, plan.NeedsTable())
	assert.Equal(t, -1, ComparisonCount(plan))

	resolved := plan.Resolve(table)
	assert.Equal(t, [][2]string{{"c1", "c4"}, {"c2", "c4"}, {"c3", "c4"}, {"c5", "c4"}}, resolved.ConditionPairs())
	assert.Equal(t, 4, ComparisonCount(resolved))

	explicit := Plan{Conditions: []string{"c1"}, Target: "c4"}
	assert.Equal(t, explicit, explicit.Resolve(table))
}

func TestPlanColumnsDeduplicates(t *testing.T) {
	plan := Plan{
		Conditions: []string{"standard", "advanced"},
		References: []Reference{{Condition: "Standard", Value: 750}},
		Pairs:      []PairSpec{{Pre: "standard_pre", Post: "standard_post"}},
	}
	assert.Equal(t, []string{"standard", "advanced", "standard_pre", "standard_post"}, plan.Columns())
}

func TestParseReferences(t *testing.T) {
	conds := []string{"standard", "advanced", "delayed"}

	refs, err := ParseReferences(conds, "750, 675,825")
	require.NoError(t, err)
	assert.Equal(t, []Reference{
		{Condition: "standard", Value: 750},
		{Condition: "advanced", Value: 675},
		{Condition: "delayed", Value: 825},
	}, refs)

	refs, err = ParseReferences(conds, "")
	require.NoError(t, err)
	assert.Nil(t, refs)

	_, err = ParseReferences(conds, "750,675")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = ParseReferences(conds, "750,x,825")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestParsePairs(t *testing.T) {
	pairs, err := ParsePairs([]string{"Standard_pre:Standard_post", " a : b "})
	require.NoError(t, err)
	assert.Equal(t, []PairSpec{{Pre: "Standard_pre", Post: "Standard_post"}, {Pre: "a", Post: "b"}}, pairs)

	for _, bad := range []string{"nocolon", ":post", "pre:"} {
		_, err := ParsePairs([]string{bad})
		assert.ErrorIs(t, err, core.ErrInvalidInput, bad)
	}
}
