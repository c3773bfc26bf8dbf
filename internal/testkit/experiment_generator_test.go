package testkit

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronostat/adapters/excel"
)

func TestExperimentGeneratorDeterministic(t *testing.T) {
	a := NewExperimentGenerator(DefaultExperimentConfig()).Table()
	b := NewExperimentGenerator(DefaultExperimentConfig()).Table()

	assert.Equal(t, a, b)
	assert.Equal(t, []string{"standard", "advanced", "delayed"}, a.Names())
	for _, c := range a.Columns {
		assert.Len(t, c.Values, 24)
	}
}

func TestExperimentGeneratorMissing(t *testing.T) {
	cfg := DefaultExperimentConfig()
	cfg.Subjects = 200
	cfg.MissingRate = 0.25

	for _, c := range NewExperimentGenerator(cfg).Table().Columns {
		assert.Equal(t, 200, len(c.Values)+c.Missing)
		assert.Greater(t, c.Missing, 0)
	}
}

func TestFatigueColumns(t *testing.T) {
	table := NewExperimentGenerator(DefaultExperimentConfig()).Fatigue([]float64{1, -1, 0})

	assert.Equal(t, []string{
		"standard_pre", "standard_post",
		"advanced_pre", "advanced_post",
		"delayed_pre", "delayed_post",
	}, table.Names())
	for _, c := range table.Columns {
		for _, v := range c.Values {
			assert.GreaterOrEqual(t, v, 1.0)
			assert.LessOrEqual(t, v, 10.0)
		}
	}
}

func TestWriteCSVRoundTripsThroughReader(t *testing.T) {
	cfg := DefaultExperimentConfig()
	cfg.MissingRate = 0.1
	table := NewExperimentGenerator(cfg).Table()

	path := filepath.Join(t.TempDir(), "experiment.csv")
	require.NoError(t, WriteCSV(path, table))

	read, err := excel.NewDataReader(excel.DefaultReaderConfig(path)).ReadTable(context.Background())
	require.NoError(t, err)
	require.Equal(t, table.Names(), read.Names())
	for i, c := range table.Columns {
		assert.InDeltaSlice(t, c.Values, read.Columns[i].Values, 1e-9)
	}
}
