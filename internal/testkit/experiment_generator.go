package testkit

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"

	"chronostat/domain/dataset"
)

// ConditionProfile describes the response distribution of one condition
type ConditionProfile struct {
	Name   string  `json:"name"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// ExperimentConfig configures the synthetic experiment generator
type ExperimentConfig struct {
	Subjects    int                `json:"subjects"`
	Conditions  []ConditionProfile `json:"conditions"`
	MissingRate float64            `json:"missing_rate"`
	Seed        int64              `json:"seed"`
}

// DefaultExperimentConfig mirrors the temporal task: estimates in milliseconds
// around the 750/675/825 ms targets of the three conditions
func DefaultExperimentConfig() ExperimentConfig {
	return ExperimentConfig{
		Subjects: 24,
		Conditions: []ConditionProfile{
			{Name: "standard", Mean: 760, StdDev: 40},
			{Name: "advanced", Mean: 690, StdDev: 45},
			{Name: "delayed", Mean: 840, StdDev: 50},
		},
		MissingRate: 0,
		Seed:        42,
	}
}

// ExperimentGenerator produces reproducible results tables
type ExperimentGenerator struct {
	config ExperimentConfig
	rng    *rand.Rand
}

// NewExperimentGenerator creates a generator seeded from config
func NewExperimentGenerator(config ExperimentConfig) *ExperimentGenerator {
	return &ExperimentGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Table draws one normally distributed column per condition
func (g *ExperimentGenerator) Table() *dataset.Table {
	table := dataset.NewTable("synthetic")
	for _, cond := range g.config.Conditions {
		col := dataset.Column{Name: cond.Name, Values: make([]float64, 0, g.config.Subjects)}
		for i := 0; i < g.config.Subjects; i++ {
			if g.rng.Float64() < g.config.MissingRate {
				col.Missing++
				continue
			}
			col.Values = append(col.Values, cond.Mean+g.rng.NormFloat64()*cond.StdDev)
		}
		table.Columns = append(table.Columns, col)
	}
	return table
}

// Fatigue draws pre/post columns per condition on a 1-10 scale, post shifted
// by effect[i] for condition i
func (g *ExperimentGenerator) Fatigue(effect []float64) *dataset.Table {
	table := dataset.NewTable("synthetic-fatigue")
	for i, cond := range g.config.Conditions {
		pre := dataset.Column{Name: cond.Name + "_pre"}
		post := dataset.Column{Name: cond.Name + "_post"}
		shift := 0.0
		if i < len(effect) {
			shift = effect[i]
		}
		for s := 0; s < g.config.Subjects; s++ {
			base := clamp(4+g.rng.NormFloat64()*1.5, 1, 10)
			pre.Values = append(pre.Values, base)
			post.Values = append(post.Values, clamp(base+shift+g.rng.NormFloat64()*0.5, 1, 10))
		}
		table.Columns = append(table.Columns, pre, post)
	}
	return table
}

// WriteCSV writes table to path with a header row. Shorter columns leave
// empty cells.
func WriteCSV(path string, table *dataset.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Names()); err != nil {
		return err
	}

	rows := 0
	for _, c := range table.Columns {
		if len(c.Values) > rows {
			rows = len(c.Values)
		}
	}
	for r := 0; r < rows; r++ {
		record := make([]string, len(table.Columns))
		for i, c := range table.Columns {
			if r < len(c.Values) {
				record[i] = strconv.FormatFloat(c.Values[r], 'f', -1, 64)
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("row %d: %w", r+1, err)
		}
	}
	w.Flush()
	return w.Error()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
