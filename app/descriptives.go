package app

import (
	"math"
	"slices"

	"github.com/montanaflynn/stats"

	"chronostat/domain/dataset"
	domainstats "chronostat/domain/stats"
	"chronostat/internal/profiling"
)

// Describe summarizes one column; an empty column yields a zero summary
func Describe(col dataset.Column) domainstats.Descriptives {
	d := domainstats.Descriptives{
		Name:    col.Name,
		Count:   len(col.Values),
		Missing: col.Missing,
	}
	data := stats.Float64Data(col.Values)
	if d.Count == 0 {
		return d
	}

	d.Mean, _ = data.Mean()
	d.Min, _ = data.Min()
	d.Max, _ = data.Max()
	d.Median, _ = data.Median()
	if d.Count < 2 {
		d.Q25, d.Q75 = d.Median, d.Median
		return d
	}
	d.StdDev, _ = data.StandardDeviationSample()
	sorted := slices.Sorted(slices.Values(col.Values))
	d.Q25, d.Q75 = quantile(sorted, 0.25), quantile(sorted, 0.75)

	if shape, ok := profiling.AnalyzeShape(col.Values); ok {
		d.Skewness = shape.Skewness
		d.ExcessKurtosis = shape.ExcessKurtosis
		d.Outliers = shape.Outliers
		d.NormalityP = shape.NormalityP
	}
	return d
}

// quantile interpolates linearly between the closest ranks of sorted data,
// placing p at position p*(n-1)
func quantile(sorted []float64, p float64) float64 {
	h := p * float64(len(sorted)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}
