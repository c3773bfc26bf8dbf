package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Shape describes how far a sample departs from a normal distribution
type Shape struct {
	Skewness       float64 `json:"skewness" yaml:"skewness"`
	ExcessKurtosis float64 `json:"excess_kurtosis" yaml:"excess_kurtosis"`
	// Outliers counts values beyond 1.5 IQR from the quartiles.
	Outliers int `json:"outliers" yaml:"outliers"`
	// NormalityP is the Jarque-Bera p-value; small values reject normality.
	NormalityP float64 `json:"normality_p" yaml:"normality_p"`
}

// MinShapeSize is the smallest sample AnalyzeShape describes
const MinShapeSize = 3

// AnalyzeShape computes moment-based shape markers. It returns ok=false for
// samples smaller than MinShapeSize or without spread.
func AnalyzeShape(data []float64) (Shape, bool) {
	if len(data) < MinShapeSize {
		return Shape{}, false
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return Shape{}, false
	}

	n := float64(len(data))
	var m2, m3, m4 float64
	for _, x := range data {
		d := x - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	m2, m3, m4 = m2/n, m3/n, m4/n
	if m2 == 0 {
		return Shape{}, false
	}

	skew := m3 / math.Pow(m2, 1.5)
	kurt := m4/(m2*m2) - 3

	jb := n / 6 * (skew*skew + kurt*kurt/4)
	shape := Shape{
		Skewness:       skew,
		ExcessKurtosis: kurt,
		NormalityP:     distuv.ChiSquared{K: 2}.Survival(jb),
	}

	q, err := stats.Quartile(data)
	if err == nil {
		shape.Outliers = detectOutliers(data, q.Q1, q.Q3)
	}
	return shape, true
}

// detectOutliers identifies outliers using IQR method
func detectOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	outlierCount := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			outlierCount++
		}
	}
	return outlierCount
}
