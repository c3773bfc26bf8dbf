// Package ttest implements the parametric tests reported next to permutation
// comparisons: one-sample, paired and Welch t-tests, plus Cohen's d.
package ttest

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"chronostat/domain/core"
	domainstats "chronostat/domain/stats"
)

// OneSample tests whether the mean of sample differs from mu
func OneSample(sample domainstats.Sample, mu float64) (*domainstats.TTestResult, error) {
	if err := sample.Validate(2); err != nil {
		return nil, err
	}
	if math.IsNaN(mu) || math.IsInf(mu, 0) {
		return nil, core.NewNonFiniteError("mu", 0, mu)
	}

	res, err := oneSample(sample.Values, mu)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sample.Name, err)
	}
	res.Test = domainstats.TestOneSampleT
	return res, nil
}

// Paired tests whether the mean of pre[i]-post[i] differs from zero.
// Samples of unequal length are truncated to the shorter one and the number of
// discarded observations is reported in Truncated.
func Paired(pre, post domainstats.Sample) (*domainstats.TTestResult, error) {
	n := len(pre.Values)
	if len(post.Values) < n {
		n = len(post.Values)
	}
	truncated := len(pre.Values) + len(post.Values) - 2*n

	if err := domainstats.ValidateValues(pre.Name, pre.Values[:n], 2); err != nil {
		return nil, err
	}
	if err := domainstats.ValidateValues(post.Name, post.Values[:n], 2); err != nil {
		return nil, err
	}

	diffs := make([]float64, n)
	for i := 0; i < n; i++ {
		diffs[i] = pre.Values[i] - post.Values[i]
	}

	res, err := oneSample(diffs, 0)
	if err != nil {
		return nil, fmt.Errorf("%s vs %s: %w", pre.Name, post.Name, err)
	}
	res.Test = domainstats.TestPairedT
	res.Truncated = truncated
	return res, nil
}

// Welch tests whether two independent samples share a mean without assuming
// equal variances
func Welch(a, b domainstats.Sample) (*domainstats.TTestResult, error) {
	if err := a.Validate(2); err != nil {
		return nil, err
	}
	if err := b.Validate(2); err != nil {
		return nil, err
	}

	n1 := float64(a.Len())
	n2 := float64(b.Len())
	mean1, _ := stats.Mean(a.Values)
	mean2, _ := stats.Mean(b.Values)
	var1, _ := stats.SampleVariance(a.Values)
	var2, _ := stats.SampleVariance(b.Values)

	se2 := var1/n1 + var2/n2
	if se2 == 0 {
		return nil, fmt.Errorf("%s vs %s: %w", a.Name, b.Name, core.ErrDegenerateSample)
	}

	t := (mean1 - mean2) / math.Sqrt(se2)
	df := se2 * se2 / ((var1/n1)*(var1/n1)/(n1-1) + (var2/n2)*(var2/n2)/(n2-1))
	p := twoSidedP(t, df)

	return &domainstats.TTestResult{
		Test:   domainstats.TestWelchT,
		T:      t,
		DoF:    df,
		PValue: p,
		Mean:   mean1 - mean2,
		N:      a.Len() + b.Len(),
		Marker: domainstats.MarkerFor(p),
	}, nil
}

// CohenD returns |mean(a)-mean(b)| scaled by the root mean of the two
// population variances.
func CohenD(a, b domainstats.Sample) (float64, error) {
	if err := a.Validate(1); err != nil {
		return 0, err
	}
	if err := b.Validate(1); err != nil {
		return 0, err
	}
	mean1, _ := stats.Mean(a.Values)
	mean2, _ := stats.Mean(b.Values)
	var1, _ := stats.PopulationVariance(a.Values)
	var2, _ := stats.PopulationVariance(b.Values)

	pooled := math.Sqrt((var1 + var2) / 2)
	if pooled == 0 {
		return 0, fmt.Errorf("%s vs %s: %w", a.Name, b.Name, core.ErrDegenerateSample)
	}
	return math.Abs(mean1-mean2) / pooled, nil
}

func oneSample(values []float64, mu float64) (*domainstats.TTestResult, error) {
	n := float64(len(values))
	mean, _ := stats.Mean(values)
	sd, _ := stats.StandardDeviationSample(values)
	if sd == 0 {
		return nil, core.ErrDegenerateSample
	}

	t := (mean - mu) / (sd / math.Sqrt(n))
	df := n - 1
	p := twoSidedP(t, df)

	return &domainstats.TTestResult{
		T:      t,
		DoF:    df,
		PValue: p,
		Mean:   mean,
		Mu:     mu,
		N:      len(values),
		Marker: domainstats.MarkerFor(p),
	}, nil
}

func twoSidedP(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))
	if p > 1 {
		p = 1
	}
	return p
}
