package stats

// TestType names a significance test
type TestType string

const (
	TestPermutation TestType = "permutation"
	TestOneSampleT  TestType = "one_sample_t"
	TestPairedT     TestType = "paired_t"
	TestWelchT      TestType = "welch_t"
)

// NullDistributionSummary provides key statistics about the null distribution
type NullDistributionSummary struct {
	Mean         float64 `json:"mean" yaml:"mean"`
	StdDev       float64 `json:"std_dev" yaml:"std_dev"`
	Min          float64 `json:"min" yaml:"min"`
	Max          float64 `json:"max" yaml:"max"`
	Percentile95 float64 `json:"percentile_95" yaml:"percentile_95"`
	Percentile99 float64 `json:"percentile_99" yaml:"percentile_99"`
}

// PermutationResult is the outcome of one permutation comparison.
// INVARIANTS:
// - 0 <= PValue <= 1
// - PValue == Extreme / Trials
type PermutationResult struct {
	Observed    float64                  `json:"observed" yaml:"observed"` // mean(a) - mean(b)
	PValue      float64                  `json:"p_value" yaml:"p_value"`
	Extreme     int                      `json:"extreme" yaml:"extreme"`
	Trials      int                      `json:"trials" yaml:"trials"`
	Workers     int                      `json:"workers" yaml:"workers"`
	SizeA       int                      `json:"size_a" yaml:"size_a"`
	SizeB       int                      `json:"size_b" yaml:"size_b"`
	Marker      Marker                   `json:"marker" yaml:"marker"`
	NullSummary *NullDistributionSummary `json:"null_summary,omitempty" yaml:"null_summary,omitempty"`

	// NullDistribution is only populated when requested; it is never serialized.
	NullDistribution []float64 `json:"-" yaml:"-"`
}

// TTestResult is the outcome of a Student or Welch t-test
type TTestResult struct {
	Test      TestType `json:"test" yaml:"test"`
	T         float64  `json:"t" yaml:"t"`
	DoF       float64  `json:"dof" yaml:"dof"`
	PValue    float64  `json:"p_value" yaml:"p_value"`
	Mean      float64  `json:"mean" yaml:"mean"` // mean, or mean difference for paired/Welch
	Mu        float64  `json:"mu" yaml:"mu"`     // hypothesised mean
	N         int      `json:"n" yaml:"n"`
	Truncated int      `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	Marker    Marker   `json:"marker" yaml:"marker"`
}

// Descriptives summarizes one condition column
type Descriptives struct {
	Name    string  `json:"name" yaml:"name"`
	Count   int     `json:"count" yaml:"count"`
	Missing int     `json:"missing" yaml:"missing"`
	Mean    float64 `json:"mean" yaml:"mean"`
	StdDev  float64 `json:"std_dev" yaml:"std_dev"` // sample standard deviation
	Min     float64 `json:"min" yaml:"min"`
	Q25     float64 `json:"q25" yaml:"q25"`
	Median  float64 `json:"median" yaml:"median"`
	Q75     float64 `json:"q75" yaml:"q75"`
	Max     float64 `json:"max" yaml:"max"`

	// Shape markers are left zero for columns too small or flat to describe.
	Skewness       float64 `json:"skewness" yaml:"skewness"`
	ExcessKurtosis float64 `json:"excess_kurtosis" yaml:"excess_kurtosis"`
	Outliers       int     `json:"outliers" yaml:"outliers"`
	NormalityP     float64 `json:"normality_p,omitempty" yaml:"normality_p,omitempty"`
}
