package battery

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"chronostat/domain/core"
	domainstats "chronostat/domain/stats"
	"chronostat/internal"
	"chronostat/ports"
)

// DefaultTrials is the number of permutations drawn when none is configured
const DefaultTrials = 10000

// tieTolerance is the relative slack under which a permuted statistic counts
// as equal to the observed one.
const tieTolerance = 1e-12

// cancelCheckInterval is how many trials run between context checks
const cancelCheckInterval = 256

// chunkSize is the number of trials drawn from one random stream. Chunks are
// fixed regardless of worker count, so a seeded run gives the same p-value on
// any machine.
const chunkSize = 1024

// EstimatePValue estimates the two-sided permutation p-value of
// mean(a) - mean(b) using trials random relabelings drawn from rng.
//
// A trial counts as extreme when |diff| >= |observed|. The result is
// count/trials and always lies in [0,1].
func EstimatePValue(a, b []float64, trials int, rng *rand.Rand) (float64, error) {
	if err := validateInputs("sample_a", a, "sample_b", b, trials); err != nil {
		return 0, err
	}
	if rng == nil {
		return 0, core.ErrMissingRNG
	}

	pool := pooled(a, b)
	observed := meanDifference(pool, len(a))
	extreme, err := runChunk(context.Background(), pool, len(a), observed, trials, rng, nil)
	if err != nil {
		return 0, err
	}
	return float64(extreme) / float64(trials), nil
}

// Engine runs permutation comparisons with streams drawn from an RNGPort
type Engine struct {
	rngPort  ports.RNGPort
	trials   int
	workers  int
	seed     int64
	runID    string
	keepNull bool
	logger   *internal.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithTrials sets the number of permutations per comparison
func WithTrials(n int) Option {
	return func(e *Engine) { e.trials = n }
}

// WithWorkers bounds how many trial chunks run concurrently
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// WithSeed sets the base seed all chunk streams derive from
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithRunID namespaces the random streams of one run
func WithRunID(id core.RunID) Option {
	return func(e *Engine) { e.runID = id.String() }
}

// WithNullDistribution keeps every permuted statistic on the result
func WithNullDistribution(keep bool) Option {
	return func(e *Engine) { e.keepNull = keep }
}

// WithLogger sets the engine logger
func WithLogger(l *internal.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates a permutation engine with default settings
func NewEngine(rngPort ports.RNGPort, opts ...Option) *Engine {
	e := &Engine{
		rngPort: rngPort,
		trials:  DefaultTrials,
		workers: 1,
		seed:    42,
		logger:  internal.DefaultLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Trials returns the configured permutation count
func (e *Engine) Trials() int {
	return e.trials
}

// Seed returns the configured base seed
func (e *Engine) Seed() int64 {
	return e.seed
}

// RunID returns the stream namespace, empty when none is set
func (e *Engine) RunID() core.RunID {
	return core.RunID(e.runID)
}

// Workers returns the configured concurrency bound
func (e *Engine) Workers() int {
	return e.workers
}

// Run compares two samples. Trials are cut into fixed-size chunks, each with
// a copy of the pooled values and its own stream keyed by the sample names and
// chunk index. Workers only schedule chunks, so the result depends on inputs,
// seed and trials alone.
func (e *Engine) Run(ctx context.Context, a, b domainstats.Sample) (*domainstats.PermutationResult, error) {
	if err := validateInputs(a.Name, a.Values, b.Name, b.Values, e.trials); err != nil {
		return nil, fmt.Errorf("%s vs %s: %w", a.Name, b.Name, err)
	}
	if e.rngPort == nil {
		return nil, core.ErrMissingRNG
	}

	pool := pooled(a.Values, b.Values)
	n1 := len(a.Values)
	observed := meanDifference(pool, n1)

	chunks := splitTrials(e.trials, chunkSize)
	counts := make([]int, len(chunks))
	var null []float64
	if e.keepNull {
		null = make([]float64, e.trials)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	offset := 0
	for i, size := range chunks {
		i, size, start := i, size, offset
		offset += size
		g.Go(func() error {
			key := fmt.Sprintf("%s|%s#%d", a.Name, b.Name, i)
			stream, err := e.rngPort.Stream(gctx, e.runID, string(domainstats.TestPermutation), key, e.seed)
			if err != nil {
				return fmt.Errorf("permutation stream %s: %w", key, err)
			}
			var out []float64
			if null != nil {
				out = null[start : start+size]
			}
			n, err := runChunk(gctx, pool, n1, observed, size, stream, out)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	extreme := 0
	for _, c := range counts {
		extreme += c
	}
	p := float64(extreme) / float64(e.trials)

	result := &domainstats.PermutationResult{
		Observed:         observed,
		PValue:           p,
		Extreme:          extreme,
		Trials:           e.trials,
		Workers:          min(e.workers, len(chunks)),
		SizeA:            n1,
		SizeB:            len(b.Values),
		Marker:           domainstats.MarkerFor(p),
		NullDistribution: null,
	}
	if null != nil {
		summary, err := SummarizeNull(null)
		if err != nil {
			return nil, err
		}
		result.NullSummary = summary
	}

	e.logger.Debug("permutation %s vs %s: observed=%.4f p=%.4f trials=%d chunks=%d workers=%d",
		a.Name, b.Name, observed, p, e.trials, len(chunks), e.workers)
	return result, nil
}

// SummarizeNull computes the key statistics of a null distribution
func SummarizeNull(null []float64) (*domainstats.NullDistributionSummary, error) {
	data := stats.Float64Data(null)
	mean, err := data.Mean()
	if err != nil {
		return nil, err
	}
	sd, err := data.StandardDeviation()
	if err != nil {
		return nil, err
	}
	min, err := data.Min()
	if err != nil {
		return nil, err
	}
	max, err := data.Max()
	if err != nil {
		return nil, err
	}
	p95, err := data.Percentile(95)
	if err != nil {
		return nil, err
	}
	p99, err := data.Percentile(99)
	if err != nil {
		return nil, err
	}
	return &domainstats.NullDistributionSummary{
		Mean:         mean,
		StdDev:       sd,
		Min:          min,
		Max:          max,
		Percentile95: p95,
		Percentile99: p99,
	}, nil
}

// runChunk folds trials permutations over a private copy of pool and returns
// the number of extreme statistics. When out is non-nil it receives each
// permuted statistic in trial order.
func runChunk(ctx context.Context, pool []float64, n1 int, observed float64, trials int, rng *rand.Rand, out []float64) (int, error) {
	buf := make([]float64, len(pool))
	copy(buf, pool)

	absObserved := math.Abs(observed)
	threshold := absObserved - tieTolerance*math.Max(1, absObserved)

	extreme := 0
	for t := 0; t < trials; t++ {
		if t%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
		shuffle(buf, rng)
		diff := meanDifference(buf, n1)
		if out != nil {
			out[t] = diff
		}
		if math.Abs(diff) >= threshold {
			extreme++
		}
	}
	return extreme, nil
}

// shuffle is an in-place Fisher-Yates shuffle
func shuffle(values []float64, rng *rand.Rand) {
	for i := len(values) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		values[i], values[j] = values[j], values[i]
	}
}

// meanDifference returns mean(values[:n1]) - mean(values[n1:])
func meanDifference(values []float64, n1 int) float64 {
	var sumA, sumB float64
	for _, v := range values[:n1] {
		sumA += v
	}
	for _, v := range values[n1:] {
		sumB += v
	}
	return sumA/float64(n1) - sumB/float64(len(values)-n1)
}

func pooled(a, b []float64) []float64 {
	pool := make([]float64, 0, len(a)+len(b))
	pool = append(pool, a...)
	return append(pool, b...)
}

// splitTrials cuts trials into contiguous chunks of size, the last one
// holding the remainder
func splitTrials(trials, size int) []int {
	if size < 1 {
		size = 1
	}
	chunks := make([]int, 0, (trials+size-1)/size)
	for trials > 0 {
		n := min(size, trials)
		chunks = append(chunks, n)
		trials -= n
	}
	return chunks
}

func validateInputs(nameA string, a []float64, nameB string, b []float64, trials int) error {
	if trials <= 0 {
		return fmt.Errorf("%w: got %d", core.ErrInvalidTrials, trials)
	}
	if err := domainstats.ValidateValues(nameA, a, 1); err != nil {
		return err
	}
	return domainstats.ValidateValues(nameB, b, 1)
}
