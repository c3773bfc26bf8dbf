package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"chronostat/adapters/stats/ttest"
	"chronostat/domain/core"
	"chronostat/domain/dataset"
	domainstats "chronostat/domain/stats"
	"chronostat/internal"
	"chronostat/ports"
)

// AnalysisService runs every comparison of a plan against a results table
type AnalysisService struct {
	battery     ports.BatteryPort
	concurrency int
	logger      *internal.Logger
	onProgress  func()
}

// NewAnalysisService creates an analysis service around a permutation battery
func NewAnalysisService(battery ports.BatteryPort, concurrency int, logger *internal.Logger) *AnalysisService {
	if concurrency < 1 {
		concurrency = 1
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &AnalysisService{
		battery:     battery,
		concurrency: concurrency,
		logger:      logger,
	}
}

// OnProgress registers fn to be called once per finished comparison.
// fn may be called from several goroutines at once.
func (s *AnalysisService) OnProgress(fn func()) {
	s.onProgress = fn
}

// ComparisonCount returns how many comparisons Analyze will run for plan, or
// -1 when that depends on the table's columns
func ComparisonCount(plan Plan) int {
	if plan.NeedsTable() {
		return -1
	}
	return len(plan.ConditionPairs()) + len(plan.References) + len(plan.Pairs)
}

// Analyze computes descriptives and all planned comparisons. A comparison that
// fails records its error and leaves the others untouched; only a cancelled
// context or an invalid plan fails the whole analysis.
func (s *AnalysisService) Analyze(ctx context.Context, table *dataset.Table, plan Plan) (*domainstats.Report, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, fmt.Errorf("%w: no table", core.ErrInvalidInput)
	}
	if plan.NeedsTable() {
		plan = plan.Resolve(table)
		if err := plan.Validate(); err != nil {
			return nil, err
		}
	}

	report := &domainstats.Report{
		ID:        core.NewReportID(),
		Source:    table.Source,
		CreatedAt: core.Now(),
		Trials:    s.battery.Trials(),
		Seed:      s.battery.Seed(),
		RunID:     s.battery.RunID(),
	}

	for _, name := range plan.Columns() {
		if col, ok := table.Column(name); ok {
			report.Descriptives = append(report.Descriptives, Describe(*col))
		}
	}

	pairs := plan.ConditionPairs()
	report.Pairwise = make([]domainstats.PairwiseComparison, len(pairs))
	report.OneSample = make([]domainstats.ReferenceComparison, len(plan.References))
	report.Paired = make([]domainstats.PairedComparison, len(plan.Pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			report.Pairwise[i] = s.comparePair(gctx, table, pair[0], pair[1], plan.Welch)
			s.tick()
			return gctx.Err()
		})
	}
	for i, ref := range plan.References {
		i, ref := i, ref
		g.Go(func() error {
			report.OneSample[i] = s.compareReference(table, ref)
			s.tick()
			return gctx.Err()
		})
	}
	for i, pair := range plan.Pairs {
		i, pair := i, pair
		g.Go(func() error {
			report.Paired[i] = s.comparePaired(table, pair)
			s.tick()
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if n := report.Failures(); n > 0 {
		s.logger.Warn("analysis of %s finished with %d failed comparisons", table.Source, n)
	}
	s.logger.Info("analysis %s of %s: %d pairwise, %d one-sample, %d paired",
		report.ID, table.Source, len(report.Pairwise), len(report.OneSample), len(report.Paired))
	return report, nil
}

// AnalyzeSource reads a table from src and analyzes it
func (s *AnalysisService) AnalyzeSource(ctx context.Context, src ports.TableReader, plan Plan) (*domainstats.Report, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	table, err := src.ReadTable(ctx)
	if err != nil {
		return nil, err
	}
	return s.Analyze(ctx, table, plan)
}

func (s *AnalysisService) comparePair(ctx context.Context, table *dataset.Table, nameA, nameB string, welch bool) domainstats.PairwiseComparison {
	out := domainstats.PairwiseComparison{A: nameA, B: nameB}

	a, err := table.Sample(nameA)
	if err != nil {
		return s.failPair(out, err)
	}
	b, err := table.Sample(nameB)
	if err != nil {
		return s.failPair(out, err)
	}

	res, err := s.battery.Run(ctx, a, b)
	if err != nil {
		return s.failPair(out, err)
	}
	out.Result = res
	out.MeanDiff = res.Observed

	if d, err := ttest.CohenD(a, b); err == nil {
		out.CohenD = d
	} else {
		s.logger.Debug("cohen's d for %s: %v", out.Label(), err)
	}

	if welch {
		if w, err := ttest.Welch(a, b); err == nil {
			out.Welch = w
		} else {
			s.logger.Debug("welch t-test for %s: %v", out.Label(), err)
		}
	}
	return out
}

func (s *AnalysisService) failPair(out domainstats.PairwiseComparison, err error) domainstats.PairwiseComparison {
	s.logger.Warn("comparison %s skipped: %v", out.Label(), err)
	out.Error = err.Error()
	return out
}

func (s *AnalysisService) compareReference(table *dataset.Table, ref Reference) domainstats.ReferenceComparison {
	out := domainstats.ReferenceComparison{Condition: ref.Condition, Reference: ref.Value}

	sample, err := table.Sample(ref.Condition)
	if err == nil {
		out.Result, err = ttest.OneSample(sample, ref.Value)
	}
	if err != nil {
		s.logger.Warn("one-sample test of %s skipped: %v", ref.Condition, err)
		out.Error = err.Error()
	}
	return out
}

func (s *AnalysisService) comparePaired(table *dataset.Table, pair PairSpec) domainstats.PairedComparison {
	out := domainstats.PairedComparison{Pre: pair.Pre, Post: pair.Post}

	pre, err := table.Sample(pair.Pre)
	if err == nil {
		var post domainstats.Sample
		post, err = table.Sample(pair.Post)
		if err == nil {
			out.Result, err = ttest.Paired(pre, post)
		}
	}
	if err != nil {
		s.logger.Warn("paired test %s skipped: %v", out.Label(), err)
		out.Error = err.Error()
		return out
	}
	if out.Result.Truncated > 0 {
		s.logger.Warn("paired test %s: dropped %d unmatched observations", out.Label(), out.Result.Truncated)
	}
	return out
}

func (s *AnalysisService) tick() {
	if s.onProgress != nil {
		s.onProgress()
	}
}
