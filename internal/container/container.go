package container

import (
	"context"
	"fmt"

	"chronostat/adapters/battery"
	"chronostat/adapters/rng"
	"chronostat/app"
	"chronostat/domain/core"
	"chronostat/internal"
	"chronostat/internal/config"
	apperrors "chronostat/internal/errors"
	"chronostat/ports"
)

// selfCheckDraws is how many values the startup RNG check compares
const selfCheckDraws = 4

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger
	RNG    ports.RNGPort
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	return build(cfg, rng.NewSeededAdapter())
}

func build(cfg *config.Config, rngPort ports.RNGPort) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel)),
		RNG:    rngPort,
	}
	if err := c.verifyRNG(context.Background()); err != nil {
		return nil, apperrors.Wrapf(err, "rng self-check for seed %d", cfg.Permutation.Seed)
	}
	return c, nil
}

// verifyRNG checks that a keyed stream replays the plain stream of its
// derived seed, so saved reports stay reproducible
func (c *Container) verifyRNG(ctx context.Context) error {
	const stage, key = "selfcheck", "startup"
	seed := c.Config.Permutation.Seed

	stream, err := c.RNG.Stream(ctx, "", stage, key, seed)
	if err != nil {
		return err
	}
	expected := make([]float64, selfCheckDraws)
	for i := range expected {
		expected[i] = stream.Float64()
	}
	return c.RNG.ValidateSeed(ctx, stage, rng.DeriveSeed(seed, "", stage, key), expected)
}

// CheckLimits rejects per-request trial and worker counts above the
// configured maxima
func (c *Container) CheckLimits(trials, workers int) error {
	p := c.Config.Permutation
	if trials > p.MaxTrials {
		return fmt.Errorf("%w: trials %d exceeds limit %d", core.ErrInvalidInput, trials, p.MaxTrials)
	}
	if workers > p.MaxWorkers {
		return fmt.Errorf("%w: workers %d exceeds limit %d", core.ErrInvalidInput, workers, p.MaxWorkers)
	}
	return nil
}

// Engine builds a permutation engine from the configured defaults; opts
// override them
func (c *Container) Engine(opts ...battery.Option) *battery.Engine {
	base := []battery.Option{
		battery.WithTrials(c.Config.Permutation.Trials),
		battery.WithSeed(c.Config.Permutation.Seed),
		battery.WithWorkers(c.Config.Permutation.Workers),
		battery.WithRunID(core.RunID(c.Config.Permutation.Run)),
		battery.WithLogger(c.Logger),
	}
	return battery.NewEngine(c.RNG, append(base, opts...)...)
}

// AnalysisService builds an analysis service around engine
func (c *Container) AnalysisService(engine ports.BatteryPort) *app.AnalysisService {
	return app.NewAnalysisService(engine, c.Config.Analysis.Concurrency, c.Logger)
}

// DefaultPlan returns the pairwise plan over the configured conditions
func (c *Container) DefaultPlan() app.Plan {
	return app.Plan{Conditions: append([]string(nil), c.Config.Analysis.Conditions...)}
}
