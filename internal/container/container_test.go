package container

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronostat/adapters/rng"
	"chronostat/domain/core"
	"chronostat/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Permutation: config.PermutationConfig{Trials: 100, Seed: 42, Workers: 2, MaxTrials: 1000, MaxWorkers: 4},
		Analysis:    config.AnalysisConfig{Conditions: []string{"standard", "advanced"}, Concurrency: 1},
		LogLevel:    "ERROR",
	}
}

// skewedRNG hands out keyed streams that do not follow the derived seed
type skewedRNG struct {
	*rng.SeededAdapter
}

func (s skewedRNG) Stream(ctx context.Context, runID, stageName, streamKey string, baseSeed int64) (*rand.Rand, error) {
	return rand.New(rand.NewSource(baseSeed + 1)), nil
}

func TestNew(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)
	assert.NotNil(t, c.RNG)
	assert.Equal(t, []string{"standard", "advanced"}, c.DefaultPlan().Conditions)

	_, err = New(nil)
	assert.Error(t, err)
}

func TestNew_RejectsInconsistentRNG(t *testing.T) {
	_, err := build(testConfig(), skewedRNG{rng.NewSeededAdapter()})
	assert.ErrorIs(t, err, core.ErrSeedMismatch)
}

func TestCheckLimits(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	assert.NoError(t, c.CheckLimits(1000, 4))
	assert.NoError(t, c.CheckLimits(0, 0))

	err = c.CheckLimits(1001, 1)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	err = c.CheckLimits(10, 5)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestEngineUsesConfigDefaults(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	e := c.Engine()
	assert.Equal(t, 100, e.Trials())
	assert.Equal(t, int64(42), e.Seed())
	assert.Equal(t, 2, e.Workers())
}
