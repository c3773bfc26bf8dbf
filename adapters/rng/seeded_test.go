package rng

import (
	"context"
	"testing"

	"chronostat/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamIsDeterministic(t *testing.T) {
	ctx := context.Background()
	adapter := NewSeededAdapter()

	r1, err := adapter.Stream(ctx, "", "permutation", "a|b#0", 42)
	require.NoError(t, err)
	r2, err := adapter.Stream(ctx, "", "permutation", "a|b#0", 42)
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		assert.Equal(t, r1.Int63(), r2.Int63())
	}
}

func TestStreamKeysAreIndependent(t *testing.T) {
	assert.NotEqual(t, DeriveSeed(42, "", "permutation", "a|b#0"), DeriveSeed(42, "", "permutation", "a|b#1"))
	assert.NotEqual(t, DeriveSeed(42, "x", "", ""), DeriveSeed(42, "", "x", ""))
	assert.NotEqual(t, DeriveSeed(1, "p"), DeriveSeed(2, "p"))
	assert.GreaterOrEqual(t, DeriveSeed(-7, "p"), int64(0))
}

func TestValidateSeed(t *testing.T) {
	ctx := context.Background()
	adapter := NewSeededAdapter()

	r, err := adapter.SeededStream(ctx, "check", 7)
	require.NoError(t, err)
	expected := []float64{r.Float64(), r.Float64(), r.Float64()}

	require.NoError(t, adapter.ValidateSeed(ctx, "check", 7, expected))

	err = adapter.ValidateSeed(ctx, "check", 8, expected)
	assert.ErrorIs(t, err, core.ErrSeedMismatch)
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSeededAdapter().Stream(ctx, "", "permutation", "k", 1)
	assert.ErrorIs(t, err, context.Canceled)
}
