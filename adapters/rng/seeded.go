package rng

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/cespare/xxhash/v2"

	"chronostat/domain/core"
)

// SeededAdapter implements ports.RNGPort with math/rand sources.
// Stream seeds are derived by hashing the stream coordinates into the base seed.
type SeededAdapter struct{}

// NewSeededAdapter creates the default RNG adapter
func NewSeededAdapter() *SeededAdapter {
	return &SeededAdapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *SeededAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed)), nil
}

// Stream creates a deterministic RNG stream for one chunk of one comparison
func (a *SeededAdapter) Stream(ctx context.Context, runID, stageName, streamKey string, baseSeed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(DeriveSeed(baseSeed, runID, stageName, streamKey))), nil
}

// ValidateSeed ensures the seed produces expected deterministic results
func (a *SeededAdapter) ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error {
	r, err := a.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		got := r.Float64()
		if math.Abs(got-want) > 1e-15 {
			return fmt.Errorf("%w: %s draw %d = %v, expected %v", core.ErrSeedMismatch, name, i, got, want)
		}
	}
	return nil
}

// DeriveSeed mixes the non-empty parts into baseSeed. Each part is tagged with
// its position so ("", "x") and ("x", "") derive different seeds.
func DeriveSeed(baseSeed int64, parts ...string) int64 {
	d := xxhash.New()
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(uint64(baseSeed) >> (8 * i))
	}
	_, _ = d.Write(buf[:])
	for i, p := range parts {
		if p == "" {
			continue
		}
		_, _ = d.WriteString(fmt.Sprintf("%d=%s;", i, p))
	}
	return int64(d.Sum64() & math.MaxInt64)
}
