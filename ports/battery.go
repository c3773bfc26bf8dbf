package ports

import (
	"context"

	"chronostat/domain/core"
	"chronostat/domain/stats"
)

// BatteryPort runs permutation comparisons between two condition samples
type BatteryPort interface {
	Run(ctx context.Context, a, b stats.Sample) (*stats.PermutationResult, error)
	// Trials is the number of permutations drawn per comparison
	Trials() int
	// Seed is the base seed every random stream derives from
	Seed() int64
	// RunID namespaces the random streams; empty for the default run
	RunID() core.RunID
}
