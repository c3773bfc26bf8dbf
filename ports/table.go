package ports

import (
	"context"

	"chronostat/domain/dataset"
)

// TableReader loads a results table where each column is one experimental condition
type TableReader interface {
	ReadTable(ctx context.Context) (*dataset.Table, error)
}
