package ports

import (
	"context"

	"cmplot/domain/plot"
)

// DatasetReaderPort turns an external tabular source into the groups the
// computation core consumes. Implementations own all parsing and column
// validation; the core never sees the raw table.
type DatasetReaderPort interface {
	// Columns lists the column names of the source, in table order
	Columns(ctx context.Context) ([]string, error)

	// Groups builds one group per (distinct x-combination, y column),
	// in stable first-appearance order. An empty ycols means every
	// numeric column not named in xcols.
	Groups(ctx context.Context, xcols, ycols []string) ([]plot.Group, error)
}
