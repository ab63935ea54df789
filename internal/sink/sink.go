package sink

import (
	"context"

	"wellpipe/internal/table"
)

// Sink writes one table to a destination, replacing whatever a prior run
// left there. Connect takes a backend-specific DSN (a file path for the CSV
// sink).
type Sink interface {
	Connect(dsn string) error
	Write(ctx context.Context, name string, t *table.Table) error
	Close() error
}
