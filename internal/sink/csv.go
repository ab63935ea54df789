package sink

import (
	"context"

	"wellpipe/internal/table"
)

// CSVSink writes the table as one delimited file; the DSN is the file path.
// The table name is unused, the path already names the output.
type CSVSink struct {
	path string
}

func (s *CSVSink) Connect(dsn string) error {
	s.path = dsn
	return nil
}

func (s *CSVSink) Write(_ context.Context, _ string, t *table.Table) error {
	return table.WriteCSV(t, s.path)
}

func (s *CSVSink) Close() error { return nil }
