package sink

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"wellpipe/internal/table"
)

type PostgresSink struct {
	conn *pgx.Conn
}

func (s *PostgresSink) Connect(dsn string) error {
	conn, err := pgx.Connect(context.Background(), dsn)
	if err != nil {
		return err
	}
	s.conn = conn
	return nil
}

func (s *PostgresSink) Close() error {
	return s.conn.Close(context.Background())
}

func (s *PostgresSink) Write(ctx context.Context, name string, t *table.Table) error {
	if _, err := s.conn.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", name)); err != nil {
		return err
	}
	if _, err := s.conn.Exec(ctx, createStmt(name, t.Schema())); err != nil {
		return err
	}

	rows := make([][]interface{}, t.NumRows())
	for i := range rows {
		rows[i] = sqlRow(t, i)
	}
	_, err := s.conn.CopyFrom(ctx, pgx.Identifier{name}, columnNames(t.Schema()), pgx.CopyFromRows(rows))
	return err
}
