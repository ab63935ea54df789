package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"wellpipe/internal/table"
)

type MySQLSink struct {
	db *sql.DB
}

func (s *MySQLSink) Connect(dsn string) error {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	s.db = db
	return nil
}

func (s *MySQLSink) Close() error {
	return s.db.Close()
}

func (s *MySQLSink) Write(ctx context.Context, name string, t *table.Table) error {
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", name)); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, createStmt(name, t.Schema())); err != nil {
		return err
	}
	if t.NumRows() == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", t.Schema().Len()), ",") + ")"
	cols := strings.Join(columnNames(t.Schema()), ", ")
	valueStrings := make([]string, 0, t.NumRows())
	valueArgs := make([]interface{}, 0, t.NumRows()*t.Schema().Len())
	for i := 0; i < t.NumRows(); i++ {
		valueStrings = append(valueStrings, placeholder)
		valueArgs = append(valueArgs, sqlRow(t, i)...)
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", name, cols, strings.Join(valueStrings, ","))
	if _, err := tx.ExecContext(ctx, stmt, valueArgs...); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
