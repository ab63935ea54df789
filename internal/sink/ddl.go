package sink

import (
	"fmt"
	"strings"

	"wellpipe/internal/table"
)

// sqlType maps a column kind to a type both Postgres and MySQL accept.
func sqlType(k table.Kind) string {
	switch k {
	case table.KindInt:
		return "BIGINT"
	case table.KindFloat:
		return "DOUBLE PRECISION"
	case table.KindDate:
		return "DATE"
	default:
		return "TEXT"
	}
}

func createStmt(name string, s table.Schema) string {
	cols := make([]string, s.Len())
	for i := 0; i < s.Len(); i++ {
		f := s.Field(i)
		cols[i] = fmt.Sprintf("%s %s", f.Name, sqlType(f.Kind))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(cols, ", "))
}

func columnNames(s table.Schema) []string {
	names := make([]string, s.Len())
	for i := range names {
		names[i] = s.Field(i).Name
	}
	return names
}

// sqlCell converts one cell to a driver argument; missing becomes NULL.
func sqlCell(v table.Value) interface{} {
	if v.IsMissing() {
		return nil
	}
	switch v.Kind() {
	case table.KindInt:
		return v.Int64()
	case table.KindFloat:
		return v.Float64()
	case table.KindDate:
		return v.Time()
	default:
		return v.Str()
	}
}

func sqlRow(t *table.Table, row int) []interface{} {
	out := make([]interface{}, t.Schema().Len())
	for c := range out {
		out[c] = sqlCell(t.Value(row, c))
	}
	return out
}
