package table

import (
	"fmt"
	"sort"
	"strings"
)

// Table is an ordered collection of rows over a fixed Schema. Pipeline
// stages treat tables as immutable snapshots: every operation returns a new
// table and leaves its input untouched.
type Table struct {
	schema Schema
	rows   [][]Value
}

func New(schema Schema) *Table { return &Table{schema: schema} }

func (t *Table) Schema() Schema { return t.schema }
func (t *Table) NumRows() int   { return len(t.rows) }

// AppendRow adds one row, validating arity and cell kinds against the
// schema. Missing cells of the right kind are always accepted.
func (t *Table) AppendRow(vals ...Value) error {
	if len(vals) != t.schema.Len() {
		return fmt.Errorf("row has %d cells, schema has %d columns", len(vals), t.schema.Len())
	}
	for i, v := range vals {
		if f := t.schema.Field(i); v.Kind() != f.Kind {
			return &SchemaMismatchError{
				Column: f.Name,
				Reason: fmt.Sprintf("cell kind %s, column kind %s", v.Kind(), f.Kind),
			}
		}
	}
	t.rows = append(t.rows, append([]Value(nil), vals...))
	return nil
}

// Value returns the cell at (row, col).
func (t *Table) Value(row, col int) Value { return t.rows[row][col] }

// Row returns a copy of one row.
func (t *Table) Row(i int) []Value { return append([]Value(nil), t.rows[i]...) }

// Column returns a copy of the named column.
func (t *Table) Column(name string) ([]Value, error) {
	c, err := t.schema.Require(name)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(t.rows))
	for i, r := range t.rows {
		out[i] = r[c]
	}
	return out, nil
}

// Select projects the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	idx := make([]int, len(names))
	fields := make([]Field, len(names))
	for i, n := range names {
		c, err := t.schema.Require(n)
		if err != nil {
			return nil, err
		}
		idx[i] = c
		fields[i] = t.schema.Field(c)
	}
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}
	out := New(schema)
	for _, r := range t.rows {
		row := make([]Value, len(idx))
		for i, c := range idx {
			row[i] = r[c]
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}

// SortBy returns a copy sorted ascending by the named columns, stable, with
// missing cells first.
func (t *Table) SortBy(names ...string) (*Table, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		c, err := t.schema.Require(n)
		if err != nil {
			return nil, err
		}
		idx[i] = c
	}
	out := t.clone()
	sort.SliceStable(out.rows, func(a, b int) bool {
		ra, rb := out.rows[a], out.rows[b]
		for _, c := range idx {
			if ra[c].Equal(rb[c]) {
				continue
			}
			return ra[c].Less(rb[c])
		}
		return false
	})
	return out, nil
}

// WithColumn returns a copy with one extra column appended.
func (t *Table) WithColumn(field Field, vals []Value) (*Table, error) {
	if len(vals) != len(t.rows) {
		return nil, fmt.Errorf("column %s has %d cells for %d rows", field.Name, len(vals), len(t.rows))
	}
	schema, err := NewSchema(append(t.schema.Fields(), field)...)
	if err != nil {
		return nil, err
	}
	out := New(schema)
	for i, r := range t.rows {
		if vals[i].Kind() != field.Kind {
			return nil, &SchemaMismatchError{
				Column: field.Name,
				Reason: fmt.Sprintf("cell kind %s, column kind %s", vals[i].Kind(), field.Kind),
			}
		}
		row := append([]Value(nil), r...)
		out.rows = append(out.rows, append(row, vals[i]))
	}
	return out, nil
}

// Equal reports whether both tables have the same schema and
// cell-for-cell equal rows, in order.
func (t *Table) Equal(o *Table) bool {
	if !t.schema.Equal(o.schema) || len(t.rows) != len(o.rows) {
		return false
	}
	for i, r := range t.rows {
		for j, v := range r {
			if !v.Equal(o.rows[i][j]) {
				return false
			}
		}
	}
	return true
}

func (t *Table) clone() *Table {
	rows := make([][]Value, len(t.rows))
	for i, r := range t.rows {
		rows[i] = append([]Value(nil), r...)
	}
	return &Table{schema: t.schema, rows: rows}
}

// rowKey renders the cells at idx as one composite map key.
func rowKey(row []Value, idx []int) string {
	parts := make([]string, len(idx))
	for i, c := range idx {
		parts[i] = row[c].key()
	}
	return strings.Join(parts, "\x1f")
}

// rowKeyDisplay is rowKey for error messages.
func rowKeyDisplay(row []Value, idx []int) string {
	parts := make([]string, len(idx))
	for i, c := range idx {
		parts[i] = row[c].Format()
	}
	return strings.Join(parts, ",")
}
