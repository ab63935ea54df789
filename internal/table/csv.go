package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical date rendering for delimited output.
const DateLayout = "2006-01-02"

// dateLayouts are accepted on input, tried in order.
var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// Canonical normalizes a header name: trimmed, lowered, runs of whitespace
// and hyphens to single underscores. "Spud Date" and "spud_date" both
// resolve to the same column.
func Canonical(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), "_")
}

// ReadOption configures ReadCSV.
type ReadOption func(*readOptions)

type readOptions struct {
	observe func(time.Duration)
}

// WithRowObserver reports the parse latency of each data row, for callers
// recording ingest metrics.
func WithRowObserver(fn func(time.Duration)) ReadOption {
	return func(o *readOptions) { o.observe = fn }
}

// ReadCSV loads a delimited file into a table with the given schema. Header
// names are matched after canonicalization; every schema column must be
// present, extra input columns are ignored. Empty cells load as the missing
// marker. Failure is fatal to the caller: there is no retry and no partial
// table.
func ReadCSV(path string, schema Schema, opts ...ReadOption) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readCSV(f, path, schema, opts...)
}

func readCSV(r io.Reader, path string, schema Schema, opts ...ReadOption) (*Table, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, &ParseError{Path: path, Msg: "empty input"}
	}

	colFor := make([]int, schema.Len())
	for i := range colFor {
		colFor[i] = -1
	}
	for j, h := range header {
		if i, ok := schema.Index(Canonical(h)); ok {
			colFor[i] = j
		}
	}
	for i, c := range colFor {
		if c < 0 {
			return nil, &SchemaMismatchError{Column: schema.Field(i).Name, Reason: "column missing from header"}
		}
	}

	t := New(schema)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &ParseError{Path: path, Line: line, Msg: err.Error()}
		}
		start := time.Now()
		row := make([]Value, schema.Len())
		for i, j := range colFor {
			field := schema.Field(i)
			v, perr := parseCell(strings.TrimSpace(rec[j]), field.Kind)
			if perr != nil {
				return nil, &ParseError{Path: path, Line: line, Msg: fmt.Sprintf("column %s: %v", field.Name, perr)}
			}
			row[i] = v
		}
		t.rows = append(t.rows, row)
		if o.observe != nil {
			o.observe(time.Since(start))
		}
	}
	return t, nil
}

func parseCell(s string, k Kind) (Value, error) {
	if s == "" {
		return Missing(k), nil
	}
	switch k {
	case KindString:
		return String(s), nil
	case KindInt:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("bad int %q", s)
		}
		return Int(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return Value{}, fmt.Errorf("bad float %q", s)
		}
		return Float(f), nil
	case KindDate:
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return Date(ts), nil
			}
		}
		return Value{}, fmt.Errorf("bad date %q", s)
	}
	return Value{}, fmt.Errorf("unknown kind %v", k)
}

// InferCSV loads a delimited file without a declared schema, inferring each
// column's kind from its cells: int if every non-empty cell parses as an
// integer, then float, then date, falling back to string. Header names are
// canonicalized.
func InferCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, &ParseError{Path: path, Msg: err.Error()}
	}
	if len(records) == 0 {
		return nil, &ParseError{Path: path, Msg: "empty input"}
	}

	header := records[0]
	fields := make([]Field, len(header))
	for j, h := range header {
		fields[j] = Field{Name: Canonical(h), Kind: inferKind(records[1:], j)}
	}
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}

	t := New(schema)
	for n, rec := range records[1:] {
		row := make([]Value, len(fields))
		for j, field := range fields {
			v, perr := parseCell(strings.TrimSpace(rec[j]), field.Kind)
			if perr != nil {
				return nil, &ParseError{Path: path, Line: n + 2, Msg: fmt.Sprintf("column %s: %v", field.Name, perr)}
			}
			row[j] = v
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func inferKind(records [][]string, col int) Kind {
	for _, k := range []Kind{KindInt, KindFloat, KindDate} {
		ok, seen := true, false
		for _, rec := range records {
			s := strings.TrimSpace(rec[col])
			if s == "" {
				continue
			}
			seen = true
			if _, err := parseCell(s, k); err != nil {
				ok = false
				break
			}
		}
		if ok && seen {
			return k
		}
	}
	return KindString
}

// WriteCSV writes the table as one delimited file, overwriting any prior
// output at the path. Missing cells render empty.
func WriteCSV(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, t.schema.Len())
	for i := range header {
		header[i] = t.schema.Field(i).Name
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	rec := make([]string, len(header))
	for i := 0; i < t.NumRows(); i++ {
		for j := range header {
			rec[j] = t.rows[i][j].Format()
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
