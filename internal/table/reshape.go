package table

import "fmt"

// Direction selects which way Reshape converts.
type Direction int

const (
	LongToWide Direction = iota
	WideToLong
)

// Spec parameterizes one reshape. Both directions describe the same
// underlying facts, so a LongToWide followed by a WideToLong with the same
// key and value columns reproduces the original (row-key, key, value)
// triples modulo row order.
//
// LongToWide reads KeyColumn and ValueColumn; every other column becomes
// the row key. WideToLong reads FoldColumns and produces KeyColumn and
// ValueColumn.
type Spec struct {
	Direction   Direction
	KeyColumn   string
	ValueColumn string
	FoldColumns []string
	// DropMissing omits folded cells holding the missing marker.
	DropMissing bool
}

// Reshape converts between long and wide forms of a table.
func Reshape(t *Table, spec Spec) (*Table, error) {
	switch spec.Direction {
	case LongToWide:
		return longToWide(t, spec)
	case WideToLong:
		return wideToLong(t, spec)
	}
	return nil, fmt.Errorf("unknown reshape direction %d", spec.Direction)
}

func longToWide(t *Table, spec Spec) (*Table, error) {
	keyCol, err := t.schema.Require(spec.KeyColumn)
	if err != nil {
		return nil, err
	}
	valCol, err := t.schema.Require(spec.ValueColumn)
	if err != nil {
		return nil, err
	}
	if k := t.schema.Field(keyCol).Kind; k != KindString {
		return nil, &SchemaMismatchError{Column: spec.KeyColumn, Reason: "reshape key column must be string"}
	}
	valKind := t.schema.Field(valCol).Kind

	var idIdx []int
	var idFields []Field
	for i := 0; i < t.schema.Len(); i++ {
		if i == keyCol || i == valCol {
			continue
		}
		idIdx = append(idIdx, i)
		idFields = append(idFields, t.schema.Field(i))
	}

	// Distinct key values and row keys keep first-seen order, so the wide
	// column set is exactly the union of observed key values.
	var keys []string
	keyPos := map[string]int{}
	rowPos := map[string]int{}
	var idRows [][]Value
	cells := map[[2]int]Value{}

	for _, r := range t.rows {
		if r[keyCol].IsMissing() {
			return nil, &ParseError{Msg: fmt.Sprintf("missing value in reshape key column %s", spec.KeyColumn)}
		}
		key := r[keyCol].Str()
		kp, ok := keyPos[key]
		if !ok {
			kp = len(keys)
			keyPos[key] = kp
			keys = append(keys, key)
		}
		rk := rowKey(r, idIdx)
		rp, ok := rowPos[rk]
		if !ok {
			rp = len(idRows)
			rowPos[rk] = rp
			idr := make([]Value, len(idIdx))
			for i, c := range idIdx {
				idr[i] = r[c]
			}
			idRows = append(idRows, idr)
		}
		pos := [2]int{rp, kp}
		if _, dup := cells[pos]; dup {
			return nil, &DuplicateKeyError{RowKey: rowKeyDisplay(r, idIdx), Key: key}
		}
		cells[pos] = r[valCol]
	}

	fields := append([]Field(nil), idFields...)
	for _, k := range keys {
		fields = append(fields, Field{Name: k, Kind: valKind})
	}
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}

	out := New(schema)
	for rp, idr := range idRows {
		row := make([]Value, len(fields))
		copy(row, idr)
		for kp := range keys {
			v, ok := cells[[2]int{rp, kp}]
			if !ok {
				v = Missing(valKind)
			}
			row[len(idIdx)+kp] = v
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}

func wideToLong(t *Table, spec Spec) (*Table, error) {
	if len(spec.FoldColumns) == 0 {
		return nil, fmt.Errorf("reshape: no fold columns")
	}
	foldIdx := make([]int, len(spec.FoldColumns))
	foldSet := make(map[int]bool, len(spec.FoldColumns))
	var valKind Kind
	for i, n := range spec.FoldColumns {
		c, err := t.schema.Require(n)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			valKind = t.schema.Field(c).Kind
		} else if t.schema.Field(c).Kind != valKind {
			return nil, &SchemaMismatchError{Column: n, Reason: "fold columns must share one kind"}
		}
		foldIdx[i] = c
		foldSet[c] = true
	}

	var idIdx []int
	var idFields []Field
	for i := 0; i < t.schema.Len(); i++ {
		if foldSet[i] {
			continue
		}
		idIdx = append(idIdx, i)
		idFields = append(idFields, t.schema.Field(i))
	}

	fields := append([]Field(nil), idFields...)
	fields = append(fields,
		Field{Name: spec.KeyColumn, Kind: KindString},
		Field{Name: spec.ValueColumn, Kind: valKind},
	)
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}

	out := New(schema)
	for _, r := range t.rows {
		for i, c := range foldIdx {
			v := r[c]
			if spec.DropMissing && v.IsMissing() {
				continue
			}
			row := make([]Value, 0, len(fields))
			for _, ic := range idIdx {
				row = append(row, r[ic])
			}
			row = append(row, String(spec.FoldColumns[i]), v)
			out.rows = append(out.rows, row)
		}
	}
	return out, nil
}
