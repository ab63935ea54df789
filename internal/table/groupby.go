package table

// SumBy groups the table by groupCols and sums every other numeric column,
// missing cells contributing zero. Output columns carry the prefix (for the
// pipeline, "cum_") and are always float; non-numeric, non-key columns are
// dropped. Exactly one output row per group value observed in the input,
// first-seen order — groups with no input rows never appear.
func SumBy(t *Table, groupCols []string, prefix string) (*Table, error) {
	gIdx := make([]int, len(groupCols))
	gSet := make(map[int]bool, len(groupCols))
	gFields := make([]Field, len(groupCols))
	for i, n := range groupCols {
		c, err := t.schema.Require(n)
		if err != nil {
			return nil, err
		}
		gIdx[i] = c
		gSet[c] = true
		gFields[i] = t.schema.Field(c)
	}

	var sumIdx []int
	var sumFields []Field
	for i := 0; i < t.schema.Len(); i++ {
		if gSet[i] {
			continue
		}
		f := t.schema.Field(i)
		if f.Kind != KindInt && f.Kind != KindFloat {
			continue
		}
		sumIdx = append(sumIdx, i)
		sumFields = append(sumFields, Field{Name: prefix + f.Name, Kind: KindFloat})
	}

	schema, err := NewSchema(append(gFields, sumFields...)...)
	if err != nil {
		return nil, err
	}

	pos := map[string]int{}
	var keyRows [][]Value
	var sums [][]float64
	for _, r := range t.rows {
		k := rowKey(r, gIdx)
		p, ok := pos[k]
		if !ok {
			p = len(keyRows)
			pos[k] = p
			kr := make([]Value, len(gIdx))
			for i, c := range gIdx {
				kr[i] = r[c]
			}
			keyRows = append(keyRows, kr)
			sums = append(sums, make([]float64, len(sumIdx)))
		}
		for i, c := range sumIdx {
			if v := r[c]; !v.IsMissing() {
				sums[p][i] += v.Float64()
			}
		}
	}

	out := New(schema)
	for p, kr := range keyRows {
		row := append([]Value(nil), kr...)
		for _, s := range sums[p] {
			row = append(row, Float(s))
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}

// LeftJoin joins right onto left on the named key. Every left row is
// preserved: unmatched rows carry missing cells for the right columns, and
// no left row is ever duplicated, so the key must be unique in right.
func LeftJoin(left, right *Table, key string) (*Table, error) {
	lc, err := left.schema.Require(key)
	if err != nil {
		return nil, err
	}
	rc, err := right.schema.Require(key)
	if err != nil {
		return nil, err
	}
	if left.schema.Field(lc).Kind != right.schema.Field(rc).Kind {
		return nil, &SchemaMismatchError{Column: key, Reason: "join key kinds differ"}
	}

	var rIdx []int
	fields := left.schema.Fields()
	for i := 0; i < right.schema.Len(); i++ {
		if i == rc {
			continue
		}
		rIdx = append(rIdx, i)
		fields = append(fields, right.schema.Field(i))
	}
	schema, err := NewSchema(fields...)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string][]Value, right.NumRows())
	for _, r := range right.rows {
		k := r[rc].key()
		if _, dup := byKey[k]; dup {
			return nil, &NonUniqueJoinKeyError{Column: key, Key: r[rc].Format()}
		}
		byKey[k] = r
	}

	out := New(schema)
	for _, r := range left.rows {
		row := append([]Value(nil), r...)
		if m, ok := byKey[r[lc].key()]; ok {
			for _, c := range rIdx {
				row = append(row, m[c])
			}
		} else {
			for _, c := range rIdx {
				row = append(row, Missing(right.schema.Field(c).Kind))
			}
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}
