package table

import "fmt"

// NumericMatrix extracts the named columns as a dense float matrix. The
// clustering collaborator requires a clean numeric table, so a missing cell
// is an error; callers drop or fill first.
func NumericMatrix(t *Table, cols []string) ([][]float64, error) {
	idx, err := numericIndex(t, cols)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, t.NumRows())
	for r, row := range t.rows {
		vec := make([]float64, len(idx))
		for i, c := range idx {
			v := row[c]
			if v.IsMissing() {
				return nil, fmt.Errorf("missing value in column %s at row %d", cols[i], r)
			}
			vec[i] = v.Float64()
		}
		out[r] = vec
	}
	return out, nil
}

// NumericRows extracts the named columns for every row with no missing cell
// among them, returning the kept row indices alongside the matrix.
func NumericRows(t *Table, cols []string) ([]int, [][]float64, error) {
	idx, err := numericIndex(t, cols)
	if err != nil {
		return nil, nil, err
	}
	var rows []int
	var points [][]float64
	for r, row := range t.rows {
		complete := true
		for _, c := range idx {
			if row[c].IsMissing() {
				complete = false
				break
			}
		}
		if !complete {
			continue
		}
		vec := make([]float64, len(idx))
		for i, c := range idx {
			vec[i] = row[c].Float64()
		}
		rows = append(rows, r)
		points = append(points, vec)
	}
	return rows, points, nil
}

func numericIndex(t *Table, cols []string) ([]int, error) {
	idx := make([]int, len(cols))
	for i, n := range cols {
		c, err := t.schema.Require(n)
		if err != nil {
			return nil, err
		}
		if k := t.schema.Field(c).Kind; k != KindInt && k != KindFloat {
			return nil, &SchemaMismatchError{Column: n, Reason: "not a numeric column"}
		}
		idx[i] = c
	}
	return idx, nil
}
