package table

import "fmt"

// FillDirection states which neighbor a Fill pulls from.
type FillDirection int

const (
	// FillForward copies the previous valid value down through a missing run.
	FillForward FillDirection = iota
	// FillBackward copies the next valid value up through a missing run.
	FillBackward
)

// DropMissing removes every row containing at least one missing cell.
func DropMissing(t *Table) *Table {
	out := New(t.schema)
	for _, r := range t.rows {
		complete := true
		for _, v := range r {
			if v.IsMissing() {
				complete = false
				break
			}
		}
		if complete {
			out.rows = append(out.rows, append([]Value(nil), r...))
		}
	}
	return out
}

// FillMissing propagates the nearest valid value through missing cells of
// the named columns, within groups keyed by groupCols and ordered by
// orderCol. A run with no valid value in the propagation direction stays
// missing, which makes filling twice in the same direction a no-op. The
// result is sorted by group and order columns.
func FillMissing(t *Table, groupCols []string, orderCol string, dir FillDirection, cols []string) (*Table, error) {
	sortCols := append(append([]string(nil), groupCols...), orderCol)
	sorted, err := t.SortBy(sortCols...)
	if err != nil {
		return nil, err
	}

	gIdx := make([]int, len(groupCols))
	for i, n := range groupCols {
		c, err := sorted.schema.Require(n)
		if err != nil {
			return nil, err
		}
		gIdx[i] = c
	}
	fillIdx := make([]int, len(cols))
	for i, n := range cols {
		c, err := sorted.schema.Require(n)
		if err != nil {
			return nil, err
		}
		fillIdx[i] = c
	}

	// groups are contiguous after the sort
	start := 0
	for start < len(sorted.rows) {
		end := start + 1
		key := rowKey(sorted.rows[start], gIdx)
		for end < len(sorted.rows) && rowKey(sorted.rows[end], gIdx) == key {
			end++
		}
		for _, c := range fillIdx {
			fillRun(sorted.rows[start:end], c, dir)
		}
		start = end
	}
	return sorted, nil
}

func fillRun(rows [][]Value, col int, dir FillDirection) {
	if dir == FillForward {
		var last Value
		have := false
		for i := range rows {
			if rows[i][col].IsMissing() {
				if have {
					rows[i][col] = last
				}
			} else {
				last = rows[i][col]
				have = true
			}
		}
		return
	}
	var next Value
	have := false
	for i := len(rows) - 1; i >= 0; i-- {
		if rows[i][col].IsMissing() {
			if have {
				rows[i][col] = next
			}
		} else {
			next = rows[i][col]
			have = true
		}
	}
}

// ReplaceMissing substitutes def for missing cells of the named column.
func ReplaceMissing(t *Table, col string, def Value) (*Table, error) {
	c, err := t.schema.Require(col)
	if err != nil {
		return nil, err
	}
	if f := t.schema.Field(c); def.Kind() != f.Kind {
		return nil, &SchemaMismatchError{
			Column: col,
			Reason: fmt.Sprintf("default kind %s, column kind %s", def.Kind(), f.Kind),
		}
	}
	out := t.clone()
	for i := range out.rows {
		if out.rows[i][c].IsMissing() {
			out.rows[i][c] = def
		}
	}
	return out, nil
}
