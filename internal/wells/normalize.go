package wells

import "wellpipe/internal/table"

// NormalizeOptions selects the missing-value policy applied to the wide
// production table. Fill and Replace are independent combinators: a column
// may be filled, zeroed, or left alone.
type NormalizeOptions struct {
	FillDirection table.FillDirection
	FillColumns   []string
	ZeroColumns   []string
}

// WidenProduction pivots the long production table to one row per
// (api, report_date) with one column per observed product, then applies the
// configured missing-value policy per well, ordered by report date.
func WidenProduction(prod *table.Table, opts NormalizeOptions) (*table.Table, error) {
	wide, err := table.Reshape(prod, table.Spec{
		Direction:   table.LongToWide,
		KeyColumn:   ColProduct,
		ValueColumn: ColVolume,
	})
	if err != nil {
		return nil, err
	}
	if len(opts.FillColumns) > 0 {
		wide, err = table.FillMissing(wide, []string{ColAPI}, ColReportDate, opts.FillDirection, opts.FillColumns)
		if err != nil {
			return nil, err
		}
	}
	for _, col := range opts.ZeroColumns {
		wide, err = table.ReplaceMissing(wide, col, table.Float(0))
		if err != nil {
			return nil, err
		}
	}
	return wide, nil
}
