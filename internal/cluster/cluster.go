// Package cluster labels rows of a clean numeric table. The pipeline hands
// it a dense matrix and attaches whatever labels come back; it makes no
// claims about statistical quality of the grouping.
package cluster

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"wellpipe/internal/table"
)

// Noise is the label assigned to points that belong to no cluster.
const Noise = -1

// Clusterer assigns one label per input point. Points share a dimension and
// contain no missing values.
type Clusterer interface {
	Cluster(points [][]float64) ([]int, error)
}

// Standardize scales each column to zero mean and unit variance. Constant
// columns are centered only.
func Standardize(points [][]float64) [][]float64 {
	if len(points) == 0 {
		return nil
	}
	dim := len(points[0])
	out := make([][]float64, len(points))
	for i := range out {
		out[i] = make([]float64, dim)
	}
	col := make([]float64, len(points))
	for j := 0; j < dim; j++ {
		for i := range points {
			col[i] = points[i][j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		for i := range points {
			v := points[i][j] - mean
			if std > 0 {
				v /= std
			}
			out[i][j] = v
		}
	}
	return out
}

// AttachLabels appends labels as an int column on t. rows maps each label to
// its row index in t; rows not covered (excluded from clustering for missing
// features) get the missing marker.
func AttachLabels(t *table.Table, column string, rows []int, labels []int) (*table.Table, error) {
	if len(rows) != len(labels) {
		return nil, fmt.Errorf("%d labels for %d rows", len(labels), len(rows))
	}
	vals := make([]table.Value, t.NumRows())
	for i := range vals {
		vals[i] = table.Missing(table.KindInt)
	}
	for i, r := range rows {
		if r < 0 || r >= t.NumRows() {
			return nil, fmt.Errorf("label row %d out of range", r)
		}
		vals[r] = table.Int(int64(labels[i]))
	}
	return t.WithColumn(table.Field{Name: column, Kind: table.KindInt}, vals)
}
