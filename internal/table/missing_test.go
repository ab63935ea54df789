package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDropMissing(t *testing.T) {
	schema := MustSchema(Field{Name: "api", Kind: KindInt}, Field{Name: "oil", Kind: KindFloat})
	tbl := New(schema)
	require.NoError(t, tbl.AppendRow(Int(1), Float(10)))
	require.NoError(t, tbl.AppendRow(Int(2), Missing(KindFloat)))

	out := DropMissing(tbl)
	require.Equal(t, 1, out.NumRows())
	assert.Equal(t, int64(1), out.Value(0, 0).Int64())
	// input untouched
	assert.Equal(t, 2, tbl.NumRows())
}

func fillFixture(t *testing.T) *Table {
	t.Helper()
	schema := MustSchema(
		Field{Name: "api", Kind: KindInt},
		Field{Name: "report_date", Kind: KindDate},
		Field{Name: "oil", Kind: KindFloat},
	)
	tbl := New(schema)
	require.NoError(t, tbl.AppendRow(Int(1), Date(day(t, "2020-01-01")), Missing(KindFloat)))
	require.NoError(t, tbl.AppendRow(Int(1), Date(day(t, "2020-02-01")), Float(4)))
	require.NoError(t, tbl.AppendRow(Int(1), Date(day(t, "2020-03-01")), Missing(KindFloat)))
	require.NoError(t, tbl.AppendRow(Int(2), Date(day(t, "2020-01-01")), Float(7)))
	require.NoError(t, tbl.AppendRow(Int(2), Date(day(t, "2020-02-01")), Missing(KindFloat)))
	return tbl
}

func TestFillForward(t *testing.T) {
	out, err := FillMissing(fillFixture(t), []string{"api"}, "report_date", FillForward, []string{"oil"})
	require.NoError(t, err)

	// leading run of well 1 has nothing before it, stays missing
	assert.True(t, out.Value(0, 2).IsMissing())
	assert.Equal(t, Float(4), out.Value(1, 2))
	assert.Equal(t, Float(4), out.Value(2, 2))
	// fill never crosses the group boundary
	assert.Equal(t, Float(7), out.Value(3, 2))
	assert.Equal(t, Float(7), out.Value(4, 2))
}

func TestFillBackward(t *testing.T) {
	out, err := FillMissing(fillFixture(t), []string{"api"}, "report_date", FillBackward, []string{"oil"})
	require.NoError(t, err)

	assert.Equal(t, Float(4), out.Value(0, 2))
	assert.Equal(t, Float(4), out.Value(1, 2))
	// trailing run of well 1 has nothing after it
	assert.True(t, out.Value(2, 2).IsMissing())
	assert.True(t, out.Value(4, 2).IsMissing())
}

func TestFillIdempotent(t *testing.T) {
	once, err := FillMissing(fillFixture(t), []string{"api"}, "report_date", FillForward, []string{"oil"})
	require.NoError(t, err)
	twice, err := FillMissing(once, []string{"api"}, "report_date", FillForward, []string{"oil"})
	require.NoError(t, err)

	require.Equal(t, once.NumRows(), twice.NumRows())
	for r := 0; r < once.NumRows(); r++ {
		for c := 0; c < once.Schema().Len(); c++ {
			assert.True(t, once.Value(r, c).Equal(twice.Value(r, c)), "cell %d,%d", r, c)
		}
	}
}

func TestReplaceMissing(t *testing.T) {
	schema := MustSchema(Field{Name: "oil", Kind: KindFloat})
	tbl := New(schema)
	require.NoError(t, tbl.AppendRow(Missing(KindFloat)))
	require.NoError(t, tbl.AppendRow(Float(3)))

	out, err := ReplaceMissing(tbl, "oil", Float(0))
	require.NoError(t, err)
	assert.Equal(t, Float(0), out.Value(0, 0))
	assert.Equal(t, Float(3), out.Value(1, 0))

	_, err = ReplaceMissing(tbl, "oil", String("zero"))
	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
}
