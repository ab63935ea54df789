package table

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSVCanonicalizesHeaders(t *testing.T) {
	path := writeFile(t, "wells.csv", "API, Spud Date ,Total-Depth\n101,2019-05-01,7500.5\n102,,\n")
	schema := MustSchema(
		Field{Name: "api", Kind: KindInt},
		Field{Name: "spud_date", Kind: KindDate},
		Field{Name: "total_depth", Kind: KindFloat},
	)

	tbl, err := ReadCSV(path, schema)
	require.NoError(t, err)
	require.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, int64(101), tbl.Value(0, 0).Int64())
	assert.Equal(t, 7500.5, tbl.Value(0, 2).Float64())
	assert.True(t, tbl.Value(1, 1).IsMissing())
	assert.True(t, tbl.Value(1, 2).IsMissing())
}

func TestReadCSVMissingFile(t *testing.T) {
	schema := MustSchema(Field{Name: "api", Kind: KindInt})
	_, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"), schema)
	var missing *MissingFileError
	require.ErrorAs(t, err, &missing)
}

func TestReadCSVSchemaMismatch(t *testing.T) {
	path := writeFile(t, "wells.csv", "api\n101\n")
	schema := MustSchema(
		Field{Name: "api", Kind: KindInt},
		Field{Name: "spud_date", Kind: KindDate},
	)
	_, err := ReadCSV(path, schema)
	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "spud_date", mismatch.Column)
}

func TestReadCSVParseError(t *testing.T) {
	path := writeFile(t, "wells.csv", "api\n101\nnot-a-number\n")
	schema := MustSchema(Field{Name: "api", Kind: KindInt})
	_, err := ReadCSV(path, schema)
	var parse *ParseError
	require.ErrorAs(t, err, &parse)
	assert.Equal(t, 3, parse.Line)
}

func TestReadCSVInconsistentColumns(t *testing.T) {
	path := writeFile(t, "wells.csv", "api,county\n101,ritchie\n102\n")
	schema := MustSchema(Field{Name: "api", Kind: KindInt}, Field{Name: "county", Kind: KindString})
	_, err := ReadCSV(path, schema)
	var parse *ParseError
	require.ErrorAs(t, err, &parse)
}

func TestReadCSVRowObserver(t *testing.T) {
	path := writeFile(t, "wells.csv", "api\n101\n102\n103\n")
	schema := MustSchema(Field{Name: "api", Kind: KindInt})
	var seen []time.Duration
	_, err := ReadCSV(path, schema, WithRowObserver(func(d time.Duration) { seen = append(seen, d) }))
	require.NoError(t, err)
	assert.Len(t, seen, 3)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	schema := MustSchema(
		Field{Name: "api", Kind: KindInt},
		Field{Name: "county", Kind: KindString},
		Field{Name: "spud_date", Kind: KindDate},
		Field{Name: "oil", Kind: KindFloat},
	)
	tbl := New(schema)
	require.NoError(t, tbl.AppendRow(Int(101), String("ritchie"), Date(day(t, "2019-05-01")), Float(12.5)))
	require.NoError(t, tbl.AppendRow(Int(102), String("doddridge"), Missing(KindDate), Missing(KindFloat)))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(tbl, path))

	back, err := ReadCSV(path, schema)
	require.NoError(t, err)
	require.Equal(t, tbl.NumRows(), back.NumRows())
	for r := 0; r < tbl.NumRows(); r++ {
		for c := 0; c < schema.Len(); c++ {
			assert.True(t, tbl.Value(r, c).Equal(back.Value(r, c)), "cell %d,%d", r, c)
		}
	}
}

func TestWriteCSVOverwrites(t *testing.T) {
	schema := MustSchema(Field{Name: "api", Kind: KindInt})
	big := New(schema)
	for i := 0; i < 5; i++ {
		require.NoError(t, big.AppendRow(Int(int64(i))))
	}
	small := New(schema)
	require.NoError(t, small.AppendRow(Int(9)))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSV(big, path))
	require.NoError(t, WriteCSV(small, path))

	back, err := ReadCSV(path, schema)
	require.NoError(t, err)
	assert.Equal(t, 1, back.NumRows())
}

func TestInferCSV(t *testing.T) {
	path := writeFile(t, "mixed.csv", "api,volume,report date,operator\n101,10.5,2020-01-01,alpha\n102,,2020-02-01,beta\n")
	tbl, err := InferCSV(path)
	require.NoError(t, err)

	s := tbl.Schema()
	require.Equal(t, 4, s.Len())
	assert.Equal(t, Field{Name: "api", Kind: KindInt}, s.Field(0))
	assert.Equal(t, Field{Name: "volume", Kind: KindFloat}, s.Field(1))
	assert.Equal(t, Field{Name: "report_date", Kind: KindDate}, s.Field(2))
	assert.Equal(t, Field{Name: "operator", Kind: KindString}, s.Field(3))
	assert.True(t, tbl.Value(1, 1).IsMissing())
}
