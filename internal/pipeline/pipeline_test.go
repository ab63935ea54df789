package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellpipe/internal/config"
	"wellpipe/internal/table"
)

const (
	headersCSV = `api,well_name,operator,county,latitude,longitude,spud_date,total_depth
101,Alpha 1,Acme Energy,Weld,40.0000,-104.9000,2020-01-01,7000
102,Beta 2,Acme Energy,Weld,40.1000,-105.0000,2020-01-15,7500
103,Gamma 3,Summit Oil,Weld,41.0000,-105.5000,,8000
`
	productionCSV = `api,report_date,product,volume
101,2020-02-01,oil,100
101,2020-02-01,water,10
101,2020-02-01,hours,720
101,2020-03-01,oil,90
101,2020-03-01,water,12
101,2020-03-01,hours,700
102,2020-02-01,oil,50
102,2020-02-01,water,5
102,2020-02-01,hours,500
102,2020-03-01,oil,60
102,2020-03-01,hours,480
`
	treatmentsCSV = `api,treatment_date,treatment_type,fluid_gallons,proppant_lbs
101,2020-01-20,frac,100000,2000000
102,2020-01-25,frac,90000,1500000
`
)

func writeFixtures(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		"headers.csv":    headersCSV,
		"production.csv": productionCSV,
		"treatments.csv": treatmentsCSV,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return &config.Config{
		Inputs: config.Inputs{
			Treatments: filepath.Join(dir, "treatments.csv"),
			Headers:    filepath.Join(dir, "headers.csv"),
			Production: filepath.Join(dir, "production.csv"),
		},
		Output: config.Output{
			Path:  filepath.Join(dir, "features.csv"),
			Table: "well_features",
		},
		Normalize: config.Normalize{
			ZeroColumns: []string{"oil", "water", "hours"},
		},
		Features: config.Features{
			HoursProduct:     "hours",
			NeighborDistance: true,
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := writeFixtures(t)

	result, err := Run(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, 16, result.RowsIngested)
	assert.Equal(t, 3, result.Wells)
	assert.Equal(t, 0, result.ClusteredWells)
	assert.Equal(t, time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC), result.ReferenceDate)
	assert.NotEmpty(t, result.RunID)
	for _, stage := range []string{"ingest", "normalize", "aggregate", "export"} {
		assert.Contains(t, result.StageDurations, stage)
	}

	out, err := table.InferCSV(cfg.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, 3, out.NumRows())
	for _, col := range []string{"api", "cum_oil", "cum_water", "producing_days", "hours_per_day", "neighbor_km"} {
		assert.True(t, out.Schema().Has(col), "missing column %s", col)
	}
}

func TestRunWithClustering(t *testing.T) {
	cfg := writeFixtures(t)
	cfg.Clustering = config.Clustering{
		Enabled:   true,
		Algorithm: "dbscan",
		Eps:       5,
		MinPoints: 1,
		Columns:   []string{"cum_oil", "cum_water"},
		Label:     "cluster",
	}

	result, err := Run(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	// Well 103 has no production, so its cumulative columns are missing
	// and it is excluded from clustering.
	assert.Equal(t, 2, result.ClusteredWells)
	assert.Contains(t, result.StageDurations, "cluster")

	out, err := table.InferCSV(cfg.Output.Path)
	require.NoError(t, err)
	require.True(t, out.Schema().Has("cluster"))

	idx, ok := out.Schema().Index("cluster")
	require.True(t, ok)
	var labeled, unlabeled int
	for i := 0; i < out.NumRows(); i++ {
		if out.Value(i, idx).IsMissing() {
			unlabeled++
		} else {
			labeled++
		}
	}
	assert.Equal(t, 2, labeled)
	assert.Equal(t, 1, unlabeled)
}

func TestRunUnknownAlgorithm(t *testing.T) {
	cfg := writeFixtures(t)
	cfg.Clustering = config.Clustering{
		Enabled:   true,
		Algorithm: "spectral",
		Columns:   []string{"cum_oil"},
		Label:     "cluster",
	}

	_, err := Run(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "spectral")
}

func TestRunMissingInput(t *testing.T) {
	cfg := writeFixtures(t)
	cfg.Inputs.Production = filepath.Join(t.TempDir(), "absent.csv")

	_, err := Run(context.Background(), cfg, zerolog.Nop())
	require.Error(t, err)

	var missing *table.MissingFileError
	assert.ErrorAs(t, err, &missing)
}

func TestRunOverwritesOutput(t *testing.T) {
	cfg := writeFixtures(t)

	_, err := Run(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	_, err = Run(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	out, err := table.InferCSV(cfg.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, 3, out.NumRows())
}
