package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"wellpipe/internal/cluster"
	"wellpipe/internal/config"
	"wellpipe/internal/sink"
	"wellpipe/internal/table"
	"wellpipe/internal/wells"
)

// Result summarizes one pipeline run.
type Result struct {
	RunID            string
	RowsIngested     int
	Wells            int
	ClusteredWells   int
	ReferenceDate    time.Time
	StageDurations   map[string]time.Duration
	P95ParseLatency  time.Duration
	P99ParseLatency  time.Duration
	MeanParseLatency time.Duration
	TotalTime        time.Duration
}

// Run executes the pipeline stages strictly in order: ingest, normalize,
// aggregate, optional clustering, export. Each stage fully consumes its
// input before the next starts, and any stage error aborts the run; there
// are no retries and no partial outputs.
func Run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Result, error) {
	start := time.Now()
	result := &Result{
		RunID:          uuid.New().String(),
		StageDurations: map[string]time.Duration{},
	}
	logger = logger.With().Str("run_id", result.RunID).Logger()

	histogram := hdrhistogram.New(1, 10000000000, 3)
	observe := table.WithRowObserver(func(d time.Duration) {
		histogram.RecordValue(d.Nanoseconds())
	})

	// Ingest
	stage := time.Now()
	treatments, err := table.ReadCSV(cfg.Inputs.Treatments, wells.TreatmentSchema(), observe)
	if err != nil {
		return nil, fmt.Errorf("ingest treatments: %w", err)
	}
	headers, err := table.ReadCSV(cfg.Inputs.Headers, wells.HeaderSchema(), observe)
	if err != nil {
		return nil, fmt.Errorf("ingest headers: %w", err)
	}
	prod, err := table.ReadCSV(cfg.Inputs.Production, wells.ProductionSchema(), observe)
	if err != nil {
		return nil, fmt.Errorf("ingest production: %w", err)
	}
	result.RowsIngested = treatments.NumRows() + headers.NumRows() + prod.NumRows()
	result.StageDurations["ingest"] = time.Since(stage)
	logger.Info().
		Int("treatments", treatments.NumRows()).
		Int("headers", headers.NumRows()).
		Int("production", prod.NumRows()).
		Msg("ingested input tables")

	// Normalize
	stage = time.Now()
	wide, err := wells.WidenProduction(prod, wells.NormalizeOptions{
		FillDirection: cfg.FillDirection(),
		FillColumns:   cfg.Normalize.FillColumns,
		ZeroColumns:   cfg.Normalize.ZeroColumns,
	})
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	result.StageDurations["normalize"] = time.Since(stage)
	logger.Info().
		Int("rows", wide.NumRows()).
		Int("columns", wide.Schema().Len()).
		Msg("widened production table")

	// Aggregate
	stage = time.Now()
	feat, reference, err := wells.BuildFeatures(headers, wide, treatments, wells.FeatureOptions{
		HoursProduct:     cfg.Features.HoursProduct,
		NeighborDistance: cfg.Features.NeighborDistance,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	result.Wells = feat.NumRows()
	result.ReferenceDate = reference
	result.StageDurations["aggregate"] = time.Since(stage)
	logger.Info().Int("wells", feat.NumRows()).Msg("built feature table")

	// Cluster
	if cfg.Clustering.Enabled {
		stage = time.Now()
		feat, result.ClusteredWells, err = clusterStage(cfg, feat)
		if err != nil {
			return nil, fmt.Errorf("cluster: %w", err)
		}
		result.StageDurations["cluster"] = time.Since(stage)
		logger.Info().
			Str("algorithm", cfg.Clustering.Algorithm).
			Int("clustered", result.ClusteredWells).
			Msg("attached cluster labels")
	}

	// Export
	stage = time.Now()
	if err := export(ctx, cfg, feat, logger); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.StageDurations["export"] = time.Since(stage)

	result.P95ParseLatency = time.Duration(histogram.ValueAtQuantile(95))
	result.P99ParseLatency = time.Duration(histogram.ValueAtQuantile(99))
	result.MeanParseLatency = time.Duration(histogram.Mean())
	result.TotalTime = time.Since(start)
	return result, nil
}

// clusterStage hands the clean numeric feature columns to the configured
// clustering algorithm and attaches the labels. Wells with missing feature
// cells are excluded and keep a missing label.
func clusterStage(cfg *config.Config, feat *table.Table) (*table.Table, int, error) {
	rows, points, err := table.NumericRows(feat, cfg.Clustering.Columns)
	if err != nil {
		return nil, 0, err
	}

	var clusterer cluster.Clusterer
	switch cfg.Clustering.Algorithm {
	case "kmeans":
		clusterer = cluster.KMeans{K: cfg.Clustering.K}
	case "dbscan":
		clusterer = cluster.DBSCAN{Eps: cfg.Clustering.Eps, MinPoints: cfg.Clustering.MinPoints}
	default:
		return nil, 0, fmt.Errorf("unknown clustering algorithm %q", cfg.Clustering.Algorithm)
	}

	var labels []int
	if len(rows) > 0 {
		labels, err = clusterer.Cluster(cluster.Standardize(points))
		if err != nil {
			return nil, 0, err
		}
	}
	out, err := cluster.AttachLabels(feat, cfg.Clustering.Label, rows, labels)
	if err != nil {
		return nil, 0, err
	}
	return out, len(rows), nil
}

func export(ctx context.Context, cfg *config.Config, feat *table.Table, logger zerolog.Logger) error {
	csvSink := &sink.CSVSink{}
	if err := csvSink.Connect(cfg.Output.Path); err != nil {
		return err
	}
	if err := csvSink.Write(ctx, cfg.Output.Table, feat); err != nil {
		return err
	}
	logger.Info().Str("path", cfg.Output.Path).Msg("wrote feature table")

	dbSinks := map[string]sink.Sink{
		"postgres": &sink.PostgresSink{},
		"mysql":    &sink.MySQLSink{},
		"mongo":    &sink.MongoSink{},
	}
	for name, s := range dbSinks {
		var dsn string
		switch name {
		case "postgres":
			dsn = cfg.Output.Sinks.Postgres
		case "mysql":
			dsn = cfg.Output.Sinks.MySQL
		case "mongo":
			dsn = cfg.Output.Sinks.Mongo
		}
		if dsn == "" {
			continue
		}
		if err := s.Connect(dsn); err != nil {
			return fmt.Errorf("connect %s sink: %w", name, err)
		}
		if err := s.Write(ctx, cfg.Output.Table, feat); err != nil {
			s.Close()
			return fmt.Errorf("write %s sink: %w", name, err)
		}
		if err := s.Close(); err != nil {
			return fmt.Errorf("close %s sink: %w", name, err)
		}
		logger.Info().Str("sink", name).Str("table", cfg.Output.Table).Msg("exported feature table")
	}
	return nil
}
