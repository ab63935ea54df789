package wells

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/umahmood/haversine"

	"wellpipe/internal/table"
)

// CumPrefix tags cumulative aggregate columns.
const CumPrefix = "cum_"

// Derived feature columns.
const (
	ColProducingDays = "producing_days"
	ColHoursPerDay   = "hours_per_day"
	ColNeighborKm    = "neighbor_km"
)

// FeatureOptions selects the derived features.
type FeatureOptions struct {
	// HoursProduct names the production measurement that counts producing
	// hours; empty disables the hours_per_day rate feature.
	HoursProduct string
	// NeighborDistance adds the distance to the nearest other well.
	NeighborDistance bool
}

// BuildFeatures produces the one-row-per-well feature table: header
// attributes, cumulative production and treatment aggregates, and the
// derived rate and spacing features. headers is the primary table of the
// joins, so every well appears exactly once regardless of how much
// production or treatment data it has. The returned time is the earliest
// report date observed across all wells.
func BuildFeatures(headers, prodWide, treatments *table.Table, opts FeatureOptions, logger zerolog.Logger) (*table.Table, time.Time, error) {
	cum, err := table.SumBy(prodWide, []string{ColAPI}, CumPrefix)
	if err != nil {
		return nil, time.Time{}, err
	}
	feat, err := table.LeftJoin(headers, cum, ColAPI)
	if err != nil {
		return nil, time.Time{}, err
	}

	tcum, err := table.SumBy(treatments, []string{ColAPI}, CumPrefix)
	if err != nil {
		return nil, time.Time{}, err
	}
	feat, err = table.LeftJoin(feat, tcum, ColAPI)
	if err != nil {
		return nil, time.Time{}, err
	}

	lastReport, reference, err := reportDates(prodWide)
	if err != nil {
		return nil, time.Time{}, err
	}

	feat, err = withProducingDays(feat, lastReport, logger)
	if err != nil {
		return nil, time.Time{}, err
	}
	if opts.HoursProduct != "" {
		feat, err = withHoursPerDay(feat, opts.HoursProduct)
		if err != nil {
			return nil, time.Time{}, err
		}
	}
	if opts.NeighborDistance {
		feat, err = withNeighborDistance(feat)
		if err != nil {
			return nil, time.Time{}, err
		}
	}
	return feat, reference, nil
}

// reportDates scans the wide production table for the latest report date
// per well and the earliest report date overall.
func reportDates(prodWide *table.Table) (map[int64]time.Time, time.Time, error) {
	apis, err := prodWide.Column(ColAPI)
	if err != nil {
		return nil, time.Time{}, err
	}
	dates, err := prodWide.Column(ColReportDate)
	if err != nil {
		return nil, time.Time{}, err
	}

	last := make(map[int64]time.Time)
	var reference time.Time
	for i, av := range apis {
		if av.IsMissing() || dates[i].IsMissing() {
			continue
		}
		api, d := av.Int64(), dates[i].Time()
		if cur, ok := last[api]; !ok || d.After(cur) {
			last[api] = d
		}
		if reference.IsZero() || d.Before(reference) {
			reference = d
		}
	}
	return last, reference, nil
}

// withProducingDays appends the elapsed days from each well's spud date to
// its latest report date. Wells with no spud date, no production, or a
// non-positive span get the missing marker rather than a fabricated value.
func withProducingDays(feat *table.Table, lastReport map[int64]time.Time, logger zerolog.Logger) (*table.Table, error) {
	apis, err := feat.Column(ColAPI)
	if err != nil {
		return nil, err
	}
	spuds, err := feat.Column(ColSpudDate)
	if err != nil {
		return nil, err
	}

	vals := make([]table.Value, feat.NumRows())
	for i := range vals {
		vals[i] = table.Missing(table.KindFloat)
		if apis[i].IsMissing() || spuds[i].IsMissing() {
			continue
		}
		lastDate, ok := lastReport[apis[i].Int64()]
		if !ok {
			continue
		}
		days := lastDate.Sub(spuds[i].Time()).Hours() / 24
		if days <= 0 {
			logger.Warn().
				Int64("api", apis[i].Int64()).
				Float64("days", days).
				Msg("non-positive producing span, leaving rate features missing")
			continue
		}
		vals[i] = table.Float(days)
	}
	return feat.WithColumn(table.Field{Name: ColProducingDays, Kind: table.KindFloat}, vals)
}

// withHoursPerDay appends cum_<hoursProduct> / producing_days.
func withHoursPerDay(feat *table.Table, hoursProduct string) (*table.Table, error) {
	hoursCol := CumPrefix + hoursProduct
	if !feat.Schema().Has(hoursCol) {
		// no hours measurement in this dataset; the column would be all
		// missing, so skip it
		return feat, nil
	}
	hours, err := feat.Column(hoursCol)
	if err != nil {
		return nil, err
	}
	days, err := feat.Column(ColProducingDays)
	if err != nil {
		return nil, err
	}

	vals := make([]table.Value, feat.NumRows())
	for i := range vals {
		if hours[i].IsMissing() || days[i].IsMissing() || days[i].Float64() <= 0 {
			vals[i] = table.Missing(table.KindFloat)
			continue
		}
		vals[i] = table.Float(hours[i].Float64() / days[i].Float64())
	}
	return feat.WithColumn(table.Field{Name: ColHoursPerDay, Kind: table.KindFloat}, vals)
}

// withNeighborDistance appends the geodesic distance in kilometers to the
// nearest other well with known coordinates.
func withNeighborDistance(feat *table.Table) (*table.Table, error) {
	lats, err := feat.Column(ColLatitude)
	if err != nil {
		return nil, err
	}
	lons, err := feat.Column(ColLongitude)
	if err != nil {
		return nil, err
	}

	type point struct {
		row   int
		coord haversine.Coord
	}
	var points []point
	for i := range lats {
		if lats[i].IsMissing() || lons[i].IsMissing() {
			continue
		}
		points = append(points, point{row: i, coord: haversine.Coord{Lat: lats[i].Float64(), Lon: lons[i].Float64()}})
	}

	vals := make([]table.Value, feat.NumRows())
	for i := range vals {
		vals[i] = table.Missing(table.KindFloat)
	}
	for i, p := range points {
		best := table.Missing(table.KindFloat)
		for j, q := range points {
			if i == j {
				continue
			}
			_, km := haversine.Distance(p.coord, q.coord)
			if best.IsMissing() || km < best.Float64() {
				best = table.Float(km)
			}
		}
		vals[p.row] = best
	}
	return feat.WithColumn(table.Field{Name: ColNeighborKm, Kind: table.KindFloat}, vals)
}
