package wells

import "wellpipe/internal/table"

// Column names are canonical lower snake case. ReadCSV canonicalizes source
// headers the same way, so "Spud Date" and "spud_date" both load.
const (
	ColAPI        = "api"
	ColReportDate = "report_date"
	ColProduct    = "product"
	ColVolume     = "volume"

	ColWellName   = "well_name"
	ColOperator   = "operator"
	ColCounty     = "county"
	ColLatitude   = "latitude"
	ColLongitude  = "longitude"
	ColSpudDate   = "spud_date"
	ColTotalDepth = "total_depth"

	ColTreatDate = "treatment_date"
	ColTreatType = "treatment_type"
	ColFluid     = "fluid_gallons"
	ColProppant  = "proppant_lbs"
)

// ProductionSchema describes the long-form production table: one row per
// (api, report_date, product).
func ProductionSchema() table.Schema {
	return table.MustSchema(
		table.Field{Name: ColAPI, Kind: table.KindInt},
		table.Field{Name: ColReportDate, Kind: table.KindDate},
		table.Field{Name: ColProduct, Kind: table.KindString},
		table.Field{Name: ColVolume, Kind: table.KindFloat},
	)
}

// HeaderSchema describes the static per-well attribute table.
func HeaderSchema() table.Schema {
	return table.MustSchema(
		table.Field{Name: ColAPI, Kind: table.KindInt},
		table.Field{Name: ColWellName, Kind: table.KindString},
		table.Field{Name: ColOperator, Kind: table.KindString},
		table.Field{Name: ColCounty, Kind: table.KindString},
		table.Field{Name: ColLatitude, Kind: table.KindFloat},
		table.Field{Name: ColLongitude, Kind: table.KindFloat},
		table.Field{Name: ColSpudDate, Kind: table.KindDate},
		table.Field{Name: ColTotalDepth, Kind: table.KindFloat},
	)
}

// TreatmentSchema describes the stimulation treatment table, one row per
// treatment job.
func TreatmentSchema() table.Schema {
	return table.MustSchema(
		table.Field{Name: ColAPI, Kind: table.KindInt},
		table.Field{Name: ColTreatDate, Kind: table.KindDate},
		table.Field{Name: ColTreatType, Kind: table.KindString},
		table.Field{Name: ColFluid, Kind: table.KindFloat},
		table.Field{Name: ColProppant, Kind: table.KindFloat},
	)
}
