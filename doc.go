// Package dsexplorer provides an in-memory query and filter engine over three
// related CSV datasets: building information, windows simulation results and
// rooms simulation results.
//
// The datasets are linked by a building id whose column name differs per
// dataset ("building_id" for building and windows, "building id" for rooms).
// Filters and queries written against one dataset can be projected onto
// another through that relation.
//
// # Basic Usage
//
//	explorer, err := dsexplorer.Open("building.csv", "windows.csv", "rooms.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rows, err := explorer.ExecuteQuery("SELECT * WHERE apartment_count > 10")
//
// # Query Language
//
// Queries are a small WHERE-clause dialect, keywords case-insensitive:
//
//	SELECT * WHERE <clause>
//	FROM <building|windows|rooms> WHERE <clause>
//	SELECT *
//	SELECT ALL
//
// A clause is one of, tried in this order:
//
//	<column> LIKE '<text>'
//	<column> = '<text>'
//	<column> = <number>
//	<column> > <number>
//	<column> < <number>
//	<column> >= <number>
//	<column> <= <number>
//
// Column names may contain spaces and slashes. A few snake_case aliases such
// as space_name and daylight_factor map to the header spelling used by the
// rooms dataset. The FROM form evaluates the clause on the named dataset and
// returns the current dataset's rows sharing a building id with a match.
//
// # Filters
//
// Structured filters (=, >, <, >=, <=, range, like) are keyed by
// "dataset.column"; at most MaxActiveFilters are active at once. Filters on
// the current dataset apply directly. Filters on other datasets each produce a
// building-id set, and the current rows must carry an id present in every set.
//
// # Value Semantics
//
// Values are stored as raw strings. Numeric comparison reads the leading
// number of a value, so "12 kWh" compares as 12. Empty values never match.
// Equality of two numbers holds within 0.001; otherwise "=" compares strings
// case-insensitively.
//
// # Export
//
// ExportCSV writes the current rows with every value wrapped in double quotes
// and no escaping, matching the lenient ingestion; values containing quotes or
// commas do not round-trip. DumpSynchronized writes all three datasets filtered
// to the buildings matching a BuildingCriteria as CSV, TSV, XLSX, Parquet or
// SQLite.
package dsexplorer
