package dsexplorer

import (
	"bufio"
	"io"
	"strings"

	"github.com/nao1215/dsexplorer/domain/model"
)

const (
	apartmentCountColumn = "apartment_count"
	levelsCountColumn    = "levels_count"
)

// ExportRows writes rows as CSV text. The header is the comma-joined column
// list and every value is wrapped in double quotes without escaping, so
// values containing '"' do not survive re-ingestion unchanged.
func ExportRows(w io.Writer, columns []string, rows []model.Row) error {
	return writeDelimited(w, columns, rows, ",", true)
}

// writeDelimited writes a header line and one line per row joined by sep.
// Lines are separated by '\n' with no trailing newline.
func writeDelimited(w io.Writer, columns []string, rows []model.Row, sep string, quote bool) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(columns, sep)); err != nil {
		return err
	}

	fields := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			if quote {
				fields[i] = `"` + row[col] + `"`
			} else {
				fields[i] = row[col]
			}
		}
		if _, err := bw.WriteString("\n" + strings.Join(fields, sep)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ExportFileName returns the download name for a single dataset export.
func ExportFileName(key model.DatasetKey) string {
	return key.String() + "_filtered_data" + extCSV
}

// ExportCSV writes the current filtered rows as CSV. columns overrides the
// current dataset's column list when given.
func (e *Explorer) ExportCSV(w io.Writer, columns ...string) error {
	snap := e.Snapshot()
	if len(columns) == 0 {
		columns = snap.Columns
	}
	if err := ExportRows(w, columns, snap.Rows); err != nil {
		return NewErrorContext("export").WithDataset(snap.Dataset).Error(err)
	}
	return nil
}

// BuildingCriteria selects buildings for a synchronized export. Nil bounds
// and an empty Climate are unset; at least one criterion must be set.
type BuildingCriteria struct {
	ApartmentMin *int
	ApartmentMax *int
	LevelsMin    *int
	LevelsMax    *int
	// Climate is a derived climate zone label such as "THA - Bangkok".
	Climate string
}

// Empty reports whether no criterion is set.
func (c BuildingCriteria) Empty() bool {
	return c.ApartmentMin == nil && c.ApartmentMax == nil &&
		c.LevelsMin == nil && c.LevelsMax == nil && c.Climate == ""
}

// Match reports whether a building row satisfies every set criterion.
// Counts are read as leading integers; a row without a readable count fails
// that count's bounds. Rows with no weather file skip the climate check.
func (c BuildingCriteria) Match(row model.Row) bool {
	if !inIntRange(row[apartmentCountColumn], c.ApartmentMin, c.ApartmentMax) {
		return false
	}
	if !inIntRange(row[levelsCountColumn], c.LevelsMin, c.LevelsMax) {
		return false
	}
	if c.Climate != "" {
		zone := row[ClimateZoneColumn]
		if zone == "" {
			zone = ClimateZone(row[epwColumn])
		}
		switch zone {
		case climateZoneNoData:
		case climateZoneUnknown:
			return false
		default:
			if zone != c.Climate {
				return false
			}
		}
	}
	return true
}

func inIntRange(value string, lower, upper *int) bool {
	if lower == nil && upper == nil {
		return true
	}
	n, ok := model.ParseInteger(value)
	if !ok {
		return false
	}
	if lower != nil && n < *lower {
		return false
	}
	if upper != nil && n > *upper {
		return false
	}
	return true
}

// SynchronizedRows returns, for every dataset, the rows whose building id
// belongs to a building matching criteria. All three datasets share the same
// building-id set.
func SynchronizedRows(store *RowStore, criteria BuildingCriteria) (map[model.DatasetKey][]model.Row, error) {
	if criteria.Empty() {
		return nil, ErrNoExportCriteria
	}

	building, err := store.Get(model.DatasetBuilding)
	if err != nil {
		return nil, err
	}
	var matched []model.Row
	for _, row := range building.Rows() {
		if criteria.Match(row) {
			matched = append(matched, row)
		}
	}
	ids := buildingIDs(model.DatasetBuilding, matched)

	result := make(map[model.DatasetKey][]model.Row, len(model.DatasetKeys()))
	for _, key := range model.DatasetKeys() {
		table, err := store.Get(key)
		if err != nil {
			return nil, err
		}
		result[key] = filterByIDs(key, table.Rows(), ids)
	}
	return result, nil
}

// SynchronizedFileName returns the file name of one dataset in a synchronized export.
func SynchronizedFileName(key model.DatasetKey, opts DumpOptions) string {
	return key.String() + "_filtered" + opts.FileExtension()
}

// ExportSynchronized renders the three datasets as CSV text, each filtered to
// the buildings matching criteria. The result is keyed by dataset.
func (e *Explorer) ExportSynchronized(criteria BuildingCriteria) (map[model.DatasetKey]string, error) {
	ectx := NewErrorContext("export synchronized")
	synced, err := SynchronizedRows(e.store, criteria)
	if err != nil {
		return nil, ectx.Error(err)
	}

	out := make(map[model.DatasetKey]string, len(synced))
	for key, rows := range synced {
		table, err := e.store.Get(key)
		if err != nil {
			return nil, ectx.Error(err)
		}
		var sb strings.Builder
		if err := ExportRows(&sb, table.Columns(), rows); err != nil {
			return nil, ectx.WithDataset(key).Error(err)
		}
		out[key] = sb.String()
		e.logger.Debug("synchronized export", "dataset", key, "rows", len(rows))
	}
	return out, nil
}

// IntPtr returns a pointer to v, for building BuildingCriteria literals.
func IntPtr(v int) *int {
	return &v
}
