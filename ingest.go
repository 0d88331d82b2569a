package dsexplorer

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/nao1215/dsexplorer/domain/model"
)

const (
	// ClimateZoneColumn is the column derived from the building weather file reference.
	ClimateZoneColumn = "climate_zone"
	// epwColumn holds the weather file URL in the building dataset.
	epwColumn = "epw"

	climateZoneUnknown = "Unknown"
	climateZoneNoData  = "No Data"
)

// climatePattern extracts "<CODE>_<rest>" from a path segment such as ".../THA_Bangkok.484560_IWEC.epw".
var climatePattern = regexp.MustCompile(`/(\w{3})_([^.]+)`)

// Ingest parses raw CSV text into a table for the given dataset.
//
// Parsing is deliberately lenient: fields are split on commas outside double
// quotes and every '"' is removed, so doubled quotes are not unescaped. Rows
// whose field count differs from the header are kept and reported through
// Table.Diagnostics. For the building dataset a climate_zone column is derived
// from the epw column.
func Ingest(key model.DatasetKey, csvText string) (*model.Table, error) {
	return ingestCSV(key, csvText, discardLogger())
}

func ingestCSV(key model.DatasetKey, csvText string, logger *slog.Logger) (*model.Table, error) {
	ectx := NewErrorContext("ingest").WithDataset(key)

	lines := strings.Split(csvText, "\n")
	headerIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			headerIndex = i
			break
		}
	}
	if headerIndex < 0 {
		return nil, ectx.Error(ErrEmptyInput)
	}

	header := parseHeaderLine(lines[headerIndex])
	if err := validateColumnNames(header); err != nil {
		return nil, ectx.Error(err)
	}

	var rows []model.Row
	var diagnostics []model.Diagnostic
	for i := headerIndex + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		values := splitCSVLine(line)
		if len(values) != len(header) {
			diag := model.Diagnostic{Line: i + 1, Got: len(values), Want: len(header)}
			diagnostics = append(diagnostics, diag)
			logger.Warn("field count mismatch",
				"dataset", key, "line", diag.Line, "got", diag.Got, "want", diag.Want)
		}
		rows = append(rows, model.NewRow(header, values))
	}

	if len(rows) == 0 {
		return nil, ectx.Error(ErrNoData)
	}

	if key == model.DatasetBuilding {
		header = addClimateZoneColumn(header, rows)
	}

	logger.Debug("dataset ingested",
		"dataset", key, "rows", len(rows), "columns", len(header), "mismatches", len(diagnostics))

	return model.NewTable(key, header, rows, diagnostics), nil
}

// parseHeaderLine splits the header on commas, trims each name and strips quotes.
func parseHeaderLine(line string) model.Header {
	fields := strings.Split(strings.TrimSpace(line), ",")
	header := make(model.Header, len(fields))
	for i, f := range fields {
		header[i] = strings.ReplaceAll(strings.TrimSpace(f), `"`, "")
	}
	return header
}

// splitCSVLine splits a data line on commas that are outside double quotes.
// Quote characters toggle the quoted state and are dropped from the field.
func splitCSVLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(fields, strings.TrimSpace(current.String()))
}

// validateColumnNames rejects headers that repeat a column name.
func validateColumnNames(header model.Header) error {
	seen := make(map[string]struct{}, len(header))
	for _, col := range header {
		if _, ok := seen[col]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateColumnName, col)
		}
		seen[col] = struct{}{}
	}
	return nil
}

// addClimateZoneColumn sets climate_zone on every row and appends the column
// to the header when it is not already present.
func addClimateZoneColumn(header model.Header, rows []model.Row) model.Header {
	for _, row := range rows {
		row[ClimateZoneColumn] = ClimateZone(row[epwColumn])
	}
	if header.Contains(ClimateZoneColumn) {
		return header
	}
	return append(header, ClimateZoneColumn)
}

// ClimateZone derives a climate label from a weather file reference.
// An empty reference yields "No Data" and an unrecognized one "Unknown".
func ClimateZone(epw string) string {
	if epw == "" {
		return climateZoneNoData
	}
	m := climatePattern.FindStringSubmatch(epw)
	if m == nil {
		return climateZoneUnknown
	}
	return m[1] + " - " + strings.ReplaceAll(m[2], ".", " ")
}
