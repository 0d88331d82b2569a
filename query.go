package dsexplorer

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/nao1215/dsexplorer/domain/model"
)

// Query is a parsed query string.
type Query struct {
	// Source is the dataset whose rows the predicate is evaluated against.
	Source model.DatasetKey
	// Target is the dataset whose rows are returned.
	Target model.DatasetKey
	// CrossDataset is set for the "FROM <dataset> WHERE" form. Matching source
	// rows are projected onto Target through the building-id relation.
	CrossDataset bool
	// All is set for "SELECT *" and "SELECT ALL"; Predicate is nil.
	All bool
	// Predicate is the single WHERE clause predicate.
	Predicate *model.Filter
}

var (
	fromWherePattern = regexp.MustCompile(`(?is)^\s*(?:SELECT\s+\*\s+)?FROM\s+(\S+)\s+WHERE\s+(.+)$`)
	wherePattern     = regexp.MustCompile(`(?i)where`)
	selectAllPattern = regexp.MustCompile(`(?i)^SELECT\s+(?:\*|ALL)$`)
)

// Clause patterns in priority order. The first match wins, so quoted
// equality is tried before numeric equality and ">" before ">=".
var clauseMatchers = []struct {
	pattern  *regexp.Regexp
	operator model.Operator
}{
	{regexp.MustCompile(`(?is)^([\w/\s"']+?)\s+LIKE\s+['"](.*?)['"]$`), model.OperatorLike},
	{regexp.MustCompile(`(?s)^([\w/\s"']+?)\s*=\s*['"](.*?)['"]$`), model.OperatorEqual},
	{regexp.MustCompile(`^([\w/\s"']+?)\s*=\s*([0-9.]+)$`), model.OperatorEqual},
	{regexp.MustCompile(`^([\w/\s"']+?)\s*>\s*([0-9.]+)$`), model.OperatorGreater},
	{regexp.MustCompile(`^([\w/\s"']+?)\s*<\s*([0-9.]+)$`), model.OperatorLess},
	{regexp.MustCompile(`^([\w/\s"']+?)\s*>=\s*([0-9.]+)$`), model.OperatorGreaterEqual},
	{regexp.MustCompile(`^([\w/\s"']+?)\s*<=\s*([0-9.]+)$`), model.OperatorLessEqual},
}

// columnAliases maps snake_case query names to the spelling used in the
// source CSV headers.
var columnAliases = map[string]string{
	"space_name":      "space name",
	"space_type":      "space type",
	"daylight_factor": "daylight factor/room",
	"annual_daylight": "annual daylight/room",
	"simulation_id":   "simulation id",
	"building_id":     "building id",
}

// NormalizeColumn strips quotes and surrounding whitespace from a query
// column name and applies the alias table.
func NormalizeColumn(name string) string {
	name = strings.TrimSpace(strings.NewReplacer(`"`, "", `'`, "").Replace(name))
	if alias, ok := columnAliases[name]; ok {
		return alias
	}
	return name
}

// ParseQuery parses text against the current dataset.
//
// Supported forms, keywords case-insensitive:
//
//	FROM <dataset> WHERE <clause>
//	SELECT * WHERE <clause>   (or any text containing WHERE)
//	SELECT *   |   SELECT ALL
//
// Anything else returns ErrUnsupportedQuerySyntax. The dataset name in the
// FROM form must be one of building, windows or rooms.
func ParseQuery(text string, current model.DatasetKey) (*Query, error) {
	if !current.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, current)
	}

	if m := fromWherePattern.FindStringSubmatch(text); m != nil {
		source, ok := model.ParseDatasetKey(m[1])
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, m[1])
		}
		predicate, err := parseClause(m[2], source)
		if err != nil {
			return nil, err
		}
		return &Query{
			Source:       source,
			Target:       current,
			CrossDataset: true,
			Predicate:    predicate,
		}, nil
	}

	if loc := wherePattern.FindStringIndex(text); loc != nil {
		predicate, err := parseClause(text[loc[1]:], current)
		if err != nil {
			return nil, err
		}
		return &Query{Source: current, Target: current, Predicate: predicate}, nil
	}

	if selectAllPattern.MatchString(strings.TrimSpace(text)) {
		return &Query{Source: current, Target: current, All: true}, nil
	}

	return nil, fmt.Errorf("%w: %q (use SELECT * WHERE column = value or FROM dataset WHERE column = value)",
		ErrUnsupportedQuerySyntax, strings.TrimSpace(text))
}

// parseClause turns a single WHERE clause into a filter on dataset.
func parseClause(clause string, dataset model.DatasetKey) (*model.Filter, error) {
	clause = strings.TrimSpace(clause)
	for _, m := range clauseMatchers {
		match := m.pattern.FindStringSubmatch(clause)
		if match == nil {
			continue
		}
		column := NormalizeColumn(match[1])
		if column == "" {
			return nil, fmt.Errorf("%w: clause %q has no column", ErrUnsupportedQuerySyntax, clause)
		}
		return &model.Filter{
			Dataset:  dataset,
			Column:   column,
			Operator: m.operator,
			Operand1: match[2],
		}, nil
	}
	return nil, fmt.Errorf("%w: clause %q", ErrUnsupportedQuerySyntax, clause)
}

// exampleQueries are the canned queries offered to users.
var exampleQueries = map[string]string{
	"building":       "SELECT * WHERE apartment_count > 10",
	"energy":         "FROM windows WHERE Sun Hours_summer > 5",
	"daylight":       "FROM rooms WHERE daylight_factor > 20",
	"climate":        "SELECT * WHERE address LIKE 'Bangkok'",
	"rooms_kitchen":  "FROM rooms WHERE space_name = 'KITCHEN'",
	"rooms_living":   "FROM rooms WHERE space_name LIKE 'LIVING'",
	"high_daylight":  "FROM rooms WHERE daylight_factor > 15",
	"windows_summer": "FROM windows WHERE Sun Hours_summer >= 8",
}

// ExampleQuery returns the named example query.
func ExampleQuery(name string) (string, bool) {
	q, ok := exampleQueries[name]
	return q, ok
}

// ExampleQueryNames returns the example query names in sorted order.
func ExampleQueryNames() []string {
	names := make([]string, 0, len(exampleQueries))
	for name := range exampleQueries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
