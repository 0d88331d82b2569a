package dsexplorer

import (
	"slices"

	"github.com/nao1215/dsexplorer/domain/model"
)

// ComputeDomains samples every loaded table and returns a domain per
// "dataset.column" key. Columns with no non-empty sampled value get no entry,
// so callers must treat a missing key as "no filter possible".
func ComputeDomains(store *RowStore) map[string]model.ColumnDomain {
	domains := make(map[string]model.ColumnDomain)
	for _, key := range model.DatasetKeys() {
		table, err := store.Get(key)
		if err != nil {
			continue
		}
		for _, d := range inferTableDomains(table) {
			domains[d.Key()] = d
		}
	}
	return domains
}

// inferTableDomains computes domains for every column of a table from the
// first MaxDomainSampleRows rows.
func inferTableDomains(table *model.Table) []model.ColumnDomain {
	rows := table.Rows()
	if len(rows) > model.MaxDomainSampleRows {
		rows = rows[:model.MaxDomainSampleRows]
	}

	domains := make([]model.ColumnDomain, 0, len(table.Header()))
	for _, column := range table.Header() {
		values := make([]string, 0, len(rows))
		for _, row := range rows {
			if v := row[column]; v != "" {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}

		d := inferColumnDomain(values)
		d.Dataset = table.Name()
		d.Column = column
		domains = append(domains, d)
	}
	return domains
}

// inferColumnDomain classifies non-empty values. A column is numeric when
// more than half of its values parse as finite numbers.
func inferColumnDomain(values []string) model.ColumnDomain {
	domain := model.ColumnDomain{SampleSize: len(values)}

	var numbers []float64
	for _, v := range values {
		if n, ok := model.ParseNumber(v); ok {
			numbers = append(numbers, n)
		}
	}

	if float64(len(numbers)) > 0.5*float64(len(values)) {
		domain.Kind = model.ColumnKindNumeric
		domain.Min = slices.Min(numbers)
		domain.Max = slices.Max(numbers)
		return domain
	}

	// Only the first MaxDomainValues samples contribute distinct values.
	domain.Kind = model.ColumnKindCategorical
	if len(values) > model.MaxDomainValues {
		values = values[:model.MaxDomainValues]
	}
	domain.Values = slices.Clone(values)
	slices.Sort(domain.Values)
	domain.Values = slices.Compact(domain.Values)
	return domain
}
