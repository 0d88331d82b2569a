package dsexplorer

import (
	"fmt"

	"github.com/nao1215/dsexplorer/domain/model"
)

// idSet is a set of building ids.
type idSet map[string]struct{}

// buildingIDs collects the non-empty building ids of rows from dataset.
func buildingIDs(dataset model.DatasetKey, rows []model.Row) idSet {
	field := model.BuildingIDField(dataset)
	ids := make(idSet, len(rows))
	for _, row := range rows {
		if id := row[field]; id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids
}

// intersect returns the ids present in every set. It returns nil for no sets.
func intersect(sets ...idSet) idSet {
	if len(sets) == 0 {
		return nil
	}
	result := make(idSet, len(sets[0]))
	for id := range sets[0] {
		result[id] = struct{}{}
	}
	for _, set := range sets[1:] {
		for id := range result {
			if _, ok := set[id]; !ok {
				delete(result, id)
			}
		}
	}
	return result
}

// filterByIDs keeps the rows of dataset whose building id is in ids.
func filterByIDs(dataset model.DatasetKey, rows []model.Row, ids idSet) []model.Row {
	field := model.BuildingIDField(dataset)
	filtered := make([]model.Row, 0)
	for _, row := range rows {
		id := row[field]
		if id == "" {
			continue
		}
		if _, ok := ids[id]; ok {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// matchingIDs filters the source table by filters and returns the building
// ids of the matching rows.
func matchingIDs(store *RowStore, source model.DatasetKey, filters []model.Filter) (idSet, error) {
	table, err := store.Get(source)
	if err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		return nil, fmt.Errorf("%w: dataset %q is empty", ErrUnknownDataset, source)
	}
	rows, err := ApplyFilters(table.Rows(), filters)
	if err != nil {
		return nil, err
	}
	return buildingIDs(source, rows), nil
}

// ResolveCrossDataset evaluates filters against the source dataset and
// returns the target rows sharing a building id with any matching source row.
func ResolveCrossDataset(
	store *RowStore,
	source model.DatasetKey,
	filters []model.Filter,
	target model.DatasetKey,
) ([]model.Row, error) {
	ids, err := matchingIDs(store, source, filters)
	if err != nil {
		return nil, err
	}
	table, err := store.Get(target)
	if err != nil {
		return nil, err
	}
	return filterByIDs(target, table.Rows(), ids), nil
}

// Apply returns the rows of current that pass every active filter.
//
// Filters on current apply directly. Filters on other datasets are grouped per
// dataset, each group yields a building-id set, and the sets are intersected;
// rows of current must then carry a building id in the intersection. With no
// filters the full table is returned.
func Apply(store *RowStore, current model.DatasetKey, filters []model.Filter) ([]model.Row, error) {
	table, err := store.Get(current)
	if err != nil {
		return nil, err
	}

	var local []model.Filter
	foreign := make(map[model.DatasetKey][]model.Filter)
	for _, f := range filters {
		if f.Dataset == current {
			local = append(local, f)
			continue
		}
		foreign[f.Dataset] = append(foreign[f.Dataset], f)
	}

	rows, err := ApplyFilters(table.Rows(), local)
	if err != nil {
		return nil, err
	}
	if len(foreign) == 0 {
		return rows, nil
	}

	sets := make([]idSet, 0, len(foreign))
	for _, key := range model.DatasetKeys() {
		group, ok := foreign[key]
		if !ok {
			continue
		}
		ids, err := matchingIDs(store, key, group)
		if err != nil {
			return nil, err
		}
		sets = append(sets, ids)
	}
	if len(sets) != len(foreign) {
		for key := range foreign {
			if !key.Valid() {
				return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, key)
			}
		}
	}

	ids := intersect(sets...)
	if len(ids) == 0 {
		return []model.Row{}, nil
	}
	return filterByIDs(current, rows, ids), nil
}
