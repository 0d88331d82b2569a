package dsexplorer

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/nao1215/dsexplorer/domain/model"
)

// MaxActiveFilters is the maximum number of filters active at once.
const MaxActiveFilters = 10

// Explorer is the query and filter session over a loaded RowStore.
// It tracks the current dataset, the active filters and the last result.
// A failed query or filter change leaves the previous result in place.
//
// Thread Safety: All methods are safe for concurrent use by multiple goroutines.
type Explorer struct {
	mu       sync.RWMutex
	store    *RowStore
	logger   *slog.Logger
	domains  map[string]model.ColumnDomain
	current  model.DatasetKey
	filters  []model.Filter
	filtered []model.Row
	query    string
}

// NewExplorer creates an explorer over a ready store. The current dataset
// starts as building with no filters, and column domains are computed once.
// It returns ErrNotReady when the store does not hold all three datasets.
func NewExplorer(store *RowStore) (*Explorer, error) {
	if store == nil || !store.Ready() {
		return nil, ErrNotReady
	}

	table, err := store.Get(model.DatasetBuilding)
	if err != nil {
		return nil, err
	}

	e := &Explorer{
		store:    store,
		logger:   store.logger,
		domains:  ComputeDomains(store),
		current:  model.DatasetBuilding,
		filtered: table.Rows(),
	}
	e.logger.Debug("explorer ready", "domains", len(e.domains))
	return e, nil
}

// Store returns the underlying row store.
func (e *Explorer) Store() *RowStore {
	return e.store
}

// Current returns the dataset being displayed.
func (e *Explorer) Current() model.DatasetKey {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// SwitchDataset makes key the current dataset and re-applies the active filters.
func (e *Explorer) SwitchDataset(key model.DatasetKey) error {
	if !key.Valid() {
		return NewErrorContext("switch dataset").WithDataset(key).Error(ErrUnknownDataset)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	rows, err := Apply(e.store, key, e.filters)
	if err != nil {
		return NewErrorContext("switch dataset").WithDataset(key).Error(err)
	}
	e.current = key
	e.filtered = rows
	e.query = ""
	return nil
}

// AddFilter adds f to the active filters, replacing any filter with the same
// "dataset.column" key, and re-applies them. Adding a new key while
// MaxActiveFilters are active returns ErrFilterLimitExceeded.
func (e *Explorer) AddFilter(f model.Filter) error {
	ectx := NewErrorContext("add filter").WithDataset(f.Dataset)
	if err := validateFilter(f); err != nil {
		e.logger.Warn("filter rejected", "filter", f.String(), "error", err)
		return ectx.Error(err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	filters := slices.Clone(e.filters)
	if i := indexOfFilter(filters, f.Key()); i >= 0 {
		filters[i] = f
	} else {
		if len(filters) >= MaxActiveFilters {
			e.logger.Warn("filter rejected", "filter", f.String(), "active", len(filters))
			return ectx.Error(fmt.Errorf("%w: at most %d filters", ErrFilterLimitExceeded, MaxActiveFilters))
		}
		filters = append(filters, f)
	}

	rows, err := Apply(e.store, e.current, filters)
	if err != nil {
		return ectx.Error(err)
	}
	e.filters = filters
	e.filtered = rows
	e.query = ""
	e.logger.Debug("filter added", "filter", f.String(), "rows", len(rows))
	return nil
}

// RemoveFilter removes the filter with the given "dataset.column" key and
// re-applies the rest. It reports whether a filter was removed.
func (e *Explorer) RemoveFilter(key string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := indexOfFilter(e.filters, key)
	if i < 0 {
		return false, nil
	}
	filters := slices.Delete(slices.Clone(e.filters), i, i+1)

	rows, err := Apply(e.store, e.current, filters)
	if err != nil {
		return false, NewErrorContext("remove filter").WithDetails(key).Error(err)
	}
	e.filters = filters
	e.filtered = rows
	e.query = ""
	return true, nil
}

// ClearFilters removes every active filter and shows the full current table.
func (e *Explorer) ClearFilters() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resetLocked()
}

// Reset clears filters and the last query.
func (e *Explorer) Reset() {
	e.ClearFilters()
}

func (e *Explorer) resetLocked() {
	e.filters = nil
	e.query = ""
	if table, err := e.store.Get(e.current); err == nil {
		e.filtered = table.Rows()
	}
}

// ActiveFilters returns the active filters in insertion order.
func (e *Explorer) ActiveFilters() []model.Filter {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.filters)
}

// ApplyFilters re-evaluates the active filters against the current dataset
// and returns copies of the matching rows.
func (e *Explorer) ApplyFilters() ([]model.Row, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rows, err := Apply(e.store, e.current, e.filters)
	if err != nil {
		return nil, NewErrorContext("apply filters").WithDataset(e.current).Error(err)
	}
	e.filtered = rows
	return cloneRows(rows), nil
}

// ExecuteQuery parses and runs a query against the current dataset and makes
// the result the current filtered rows. Active filters are not combined with
// the query. On error the previous result is kept. The returned rows are copies.
func (e *Explorer) ExecuteQuery(text string) ([]model.Row, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ectx := NewErrorContext("query").WithDataset(e.current).WithDetails(text)
	q, err := ParseQuery(text, e.current)
	if err != nil {
		e.logger.Info("query rejected", "query", text, "error", err)
		return nil, ectx.Error(err)
	}

	rows, err := e.runLocked(q)
	if err != nil {
		return nil, ectx.Error(err)
	}
	e.filtered = rows
	e.query = text
	e.logger.Debug("query executed", "query", text, "source", q.Source, "rows", len(rows))
	return cloneRows(rows), nil
}

func (e *Explorer) runLocked(q *Query) ([]model.Row, error) {
	if q.CrossDataset {
		return ResolveCrossDataset(e.store, q.Source, []model.Filter{*q.Predicate}, q.Target)
	}
	table, err := e.store.Get(q.Target)
	if err != nil {
		return nil, err
	}
	if q.All {
		return table.Rows(), nil
	}
	return ApplyFilters(table.Rows(), []model.Filter{*q.Predicate})
}

// LastQuery returns the last successfully executed query, or "" when the
// current result came from filters.
func (e *Explorer) LastQuery() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.query
}

// Filtered returns copies of the current result rows.
func (e *Explorer) Filtered() []model.Row {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return cloneRows(e.filtered)
}

// Snapshot is the current dataset, its columns and result rows as read
// under one lock. Rows are shared with the store; callers must not modify them.
type Snapshot struct {
	Dataset model.DatasetKey
	Columns []string
	Rows    []model.Row
	Total   int
}

// Snapshot returns a consistent view of the current result.
func (e *Explorer) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := Snapshot{
		Dataset: e.current,
		Rows:    slices.Clip(e.filtered),
	}
	if table, err := e.store.Get(e.current); err == nil {
		snap.Columns = table.Columns()
		snap.Total = table.Len()
	}
	return snap
}

// RowCount returns the filtered and total row counts of the current dataset.
func (e *Explorer) RowCount() (filtered, total int) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if table, err := e.store.Get(e.current); err == nil {
		total = table.Len()
	}
	return len(e.filtered), total
}

// Columns returns the column list of the current dataset.
func (e *Explorer) Columns() []string {
	return e.Snapshot().Columns
}

// Domains returns the column domains computed at construction.
func (e *Explorer) Domains() map[string]model.ColumnDomain {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return maps.Clone(e.domains)
}

// ClimateZones returns the sorted distinct climate zones derived from the
// building dataset, excluding rows with no recognizable weather file.
func (e *Explorer) ClimateZones() []string {
	table, err := e.store.Get(model.DatasetBuilding)
	if err != nil {
		return nil
	}

	var zones []string
	for _, row := range table.Rows() {
		zone := row[ClimateZoneColumn]
		if zone == "" || zone == climateZoneNoData || zone == climateZoneUnknown {
			continue
		}
		zones = append(zones, zone)
	}
	slices.Sort(zones)
	return slices.Compact(zones)
}

func cloneRows(rows []model.Row) []model.Row {
	if rows == nil {
		return nil
	}
	out := make([]model.Row, len(rows))
	for i, row := range rows {
		out[i] = maps.Clone(row)
	}
	return out
}

func indexOfFilter(filters []model.Filter, key string) int {
	return slices.IndexFunc(filters, func(f model.Filter) bool {
		return f.Key() == key
	})
}
