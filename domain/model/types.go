// Package model provides domain model for dsexplorer
package model

import "strings"

// DatasetKey is a logical table identifier.
type DatasetKey string

const (
	// DatasetBuilding is the building information dataset.
	DatasetBuilding DatasetKey = "building"
	// DatasetWindows is the windows simulation dataset.
	DatasetWindows DatasetKey = "windows"
	// DatasetRooms is the rooms simulation dataset.
	DatasetRooms DatasetKey = "rooms"
)

// DatasetKeys returns every dataset in load order.
func DatasetKeys() []DatasetKey {
	return []DatasetKey{DatasetBuilding, DatasetWindows, DatasetRooms}
}

// ParseDatasetKey converts s to a DatasetKey, ignoring case and surrounding spaces.
func ParseDatasetKey(s string) (DatasetKey, bool) {
	key := DatasetKey(strings.ToLower(strings.TrimSpace(s)))
	return key, key.Valid()
}

// Valid reports whether k is one of the known datasets.
func (k DatasetKey) Valid() bool {
	switch k {
	case DatasetBuilding, DatasetWindows, DatasetRooms:
		return true
	default:
		return false
	}
}

// String returns the dataset key.
func (k DatasetKey) String() string {
	return string(k)
}

// DisplayName returns the human readable dataset name.
func (k DatasetKey) DisplayName() string {
	switch k {
	case DatasetBuilding:
		return "Building Info"
	case DatasetWindows:
		return "Windows Simulation"
	case DatasetRooms:
		return "Rooms Simulation"
	default:
		return string(k)
	}
}

const (
	buildingIDUnderscore = "building_id"
	buildingIDSpace      = "building id"

	buildingDisplayLimit = 500
	defaultDisplayLimit  = 1000
)

// BuildingIDField returns the name of the building id column for a dataset.
// The rooms export spells it with a space; every other dataset uses an underscore.
func BuildingIDField(key DatasetKey) string {
	if key == DatasetRooms {
		return buildingIDSpace
	}
	return buildingIDUnderscore
}

// DisplayLimit returns how many rows a table view renders for a dataset.
func DisplayLimit(key DatasetKey) int {
	if key == DatasetBuilding {
		return buildingDisplayLimit
	}
	return defaultDisplayLimit
}

// Header is table header.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Contains reports whether the header has the named column.
func (h Header) Contains(name string) bool {
	for _, v := range h {
		if v == name {
			return true
		}
	}
	return false
}

// Row maps column names to raw string values.
type Row map[string]string

// NewRow maps values positionally onto the header. Missing positions become
// empty strings and extra positions are dropped.
func NewRow(header Header, values []string) Row {
	row := make(Row, len(header))
	for i, col := range header {
		if i < len(values) {
			row[col] = values[i]
		} else {
			row[col] = ""
		}
	}
	return row
}

// Values returns the row values in column order.
func (r Row) Values(columns []string) []string {
	values := make([]string, len(columns))
	for i, col := range columns {
		values[i] = r[col]
	}
	return values
}

// Equal compare Row.
func (r Row) Equal(r2 Row) bool {
	if len(r) != len(r2) {
		return false
	}
	for k, v := range r {
		if v2, ok := r2[k]; !ok || v != v2 {
			return false
		}
	}
	return true
}
