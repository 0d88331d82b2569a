// Package model provides domain model for dsexplorer
package model

import "errors"

// ErrDuplicateColumnName is returned when a header contains duplicate column names
var ErrDuplicateColumnName = errors.New("duplicate column name")
