package dsexplorer

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nao1215/dsexplorer/domain/model"
)

// Standard error messages and error creation functions for consistency
var (
	// ErrEmptyInput indicates that the CSV text has no header line
	ErrEmptyInput = errors.New("dsexplorer: empty input")

	// ErrNoData indicates that the CSV text has a header but no data rows
	ErrNoData = errors.New("dsexplorer: no data rows")

	// ErrUnknownDataset indicates a dataset key that is not loaded or not recognized
	ErrUnknownDataset = errors.New("dsexplorer: unknown dataset")

	// ErrUnsupportedQuerySyntax indicates a query the parser does not understand
	ErrUnsupportedQuerySyntax = errors.New("dsexplorer: unsupported query syntax")

	// ErrFilterLimitExceeded indicates an attempt to add more than MaxActiveFilters filters
	ErrFilterLimitExceeded = errors.New("dsexplorer: filter limit exceeded")

	// ErrAggregateLoad indicates that one or more of the required datasets failed to load
	ErrAggregateLoad = errors.New("dsexplorer: one or more datasets failed to load")

	// ErrUnsupportedOperator indicates a filter operator outside the supported set
	ErrUnsupportedOperator = errors.New("dsexplorer: unsupported operator")

	// ErrInvalidFilter indicates a filter with missing operands or column
	ErrInvalidFilter = errors.New("dsexplorer: invalid filter")

	// ErrNoExportCriteria indicates a synchronized export without any building criterion
	ErrNoExportCriteria = errors.New("dsexplorer: no export criteria")

	// ErrNotReady indicates that the row store does not hold all three datasets
	ErrNotReady = errors.New("dsexplorer: datasets not ready")

	// ErrUnsupportedFormat indicates an unsupported file format or format option
	ErrUnsupportedFormat = errors.New("dsexplorer: unsupported file format")

	// ErrDuplicateColumnName is returned when a header contains duplicate column names
	ErrDuplicateColumnName = model.ErrDuplicateColumnName
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	Dataset   model.DatasetKey
	FilePath  string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
	}
}

// WithDataset adds dataset context to the error
func (ec *ErrorContext) WithDataset(key model.DatasetKey) *ErrorContext {
	ec.Dataset = key
	return ec
}

// WithFile adds file context to the error
func (ec *ErrorContext) WithFile(path string) *ErrorContext {
	ec.FilePath = path
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	var parts []string
	parts = append(parts, fmt.Sprintf("dsexplorer: %s failed", ec.Operation))

	if ec.Dataset != "" {
		parts = append(parts, "dataset: "+string(ec.Dataset))
	}

	if ec.FilePath != "" {
		parts = append(parts, "file: "+ec.FilePath)
	}

	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return fmt.Errorf("%s", context)
}

// AggregateLoadError reports every dataset that failed during a load.
// errors.Is(err, ErrAggregateLoad) holds, and each per-dataset error is
// reachable through errors.Is / errors.As as well.
type AggregateLoadError struct {
	// Failures maps each failed dataset to its error.
	Failures map[model.DatasetKey]error
}

// Error lists the failed datasets in load order.
func (e *AggregateLoadError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, key := range e.failedKeys() {
		parts = append(parts, fmt.Sprintf("%s: %v", key, e.Failures[key]))
	}
	return ErrAggregateLoad.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap returns the sentinel followed by every per-dataset error.
func (e *AggregateLoadError) Unwrap() []error {
	errs := []error{ErrAggregateLoad}
	for _, key := range e.failedKeys() {
		errs = append(errs, e.Failures[key])
	}
	return errs
}

// failedKeys returns the failed datasets, known datasets first in load order.
func (e *AggregateLoadError) failedKeys() []model.DatasetKey {
	keys := make([]model.DatasetKey, 0, len(e.Failures))
	for _, key := range model.DatasetKeys() {
		if _, ok := e.Failures[key]; ok {
			keys = append(keys, key)
		}
	}
	var others []model.DatasetKey
	for key := range e.Failures {
		if !key.Valid() {
			others = append(others, key)
		}
	}
	slices.Sort(others)
	return append(keys, others...)
}
