package dsexplorer

import (
	"fmt"
	"math"
	"strings"

	"github.com/nao1215/dsexplorer/domain/model"
)

// equalityTolerance is the absolute difference under which two numbers are equal.
const equalityTolerance = 0.001

// Evaluate reports whether row satisfies the filter.
//
// Empty or missing values never match. "=" compares numerically within
// 0.001 when both sides are numbers and falls back to case-insensitive
// string equality; ordering operators and range require numbers on both
// sides; like is a case-insensitive substring test. An operator outside the
// supported set returns ErrUnsupportedOperator.
func Evaluate(row model.Row, f model.Filter) (bool, error) {
	raw, ok := row[f.Column]
	if !ok || raw == "" {
		return false, nil
	}

	value := strings.TrimSpace(raw)
	operand := strings.TrimSpace(f.Operand1)
	num, valueIsNum := model.ParseNumber(value)
	operandNum, operandIsNum := model.ParseNumber(operand)
	numeric := valueIsNum && operandIsNum

	switch f.Operator {
	case model.OperatorEqual:
		if numeric {
			return math.Abs(num-operandNum) < equalityTolerance, nil
		}
		return strings.EqualFold(value, operand), nil
	case model.OperatorGreater:
		return numeric && num > operandNum, nil
	case model.OperatorLess:
		return numeric && num < operandNum, nil
	case model.OperatorGreaterEqual:
		return numeric && num >= operandNum, nil
	case model.OperatorLessEqual:
		return numeric && num <= operandNum, nil
	case model.OperatorRange:
		upper, upperIsNum := model.ParseNumber(strings.TrimSpace(f.Operand2))
		return numeric && upperIsNum && num >= operandNum && num <= upper, nil
	case model.OperatorLike:
		return strings.Contains(strings.ToLower(value), strings.ToLower(operand)), nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedOperator, f.Operator)
	}
}

// matchAll reports whether row satisfies every filter.
func matchAll(row model.Row, filters []model.Filter) (bool, error) {
	for _, f := range filters {
		ok, err := Evaluate(row, f)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

// ApplyFilters returns the rows that satisfy every filter (AND semantics).
// A nil or empty filter list returns rows unchanged.
func ApplyFilters(rows []model.Row, filters []model.Filter) ([]model.Row, error) {
	if len(filters) == 0 {
		return rows, nil
	}

	filtered := make([]model.Row, 0)
	for _, row := range rows {
		match, err := matchAll(row, filters)
		if err != nil {
			return nil, err
		}
		if match {
			filtered = append(filtered, row)
		}
	}
	return filtered, nil
}

// validateFilter checks that a filter can be evaluated.
func validateFilter(f model.Filter) error {
	if !f.Dataset.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDataset, f.Dataset)
	}
	if !f.Operator.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedOperator, f.Operator)
	}
	if strings.TrimSpace(f.Column) == "" {
		return fmt.Errorf("%w: column is required", ErrInvalidFilter)
	}
	if strings.TrimSpace(f.Operand1) == "" {
		return fmt.Errorf("%w: %s has no value", ErrInvalidFilter, f.Key())
	}
	if f.Operator == model.OperatorRange && strings.TrimSpace(f.Operand2) == "" {
		return fmt.Errorf("%w: range filter %s needs two values", ErrInvalidFilter, f.Key())
	}
	return nil
}
