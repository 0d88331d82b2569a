package model

import "strings"

// Operator is a filter comparison operator.
type Operator string

const (
	// OperatorEqual matches numerically within tolerance, otherwise case-insensitively.
	OperatorEqual Operator = "="
	// OperatorGreater matches values strictly greater than the operand.
	OperatorGreater Operator = ">"
	// OperatorLess matches values strictly less than the operand.
	OperatorLess Operator = "<"
	// OperatorGreaterEqual matches values greater than or equal to the operand.
	OperatorGreaterEqual Operator = ">="
	// OperatorLessEqual matches values less than or equal to the operand.
	OperatorLessEqual Operator = "<="
	// OperatorRange matches values within [Operand1, Operand2].
	OperatorRange Operator = "range"
	// OperatorLike matches values containing the operand, ignoring case.
	OperatorLike Operator = "like"
)

// ParseOperator converts s to an Operator.
func ParseOperator(s string) (Operator, bool) {
	op := Operator(strings.ToLower(strings.TrimSpace(s)))
	return op, op.Valid()
}

// Valid reports whether o is a supported operator.
func (o Operator) Valid() bool {
	switch o {
	case OperatorEqual, OperatorGreater, OperatorLess, OperatorGreaterEqual,
		OperatorLessEqual, OperatorRange, OperatorLike:
		return true
	default:
		return false
	}
}

// String returns the operator symbol.
func (o Operator) String() string {
	return string(o)
}

// Filter is a single predicate against one column of one dataset.
type Filter struct {
	Dataset  DatasetKey
	Column   string
	Operator Operator
	Operand1 string
	// Operand2 is only used by OperatorRange.
	Operand2 string
}

// Key identifies the filter slot. At most one filter exists per key.
func (f Filter) Key() string {
	return FilterKey(f.Dataset, f.Column)
}

// String renders the filter for logs and listings.
func (f Filter) String() string {
	if f.Operator == OperatorRange {
		return f.Key() + " range " + f.Operand1 + ".." + f.Operand2
	}
	return f.Key() + " " + string(f.Operator) + " " + f.Operand1
}

// FilterKey builds the "dataset.column" key shared by filters and domains.
func FilterKey(dataset DatasetKey, column string) string {
	return string(dataset) + "." + column
}
