package model

// ColumnKind classifies a column for filter inputs.
type ColumnKind int

const (
	// ColumnKindCategorical is a column of free text or enumerated values.
	ColumnKindCategorical ColumnKind = iota
	// ColumnKindNumeric is a column whose sampled values are mostly numbers.
	ColumnKindNumeric
)

// String returns the kind name
func (k ColumnKind) String() string {
	if k == ColumnKindNumeric {
		return "numeric"
	}
	return "categorical"
}

// ColumnDomain summarizes a column's sampled values.
// It drives filter inputs only; evaluation always re-parses live values.
type ColumnDomain struct {
	Dataset DatasetKey
	Column  string
	Kind    ColumnKind
	// Min and Max are set for numeric columns.
	Min float64
	Max float64
	// Values holds the distinct sorted values among the first MaxDomainValues
	// samples of a categorical column.
	Values []string
	// SampleSize is the number of non-empty sampled values.
	SampleSize int
}

// Key returns the "dataset.column" key.
func (d ColumnDomain) Key() string {
	return FilterKey(d.Dataset, d.Column)
}

const (
	// MaxDomainSampleRows is the positional prefix of rows sampled per table.
	MaxDomainSampleRows = 1000
	// MaxDomainValues is the number of leading samples a categorical column's values come from.
	MaxDomainValues = 100
)
