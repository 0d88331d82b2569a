package model

// Diagnostic records a tolerated problem found while ingesting a table.
type Diagnostic struct {
	// Line is the 1-based line number in the source text.
	Line int
	// Got is the number of fields parsed from the line.
	Got int
	// Want is the number of header columns.
	Want int
}

// Table represents one dataset held in memory.
type Table struct {
	// name is the dataset the table was loaded for.
	name DatasetKey
	// header is the column list in source order.
	header Header
	// rows are immutable after ingestion.
	rows []Row
	// diagnostics lists field count mismatches found during ingestion.
	diagnostics []Diagnostic
}

// NewTable create new Table.
func NewTable(
	name DatasetKey,
	header Header,
	rows []Row,
	diagnostics []Diagnostic,
) *Table {
	return &Table{
		name:        name,
		header:      header,
		rows:        rows,
		diagnostics: diagnostics,
	}
}

// Name return table name.
func (t *Table) Name() DatasetKey {
	return t.name
}

// Header return table header.
func (t *Table) Header() Header {
	return t.header
}

// Columns returns a copy of the column list.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.header))
	copy(cols, t.header)
	return cols
}

// Rows return table rows. Callers must not modify them.
func (t *Table) Rows() []Row {
	return t.rows
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Diagnostics returns the tolerated ingestion problems.
func (t *Table) Diagnostics() []Diagnostic {
	return t.diagnostics
}

// Equal compare Table.
func (t *Table) Equal(t2 *Table) bool {
	if t.Name() != t2.Name() {
		return false
	}
	if !t.header.Equal(t2.header) {
		return false
	}
	if len(t.Rows()) != len(t2.Rows()) {
		return false
	}
	for i, row := range t.Rows() {
		if !row.Equal(t2.Rows()[i]) {
			return false
		}
	}
	return true
}
