package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nao1215/dsexplorer"
	"github.com/nao1215/dsexplorer/domain/model"
)

// newTableWriter returns a table writer that keeps header names as written.
func newTableWriter(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	return t
}

// displayLimit returns limit when positive, otherwise the dataset's display cap.
func displayLimit(key model.DatasetKey, limit int) int {
	if limit > 0 {
		return limit
	}
	return model.DisplayLimit(key)
}

// renderRows renders at most limit rows as a table.
func renderRows(w io.Writer, key model.DatasetKey, columns []string, rows []model.Row, limit int) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	shown := min(len(rows), displayLimit(key, limit))

	t := newTableWriter(w)
	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range rows[:shown] {
		r := make(table.Row, len(columns))
		for i, col := range columns {
			r[i] = row[col]
		}
		t.AppendRow(r)
	}
	t.Render()

	if shown < len(rows) {
		_, _ = fmt.Fprintf(w, "Showing first %d rows of %d total rows\n", shown, len(rows))
		return
	}
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rows))
}

// renderExplorer renders the explorer's current result with a summary line.
func renderExplorer(w io.Writer, explorer *dsexplorer.Explorer, limit int) {
	snap := explorer.Snapshot()
	_, _ = fmt.Fprintf(w, "%s: %d of %d rows\n", snap.Dataset.DisplayName(), len(snap.Rows), snap.Total)
	renderRows(w, snap.Dataset, snap.Columns, snap.Rows, limit)
}

// renderDomains renders the column domains of one dataset.
func renderDomains(w io.Writer, key model.DatasetKey, columns []string, domains map[string]model.ColumnDomain) {
	t := newTableWriter(w)
	t.AppendHeader(table.Row{"column", "kind", "samples", "range / values"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, WidthMax: 60},
	})

	for _, col := range columns {
		d, ok := domains[model.FilterKey(key, col)]
		if !ok {
			continue
		}
		t.AppendRow(table.Row{col, d.Kind.String(), d.SampleSize, describeDomain(d)})
	}
	t.Render()
}

func describeDomain(d model.ColumnDomain) string {
	if d.Kind == model.ColumnKindNumeric {
		return formatNumber(d.Min) + " .. " + formatNumber(d.Max)
	}
	return strings.Join(d.Values, ", ")
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
