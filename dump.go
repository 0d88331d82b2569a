package dsexplorer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/nao1215/dsexplorer/domain/model"
)

// synchronizedBundleName is the file name (without extension) used when a
// synchronized export is written as a single XLSX workbook or SQLite database.
const synchronizedBundleName = "datasets_filtered"

// exportTable is one dataset ready to be written.
type exportTable struct {
	// name is the per-file base name for CSV, TSV and Parquet output.
	name string
	// dataset names the XLSX sheet or SQLite table.
	dataset model.DatasetKey
	columns []string
	rows    []model.Row
}

// DumpSynchronized writes the three datasets, filtered to the buildings
// matching criteria, to outputDir and returns the written paths.
//
// CSV, TSV and Parquet produce <dataset>_filtered<ext> per dataset. XLSX
// produces one workbook with a sheet per dataset and SQLite one database with
// a table per dataset. Compression is only accepted for CSV and TSV.
func (e *Explorer) DumpSynchronized(
	ctx context.Context,
	outputDir string,
	criteria BuildingCriteria,
	opts ...DumpOptions,
) ([]string, error) {
	options := NewDumpOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	ectx := NewErrorContext("dump synchronized").WithFile(outputDir)

	synced, err := SynchronizedRows(e.store, criteria)
	if err != nil {
		return nil, ectx.Error(err)
	}

	tables := make([]exportTable, 0, len(synced))
	for _, key := range model.DatasetKeys() {
		table, err := e.store.Get(key)
		if err != nil {
			return nil, ectx.Error(err)
		}
		tables = append(tables, exportTable{
			name:    key.String() + "_filtered",
			dataset: key,
			columns: table.Columns(),
			rows:    synced[key],
		})
	}

	paths, err := writeTables(ctx, outputDir, synchronizedBundleName, tables, options)
	if err != nil {
		return nil, ectx.Error(err)
	}
	e.logger.Info("synchronized export written", "dir", outputDir, "format", options.Format, "files", len(paths))
	return paths, nil
}

// Dump writes the current filtered rows to outputDir as
// <dataset>_filtered_data<ext> and returns the written path.
func (e *Explorer) Dump(ctx context.Context, outputDir string, opts ...DumpOptions) (string, error) {
	options := NewDumpOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	snap := e.Snapshot()
	key := snap.Dataset
	name := key.String() + "_filtered_data"

	paths, err := writeTables(ctx, outputDir, name, []exportTable{{
		name:    name,
		dataset: key,
		columns: snap.Columns,
		rows:    snap.Rows,
	}}, options)
	if err != nil {
		return "", NewErrorContext("dump").WithDataset(key).WithFile(outputDir).Error(err)
	}
	return paths[0], nil
}

// writeTables writes tables to outputDir in the requested format.
func writeTables(ctx context.Context, outputDir, bundle string, tables []exportTable, opts DumpOptions) ([]string, error) {
	if opts.Compression != CompressionNone && !opts.Format.supportsCompression() {
		return nil, fmt.Errorf("%w: %s output cannot be compressed", ErrUnsupportedFormat, opts.Format)
	}
	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	switch opts.Format {
	case OutputFormatXLSX:
		path := filepath.Join(outputDir, bundle+extXLSX)
		return []string{path}, writeXLSX(path, tables)
	case OutputFormatSQLite:
		path := filepath.Join(outputDir, bundle+extSQLite)
		return []string{path}, writeSQLite(ctx, path, tables)
	case OutputFormatCSV, OutputFormatTSV, OutputFormatParquet:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, opts.Format)
	}

	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		path := filepath.Join(outputDir, t.name+opts.FileExtension())
		var err error
		if opts.Format == OutputFormatParquet {
			err = writeParquet(path, t)
		} else {
			err = writeDelimitedFile(path, t, opts)
		}
		if err != nil {
			return paths, fmt.Errorf("failed to export %s: %w", t.dataset, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeDelimitedFile writes a CSV or TSV file, compressed when requested.
// CSV values are quoted the same way as ExportRows; TSV values are written as is.
func writeDelimitedFile(path string, t exportTable, opts DumpOptions) (err error) {
	w, cleanup, err := createCompressedFile(path, opts.Compression)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cleanup(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if opts.Format == OutputFormatTSV {
		return writeDelimited(w, t.columns, t.rows, "\t", false)
	}
	return writeDelimited(w, t.columns, t.rows, ",", true)
}

// writeXLSX writes every table to its own sheet of one workbook.
func writeXLSX(path string, tables []exportTable) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close() // Ignore close error; SaveAs reports write failures
	}()

	for i, t := range tables {
		sheet := t.dataset.String()
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}

		if err := setXLSXRow(f, sheet, 1, t.columns); err != nil {
			return err
		}
		for r, row := range t.rows {
			if err := setXLSXRow(f, sheet, r+2, row.Values(t.columns)); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func setXLSXRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of sheet %s: %w", rowNum, sheet, err)
	}
	return nil
}

// writeParquet writes a table with every column as a UTF-8 string.
func writeParquet(path string, t exportTable) error {
	if len(t.columns) == 0 {
		return errors.New("no columns to write")
	}

	fields := make([]arrow.Field, len(t.columns))
	for i, col := range t.columns {
		fields[i] = arrow.Field{Name: col, Type: arrow.BinaryTypes.String}
	}
	schema := arrow.NewSchema(fields, nil)

	file, err := os.Create(path) //nolint:gosec // Output path is built from the output directory and dataset name
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		_ = file.Close() // The parquet writer closes the file; a second close is harmless
	}()

	writer, err := pqarrow.NewFileWriter(schema, file, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()
	for _, row := range t.rows {
		for i, col := range t.columns {
			builder.Field(i).(*array.StringBuilder).Append(row[col])
		}
	}
	record := builder.NewRecord()
	defer record.Release()

	if err := writer.Write(record); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write parquet record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// writeSQLite writes every table into a fresh SQLite database with TEXT columns.
func writeSQLite(ctx context.Context, path string, tables []exportTable) (err error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to replace database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, t := range tables {
		if err := insertSQLiteTable(ctx, tx, t); err != nil {
			return fmt.Errorf("failed to write table %s: %w", t.dataset, err)
		}
	}
	return tx.Commit()
}

func insertSQLiteTable(ctx context.Context, tx *sql.Tx, t exportTable) error {
	quoted := make([]string, len(t.columns))
	defs := make([]string, len(t.columns))
	marks := make([]string, len(t.columns))
	for i, col := range t.columns {
		quoted[i] = quoteIdentifier(col)
		defs[i] = quoted[i] + " TEXT"
		marks[i] = "?"
	}

	name := quoteIdentifier(t.dataset.String())
	create := fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return err
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", //nolint:gosec // Identifiers are quoted
		name, strings.Join(quoted, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return err
	}
	defer stmt.Close()

	args := make([]any, len(t.columns))
	for _, row := range t.rows {
		for i, col := range t.columns {
			args[i] = row[col]
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

// quoteIdentifier quotes a SQLite identifier, doubling embedded quotes.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
