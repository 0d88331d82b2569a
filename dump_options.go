package dsexplorer

// OutputFormat represents the output file format
type OutputFormat int

const (
	// OutputFormatCSV represents CSV output format
	OutputFormatCSV OutputFormat = iota
	// OutputFormatTSV represents TSV output format
	OutputFormatTSV
	// OutputFormatXLSX writes one workbook with a sheet per dataset
	OutputFormatXLSX
	// OutputFormatParquet writes one Parquet file per dataset
	OutputFormatParquet
	// OutputFormatSQLite writes one SQLite database with a table per dataset
	OutputFormatSQLite
)

// ParseOutputFormat converts a format name to an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, bool) {
	switch s {
	case "csv", "":
		return OutputFormatCSV, true
	case "tsv":
		return OutputFormatTSV, true
	case "xlsx":
		return OutputFormatXLSX, true
	case "parquet":
		return OutputFormatParquet, true
	case "sqlite":
		return OutputFormatSQLite, true
	default:
		return OutputFormatCSV, false
	}
}

// String returns the string representation of OutputFormat
func (f OutputFormat) String() string {
	switch f {
	case OutputFormatCSV:
		return "csv"
	case OutputFormatTSV:
		return "tsv"
	case OutputFormatXLSX:
		return "xlsx"
	case OutputFormatParquet:
		return "parquet"
	case OutputFormatSQLite:
		return "sqlite"
	default:
		return "csv"
	}
}

// Extension returns the file extension for the format
func (f OutputFormat) Extension() string {
	switch f {
	case OutputFormatCSV:
		return extCSV
	case OutputFormatTSV:
		return extTSV
	case OutputFormatXLSX:
		return extXLSX
	case OutputFormatParquet:
		return extParquet
	case OutputFormatSQLite:
		return extSQLite
	default:
		return extCSV
	}
}

// supportsCompression reports whether the format is written as a stream that can be compressed.
func (f OutputFormat) supportsCompression() bool {
	return f == OutputFormatCSV || f == OutputFormatTSV
}

// CompressionType represents the compression type
type CompressionType int

const (
	// CompressionNone represents no compression
	CompressionNone CompressionType = iota
	// CompressionGZ represents gzip compression
	CompressionGZ
	// CompressionBZ2 represents bzip2 compression
	CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD
)

// ParseCompressionType converts a compression name to a CompressionType.
func ParseCompressionType(s string) (CompressionType, bool) {
	switch s {
	case "none", "":
		return CompressionNone, true
	case "gz", "gzip":
		return CompressionGZ, true
	case "bz2", "bzip2":
		return CompressionBZ2, true
	case "xz":
		return CompressionXZ, true
	case "zstd", "zst":
		return CompressionZSTD, true
	default:
		return CompressionNone, false
	}
}

// String returns the string representation of CompressionType
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGZ:
		return "gz"
	case CompressionBZ2:
		return "bz2"
	case CompressionXZ:
		return "xz"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

// Extension returns the file extension for the compression type
func (c CompressionType) Extension() string {
	switch c {
	case CompressionNone:
		return ""
	case CompressionGZ:
		return extGZ
	case CompressionBZ2:
		return extBZ2
	case CompressionXZ:
		return extXZ
	case CompressionZSTD:
		return extZSTD
	default:
		return ""
	}
}

// DumpOptions configures how filtered datasets are written to files.
//
// Example:
//
//	options := NewDumpOptions().
//		WithFormat(OutputFormatTSV).
//		WithCompression(CompressionGZ)
//
//	paths, err := explorer.DumpSynchronized(ctx, "./output", criteria, options)
type DumpOptions struct {
	// Format specifies the output file format
	Format OutputFormat
	// Compression specifies the compression type, only honored for CSV and TSV
	Compression CompressionType
}

// NewDumpOptions creates default export options (CSV, no compression).
func NewDumpOptions() DumpOptions {
	return DumpOptions{
		Format:      OutputFormatCSV,
		Compression: CompressionNone,
	}
}

// WithFormat sets the output file format.
func (o DumpOptions) WithFormat(format OutputFormat) DumpOptions {
	o.Format = format
	return o
}

// WithCompression adds compression to output files.
//
// Options:
//   - CompressionNone: No compression (default)
//   - CompressionGZ: Gzip compression (.gz)
//   - CompressionXZ: XZ compression (.xz)
//   - CompressionZSTD: Zstandard compression (.zst)
func (o DumpOptions) WithCompression(compression CompressionType) DumpOptions {
	o.Compression = compression
	return o
}

// FileExtension returns the complete file extension including compression
func (o DumpOptions) FileExtension() string {
	if !o.Format.supportsCompression() {
		return o.Format.Extension()
	}
	return o.Format.Extension() + o.Compression.Extension()
}
