package dsexplorer

import (
	"testing"
)

func TestOutputFormat_StringAndExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   OutputFormat
		wantName string
		wantExt  string
	}{
		{name: "CSV format", format: OutputFormatCSV, wantName: "csv", wantExt: ".csv"},
		{name: "TSV format", format: OutputFormatTSV, wantName: "tsv", wantExt: ".tsv"},
		{name: "XLSX format", format: OutputFormatXLSX, wantName: "xlsx", wantExt: ".xlsx"},
		{name: "Parquet format", format: OutputFormatParquet, wantName: "parquet", wantExt: ".parquet"},
		{name: "SQLite format", format: OutputFormatSQLite, wantName: "sqlite", wantExt: ".db"},
		{name: "Unknown format defaults to csv", format: OutputFormat(999), wantName: "csv", wantExt: ".csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.format.String(); got != tt.wantName {
				t.Errorf("OutputFormat.String() = %v, want %v", got, tt.wantName)
			}
			if got := tt.format.Extension(); got != tt.wantExt {
				t.Errorf("OutputFormat.Extension() = %v, want %v", got, tt.wantExt)
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   OutputFormat
		wantOK bool
	}{
		{in: "", want: OutputFormatCSV, wantOK: true},
		{in: "csv", want: OutputFormatCSV, wantOK: true},
		{in: "tsv", want: OutputFormatTSV, wantOK: true},
		{in: "xlsx", want: OutputFormatXLSX, wantOK: true},
		{in: "parquet", want: OutputFormatParquet, wantOK: true},
		{in: "sqlite", want: OutputFormatSQLite, wantOK: true},
		{in: "ltsv", want: OutputFormatCSV, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseOutputFormat(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseOutputFormat(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseCompressionType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   CompressionType
		wantOK bool
	}{
		{in: "", want: CompressionNone, wantOK: true},
		{in: "none", want: CompressionNone, wantOK: true},
		{in: "gzip", want: CompressionGZ, wantOK: true},
		{in: "gz", want: CompressionGZ, wantOK: true},
		{in: "bz2", want: CompressionBZ2, wantOK: true},
		{in: "xz", want: CompressionXZ, wantOK: true},
		{in: "zst", want: CompressionZSTD, wantOK: true},
		{in: "lz4", want: CompressionNone, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseCompressionType(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseCompressionType(%q) = %v, %v, want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCompressionType_StringAndExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		compression CompressionType
		wantName    string
		wantExt     string
	}{
		{compression: CompressionNone, wantName: "none", wantExt: ""},
		{compression: CompressionGZ, wantName: "gz", wantExt: ".gz"},
		{compression: CompressionBZ2, wantName: "bz2", wantExt: ".bz2"},
		{compression: CompressionXZ, wantName: "xz", wantExt: ".xz"},
		{compression: CompressionZSTD, wantName: "zstd", wantExt: ".zst"},
		{compression: CompressionType(999), wantName: "none", wantExt: ""},
	}

	for _, tt := range tests {
		t.Run(tt.wantName, func(t *testing.T) {
			t.Parallel()
			if got := tt.compression.String(); got != tt.wantName {
				t.Errorf("CompressionType.String() = %v, want %v", got, tt.wantName)
			}
			if got := tt.compression.Extension(); got != tt.wantExt {
				t.Errorf("CompressionType.Extension() = %v, want %v", got, tt.wantExt)
			}
		})
	}
}

func TestNewDumpOptions(t *testing.T) {
	t.Parallel()

	options := NewDumpOptions()

	if options.Format != OutputFormatCSV {
		t.Errorf("NewDumpOptions().Format = %v, want %v", options.Format, OutputFormatCSV)
	}
	if options.Compression != CompressionNone {
		t.Errorf("NewDumpOptions().Compression = %v, want %v", options.Compression, CompressionNone)
	}
}

func TestDumpOptions_WithMethods(t *testing.T) {
	t.Parallel()

	options := NewDumpOptions()
	withFormat := options.WithFormat(OutputFormatTSV)
	withCompression := options.WithCompression(CompressionGZ)

	// Original options should not be modified
	if options.Format != OutputFormatCSV || options.Compression != CompressionNone {
		t.Errorf("Original options modified: %+v", options)
	}
	if withFormat.Format != OutputFormatTSV || withFormat.Compression != CompressionNone {
		t.Errorf("WithFormat() = %+v", withFormat)
	}
	if withCompression.Compression != CompressionGZ || withCompression.Format != OutputFormatCSV {
		t.Errorf("WithCompression() = %+v", withCompression)
	}
}

func TestDumpOptions_FileExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		format      OutputFormat
		compression CompressionType
		want        string
	}{
		{name: "CSV with no compression", format: OutputFormatCSV, compression: CompressionNone, want: ".csv"},
		{name: "CSV with gzip compression", format: OutputFormatCSV, compression: CompressionGZ, want: ".csv.gz"},
		{name: "TSV with xz compression", format: OutputFormatTSV, compression: CompressionXZ, want: ".tsv.xz"},
		{name: "TSV with zstd compression", format: OutputFormatTSV, compression: CompressionZSTD, want: ".tsv.zst"},
		{name: "Parquet ignores compression", format: OutputFormatParquet, compression: CompressionGZ, want: ".parquet"},
		{name: "XLSX ignores compression", format: OutputFormatXLSX, compression: CompressionZSTD, want: ".xlsx"},
		{name: "SQLite", format: OutputFormatSQLite, compression: CompressionNone, want: ".db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			options := DumpOptions{
				Format:      tt.format,
				Compression: tt.compression,
			}
			if got := options.FileExtension(); got != tt.want {
				t.Errorf("DumpOptions.FileExtension() = %v, want %v", got, tt.want)
			}
		})
	}
}
