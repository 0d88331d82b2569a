// Package config provides configuration management for the dsexplorer CLI.
package config

import (
	"fmt"

	"github.com/nao1215/dsexplorer"
	"github.com/nao1215/dsexplorer/domain/model"
)

// Default configuration values.
const (
	DefaultBuildingPath = "building.csv"
	DefaultWindowsPath  = "windows.csv"
	DefaultRoomsPath    = "rooms.csv"
	DefaultDataset      = "building"
	DefaultOutputDir    = "."
	DefaultFormat       = "csv"
	DefaultCompression  = "none"
)

// Config holds the CLI configuration.
type Config struct {
	Datasets    DatasetsConfig `koanf:"datasets"`
	Dataset     string         `koanf:"dataset"`
	OutputDir   string         `koanf:"output_dir"`
	Format      string         `koanf:"format"`
	Compression string         `koanf:"compression"`
	Verbose     bool           `koanf:"verbose"`
	// Limit overrides the per-dataset display cap when positive.
	Limit       int            `koanf:"limit"`
}

// DatasetsConfig holds the source file of each dataset.
type DatasetsConfig struct {
	Building string `koanf:"building"`
	Windows  string `koanf:"windows"`
	Rooms    string `koanf:"rooms"`
}

// Path returns the configured source path for key.
func (d DatasetsConfig) Path(key model.DatasetKey) string {
	switch key {
	case model.DatasetBuilding:
		return d.Building
	case model.DatasetWindows:
		return d.Windows
	case model.DatasetRooms:
		return d.Rooms
	default:
		return ""
	}
}

// Validate checks that every setting has a usable value.
func (c *Config) Validate() error {
	for _, key := range model.DatasetKeys() {
		if c.Datasets.Path(key) == "" {
			return fmt.Errorf("datasets.%s must be set", key)
		}
	}
	if _, err := c.DatasetKey(); err != nil {
		return err
	}
	if _, err := c.DumpOptions(); err != nil {
		return err
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative: %d", c.Limit)
	}
	return nil
}

// DatasetKey returns the initial dataset.
func (c *Config) DatasetKey() (model.DatasetKey, error) {
	key, ok := model.ParseDatasetKey(c.Dataset)
	if !ok {
		return "", fmt.Errorf("%w: %q", dsexplorer.ErrUnknownDataset, c.Dataset)
	}
	return key, nil
}

// DumpOptions converts the format and compression settings.
func (c *Config) DumpOptions() (dsexplorer.DumpOptions, error) {
	format, ok := dsexplorer.ParseOutputFormat(c.Format)
	if !ok {
		return dsexplorer.DumpOptions{}, fmt.Errorf("%w: unknown format %q", dsexplorer.ErrUnsupportedFormat, c.Format)
	}
	compression, ok := dsexplorer.ParseCompressionType(c.Compression)
	if !ok {
		return dsexplorer.DumpOptions{}, fmt.Errorf("%w: unknown compression %q", dsexplorer.ErrUnsupportedFormat, c.Compression)
	}
	return dsexplorer.NewDumpOptions().WithFormat(format).WithCompression(compression), nil
}
