// Package cli provides the command-line interface for dsexplorer.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/dsexplorer"
	"github.com/nao1215/dsexplorer/domain/model"
	"github.com/nao1215/dsexplorer/internal/cli/config"
)

// Version information (set at build time).
var Version = "0.1.0"

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "dsexplorer",
		Short: "Explore building, windows and rooms simulation datasets",
		Long: `dsexplorer loads a building dataset together with its windows and rooms
simulation datasets and lets you query and filter them.

Filters and queries on one dataset narrow the others through the building id,
and the filtered results can be exported as CSV, TSV, XLSX, Parquet or SQLite.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			if path := config.FindConfigFile(cfgFile); path != "" {
				logger.Debug("using config file", "path", path)
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = context.WithValue(ctx, loggerKey{}, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./dsexplorer.yaml)")
	rootCmd.PersistentFlags().String("building", "", "Path to the building CSV (default: building.csv)")
	rootCmd.PersistentFlags().String("windows", "", "Path to the windows simulation CSV (default: windows.csv)")
	rootCmd.PersistentFlags().String("rooms", "", "Path to the rooms simulation CSV (default: rooms.csv)")
	rootCmd.PersistentFlags().StringP("dataset", "d", "", "Dataset to display (building|windows|rooms)")
	rootCmd.PersistentFlags().Int("limit", 0, "Maximum rows to display (default: 500 for building, 1000 otherwise)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("dataset", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"building", "windows", "rooms"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newQueryCommand())
	rootCmd.AddCommand(newFilterCommand())
	rootCmd.AddCommand(newDomainsCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newExamplesCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// getConfig retrieves the config from the command context.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return &config.Config{
		Datasets: config.DatasetsConfig{
			Building: config.DefaultBuildingPath,
			Windows:  config.DefaultWindowsPath,
			Rooms:    config.DefaultRoomsPath,
		},
		Dataset:     config.DefaultDataset,
		OutputDir:   config.DefaultOutputDir,
		Format:      config.DefaultFormat,
		Compression: config.DefaultCompression,
	}
}

// getLogger retrieves the logger from the command context.
func getLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

// openExplorer loads the configured datasets and switches to the configured dataset.
func openExplorer(ctx context.Context, cfg *config.Config) (*dsexplorer.Explorer, error) {
	builder := dsexplorer.NewBuilder().WithLogger(getLogger(ctx))
	for _, key := range model.DatasetKeys() {
		builder.AddPath(key, cfg.Datasets.Path(key))
	}

	explorer, err := builder.Build(ctx)
	if err != nil {
		return nil, err
	}

	key, err := cfg.DatasetKey()
	if err != nil {
		return nil, err
	}
	if err := explorer.SwitchDataset(key); err != nil {
		return nil, err
	}
	return explorer, nil
}
