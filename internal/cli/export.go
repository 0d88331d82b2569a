package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nao1215/dsexplorer"
	"github.com/nao1215/dsexplorer/domain/model"
)

func newExportCommand() *cobra.Command {
	var (
		current bool
		query   string
		filters []string
		climate string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export filtered datasets to files",
		Long: `Export filtered data to the output directory.

By default all three datasets are exported, restricted to the buildings
matching the apartment, level and climate criteria. At least one criterion
is required. Each dataset is written to <dataset>_filtered<ext>; XLSX and
SQLite output is a single datasets_filtered.xlsx or datasets_filtered.db.

With --current only the current dataset is exported, after applying
--filter and --query, to <dataset>_filtered_data<ext>.`,
		Example: `  dsexplorer export --apartment-min 10 --format xlsx
  dsexplorer export --climate "THA - Bangkok" --compression gz
  dsexplorer export --current -d rooms --query "SELECT * WHERE space_name LIKE 'kitchen'"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			opts, err := cfg.DumpOptions()
			if err != nil {
				return err
			}

			criteria, err := buildingCriteria(cmd.Flags(), climate)
			if err != nil {
				return err
			}
			if current && !criteria.Empty() {
				return errors.New("--current cannot be combined with building criteria")
			}
			if !current && (query != "" || len(filters) > 0) {
				return errors.New("--query and --filter require --current")
			}

			parsed := make([]model.Filter, 0, len(filters))
			for _, spec := range filters {
				f, err := parseFilterSpec(spec)
				if err != nil {
					return err
				}
				parsed = append(parsed, f)
			}

			explorer, err := openExplorer(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if !current {
				paths, err := explorer.DumpSynchronized(cmd.Context(), cfg.OutputDir, criteria, opts)
				if err != nil {
					return err
				}
				for _, path := range paths {
					_, _ = fmt.Fprintln(w, path)
				}
				return nil
			}

			if err := applyFilters(explorer, parsed); err != nil {
				return err
			}
			if query != "" {
				if _, err := explorer.ExecuteQuery(query); err != nil {
					return err
				}
			}
			path, err := explorer.Dump(cmd.Context(), cfg.OutputDir, opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(w, path)
			return nil
		},
	}

	cmd.Flags().String("output-dir", "", "Directory to write files to (default: .)")
	cmd.Flags().StringP("format", "f", "", "Output format (csv|tsv|xlsx|parquet|sqlite)")
	cmd.Flags().String("compression", "", "Compression for csv and tsv output (none|gz|xz|zstd)")
	cmd.Flags().Int("apartment-min", 0, "Minimum apartment count")
	cmd.Flags().Int("apartment-max", 0, "Maximum apartment count")
	cmd.Flags().Int("levels-min", 0, "Minimum number of levels")
	cmd.Flags().Int("levels-max", 0, "Maximum number of levels")
	cmd.Flags().StringVar(&climate, "climate", "", "Climate zone, e.g. \"THA - Bangkok\"")
	cmd.Flags().BoolVar(&current, "current", false, "Export only the current dataset")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Query to run before a --current export")
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "Filter to apply before a --current export (repeatable)")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"csv", "tsv", "xlsx", "parquet", "sqlite"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// buildingCriteria collects the bound flags that were explicitly set.
func buildingCriteria(flags *pflag.FlagSet, climate string) (dsexplorer.BuildingCriteria, error) {
	criteria := dsexplorer.BuildingCriteria{Climate: climate}
	bounds := []struct {
		name   string
		target **int
	}{
		{"apartment-min", &criteria.ApartmentMin},
		{"apartment-max", &criteria.ApartmentMax},
		{"levels-min", &criteria.LevelsMin},
		{"levels-max", &criteria.LevelsMax},
	}
	for _, b := range bounds {
		if !flags.Changed(b.name) {
			continue
		}
		v, err := flags.GetInt(b.name)
		if err != nil {
			return criteria, err
		}
		*b.target = dsexplorer.IntPtr(v)
	}
	return criteria, nil
}
