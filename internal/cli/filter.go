package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/dsexplorer"
	"github.com/nao1215/dsexplorer/domain/model"
)

func newFilterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter SPEC...",
		Short: "Apply filters and print the current dataset",
		Long: `Apply one or more filters and print the rows of the current dataset.

Each SPEC is dataset.column:operator:value, or dataset.column:range:min:max.
Operators are =, >, <, >=, <=, like and range. A filter on another dataset
keeps the current rows whose building id matches a row of that dataset.
At most 10 filters can be active.`,
		Example: `  dsexplorer filter "building.apartment_count:>=:10"
  dsexplorer filter "rooms.space type:=:kitchen" "windows.Sun Hours_summer:range:5:9"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := make([]model.Filter, 0, len(args))
			for _, spec := range args {
				f, err := parseFilterSpec(spec)
				if err != nil {
					return err
				}
				filters = append(filters, f)
			}

			cfg := getConfig(cmd.Context())
			explorer, err := openExplorer(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := applyFilters(explorer, filters); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, f := range explorer.ActiveFilters() {
				_, _ = fmt.Fprintf(w, "filter: %s\n", f)
			}
			renderExplorer(w, explorer, cfg.Limit)
			return nil
		},
	}
	return cmd
}

// parseFilterSpec parses "dataset.column:operator:value[:value2]".
func parseFilterSpec(spec string) (model.Filter, error) {
	target, rest, ok := strings.Cut(spec, ":")
	if !ok {
		return model.Filter{}, fmt.Errorf("%w: %q is not dataset.column:operator:value", dsexplorer.ErrInvalidFilter, spec)
	}
	opText, value, ok := strings.Cut(rest, ":")
	if !ok {
		return model.Filter{}, fmt.Errorf("%w: %q has no value", dsexplorer.ErrInvalidFilter, spec)
	}

	datasetText, column, ok := strings.Cut(target, ".")
	if !ok {
		return model.Filter{}, fmt.Errorf("%w: %q has no dataset", dsexplorer.ErrInvalidFilter, spec)
	}
	dataset, ok := model.ParseDatasetKey(datasetText)
	if !ok {
		return model.Filter{}, fmt.Errorf("%w: %q", dsexplorer.ErrUnknownDataset, datasetText)
	}
	op, ok := model.ParseOperator(opText)
	if !ok {
		return model.Filter{}, fmt.Errorf("%w: %q", dsexplorer.ErrUnsupportedOperator, opText)
	}

	f := model.Filter{
		Dataset:  dataset,
		Column:   dsexplorer.NormalizeColumn(column),
		Operator: op,
		Operand1: value,
	}
	if op == model.OperatorRange {
		f.Operand1, f.Operand2, _ = strings.Cut(value, ":")
	}
	return f, nil
}

func applyFilters(explorer *dsexplorer.Explorer, filters []model.Filter) error {
	for _, f := range filters {
		if err := explorer.AddFilter(f); err != nil {
			return err
		}
	}
	return nil
}
