package cli

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nao1215/dsexplorer"
)

func newQueryCommand() *cobra.Command {
	var example string

	cmd := &cobra.Command{
		Use:   "query [QUERY]",
		Short: "Run a query against the current dataset",
		Long: `Run a query against the current dataset and print the matching rows.

Supported forms:
  SELECT * WHERE <column> <op> <value>
  FROM <dataset> WHERE <column> <op> <value>
  SELECT * | SELECT ALL

Operators are =, >, <, >=, <= and LIKE. String values are quoted.
The FROM form matches rows of another dataset and shows the rows of the
current dataset that share their building id.`,
		Example: `  dsexplorer query "SELECT * WHERE apartment_count > 10"
  dsexplorer query -d rooms "SELECT * WHERE space_name LIKE 'kitchen'"
  dsexplorer query "FROM windows WHERE Sun Hours_summer >= 8"
  dsexplorer query --example climate`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := resolveQuery(args, example)
			if err != nil {
				return err
			}

			cfg := getConfig(cmd.Context())
			explorer, err := openExplorer(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if _, err := explorer.ExecuteQuery(text); err != nil {
				return err
			}
			renderExplorer(cmd.OutOrStdout(), explorer, cfg.Limit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&example, "example", "e", "", "Run a named example query (see 'dsexplorer examples')")
	_ = cmd.RegisterFlagCompletionFunc("example", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return dsexplorer.ExampleQueryNames(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// resolveQuery returns the query text from the argument or the named example.
func resolveQuery(args []string, example string) (string, error) {
	switch {
	case len(args) == 1 && example != "":
		return "", errors.New("pass either a query or --example, not both")
	case len(args) == 1:
		return args[0], nil
	case example != "":
		text, ok := dsexplorer.ExampleQuery(example)
		if !ok {
			return "", fmt.Errorf("unknown example query %q", example)
		}
		return text, nil
	default:
		return "", errors.New("a query or --example is required")
	}
}

func newExamplesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List the example queries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := newTableWriter(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"name", "query"})
			for _, name := range dsexplorer.ExampleQueryNames() {
				text, _ := dsexplorer.ExampleQuery(name)
				t.AppendRow(table.Row{name, text})
			}
			t.Render()
			return nil
		},
	}
}
