package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/dsexplorer/domain/model"
)

func newDomainsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "Show the value ranges of the current dataset's columns",
		Long: `Show the kind and sampled value range of every column of the current
dataset. Numeric columns show their minimum and maximum, other columns
their distinct values. For the building dataset the derived climate zones
are listed as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig(cmd.Context())
			explorer, err := openExplorer(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			snap := explorer.Snapshot()
			key := snap.Dataset
			_, _ = fmt.Fprintln(w, key.DisplayName())
			renderDomains(w, key, snap.Columns, explorer.Domains())

			if key == model.DatasetBuilding {
				_, _ = fmt.Fprintf(w, "climate zones: %s\n", strings.Join(explorer.ClimateZones(), ", "))
			}
			return nil
		},
	}
}
