package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/landscape/pkg/errors"
)

// csvCommand creates the "csv" command exporting minima as CSV.
func (c *CLI) csvCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Export minima as mol_data<suffix>.csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			suffix, _ := cmd.Flags().GetString("suffix")

			n, err := c.loadNetwork(path, suffix)
			if err != nil {
				return err
			}
			if err := n.DumpCSV(outDir, suffix); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeStorage, err, "write csv")
			}
			printSuccess("exported %d minima", n.NMinima())
			return nil
		},
	}

	networkFlags(cmd)
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	return cmd
}
