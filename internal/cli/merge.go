package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/landscape/pkg/errors"
	"github.com/matzehuels/landscape/pkg/ktn"
	"github.com/matzehuels/landscape/pkg/metric"
)

// mergeCommand creates the "merge" command folding another dump into the
// current network.
func (c *CLI) mergeCommand() *cobra.Command {
	var (
		otherSuffix string
		distTol     float64
		energyTol   float64
	)

	cmd := &cobra.Command{
		Use:   "merge <other-path>",
		Short: "Fold another dumped network into the current one",
		Long: `Merge reads the current network and a second dump, offers every
stationary point of the second to the duplicate test, inserts the
genuinely new ones and appends the second network's pairlist. The
current dump is rewritten in place.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			suffix, _ := cmd.Flags().GetString("suffix")

			n, err := c.loadNetwork(path, suffix)
			if err != nil {
				return err
			}
			other, err := c.loadNetwork(args[0], otherSuffix)
			if err != nil {
				return err
			}

			before, beforeTS := n.NMinima(), n.NTS()
			sim := metric.New(metric.WithTolerances(distTol, energyTol))
			if err := n.AddNetwork(other, sim); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInternal, err, "merge networks")
			}
			if err := n.Dump("", ""); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeStorage, err, "rewrite dump")
			}

			printSuccess("merged %d minima, %d transition states",
				other.NMinima(), other.NTS())
			printDetail("new minima: %d", n.NMinima()-before)
			printDetail("new transition states: %d", n.NTS()-beforeTS)
			return nil
		},
	}

	networkFlags(cmd)
	cmd.Flags().StringVar(&otherSuffix, "other-suffix", "", "artifact suffix of the other dump")
	cmd.Flags().Float64Var(&distTol, "dist-tol", metric.DefaultDistanceTolerance,
		"distance below which two points are duplicates")
	cmd.Flags().Float64Var(&energyTol, "energy-tol", metric.DefaultEnergyTolerance,
		"energy difference below which two points are duplicates")
	return cmd
}

// ensure the similarity contract stays satisfied by the default metric
var _ ktn.Similarity = (*metric.Euclidean)(nil)
