package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/landscape/pkg/errors"
	"github.com/matzehuels/landscape/pkg/ktn"
	"github.com/matzehuels/landscape/pkg/pairs"
)

// selectCommand creates the "select" command running a pair-selection
// strategy over a dumped network.
func (c *CLI) selectCommand() *cobra.Command {
	var (
		neighbours int
		pairsFile  string
		record     bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "select {unconnected|closest|file}",
		Short: "Select candidate pairs of minima for connection attempts",
		Long: `Select runs one of the pair-selection strategies and prints the
chosen pairs, one per line.

Strategies:
  unconnected  pair each minimum unreachable from minimum 0 with its
               nearest members of the other component
  closest      pair every minimum with its nearest neighbours
  file         read pairs from an external pairs.txt manifest

With --record, selected pairs are appended to the network's pairlist and
the dump is rewritten, so external search drivers can skip them later.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy := args[0]
			if err := apperrors.ValidateStrategy(strategy); err != nil {
				return err
			}
			if err := apperrors.ValidateNeighbours(neighbours); err != nil {
				return err
			}
			path, _ := cmd.Flags().GetString("path")
			suffix, _ := cmd.Flags().GetString("suffix")

			n, err := c.loadNetwork(path, suffix)
			if err != nil {
				return err
			}

			var selected []pairs.Pair
			switch strategy {
			case "file":
				selected, err = pairs.ReadPairs(pairsFile)
				if err != nil {
					return apperrors.Wrap(apperrors.ErrCodeArtifactNotFound, err,
						"read pairs manifest %s", pairsFile)
				}
			default:
				provider := c.newProvider(cmd.Context(), noCache)
				spin := newSpinner(cmd.Context(), fmt.Sprintf("selecting pairs (%s)", strategy))
				spin.Start()
				if strategy == "unconnected" {
					selected = pairs.ConnectUnconnected(n, provider, neighbours)
				} else {
					selected = pairs.ClosestEnumeration(n, provider, neighbours)
				}
				spin.Stop()
			}

			if len(selected) == 0 {
				printInfo("no pairs selected")
				return nil
			}
			for _, p := range selected {
				fmt.Printf("%d %d\n", p[0], p[1])
			}
			printSuccess("%d pairs selected", len(selected))

			if record {
				return c.recordPairs(n, selected)
			}
			return nil
		},
	}

	networkFlags(cmd)
	cmd.Flags().IntVarP(&neighbours, "neighbours", "k", 1, "candidate partners per minimum")
	cmd.Flags().StringVar(&pairsFile, "pairs-file", "pairs.txt", "manifest for the file strategy")
	cmd.Flags().BoolVar(&record, "record", false, "append selected pairs to the pairlist and re-dump")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the distance-matrix cache")
	return cmd
}

func (c *CLI) recordPairs(n *ktn.Network, selected []pairs.Pair) error {
	for _, p := range selected {
		n.AddAttemptedPair(p[0], p[1])
	}
	if err := n.Dump("", ""); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeStorage, err, "rewrite dump")
	}
	printSuccess("recorded %d pairs in pairlist", len(selected))
	return nil
}
