package cli

import (
	"github.com/spf13/cobra"
)

// infoCommand creates the "info" command summarizing a dumped network.
func (c *CLI) infoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Summarize a dumped network",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			suffix, _ := cmd.Flags().GetString("suffix")

			n, err := c.loadNetwork(path, suffix)
			if err != nil {
				return err
			}
			provider := c.newProvider(cmd.Context(), true)

			printInfo("%s", StyleTitle.Render("Network"))
			printKV("minima", "%d", n.NMinima())
			printKV("transition st.", "%d", n.NTS())
			printKV("dimensions", "%d", n.Dim())
			printKV("pairlist", "%d entries", len(n.PairList()))
			printKV("attempted", "%d positions", len(n.AttemptedPositions()))

			if n.NMinima() > 0 {
				lo, hi := 0, 0
				loE, _ := n.MinimumEnergy(0)
				hiE := loE
				for id := 1; id < n.NMinima(); id++ {
					e, _ := n.MinimumEnergy(id)
					if e < loE {
						lo, loE = id, e
					}
					if e > hiE {
						hi, hiE = id, e
					}
				}
				printKV("lowest", "minimum %d at %.6f", lo, loE)
				printKV("highest", "minimum %d at %.6f", hi, hiE)

				unconnected := provider.UnconnectedComponent(n)
				if len(unconnected) == 0 {
					printSuccess("fully connected to minimum 0")
				} else {
					printWarning("%d minima unreachable from minimum 0", len(unconnected))
				}
			}
			return nil
		},
	}
	networkFlags(cmd)
	return cmd
}
