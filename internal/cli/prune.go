package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/landscape/pkg/errors"
)

// pruneCommand creates the "prune" command removing minima or transition
// states from a dump.
func (c *CLI) pruneCommand() *cobra.Command {
	var (
		minima  []int
		tsPairs []string
		allTS   bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove minima or transition states and rewrite the dump",
		Long: `Prune removes the given minima (with every incident transition
state, renumbering the survivors to keep identities dense) and/or
transition states between given pairs, then rewrites the dump.

Pairs are given as a,b using the identities before any removal. With
--all, every parallel transition state between a pair is removed instead
of the most recent one.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(minima) == 0 && len(tsPairs) == 0 {
				return apperrors.New(apperrors.ErrCodeInvalidInput,
					"nothing to prune: pass --minima and/or --ts")
			}
			path, _ := cmd.Flags().GetString("path")
			suffix, _ := cmd.Flags().GetString("suffix")

			n, err := c.loadNetwork(path, suffix)
			if err != nil {
				return err
			}

			pairsToRemove, err := parsePairArgs(tsPairs)
			if err != nil {
				return err
			}
			if len(pairsToRemove) > 0 {
				if allTS {
					n.RemoveAllTSs(pairsToRemove)
				} else if err := n.RemoveTSs(pairsToRemove); err != nil {
					return apperrors.Wrap(apperrors.ErrCodeTSNotFound, err,
						"remove transition states")
				}
			}
			if len(minima) > 0 {
				if err := n.RemoveMinima(minima); err != nil {
					return apperrors.Wrap(apperrors.ErrCodeMinimumNotFound, err,
						"remove minima")
				}
			}

			if err := n.Dump("", ""); err != nil {
				return apperrors.Wrap(apperrors.ErrCodeStorage, err, "rewrite dump")
			}
			printSuccess("pruned network: %d minima, %d transition states remain",
				n.NMinima(), n.NTS())
			return nil
		},
	}

	networkFlags(cmd)
	cmd.Flags().IntSliceVar(&minima, "minima", nil, "minimum identities to remove")
	cmd.Flags().StringSliceVar(&tsPairs, "ts", nil, "pairs a,b whose transition states to remove")
	cmd.Flags().BoolVar(&allTS, "all", false, "remove every parallel transition state per pair")
	return cmd
}

// parsePairArgs parses repeated "a,b" pair arguments.
func parsePairArgs(raw []string) ([][2]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	// IntSliceVar-style flags split on commas, so "0,1" arrives as two
	// entries; re-pair them in order.
	if len(raw)%2 != 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidPair,
			"transition-state pairs need an even number of ids, got %d", len(raw))
	}
	out := make([][2]int, 0, len(raw)/2)
	for i := 0; i < len(raw); i += 2 {
		a, err := strconv.Atoi(strings.TrimSpace(raw[i]))
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidPair, "parse id %q", raw[i])
		}
		b, err := strconv.Atoi(strings.TrimSpace(raw[i+1]))
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidPair, "parse id %q", raw[i+1])
		}
		out = append(out, [2]int{a, b})
	}
	return out, nil
}
