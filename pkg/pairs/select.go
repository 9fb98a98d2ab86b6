package pairs

import (
	"sort"

	"github.com/matzehuels/landscape/pkg/ktn"
)

// ConnectUnconnected proposes pairs that close connectivity gaps. It finds
// every minimum not reachable from minimum 0 and pairs each with its
// nearest members of the other component via ConnectToSet, capping each
// seed at neighbours candidates. Returns nil for an empty network.
func ConnectUnconnected(n *ktn.Network, p Provider, neighbours int) []Pair {
	if n.NMinima() == 0 {
		return nil
	}
	unconnected := p.UnconnectedComponent(n)
	if len(unconnected) == 0 {
		return nil
	}
	seeds := make([]int, 0, len(unconnected))
	for id := range unconnected {
		seeds = append(seeds, id)
	}
	sort.Ints(seeds)

	var total []Pair
	for _, seed := range seeds {
		total = append(total, ConnectToSet(n, p, seed, neighbours)...)
	}
	// Different seeds in the same component propose the same bridges.
	return UniquePairs(total)
}

// ConnectToSet pairs node with the minima nearest to it that lie outside
// its connectivity component. The component containing node (the S-set)
// is computed first; its complement over all minima is the F-set. All
// other minima are ranked by ascending distance from node (self excluded),
// the ranking is filtered to F-set members, and the first maxPairs entries
// are emitted as (node, candidate) pairs.
//
// An empty F-set means node is already connected to everything; that is
// informational, not an error, and yields an empty result. An unknown
// node or a non-positive cap also yield an empty result rather than
// failing.
func ConnectToSet(n *ktn.Network, p Provider, node, maxPairs int) []Pair {
	if node < 0 || node >= n.NMinima() || maxPairs <= 0 {
		return nil
	}
	sSet := p.ComponentOf(n, node)
	fSize := n.NMinima() - len(sSet)
	if fSize <= 0 {
		return nil
	}

	dist := p.DistanceVector(n, node)
	ranked := argsort(dist)[1:] // drop self at distance 0

	var total []Pair
	for _, candidate := range ranked {
		if _, connected := sSet[candidate]; connected {
			continue
		}
		total = append(total, Pair{node, candidate})
		if len(total) == maxPairs {
			break
		}
	}
	return UniquePairs(total)
}

// ClosestEnumeration proposes the pairs that would connect the whole
// network in the fewest attempts by pairing every minimum with its
// neighbours nearest others. The full pairwise distance matrix is
// computed, so cost grows as O(n²) plus O(n log n) per row; beyond a few
// thousand minima callers should bound the network size themselves.
func ClosestEnumeration(n *ktn.Network, p Provider, neighbours int) []Pair {
	matrix := p.DistanceMatrix(n)
	var total []Pair
	for i, row := range matrix {
		ranked := argsort(row)[1:] // drop self
		if len(ranked) > neighbours {
			ranked = ranked[:neighbours]
		}
		for _, j := range ranked {
			total = append(total, Pair{i, j})
		}
	}
	return UniquePairs(total)
}
