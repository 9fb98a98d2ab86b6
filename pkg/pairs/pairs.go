// Package pairs selects candidate pairs of minima for connection attempts.
//
// With n minima there are O(n²) possible pairs, far too many to hand to an
// expensive connection search. The selectors here substitute geometric
// proximity for "likely directly connectable": ClosestEnumeration densifies
// the whole network around nearest neighbours, while ConnectUnconnected and
// ConnectToSet specifically target bridging disconnected components through
// their geometrically nearest cross-component partners.
//
// Distances and reachability come from a Provider capability, so this
// package has no opinion about the similarity measure of the landscape.
// Every selector deduplicates its output with UniquePairs; avoiding repeats
// across calls (via the network's pairlist) is the caller's job - the
// selectors never consult the pairlist.
package pairs

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/matzehuels/landscape/pkg/ktn"
)

// Pair is an unordered pair of minimum identities. UniquePairs normalizes
// pairs to ascending order.
type Pair [2]int

// Provider supplies the pairwise geometry and connectivity of a network.
// Implementations may use any distance measure, including symmetry-aware
// ones; the selectors only rely on relative ordering.
type Provider interface {
	// ComponentOf returns the set of identities reachable from node,
	// including node itself.
	ComponentOf(n *ktn.Network, node int) map[int]struct{}

	// UnconnectedComponent returns the identities unreachable from
	// identity 0.
	UnconnectedComponent(n *ktn.Network) map[int]struct{}

	// DistanceVector returns the distance from node to every minimum,
	// indexed by identity. The entry for node itself must be 0.
	DistanceVector(n *ktn.Network, node int) []float64

	// DistanceMatrix returns the full symmetric pairwise distance matrix,
	// indexed by identity on both axes.
	DistanceMatrix(n *ktn.Network) [][]float64
}

// UniquePairs normalizes each pair to ascending order, removes duplicates
// (so (a,b) and (b,a) collapse to one entry) and drops the literal pair
// (0,0). Note the narrow filter: self-pairs (i,i) with i != 0 pass
// through unchanged. The result is sorted for deterministic output.
func UniquePairs(in []Pair) []Pair {
	seen := make(map[Pair]struct{}, len(in))
	for _, p := range in {
		if p[0] == 0 && p[1] == 0 {
			continue
		}
		if p[0] > p[1] {
			p[0], p[1] = p[1], p[0]
		}
		seen[p] = struct{}{}
	}
	out := make([]Pair, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}

// ReadPairs parses an external manifest of integer pairs, one "a b" pair
// per line, and returns them deduplicated via UniquePairs.
func ReadPairs(path string) ([]Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Pair
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: expected 2 fields, got %d", path, line, len(fields))
		}
		a, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: parse %q: %w", path, line, fields[0], err)
		}
		b, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s:%d: parse %q: %w", path, line, fields[1], err)
		}
		out = append(out, Pair{a, b})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return UniquePairs(out), nil
}

// argsort returns the indices of dist ordered by ascending distance.
// Ties break on index so results are deterministic.
func argsort(dist []float64) []int {
	idx := make([]int, len(dist))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return dist[idx[a]] < dist[idx[b]]
	})
	return idx
}
