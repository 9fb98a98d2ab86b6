// Package metric provides the default distance, connectivity and
// duplicate-detection capabilities consumed by the pair selectors and the
// network merge: Euclidean distance over raw coordinate vectors,
// reachability by breadth-first search over the network's transition
// states, and a tolerance-based duplicate test.
//
// Problem domains with symmetries (permutational, rotational) should
// supply their own pairs.Provider and ktn.Similarity instead; nothing in
// the core depends on this package.
package metric

import (
	"context"
	"encoding/json"
	"math"

	"github.com/matzehuels/landscape/pkg/cache"
	"github.com/matzehuels/landscape/pkg/ktn"
)

// Default tolerances for the duplicate test. Two stationary points closer
// than DefaultDistanceTolerance with energies within
// DefaultEnergyTolerance are treated as the same point.
const (
	DefaultDistanceTolerance = 1e-3
	DefaultEnergyTolerance   = 1e-6
)

// Euclidean implements pairs.Provider and ktn.Similarity using plain
// Euclidean geometry. The zero value is not usable - use New.
type Euclidean struct {
	distTol float64
	eTol    float64
	cache   cache.Cache
}

// Option configures a Euclidean instance.
type Option func(*Euclidean)

// WithTolerances overrides the duplicate-test tolerances.
func WithTolerances(distance, energy float64) Option {
	return func(e *Euclidean) {
		e.distTol = distance
		e.eTol = energy
	}
}

// WithCache caches computed distance matrices keyed by a hash of the
// network's minima, so repeated selections over an unchanged network skip
// the O(n²) recomputation.
func WithCache(c cache.Cache) Option {
	return func(e *Euclidean) { e.cache = c }
}

// New creates a Euclidean provider with default tolerances and no cache.
func New(opts ...Option) *Euclidean {
	e := &Euclidean{
		distTol: DefaultDistanceTolerance,
		eTol:    DefaultEnergyTolerance,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Distance returns the Euclidean distance between two coordinate vectors.
func (e *Euclidean) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// DistanceVector returns the distance from node to every minimum, indexed
// by identity. The entry for node itself is 0.
func (e *Euclidean) DistanceVector(n *ktn.Network, node int) []float64 {
	from, err := n.MinimumCoords(node)
	if err != nil {
		return nil
	}
	out := make([]float64, n.NMinima())
	for id := range out {
		coords, _ := n.MinimumCoords(id)
		out[id] = e.Distance(from, coords)
	}
	return out
}

// DistanceMatrix returns the full symmetric pairwise distance matrix.
// With a cache configured, the matrix is looked up by a hash of the
// minima coordinates before being recomputed.
func (e *Euclidean) DistanceMatrix(n *ktn.Network) [][]float64 {
	key, cached, ok := e.lookupMatrix(n)
	if ok {
		return cached
	}

	size := n.NMinima()
	matrix := make([][]float64, size)
	for i := range matrix {
		matrix[i] = make([]float64, size)
	}
	for i := 0; i < size; i++ {
		ci, _ := n.MinimumCoords(i)
		for j := i + 1; j < size; j++ {
			cj, _ := n.MinimumCoords(j)
			d := e.Distance(ci, cj)
			matrix[i][j] = d
			matrix[j][i] = d
		}
	}

	e.storeMatrix(key, matrix)
	return matrix
}

func (e *Euclidean) lookupMatrix(n *ktn.Network) (string, [][]float64, bool) {
	if e.cache == nil {
		return "", nil, false
	}
	key := matrixKey(n)
	data, hit, err := e.cache.Get(context.Background(), key)
	if err != nil || !hit {
		return key, nil, false
	}
	var matrix [][]float64
	if err := json.Unmarshal(data, &matrix); err != nil {
		return key, nil, false
	}
	return key, matrix, true
}

func (e *Euclidean) storeMatrix(key string, matrix [][]float64) {
	if e.cache == nil || key == "" {
		return
	}
	data, err := json.Marshal(matrix)
	if err != nil {
		return
	}
	// Cache failures only cost a recomputation next time.
	_ = e.cache.Set(context.Background(), key, data, 0)
}

// matrixKey derives a cache key from the minima coordinates. Transition
// states and the pairlist do not affect distances, so they are excluded.
func matrixKey(n *ktn.Network) string {
	coords := make([][]float64, n.NMinima())
	for id := range coords {
		coords[id], _ = n.MinimumCoords(id)
	}
	data, _ := json.Marshal(coords)
	return "distmatrix:" + cache.Hash(data)
}

// ComponentOf returns the set of identities reachable from node through
// transition states, including node itself, by breadth-first search.
func (e *Euclidean) ComponentOf(n *ktn.Network, node int) map[int]struct{} {
	component := make(map[int]struct{})
	if node < 0 || node >= n.NMinima() {
		return component
	}
	component[node] = struct{}{}
	queue := []int{node}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range n.Neighbors(current) {
			if _, visited := component[next]; visited {
				continue
			}
			component[next] = struct{}{}
			queue = append(queue, next)
		}
	}
	return component
}

// UnconnectedComponent returns the identities unreachable from identity 0.
func (e *Euclidean) UnconnectedComponent(n *ktn.Network) map[int]struct{} {
	reachable := e.ComponentOf(n, 0)
	out := make(map[int]struct{})
	for id := 0; id < n.NMinima(); id++ {
		if _, ok := reachable[id]; !ok {
			out[id] = struct{}{}
		}
	}
	return out
}
