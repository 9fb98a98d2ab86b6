package ktn

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMinimumNotFound is returned when an operation references a minimum
	// identity outside the current [0, NMinima) range.
	ErrMinimumNotFound = errors.New("minimum not found")

	// ErrTransitionStateNotFound is returned when an operation references a
	// transition state that does not exist, either because no record connects
	// the given pair or because the parallel-edge index is out of range.
	ErrTransitionStateNotFound = errors.New("transition state not found")
)

// Minimum is a stationary point of the landscape stored as a node of the
// network. Identities are positional: a minimum's identity is its current
// index in the dense [0, NMinima) range and changes when lower-numbered
// minima are removed.
type Minimum struct {
	Coords []float64 // coordinate vector, same dimensionality for all minima
	Energy float64
}

// TransitionState is a stationary point directly connecting two minima,
// stored as an edge of the network. Multiple transition states may connect
// the same pair of minima; each is a distinct record ordered by insertion.
type TransitionState struct {
	Min1, Min2 int // endpoint identities as passed to AddTS
	Coords     []float64
	Energy     float64
}

// pairKey is the canonical (sorted) form of an unordered minimum pair,
// used to index parallel transition-state records.
type pairKey struct {
	lo, hi int
}

func keyOf(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Network stores the kinetic transition network: minima as nodes with dense
// sequential identities and transition states as parallel edges between
// them. It also carries the pairlist of previously attempted connection
// pairs and the log of raw starting positions already used by searches.
//
// The zero value is not usable - use New. Network is not safe for
// concurrent use: callers must not mutate it while a traversal or a
// dump/read is in progress, since identities and iteration order are
// invalidated by adds and removals.
type Network struct {
	minima []Minimum
	ts     []*TransitionState             // all records, insertion order
	byPair map[pairKey][]*TransitionState // pair → records, insertion order

	pairlist  [][2]int    // sorted (min,max) tuples, append order
	attempted [][]float64 // raw starting positions, append order

	dumpPath   string
	dumpSuffix string
}

// Option configures a Network at construction.
type Option func(*Network)

// WithDumpPath sets the default directory used by Dump and Read when no
// explicit directory is given. Defaults to the current directory.
func WithDumpPath(dir string) Option {
	return func(n *Network) { n.dumpPath = dir }
}

// WithDumpSuffix sets the default filename suffix appended to every
// artifact written by Dump and expected by Read. Defaults to empty.
func WithDumpSuffix(suffix string) Option {
	return func(n *Network) { n.dumpSuffix = suffix }
}

// New creates an empty Network.
func New(opts ...Option) *Network {
	n := &Network{
		byPair:   make(map[pairKey][]*TransitionState),
		dumpPath: ".",
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NMinima returns the number of minima currently stored. Minimum
// identities are always exactly {0, ..., NMinima-1}.
func (n *Network) NMinima() int { return len(n.minima) }

// NTS returns the total number of transition-state records currently
// stored, counting parallel records individually.
func (n *Network) NTS() int { return len(n.ts) }

// AddMinimum appends a new minimum and returns its identity, which is
// always the previous NMinima. The coordinate vector is copied. No
// duplicate detection is performed here - deciding whether a configuration
// is genuinely new is the similarity layer's job.
func (n *Network) AddMinimum(coords []float64, energy float64) int {
	id := len(n.minima)
	n.minima = append(n.minima, Minimum{
		Coords: append([]float64(nil), coords...),
		Energy: energy,
	})
	return id
}

// MinimumCoords returns the coordinate vector of the given minimum.
// The returned slice is the stored backing array; callers must not modify it.
func (n *Network) MinimumCoords(id int) ([]float64, error) {
	if id < 0 || id >= len(n.minima) {
		return nil, fmt.Errorf("minimum %d: %w", id, ErrMinimumNotFound)
	}
	return n.minima[id].Coords, nil
}

// MinimumEnergy returns the energy of the given minimum.
func (n *Network) MinimumEnergy(id int) (float64, error) {
	if id < 0 || id >= len(n.minima) {
		return 0, fmt.Errorf("minimum %d: %w", id, ErrMinimumNotFound)
	}
	return n.minima[id].Energy, nil
}

// AddTS appends a new transition-state record connecting minima a and b.
// Parallel records between the same pair are kept in insertion order. The
// coordinate vector is copied. Returns ErrMinimumNotFound if either
// endpoint is not a current identity.
func (n *Network) AddTS(coords []float64, energy float64, a, b int) error {
	if a < 0 || a >= len(n.minima) {
		return fmt.Errorf("endpoint %d: %w", a, ErrMinimumNotFound)
	}
	if b < 0 || b >= len(n.minima) {
		return fmt.Errorf("endpoint %d: %w", b, ErrMinimumNotFound)
	}
	rec := &TransitionState{
		Min1:   a,
		Min2:   b,
		Coords: append([]float64(nil), coords...),
		Energy: energy,
	}
	n.ts = append(n.ts, rec)
	k := keyOf(a, b)
	n.byPair[k] = append(n.byPair[k], rec)
	return nil
}

// tsAt returns the index-th parallel record between a and b.
func (n *Network) tsAt(a, b, index int) (*TransitionState, error) {
	recs := n.byPair[keyOf(a, b)]
	if index < 0 || index >= len(recs) {
		return nil, fmt.Errorf("transition state %d-%d index %d: %w",
			a, b, index, ErrTransitionStateNotFound)
	}
	return recs[index], nil
}

// TSCoords returns the coordinates of the index-th parallel transition
// state between a and b (index 0 is the first record added for the pair).
// The returned slice is the stored backing array; callers must not modify it.
func (n *Network) TSCoords(a, b, index int) ([]float64, error) {
	rec, err := n.tsAt(a, b, index)
	if err != nil {
		return nil, err
	}
	return rec.Coords, nil
}

// TSEnergy returns the energy of the index-th parallel transition state
// between a and b.
func (n *Network) TSEnergy(a, b, index int) (float64, error) {
	rec, err := n.tsAt(a, b, index)
	if err != nil {
		return 0, err
	}
	return rec.Energy, nil
}

// TSCount returns the number of parallel transition-state records
// currently connecting a and b. Returns 0 for unknown pairs.
func (n *Network) TSCount(a, b int) int {
	return len(n.byPair[keyOf(a, b)])
}

// EachTS calls fn for every transition-state record in insertion order.
// The network must not be mutated during iteration.
func (n *Network) EachTS(fn func(ts *TransitionState)) {
	for _, rec := range n.ts {
		fn(rec)
	}
}

// Neighbors returns the identities directly connected to id by at least
// one transition state, in ascending order. Returns nil for isolated or
// unknown identities.
func (n *Network) Neighbors(id int) []int {
	seen := make(map[int]struct{})
	for k := range n.byPair {
		if len(n.byPair[k]) == 0 {
			continue
		}
		switch id {
		case k.lo:
			seen[k.hi] = struct{}{}
		case k.hi:
			seen[k.lo] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// RemoveMinimum removes the given minimum together with every transition
// state incident to it, then renumbers all minima with identity > id down
// by one so that identities stay dense. Transition-state endpoint
// references are updated consistently with the renumbering.
func (n *Network) RemoveMinimum(id int) error {
	if id < 0 || id >= len(n.minima) {
		return fmt.Errorf("minimum %d: %w", id, ErrMinimumNotFound)
	}
	n.minima = append(n.minima[:id], n.minima[id+1:]...)

	kept := n.ts[:0]
	for _, rec := range n.ts {
		if rec.Min1 == id || rec.Min2 == id {
			continue
		}
		if rec.Min1 > id {
			rec.Min1--
		}
		if rec.Min2 > id {
			rec.Min2--
		}
		kept = append(kept, rec)
	}
	n.ts = kept
	n.reindex()
	return nil
}

// RemoveMinima removes every identity in ids in a single batch. The ids
// refer to identities as they were before the call: removals are applied
// in ascending order with each subsequent id shifted down by the number of
// removals already performed, compensating for the renumbering each
// removal triggers.
func (n *Network) RemoveMinima(ids []int) error {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	for c, id := range sorted {
		if err := n.RemoveMinimum(id - c); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTS removes one parallel transition-state record between a and b.
// An index of -1 selects the most recently added record for the pair;
// otherwise index selects as in TSCoords. Returns
// ErrTransitionStateNotFound if no record exists at that index.
func (n *Network) RemoveTS(a, b, index int) error {
	k := keyOf(a, b)
	recs := n.byPair[k]
	if index == -1 {
		index = len(recs) - 1
	}
	if index < 0 || index >= len(recs) {
		return fmt.Errorf("transition state %d-%d index %d: %w",
			a, b, index, ErrTransitionStateNotFound)
	}
	n.dropRecord(recs[index])
	return nil
}

// RemoveAllTS removes every parallel transition-state record between a
// and b. Removing a pair with no records is not an error.
func (n *Network) RemoveAllTS(a, b int) {
	recs := n.byPair[keyOf(a, b)]
	for _, rec := range append([]*TransitionState(nil), recs...) {
		n.dropRecord(rec)
	}
}

// RemoveTSs removes the most recently added record for each pair in the
// list, stopping at the first missing pair.
func (n *Network) RemoveTSs(pairs [][2]int) error {
	for _, p := range pairs {
		if err := n.RemoveTS(p[0], p[1], -1); err != nil {
			return err
		}
	}
	return nil
}

// RemoveAllTSs removes every record for each pair in the list.
func (n *Network) RemoveAllTSs(pairs [][2]int) {
	for _, p := range pairs {
		n.RemoveAllTS(p[0], p[1])
	}
}

// dropRecord unlinks one record from both the insertion-order list and the
// per-pair index.
func (n *Network) dropRecord(rec *TransitionState) {
	for i, r := range n.ts {
		if r == rec {
			n.ts = append(n.ts[:i], n.ts[i+1:]...)
			break
		}
	}
	k := keyOf(rec.Min1, rec.Min2)
	recs := n.byPair[k]
	for i, r := range recs {
		if r == rec {
			n.byPair[k] = append(recs[:i], recs[i+1:]...)
			break
		}
	}
	if len(n.byPair[k]) == 0 {
		delete(n.byPair, k)
	}
}

// reindex rebuilds the per-pair index from the insertion-order list.
// Called after endpoint renumbering invalidates the pair keys.
func (n *Network) reindex() {
	n.byPair = make(map[pairKey][]*TransitionState, len(n.ts))
	for _, rec := range n.ts {
		k := keyOf(rec.Min1, rec.Min2)
		n.byPair[k] = append(n.byPair[k], rec)
	}
}

// Reset empties the network: all minima, transition states, the pairlist
// and the attempted-position log are cleared in memory.
func (n *Network) Reset() {
	n.minima = nil
	n.ts = nil
	n.byPair = make(map[pairKey][]*TransitionState)
	n.pairlist = nil
	n.attempted = nil
}

// AddAttemptedPair records that a connection between a and b has been
// attempted. The pair is stored sorted so that (a,b) and (b,a) are the
// same entry; repeated attempts produce repeated entries.
func (n *Network) AddAttemptedPair(a, b int) {
	if a > b {
		a, b = b, a
	}
	n.pairlist = append(n.pairlist, [2]int{a, b})
}

// PairList returns the attempted-pair log in append order. The returned
// slice is a copy.
func (n *Network) PairList() [][2]int {
	return append([][2]int(nil), n.pairlist...)
}

// AddAttemptedPosition appends a raw coordinate vector to the log of
// search starting points already used. The vector is copied.
func (n *Network) AddAttemptedPosition(pos []float64) {
	n.attempted = append(n.attempted, append([]float64(nil), pos...))
}

// AttemptedPositions returns the full attempted-position log in append
// order. The returned outer slice is a copy; the vectors are the stored
// backing arrays.
func (n *Network) AttemptedPositions() [][]float64 {
	return append([][]float64(nil), n.attempted...)
}

// Dim returns the coordinate dimensionality, or 0 for an empty network.
func (n *Network) Dim() int {
	if len(n.minima) == 0 {
		return 0
	}
	return len(n.minima[0].Coords)
}
