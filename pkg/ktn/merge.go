package ktn

// Similarity decides whether a stationary point offered during a merge is
// genuinely new. Implementations are expected to insert the point into dst
// themselves when it is new (typically via AddMinimum/AddTS after locating
// the endpoint identities in dst), and to do nothing when it duplicates an
// existing point. The decision procedure is opaque to this package.
type Similarity interface {
	// TestNewMinimum is offered a candidate minimum.
	TestNewMinimum(dst *Network, coords []float64, energy float64) error

	// TestNewTS is offered a candidate transition state together with the
	// coordinates and energies of both endpoint minima, so the
	// implementation can resolve the endpoints to identities in dst.
	TestNewTS(dst *Network, coords []float64, energy float64,
		coords1 []float64, energy1 float64,
		coords2 []float64, energy2 float64) error
}

// AddNetwork merges other into n. Every minimum and every transition-state
// record of other is offered to sim, which decides whether it is new and
// performs the insertion. Afterwards other's pairlist entries are appended
// to n's (re-sorted per tuple). other is not modified.
func (n *Network) AddNetwork(other *Network, sim Similarity) error {
	for id := 0; id < other.NMinima(); id++ {
		coords, err := other.MinimumCoords(id)
		if err != nil {
			return err
		}
		energy, err := other.MinimumEnergy(id)
		if err != nil {
			return err
		}
		if err := sim.TestNewMinimum(n, coords, energy); err != nil {
			return err
		}
	}

	var mergeErr error
	other.EachTS(func(rec *TransitionState) {
		if mergeErr != nil {
			return
		}
		coords1 := other.minima[rec.Min1].Coords
		energy1 := other.minima[rec.Min1].Energy
		coords2 := other.minima[rec.Min2].Coords
		energy2 := other.minima[rec.Min2].Energy
		mergeErr = sim.TestNewTS(n, rec.Coords, rec.Energy,
			coords1, energy1, coords2, energy2)
	})
	if mergeErr != nil {
		return mergeErr
	}

	for _, p := range other.PairList() {
		n.AddAttemptedPair(p[0], p[1])
	}
	return nil
}
