package metric

import (
	"fmt"

	"github.com/matzehuels/landscape/pkg/ktn"
)

// TestNewMinimum implements ktn.Similarity. The candidate is inserted into
// dst unless an existing minimum lies within the distance tolerance with
// an energy within the energy tolerance, in which case it is a duplicate
// and dst is left unchanged.
func (e *Euclidean) TestNewMinimum(dst *ktn.Network, coords []float64, energy float64) error {
	if _, ok := e.matchMinimum(dst, coords, energy); ok {
		return nil
	}
	dst.AddMinimum(coords, energy)
	return nil
}

// TestNewTS implements ktn.Similarity. The endpoint minima are resolved to
// identities in dst (inserting them first if absent), then the candidate
// transition state is inserted unless an existing record between the same
// pair already matches it within the tolerances.
func (e *Euclidean) TestNewTS(dst *ktn.Network, coords []float64, energy float64,
	coords1 []float64, energy1 float64, coords2 []float64, energy2 float64) error {
	id1 := e.resolveMinimum(dst, coords1, energy1)
	id2 := e.resolveMinimum(dst, coords2, energy2)

	for index := 0; index < dst.TSCount(id1, id2); index++ {
		existing, err := dst.TSCoords(id1, id2, index)
		if err != nil {
			return fmt.Errorf("merge transition state: %w", err)
		}
		existingEnergy, err := dst.TSEnergy(id1, id2, index)
		if err != nil {
			return fmt.Errorf("merge transition state: %w", err)
		}
		if e.Distance(existing, coords) < e.distTol &&
			abs(existingEnergy-energy) < e.eTol {
			return nil
		}
	}
	return dst.AddTS(coords, energy, id1, id2)
}

// resolveMinimum returns the identity of the minimum matching the given
// configuration, inserting it when no match exists.
func (e *Euclidean) resolveMinimum(dst *ktn.Network, coords []float64, energy float64) int {
	if id, ok := e.matchMinimum(dst, coords, energy); ok {
		return id
	}
	return dst.AddMinimum(coords, energy)
}

// matchMinimum finds the existing minimum within tolerance of the given
// configuration, preferring the closest when several match.
func (e *Euclidean) matchMinimum(dst *ktn.Network, coords []float64, energy float64) (int, bool) {
	best := -1
	bestDist := e.distTol
	for id := 0; id < dst.NMinima(); id++ {
		existing, _ := dst.MinimumCoords(id)
		existingEnergy, _ := dst.MinimumEnergy(id)
		if abs(existingEnergy-energy) >= e.eTol {
			continue
		}
		if d := e.Distance(existing, coords); d < bestDist {
			best = id
			bestDist = d
		}
	}
	return best, best >= 0
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
