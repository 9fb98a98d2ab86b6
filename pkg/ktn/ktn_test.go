package ktn

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddMinimumRoundTrip(t *testing.T) {
	n := New()

	id := n.AddMinimum([]float64{1.5, -2.25}, -3.75)
	if id != 0 {
		t.Fatalf("first identity = %d, want 0", id)
	}
	if got := n.AddMinimum([]float64{0, 0}, 1); got != 1 {
		t.Fatalf("second identity = %d, want 1", got)
	}
	if n.NMinima() != 2 {
		t.Fatalf("NMinima = %d, want 2", n.NMinima())
	}

	coords, err := n.MinimumCoords(0)
	if err != nil {
		t.Fatalf("MinimumCoords(0): %v", err)
	}
	if !reflect.DeepEqual(coords, []float64{1.5, -2.25}) {
		t.Errorf("coords = %v, want [1.5 -2.25]", coords)
	}
	energy, err := n.MinimumEnergy(0)
	if err != nil {
		t.Fatalf("MinimumEnergy(0): %v", err)
	}
	if energy != -3.75 {
		t.Errorf("energy = %v, want -3.75", energy)
	}
}

func TestAddMinimumCopiesCoords(t *testing.T) {
	n := New()
	src := []float64{1, 2}
	n.AddMinimum(src, 0)
	src[0] = 99

	coords, _ := n.MinimumCoords(0)
	if coords[0] != 1 {
		t.Errorf("stored coords aliased the caller's slice: %v", coords)
	}
}

func TestMinimumLookupErrors(t *testing.T) {
	n := New()
	n.AddMinimum([]float64{0}, 0)

	for _, id := range []int{-1, 1, 42} {
		if _, err := n.MinimumCoords(id); !errors.Is(err, ErrMinimumNotFound) {
			t.Errorf("MinimumCoords(%d) error = %v, want ErrMinimumNotFound", id, err)
		}
		if _, err := n.MinimumEnergy(id); !errors.Is(err, ErrMinimumNotFound) {
			t.Errorf("MinimumEnergy(%d) error = %v, want ErrMinimumNotFound", id, err)
		}
	}
}

func TestAddTSParallelRecords(t *testing.T) {
	n := New()
	n.AddMinimum([]float64{0}, 0)
	n.AddMinimum([]float64{1}, 1)

	if err := n.AddTS([]float64{0.4}, 2, 0, 1); err != nil {
		t.Fatalf("AddTS: %v", err)
	}
	if err := n.AddTS([]float64{0.6}, 3, 1, 0); err != nil {
		t.Fatalf("AddTS parallel: %v", err)
	}
	if n.NTS() != 2 {
		t.Fatalf("NTS = %d, want 2", n.NTS())
	}
	if got := n.TSCount(0, 1); got != 2 {
		t.Fatalf("TSCount = %d, want 2", got)
	}
	// Unordered pair: (1,0) indexes the same records as (0,1).
	if got := n.TSCount(1, 0); got != 2 {
		t.Fatalf("TSCount reversed = %d, want 2", got)
	}

	e0, err := n.TSEnergy(0, 1, 0)
	if err != nil || e0 != 2 {
		t.Errorf("TSEnergy index 0 = %v, %v; want 2, nil", e0, err)
	}
	e1, err := n.TSEnergy(0, 1, 1)
	if err != nil || e1 != 3 {
		t.Errorf("TSEnergy index 1 = %v, %v; want 3, nil", e1, err)
	}
	if _, err := n.TSCoords(0, 1, 2); !errors.Is(err, ErrTransitionStateNotFound) {
		t.Errorf("TSCoords index 2 error = %v, want ErrTransitionStateNotFound", err)
	}
}

func TestAddTSUnknownEndpoint(t *testing.T) {
	n := New()
	n.AddMinimum([]float64{0}, 0)

	if err := n.AddTS(nil, 0, 0, 1); !errors.Is(err, ErrMinimumNotFound) {
		t.Errorf("AddTS(0,1) error = %v, want ErrMinimumNotFound", err)
	}
	if err := n.AddTS(nil, 0, -1, 0); !errors.Is(err, ErrMinimumNotFound) {
		t.Errorf("AddTS(-1,0) error = %v, want ErrMinimumNotFound", err)
	}
}

// fourMinima builds 0-1-2-3 as a chain with one extra parallel edge on 1-2.
func fourMinima(t *testing.T) *Network {
	t.Helper()
	n := New()
	for i, e := range []float64{-4, -3, -2, -1} {
		n.AddMinimum([]float64{float64(i), float64(i) * 2}, e)
	}
	for _, edge := range [][2]int{{0, 1}, {1, 2}, {1, 2}, {2, 3}} {
		if err := n.AddTS([]float64{0.5}, 0, edge[0], edge[1]); err != nil {
			t.Fatalf("AddTS(%v): %v", edge, err)
		}
	}
	return n
}

func TestRemoveMinimumRenumbers(t *testing.T) {
	n := fourMinima(t)

	if err := n.RemoveMinimum(1); err != nil {
		t.Fatalf("RemoveMinimum(1): %v", err)
	}

	if n.NMinima() != 3 {
		t.Fatalf("NMinima = %d, want 3", n.NMinima())
	}
	// All three edges through old id 1 are gone, 2-3 survives as 1-2.
	if n.NTS() != 1 {
		t.Fatalf("NTS = %d, want 1", n.NTS())
	}
	if got := n.TSCount(1, 2); got != 1 {
		t.Errorf("TSCount(1,2) = %d, want 1 (renumbered 2-3 edge)", got)
	}

	// Identity 0 unchanged, former 2 and 3 shifted down by one with
	// payloads following them.
	for _, tc := range []struct {
		id     int
		energy float64
		x      float64
	}{
		{0, -4, 0},
		{1, -2, 2},
		{2, -1, 3},
	} {
		energy, err := n.MinimumEnergy(tc.id)
		if err != nil {
			t.Fatalf("MinimumEnergy(%d): %v", tc.id, err)
		}
		if energy != tc.energy {
			t.Errorf("minimum %d energy = %v, want %v", tc.id, energy, tc.energy)
		}
		coords, _ := n.MinimumCoords(tc.id)
		if coords[0] != tc.x {
			t.Errorf("minimum %d coords[0] = %v, want %v", tc.id, coords[0], tc.x)
		}
	}
}

func TestRemoveMinimaBatch(t *testing.T) {
	n := New()
	for i, e := range []float64{10, 11, 12, 13} {
		n.AddMinimum([]float64{float64(i)}, e)
	}

	// ids refer to pre-removal identities: removing 1 and 3 must leave
	// the original 0 and 2, relabeled 0 and 1.
	if err := n.RemoveMinima([]int{3, 1}); err != nil {
		t.Fatalf("RemoveMinima: %v", err)
	}
	if n.NMinima() != 2 {
		t.Fatalf("NMinima = %d, want 2", n.NMinima())
	}
	e0, _ := n.MinimumEnergy(0)
	e1, _ := n.MinimumEnergy(1)
	if e0 != 10 || e1 != 12 {
		t.Errorf("energies = %v, %v; want 10, 12", e0, e1)
	}
	c1, _ := n.MinimumCoords(1)
	if c1[0] != 2 {
		t.Errorf("relabeled minimum 1 coords = %v, want [2]", c1)
	}
}

func TestRemoveTS(t *testing.T) {
	n := New()
	n.AddMinimum([]float64{0}, 0)
	n.AddMinimum([]float64{1}, 0)
	for _, e := range []float64{5, 6, 7} {
		if err := n.AddTS([]float64{0.5}, e, 0, 1); err != nil {
			t.Fatal(err)
		}
	}

	// index -1 removes the most recently added record, not all of them.
	if err := n.RemoveTS(0, 1, -1); err != nil {
		t.Fatalf("RemoveTS(-1): %v", err)
	}
	if n.NTS() != 2 {
		t.Fatalf("NTS = %d, want 2", n.NTS())
	}
	if e, _ := n.TSEnergy(0, 1, 1); e != 6 {
		t.Errorf("remaining last energy = %v, want 6", e)
	}

	if err := n.RemoveTS(0, 1, 0); err != nil {
		t.Fatalf("RemoveTS(0): %v", err)
	}
	if e, _ := n.TSEnergy(0, 1, 0); e != 6 {
		t.Errorf("surviving record energy = %v, want 6", e)
	}

	if err := n.RemoveTS(0, 1, 5); !errors.Is(err, ErrTransitionStateNotFound) {
		t.Errorf("RemoveTS(5) error = %v, want ErrTransitionStateNotFound", err)
	}
}

func TestRemoveAllTS(t *testing.T) {
	n := fourMinima(t)

	n.RemoveAllTS(2, 1) // reversed order on purpose
	if got := n.TSCount(1, 2); got != 0 {
		t.Errorf("TSCount(1,2) = %d, want 0", got)
	}
	if n.NTS() != 2 {
		t.Errorf("NTS = %d, want 2", n.NTS())
	}

	// Removing a pair with no records is a no-op.
	n.RemoveAllTS(1, 2)
	if n.NTS() != 2 {
		t.Errorf("NTS after no-op = %d, want 2", n.NTS())
	}
}

func TestRemoveBatchTS(t *testing.T) {
	n := fourMinima(t)

	if err := n.RemoveTSs([][2]int{{0, 1}, {1, 2}}); err != nil {
		t.Fatalf("RemoveTSs: %v", err)
	}
	if n.NTS() != 2 {
		t.Fatalf("NTS = %d, want 2", n.NTS())
	}

	n.RemoveAllTSs([][2]int{{1, 2}, {2, 3}})
	if n.NTS() != 0 {
		t.Fatalf("NTS = %d, want 0", n.NTS())
	}
}

func TestReset(t *testing.T) {
	n := fourMinima(t)
	n.AddAttemptedPair(0, 1)
	n.AddAttemptedPosition([]float64{1, 1})

	n.Reset()

	if n.NMinima() != 0 || n.NTS() != 0 {
		t.Errorf("after Reset: %d minima, %d ts; want 0, 0", n.NMinima(), n.NTS())
	}
	if len(n.PairList()) != 0 {
		t.Errorf("pairlist not cleared: %v", n.PairList())
	}
	if len(n.AttemptedPositions()) != 0 {
		t.Errorf("attempted positions not cleared")
	}
}

func TestNeighbors(t *testing.T) {
	n := fourMinima(t)

	tests := []struct {
		id   int
		want []int
	}{
		{0, []int{1}},
		{1, []int{0, 2}}, // parallel 1-2 edges count once
		{3, []int{2}},
	}
	for _, tc := range tests {
		if got := n.Neighbors(tc.id); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Neighbors(%d) = %v, want %v", tc.id, got, tc.want)
		}
	}

	isolated := New()
	isolated.AddMinimum([]float64{0}, 0)
	if got := isolated.Neighbors(0); got != nil {
		t.Errorf("Neighbors of isolated minimum = %v, want nil", got)
	}
}

func TestAddAttemptedPairSorts(t *testing.T) {
	n := New()
	n.AddAttemptedPair(3, 1)
	n.AddAttemptedPair(1, 3)

	want := [][2]int{{1, 3}, {1, 3}}
	if got := n.PairList(); !reflect.DeepEqual(got, want) {
		t.Errorf("PairList = %v, want %v", got, want)
	}
}

func TestDim(t *testing.T) {
	n := New()
	if n.Dim() != 0 {
		t.Errorf("empty Dim = %d, want 0", n.Dim())
	}
	n.AddMinimum([]float64{1, 2, 3}, 0)
	if n.Dim() != 3 {
		t.Errorf("Dim = %d, want 3", n.Dim())
	}
}
