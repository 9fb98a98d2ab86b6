package pairs_test

import (
	"reflect"
	"testing"

	"github.com/matzehuels/landscape/pkg/ktn"
	"github.com/matzehuels/landscape/pkg/metric"
	"github.com/matzehuels/landscape/pkg/pairs"
)

// twoIslands builds two connected components: {0,1} near the origin and
// {2,3} far away, with minimum 1 the closest member of the first island to
// both members of the second.
func twoIslands(t *testing.T) *ktn.Network {
	t.Helper()
	n := ktn.New()
	for _, c := range [][2]float64{{0, 0}, {1, 0}, {5, 5}, {5, 6}} {
		n.AddMinimum([]float64{c[0], c[1]}, 0)
	}
	for _, edge := range [][2]int{{0, 1}, {2, 3}} {
		if err := n.AddTS([]float64{0, 0}, 1, edge[0], edge[1]); err != nil {
			t.Fatal(err)
		}
	}
	return n
}

func TestConnectUnconnected(t *testing.T) {
	n := twoIslands(t)
	p := metric.New()

	got := pairs.ConnectUnconnected(n, p, 1)
	// Both 2 and 3 bridge to 1, their nearest reachable-from-0 minimum.
	want := []pairs.Pair{{1, 2}, {1, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ConnectUnconnected = %v, want %v", got, want)
	}
}

func TestConnectUnconnectedFullyConnected(t *testing.T) {
	n := twoIslands(t)
	if err := n.AddTS(nil, 2, 1, 2); err != nil {
		t.Fatal(err)
	}

	if got := pairs.ConnectUnconnected(n, metric.New(), 3); got != nil {
		t.Errorf("ConnectUnconnected on a connected network = %v, want nil", got)
	}
}

func TestConnectUnconnectedEmptyNetwork(t *testing.T) {
	if got := pairs.ConnectUnconnected(ktn.New(), metric.New(), 1); got != nil {
		t.Errorf("ConnectUnconnected on empty network = %v, want nil", got)
	}
}

func TestConnectToSet(t *testing.T) {
	n := twoIslands(t)
	p := metric.New()

	tests := []struct {
		name     string
		node     int
		maxPairs int
		want     []pairs.Pair
	}{
		{
			name: "nearest cross-component partner first",
			node: 2, maxPairs: 1,
			want: []pairs.Pair{{1, 2}},
		},
		{
			name: "cap admits further partners",
			node: 2, maxPairs: 2,
			want: []pairs.Pair{{0, 2}, {1, 2}},
		},
		{
			name: "cap beyond candidate count",
			node: 3, maxPairs: 10,
			want: []pairs.Pair{{0, 3}, {1, 3}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := pairs.ConnectToSet(n, p, tc.node, tc.maxPairs)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ConnectToSet(node=%d, max=%d) = %v, want %v",
					tc.node, tc.maxPairs, got, tc.want)
			}
		})
	}
}

func TestConnectToSetZeroCap(t *testing.T) {
	n := twoIslands(t)

	// The first maxPairs entries of an empty budget is no entries.
	if got := pairs.ConnectToSet(n, metric.New(), 2, 0); got != nil {
		t.Errorf("ConnectToSet with zero cap = %v, want nil", got)
	}
	if got := pairs.ConnectToSet(n, metric.New(), 2, -1); got != nil {
		t.Errorf("ConnectToSet with negative cap = %v, want nil", got)
	}
}

func TestConnectToSetUnknownNode(t *testing.T) {
	n := twoIslands(t)
	p := metric.New()

	for _, node := range []int{-1, 4, 99} {
		if got := pairs.ConnectToSet(n, p, node, 1); got != nil {
			t.Errorf("ConnectToSet(node=%d) = %v, want nil", node, got)
		}
	}
}

func TestConnectToSetFullyConnected(t *testing.T) {
	n := twoIslands(t)
	if err := n.AddTS(nil, 2, 0, 3); err != nil {
		t.Fatal(err)
	}

	if got := pairs.ConnectToSet(n, metric.New(), 2, 5); got != nil {
		t.Errorf("ConnectToSet with empty target set = %v, want nil", got)
	}
}

func TestClosestEnumeration(t *testing.T) {
	n := twoIslands(t)
	p := metric.New()

	got := pairs.ClosestEnumeration(n, p, 1)
	want := []pairs.Pair{{0, 1}, {2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClosestEnumeration(k=1) = %v, want %v", got, want)
	}

	// k at or above n-1 enumerates every pair.
	got = pairs.ClosestEnumeration(n, p, 3)
	want = []pairs.Pair{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClosestEnumeration(k=3) = %v, want %v", got, want)
	}

	got = pairs.ClosestEnumeration(n, p, 100)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClosestEnumeration(k=100) = %v, want all pairs %v", got, want)
	}
}
