package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/landscape/pkg/ktn"
	"github.com/matzehuels/landscape/pkg/metric"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	n := ktn.New()
	for _, c := range [][2]float64{{0, 0}, {1, 0}, {5, 5}, {5, 6}} {
		n.AddMinimum([]float64{c[0], c[1]}, -c[0]-c[1])
	}
	for _, edge := range [][2]int{{0, 1}, {2, 3}} {
		if err := n.AddTS([]float64{0, 0}, 1, edge[0], edge[1]); err != nil {
			t.Fatal(err)
		}
	}
	n.AddAttemptedPair(0, 1)

	srv := New(n, metric.New(), log.New(io.Discard))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string, wantStatus int, into any) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s status = %d, want %d (body %s)", path, resp.StatusCode, wantStatus, body)
	}
	if into != nil {
		if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
			t.Fatalf("GET %s decode: %v", path, err)
		}
	}
}

func TestNetworkSummary(t *testing.T) {
	ts := testServer(t)

	var got networkSummary
	get(t, ts, "/network", http.StatusOK, &got)

	want := networkSummary{
		NMinima:    4,
		NTS:        2,
		Dim:        2,
		PairList:   1,
		Components: 2,
		MinEnergy:  -11,
		MaxEnergy:  0,
	}
	if got != want {
		t.Errorf("summary = %+v, want %+v", got, want)
	}
}

func TestMinimaListing(t *testing.T) {
	ts := testServer(t)

	var listing []minimumView
	get(t, ts, "/minima", http.StatusOK, &listing)
	if len(listing) != 4 {
		t.Fatalf("listing has %d entries, want 4", len(listing))
	}
	if listing[0].ID != 0 || listing[0].Coords != nil {
		t.Errorf("listing entry = %+v, want id 0 without coords", listing[0])
	}

	var detail minimumView
	get(t, ts, "/minima/1", http.StatusOK, &detail)
	if detail.Energy != -1 || len(detail.Coords) != 2 {
		t.Errorf("detail = %+v, want energy -1 with coords", detail)
	}
}

func TestMinimumErrors(t *testing.T) {
	ts := testServer(t)

	var body errorBody
	get(t, ts, "/minima/99", http.StatusNotFound, &body)
	if body.Code != "MINIMUM_NOT_FOUND" {
		t.Errorf("code = %q, want MINIMUM_NOT_FOUND", body.Code)
	}

	get(t, ts, "/minima/abc", http.StatusBadRequest, &body)
	if body.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", body.Code)
	}
}

func TestTSListing(t *testing.T) {
	ts := testServer(t)

	var listing []tsView
	get(t, ts, "/ts", http.StatusOK, &listing)
	if len(listing) != 2 {
		t.Fatalf("listing has %d entries, want 2", len(listing))
	}
	if listing[0].Min1 != 0 || listing[0].Min2 != 1 {
		t.Errorf("first edge = %+v, want 0-1", listing[0])
	}
}

func TestPairsEndpoint(t *testing.T) {
	ts := testServer(t)

	var selected [][2]int
	get(t, ts, "/pairs?strategy=unconnected&k=1", http.StatusOK, &selected)
	want := [][2]int{{1, 2}, {1, 3}}
	if len(selected) != len(want) || selected[0] != want[0] || selected[1] != want[1] {
		t.Errorf("pairs = %v, want %v", selected, want)
	}

	// Default strategy is closest enumeration.
	get(t, ts, "/pairs", http.StatusOK, &selected)
	if len(selected) == 0 {
		t.Error("default selection came back empty")
	}

	var body errorBody
	get(t, ts, "/pairs?strategy=bogus", http.StatusBadRequest, &body)
	if body.Code != "INVALID_STRATEGY" {
		t.Errorf("code = %q, want INVALID_STRATEGY", body.Code)
	}
	get(t, ts, "/pairs?k=0", http.StatusBadRequest, &body)
	if body.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", body.Code)
	}
	get(t, ts, "/pairs?k=x", http.StatusBadRequest, &body)
	if body.Code != "INVALID_INPUT" {
		t.Errorf("code = %q, want INVALID_INPUT", body.Code)
	}
}
