package ktn

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsonNetwork is the single-document wire form of a Network, used by the
// HTTP API and the snapshot archive. The five-file text layout written by
// Dump remains the persistence format of record.
type jsonNetwork struct {
	Minima           []jsonMinimum `json:"minima"`
	TransitionStates []jsonTS      `json:"transition_states"`
	PairList         [][2]int      `json:"pairlist,omitempty"`
	Attempted        [][]float64   `json:"attempted_positions,omitempty"`
}

type jsonMinimum struct {
	Coords []float64 `json:"coords"`
	Energy float64   `json:"energy"`
}

type jsonTS struct {
	Min1   int       `json:"min1"`
	Min2   int       `json:"min2"`
	Coords []float64 `json:"coords"`
	Energy float64   `json:"energy"`
}

// WriteJSON encodes the network as a single indented JSON document.
// Minima appear in identity order and transition states in insertion
// order, so the output is deterministic and round-trips through ReadJSON.
func (n *Network) WriteJSON(w io.Writer) error {
	out := jsonNetwork{
		Minima:           make([]jsonMinimum, len(n.minima)),
		TransitionStates: make([]jsonTS, len(n.ts)),
		PairList:         n.pairlist,
		Attempted:        n.attempted,
	}
	for i, m := range n.minima {
		out.Minima[i] = jsonMinimum{Coords: m.Coords, Energy: m.Energy}
	}
	for i, rec := range n.ts {
		out.TransitionStates[i] = jsonTS{
			Min1:   rec.Min1,
			Min2:   rec.Min2,
			Coords: rec.Coords,
			Energy: rec.Energy,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode network: %w", err)
	}
	return nil
}

// ReadJSON decodes a document written by WriteJSON, appending to the
// receiver. Like Read, it should be called on a fresh network.
func (n *Network) ReadJSON(r io.Reader) error {
	var in jsonNetwork
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return fmt.Errorf("decode network: %w", err)
	}
	for _, m := range in.Minima {
		n.AddMinimum(m.Coords, m.Energy)
	}
	for i, rec := range in.TransitionStates {
		if err := n.AddTS(rec.Coords, rec.Energy, rec.Min1, rec.Min2); err != nil {
			return fmt.Errorf("decode network: transition state %d: %w", i, err)
		}
	}
	for _, p := range in.PairList {
		n.AddAttemptedPair(p[0], p[1])
	}
	for _, pos := range in.Attempted {
		n.AddAttemptedPosition(pos)
	}
	return nil
}
