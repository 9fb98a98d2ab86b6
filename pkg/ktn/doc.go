// Package ktn stores and operates on a kinetic transition network: the
// graph of minima (nodes) and transition states (edges, possibly parallel)
// discovered while exploring a scalar energy landscape.
//
// # Identities
//
// Minima carry dense sequential identities 0..NMinima-1. An identity is a
// position, not a durable handle: removing a minimum renumbers every higher
// identity down by one and updates all transition-state endpoints to match.
// Code that holds identities across removals must apply the same shift.
//
// # Parallel edges
//
// Any number of transition states may connect the same pair of minima. Each
// is a distinct record, addressed by the unordered pair plus a per-pair
// insertion index.
//
// # Persistence
//
// Dump writes the network as a set of sibling text artifacts (min.data,
// min.coords, ts.data, ts.coords, pairlist, attempted.coords) and Read
// reconstructs it from them. Writes are per-file and not transactional.
// WriteJSON and ReadJSON provide a single-document encoding used by the
// HTTP API and the snapshot archive.
//
// # Merging
//
// AddNetwork folds another network into this one, delegating the decision
// of whether each stationary point is genuinely new to a Similarity
// implementation. The package has no opinion on what "the same point"
// means - that is a property of the landscape, not of the graph.
package ktn
