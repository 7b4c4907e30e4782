// Package flow implements the flow aggregation and cycle-resolution engine:
// it re-buckets a raw transfer network into category-level flows and emits a
// graph an external flow-diagram renderer can lay out.
//
// # Overview
//
// The engine is a pure transformation invoked wholesale on every data or
// configuration change:
//
//	raw network → Aggregate → {bidirectional | net builder} → Result
//
// [Aggregate] maps each edge's endpoints to categories at the configured
// [Level] (club, league, country, or continent) and accumulates the selected
// [Metric] (monetary sum or transfer count) per ordered category pair.
// Dangling edge references are skipped silently and self-loop flows are
// excluded.
//
// # Flow Types
//
// Bidirectional mode splits every flow into "{source} (Out)" and
// "{target} (In)" node halves. Out-nodes and In-nodes are disjoint sets, so
// the result is acyclic by construction.
//
// Net mode first cancels opposing flows pairwise, keeping the dominant
// direction with the absolute difference as its value. That removes all
// 2-cycles; residual cycles spanning three or more categories are broken on
// a [pkg/digraph] graph by iteratively removing the weakest edge of each
// detected cycle until a full detection pass finds none. The removal set is
// a greedy approximation, not a minimum feedback arc set - acceptable for a
// visualization engine and documented as such.
//
// # Failure Policy
//
// [Transform] never fails. Degenerate graphs produce a valid empty
// [Result]; unexpected internal faults are recovered and converted to an
// empty result with zeroed stats, logged through Options.Logger. The only
// structured signal about input cyclicity is Stats.HasCycles, which carries
// no error severity.
//
// # Purity
//
// The engine holds no internal cache and shares no state across calls;
// caching belongs to callers (see pkg/cache). Identical input and options
// produce byte-identical results, which the CLI and server rely on for
// content-addressed caching.
package flow
