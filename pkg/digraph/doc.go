// Package digraph provides a directed weighted graph with cycle detection
// and greedy cycle breaking.
//
// # Overview
//
// The package is the working representation for net-flow resolution: the
// engine builds a Graph from surviving net flows, then removes edges until
// the graph is a DAG that a flow-diagram layout can consume. At most one
// edge may connect any ordered node pair, matching the aggregated-flow
// semantics of the engine.
//
// # Cycle Detection
//
// [FindCycle] runs a depth-first traversal with white/gray/black coloring
// and an explicit work stack (no language recursion, so stack depth is not a
// concern for pathological inputs). An edge into a gray node closes a cycle,
// and the full cycle path is reconstructed from the work stack. The
// traversal restarts from every unvisited node, covering all components of a
// disconnected graph.
//
// # Cycle Breaking
//
// [BreakCycles] iterates detection and removal to a fixed point: for each
// detected cycle it removes the minimum-value edge on the cycle's path, then
// searches again until a full pass finds no cycle. The heuristic minimizes
// flow value discarded per cycle but is a greedy approximation, not a
// minimum feedback arc set (that problem is NP-hard). Termination is
// guaranteed because each iteration removes one edge from a finite set.
//
// # Usage
//
//	g := digraph.New()
//	g.EnsureNode("a")
//	g.EnsureNode("b")
//	g.EnsureNode("c")
//	g.AddEdge("a", "b", 100)
//	g.AddEdge("b", "c", 80)
//	g.AddEdge("c", "a", 50)
//
//	removed := digraph.BreakCycles(g) // removes c→a, the weakest edge
package digraph
