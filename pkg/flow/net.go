package flow

import (
	"github.com/charmbracelet/log"

	"github.com/transferflow/transferflow/pkg/digraph"
	"github.com/transferflow/transferflow/pkg/observability"
)

// cancel resolves every pair of opposing flows A→B and B→A into at most one
// net flow: the dominant direction with value |v(A→B) − v(B→A)|. Pairs that
// cancel exactly are dropped entirely. Flows without an opposing partner
// pass through unchanged.
//
// Cancellation removes all 2-cycles but cannot touch cycles spanning three
// or more categories; those are broken later on the digraph. The surviving
// flow keeps the dominant direction's transfer details.
//
// The input must be sorted by (From, To) (as [Aggregate] returns it); the
// output preserves that relative order.
func cancel(flows []Flow) []Flow {
	index := make(map[categoryPair]int, len(flows))
	for i, f := range flows {
		index[categoryPair{from: f.From, to: f.To}] = i
	}

	resolved := make([]Flow, 0, len(flows))
	done := make(map[categoryPair]bool, len(flows))

	for _, f := range flows {
		key := categoryPair{from: f.From, to: f.To}
		if done[key] {
			continue
		}
		done[key] = true

		ri, opposed := index[key.reversed()]
		if !opposed {
			resolved = append(resolved, f)
			continue
		}
		done[key.reversed()] = true

		reverse := flows[ri]
		net := f.Value - reverse.Value
		switch {
		case net > 0:
			resolved = append(resolved, Flow{From: f.From, To: f.To, Value: net, Transfers: f.Transfers})
		case net < 0:
			resolved = append(resolved, Flow{From: reverse.From, To: reverse.To, Value: -net, Transfers: reverse.Transfers})
		}
		// net == 0: both directions cancel, drop the pair.
	}

	return resolved
}

// buildNet constructs the net-mode category graph: cancel opposing flows,
// build a digraph from the positive net flows, break residual cycles, then
// recompute node aggregates from the surviving links only.
//
// Nodes left without any incident link after breaking are dropped. The
// returned hasCycles flag reports whether any cycle existed before breaking.
func buildNet(flows []Flow, logger *log.Logger) (nodes []ResultNode, links []ResultLink, hasCycles bool) {
	g := digraph.New()
	for _, f := range cancel(flows) {
		if f.Value <= 0 {
			continue
		}
		_ = g.EnsureNode(f.From)
		_ = g.EnsureNode(f.To)
		_ = g.AddEdge(f.From, f.To, f.Value)
	}

	removed := digraph.BreakCycles(g)
	hasCycles = len(removed) > 0
	for _, e := range removed {
		logger.Debug("broke cycle", "from", e.From, "to", e.To, "value", e.Value)
		observability.Transform().OnCycleBroken(e.From, e.To, e.Value)
	}

	values := make(map[string]float64)
	for _, e := range g.Edges() {
		links = append(links, ResultLink{Source: e.From, Target: e.To, Value: e.Value})
		values[e.From] += e.Value
		values[e.To] += e.Value
	}

	for _, id := range g.Nodes() {
		if g.Degree(id) == 0 {
			continue
		}
		nodes = append(nodes, ResultNode{ID: id, Name: id, Category: id, Value: values[id]})
	}
	return nodes, links, hasCycles
}
