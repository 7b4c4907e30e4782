package flow

// Out/In suffixes for the bidirectional node halves. The two sets are
// disjoint by naming: no edge ever enters an Out-node or leaves an In-node,
// so the built graph is acyclic by construction and no cycle detection runs
// on this path.
const (
	suffixOut = " (Out)"
	suffixIn  = " (In)"
)

// buildBidirectional splits each flow into an Out-half of its source
// category and an In-half of its target category, linked by a single
// directed edge carrying the flow value. A node's aggregate value is the sum
// of all flow values touching it in either role.
//
// Zero-value flows are dropped here so every emitted link satisfies the
// Value > 0 result invariant.
func buildBidirectional(flows []Flow) ([]ResultNode, []ResultLink) {
	values := make(map[string]float64)
	categories := make(map[string]string)
	var links []ResultLink

	for _, f := range flows {
		if f.Value <= 0 {
			continue
		}

		out := f.From + suffixOut
		in := f.To + suffixIn
		values[out] += f.Value
		values[in] += f.Value
		categories[out] = f.From
		categories[in] = f.To

		links = append(links, ResultLink{Source: out, Target: in, Value: f.Value})
	}

	nodes := make([]ResultNode, 0, len(values))
	for id, v := range values {
		nodes = append(nodes, ResultNode{
			ID:       id,
			Name:     id,
			Category: categories[id],
			Value:    v,
		})
	}
	return nodes, links
}
