package flow

import "slices"

// ResultNode is a category node in the transformed graph.
// For net mode the ID is the category label itself; for bidirectional mode
// it is the label suffixed with " (Out)" or " (In)" while Category keeps the
// plain label.
type ResultNode struct {
	ID       string  `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Category string  `json:"category" bson:"category"`
	Value    float64 `json:"value" bson:"value"`
}

// ResultLink is a directed value flow between two result nodes.
// Invariants: Value > 0, Source != Target, and at most one link per
// (Source, Target) pair within a Result.
type ResultLink struct {
	Source string  `json:"source" bson:"source"`
	Target string  `json:"target" bson:"target"`
	Value  float64 `json:"value" bson:"value"`
}

// Stats carries diagnostic counters for a transform run.
//
// HasCycles reports whether the aggregated net graph contained directed
// cycles before breaking. It is informational only - the returned link set
// is always acyclic. Bidirectional results never set it, as no detection
// runs on that path.
type Stats struct {
	OriginalNodes int     `json:"original_node_count" bson:"original_node_count"`
	OriginalLinks int     `json:"original_link_count" bson:"original_link_count"`
	Nodes         int     `json:"transformed_node_count" bson:"transformed_node_count"`
	Links         int     `json:"transformed_link_count" bson:"transformed_link_count"`
	TotalValue    float64 `json:"total_value" bson:"total_value"`
	HasCycles     bool    `json:"has_cycles" bson:"has_cycles"`
}

// Result is the transformed category graph plus diagnostics, ready for an
// external flow-diagram renderer. Node IDs are unique and every link
// references existing node IDs.
type Result struct {
	Nodes []ResultNode `json:"nodes" bson:"nodes"`
	Links []ResultLink `json:"links" bson:"links"`
	Stats Stats        `json:"stats" bson:"stats"`
}

// emptyResult returns a valid Result with no nodes or links and zeroed
// stats. Used for degenerate inputs and for the recovered-fault path.
func emptyResult() *Result {
	return &Result{Nodes: []ResultNode{}, Links: []ResultLink{}}
}

// assemble packages nodes and links into a Result with computed stats.
// Nodes are sorted by ID and links by (Source, Target) so identical inputs
// produce byte-identical output.
func assemble(originalNodes, originalLinks int, nodes []ResultNode, links []ResultLink, hasCycles bool) *Result {
	slices.SortFunc(nodes, func(a, b ResultNode) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})
	slices.SortFunc(links, func(a, b ResultLink) int {
		switch {
		case a.Source != b.Source && a.Source < b.Source:
			return -1
		case a.Source != b.Source:
			return 1
		case a.Target < b.Target:
			return -1
		case a.Target > b.Target:
			return 1
		default:
			return 0
		}
	})

	var total float64
	for _, l := range links {
		total += l.Value
	}

	if nodes == nil {
		nodes = []ResultNode{}
	}
	if links == nil {
		links = []ResultLink{}
	}

	return &Result{
		Nodes: nodes,
		Links: links,
		Stats: Stats{
			OriginalNodes: originalNodes,
			OriginalLinks: originalLinks,
			Nodes:         len(nodes),
			Links:         len(links),
			TotalValue:    total,
			HasCycles:     hasCycles,
		},
	}
}
