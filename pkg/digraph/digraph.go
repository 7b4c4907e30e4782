package digraph

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrDuplicateEdge is returned by [Graph.AddEdge] when an edge between
	// the same ordered node pair already exists. The graph models aggregated
	// flows, so at most one edge may connect any ordered pair.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Edge is a directed weighted connection between two nodes.
type Edge struct {
	From  string  // source node ID
	To    string  // target node ID
	Value float64 // flow value carried by the edge
}

// pair is the ordered node-pair key used to index edges.
// A struct key avoids the delimiter-corruption problem of concatenated
// string keys when node IDs contain arbitrary characters.
type pair struct {
	from, to string
}

// Graph is a directed graph with weighted edges and at most one edge per
// ordered node pair. It is the working representation used during net-flow
// cycle resolution: edges are removed until the graph is acyclic.
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	nodes    map[string]bool
	edges    map[pair]float64
	order    []pair              // edge insertion order, for deterministic iteration
	outgoing map[string][]string // nodeID -> children IDs, insertion order
	incoming map[string][]string // nodeID -> parent IDs, insertion order
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]bool),
		edges:    make(map[pair]float64),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the ID is empty, or ErrDuplicateNodeID if a
// node with the same ID already exists.
func (g *Graph) AddNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	if g.nodes[id] {
		return ErrDuplicateNodeID
	}
	g.nodes[id] = true
	return nil
}

// EnsureNode adds a node if it does not exist yet.
// Unlike AddNode, adding an existing node is not an error. Returns
// ErrInvalidNodeID if the ID is empty.
func (g *Graph) EnsureNode(id string) error {
	if id == "" {
		return ErrInvalidNodeID
	}
	g.nodes[id] = true
	return nil
}

// AddEdge adds a directed weighted edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if an endpoint is
// missing, or ErrDuplicateEdge if an edge between the same ordered pair
// already exists.
func (g *Graph) AddEdge(from, to string, value float64) error {
	if !g.nodes[from] {
		return ErrUnknownSourceNode
	}
	if !g.nodes[to] {
		return ErrUnknownTargetNode
	}
	k := pair{from, to}
	if _, exists := g.edges[k]; exists {
		return ErrDuplicateEdge
	}
	g.edges[k] = value
	g.order = append(g.order, k)
	g.outgoing[from] = append(g.outgoing[from], to)
	g.incoming[to] = append(g.incoming[to], from)
	return nil
}

// RemoveEdge removes the edge from→to if it exists.
// No error is returned if the edge does not exist.
func (g *Graph) RemoveEdge(from, to string) {
	k := pair{from, to}
	if _, exists := g.edges[k]; !exists {
		return
	}
	delete(g.edges, k)
	g.order = slices.DeleteFunc(g.order, func(p pair) bool { return p == k })
	g.outgoing[from] = slices.DeleteFunc(g.outgoing[from], func(s string) bool { return s == to })
	g.incoming[to] = slices.DeleteFunc(g.incoming[to], func(s string) bool { return s == from })
}

// Value returns the value of the edge from→to and whether the edge exists.
func (g *Graph) Value(from, to string) (float64, bool) {
	v, ok := g.edges[pair{from, to}]
	return v, ok
}

// Nodes returns all node IDs in sorted order.
func (g *Graph) Nodes() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Edges returns all edges in insertion order.
// The returned slice is independent of the graph.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.order))
	for _, k := range g.order {
		edges = append(edges, Edge{From: k.from, To: k.to, Value: g.edges[k]})
	}
	return edges
}

// Children returns the IDs of nodes this node has edges to, in edge
// insertion order. The returned slice should not be modified.
func (g *Graph) Children(id string) []string { return g.outgoing[id] }

// Parents returns the IDs of nodes that have edges to this node, in edge
// insertion order. The returned slice should not be modified.
func (g *Graph) Parents(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Degree returns the total number of edges incident to the node.
func (g *Graph) Degree(id string) int { return len(g.outgoing[id]) + len(g.incoming[id]) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }
