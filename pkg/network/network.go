package network

// Network is the canonical serialization format for raw transfer networks:
// clubs as nodes, aggregated transfer relationships as edges. It is the
// input consumed by the flow engine and is typically produced by an external
// scraping or ETL collaborator.
//
// The format is human-readable and designed for round-trip fidelity:
// import → transform → export leaves the network untouched.
type Network struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a club in the transfer network, carrying the attributes used for
// category aggregation (league, country, continent).
type Node struct {
	ID        string `json:"id" bson:"id"`
	Name      string `json:"name,omitempty" bson:"name,omitempty"` // display name (defaults to ID)
	League    string `json:"league,omitempty" bson:"league,omitempty"`
	Country   string `json:"country,omitempty" bson:"country,omitempty"`
	Continent string `json:"continent,omitempty" bson:"continent,omitempty"`
}

// DisplayName returns the name if set, otherwise the ID.
func (n *Node) DisplayName() string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// Edge is a directed aggregated transfer relationship between two clubs.
//
// TotalValue and TransferCount are precomputed by the upstream pipeline and
// are trusted as-is - the engine never re-derives them from Transfers. Fees
// may be missing for individual transfers (free agents, undisclosed fees),
// which is why the aggregates travel with the edge.
type Edge struct {
	From          string     `json:"from" bson:"from"`
	To            string     `json:"to" bson:"to"`
	Transfers     []Transfer `json:"transfers,omitempty" bson:"transfers,omitempty"`
	TotalValue    float64    `json:"total_value" bson:"total_value"`
	TransferCount int        `json:"transfer_count" bson:"transfer_count"`
}

// Transfer is a single player movement contributing to an edge.
type Transfer struct {
	Player string   `json:"player" bson:"player"`
	Fee    *float64 `json:"fee,omitempty" bson:"fee,omitempty"` // nil for free or undisclosed transfers
	Date   string   `json:"date,omitempty" bson:"date,omitempty"`
	Season string   `json:"season,omitempty" bson:"season,omitempty"`
	Window string   `json:"window,omitempty" bson:"window,omitempty"` // "summer" or "winter"
}

// NodeIndex returns an ID → node lookup over the network's nodes.
// The returned pointers refer to the network's node structs.
func (n *Network) NodeIndex() map[string]*Node {
	idx := make(map[string]*Node, len(n.Nodes))
	for i := range n.Nodes {
		idx[n.Nodes[i].ID] = &n.Nodes[i]
	}
	return idx
}

// NodeCount returns the number of nodes in the network.
func (n *Network) NodeCount() int { return len(n.Nodes) }

// EdgeCount returns the number of edges in the network.
func (n *Network) EdgeCount() int { return len(n.Edges) }
