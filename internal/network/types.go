// Package network builds collaboration and document-similarity graphs for
// an external renderer.
package network

// Graph is a rendered-ready node and edge list.
type Graph struct {
	Kind  string `json:"kind"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is an entity or a document.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Document nodes
	Year int `json:"year,omitempty"`

	// Entity nodes
	Documents int `json:"documents,omitempty"`
	Citations int `json:"citations,omitempty"`

	Degree int `json:"degree"`
}

// Edge is an undirected link. Source sorts before Target in node order.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
}

// IsEmpty returns true if the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return len(g.Nodes) == 0
}
