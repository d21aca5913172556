package network

import (
	"fmt"

	"github.com/segmentio/encoding/json"
)

// cyElements mirrors the {nodes, edges} object cytoscape() accepts as
// its elements option.
type cyElements struct {
	Nodes []cyNode `json:"nodes"`
	Edges []cyEdge `json:"edges"`
}

type cyNode struct {
	Data Node `json:"data"`
}

type cyEdge struct {
	Data cyEdgeData `json:"data"`
}

type cyEdgeData struct {
	ID string `json:"id"`
	Edge
}

// ToCytoscapeJSON encodes g as Cytoscape.js elements. Edge IDs join the
// endpoint IDs, which is unique because a graph links each pair once.
func (g *Graph) ToCytoscapeJSON() (string, error) {
	el := cyElements{
		Nodes: make([]cyNode, len(g.Nodes)),
		Edges: make([]cyEdge, len(g.Edges)),
	}
	for i, n := range g.Nodes {
		el.Nodes[i].Data = n
	}
	for i, e := range g.Edges {
		el.Edges[i].Data = cyEdgeData{ID: e.Source + "~" + e.Target, Edge: e}
	}

	data, err := json.Marshal(el)
	if err != nil {
		return "", fmt.Errorf("encoding %s network: %w", g.Kind, err)
	}
	return string(data), nil
}
