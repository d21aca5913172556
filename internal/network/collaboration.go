package network

import (
	"fmt"
	"sort"

	"github.com/matsen/bibx/internal/analysis"
	"github.com/matsen/bibx/internal/registry"
)

type pair struct{ a, b int }

func orderedPair(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// Collaboration links entities that appear next to each other in a
// document's list: authors in byline order, countries and institutions in
// author order, keywords in listed order. Links are binary. Self-links are
// kept only for authors. Entities with fewer than minDegree links are
// dropped together with their links.
func Collaboration(ix *analysis.Index, kind registry.Kind, minDegree int) (*Graph, error) {
	e := ix.Entity(kind)
	if e == nil {
		return nil, fmt.Errorf("no collaboration network for %s", kind)
	}
	keepSelf := kind == registry.KindAuthor

	links := make(map[pair]bool)
	for _, list := range e.PerDocument {
		for j := 0; j+1 < len(list); j++ {
			a, b := e.Vocabulary.Index(list[j]), e.Vocabulary.Index(list[j+1])
			if a < 0 || b < 0 || (a == b && !keepSelf) {
				continue
			}
			links[orderedPair(a, b)] = true
		}
	}

	degree := make(map[int]int)
	for p := range links {
		degree[p.a]++
		if p.b != p.a {
			degree[p.b]++
		}
	}
	if minDegree > 0 {
		for p := range links {
			if degree[p.a] < minDegree || degree[p.b] < minDegree {
				delete(links, p)
			}
		}
		degree = make(map[int]int)
		for p := range links {
			degree[p.a]++
			if p.b != p.a {
				degree[p.b]++
			}
		}
	}

	entries := e.Registry.Entries()
	g := &Graph{Kind: string(kind)}
	for i := range entries {
		if degree[i] == 0 {
			continue
		}
		g.Nodes = append(g.Nodes, Node{
			ID:        entries[i].ID,
			Label:     entries[i].Name,
			Documents: e.Vocabulary.Documents[i],
			Citations: e.Vocabulary.Citations[i],
			Degree:    degree[i],
		})
	}
	g.Edges = sortedEdges(links, func(i int) string { return entries[i].ID }, func(pair) float64 { return 1 })
	return g, nil
}

func sortedEdges(links map[pair]bool, id func(int) string, weight func(pair) float64) []Edge {
	pairs := make([]pair, 0, len(links))
	for p := range links {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	edges := make([]Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = Edge{Source: id(p.a), Target: id(p.b), Weight: weight(p)}
	}
	return edges
}
