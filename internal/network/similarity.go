package network

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/matsen/bibx/internal/analysis"
)

// Similarity selects the document similarity measure.
type Similarity string

const (
	// Coupling is the cosine similarity of two documents' reference sets.
	Coupling Similarity = "coup"
	// CoCitation is the number of references two documents share.
	CoCitation Similarity = "cocit"
)

// DefaultCut returns the edge threshold used when none is given.
func (s Similarity) DefaultCut() float64 {
	if s == CoCitation {
		return 5
	}
	return 0.3
}

// ParseSimilarity validates a similarity name.
func ParseSimilarity(s string) (Similarity, error) {
	switch Similarity(s) {
	case Coupling, CoCitation:
		return Similarity(s), nil
	}
	return "", fmt.Errorf("unknown similarity %q (want coup or cocit)", s)
}

// Incidence returns, per document, the sorted indices of the unique
// references it cites. Repeated citations of one reference count once.
func Incidence(refs [][]string, unique []string) [][]int {
	pos := make(map[string]int, len(unique))
	for i, r := range unique {
		pos[r] = i
	}
	out := make([][]int, len(refs))
	for d, list := range refs {
		seen := make(map[int]bool, len(list))
		for _, r := range list {
			k, ok := pos[r]
			if !ok || seen[k] {
				continue
			}
			seen[k] = true
			out[d] = append(out[d], k)
		}
		sort.Ints(out[d])
	}
	return out
}

// Documents builds the document similarity graph. Pairs scoring at least
// cut become edges; documents without an edge are left out.
func Documents(ix *analysis.Index, sim Similarity, cut float64) (*Graph, error) {
	if _, err := ParseSimilarity(string(sim)); err != nil {
		return nil, err
	}
	incidence := Incidence(ix.References, ix.UniqueReferences)

	citing := make(map[int][]int)
	for d, refs := range incidence {
		for _, r := range refs {
			citing[r] = append(citing[r], d)
		}
	}
	shared := make(map[pair]int)
	for _, docs := range citing {
		for i := 0; i < len(docs); i++ {
			for j := i + 1; j < len(docs); j++ {
				shared[orderedPair(docs[i], docs[j])]++
			}
		}
	}

	score := func(p pair) float64 {
		n := float64(shared[p])
		if sim == CoCitation {
			return n
		}
		return n / math.Sqrt(float64(len(incidence[p.a])*len(incidence[p.b])))
	}

	links := make(map[pair]bool)
	degree := make(map[int]int)
	for p := range shared {
		if score(p) >= cut {
			links[p] = true
			degree[p.a]++
			degree[p.b]++
		}
	}

	g := &Graph{Kind: string(sim)}
	for d := 0; d < ix.Len(); d++ {
		if degree[d] == 0 {
			continue
		}
		label, _ := ix.Documents.Name(strconv.Itoa(d))
		year := ix.Years[d]
		if year < 0 {
			year = 0
		}
		g.Nodes = append(g.Nodes, Node{ID: strconv.Itoa(d), Label: label, Year: year, Degree: degree[d]})
	}
	g.Edges = sortedEdges(links, strconv.Itoa, func(p pair) float64 {
		return math.Round(score(p)*1000) / 1000
	})
	return g, nil
}
