package metrics

import (
	"sort"
	"strings"
)

// HIndex returns the largest h such that h of the given citation counts are
// at least h.
func HIndex(citations []int) int {
	sorted := append([]int(nil), citations...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	h := 0
	for i, c := range sorted {
		if c < i+1 {
			break
		}
		h = i + 1
	}
	return h
}

// AuthorCitations holds the per-author indicators that depend on the
// documents an author appears in.
type AuthorCitations struct {
	HIndex []int
	Total  []int
	Self   []int
}

// ComputeAuthorCitations evaluates every name in names against the
// per-document author lists. Self citations count the references of the
// author's own documents that mention the author's name.
func ComputeAuthorCitations(names []string, authors [][]string, citations []int, references [][]string) AuthorCitations {
	docsByAuthor := make(map[string][]int, len(names))
	for d, list := range authors {
		seen := make(map[string]bool, len(list))
		for _, a := range list {
			if !seen[a] {
				seen[a] = true
				docsByAuthor[a] = append(docsByAuthor[a], d)
			}
		}
	}

	out := AuthorCitations{
		HIndex: make([]int, len(names)),
		Total:  make([]int, len(names)),
		Self:   make([]int, len(names)),
	}
	for i, name := range names {
		docs := docsByAuthor[name]
		counts := make([]int, len(docs))
		for k, d := range docs {
			counts[k] = citations[d]
			out.Total[i] += citations[d]
			if d < len(references) {
				out.Self[i] += SelfCitations(name, references[d])
			}
		}
		out.HIndex[i] = HIndex(counts)
	}
	return out
}

// SelfCitations counts the references that contain name, ignoring case.
func SelfCitations(name string, references []string) int {
	name = strings.ToLower(name)
	n := 0
	for _, ref := range references {
		if strings.Contains(strings.ToLower(ref), name) {
			n++
		}
	}
	return n
}
