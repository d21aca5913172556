package entity

import (
	"sort"
	"strings"
)

// Vocabulary is the unique-name table of one entity class together with the
// per-name document counts and citation sums.
type Vocabulary struct {
	Names     []string
	Documents []int
	Citations []int

	index map[string]int
}

// IsSentinel reports whether name is the missing-value placeholder in any
// casing.
func IsSentinel(name string) bool {
	return strings.EqualFold(name, "unknown")
}

// NewVocabulary builds a vocabulary over the distinct tokens of perDoc,
// sorted alphabetically. Names for which exclude returns true are left out.
// A document contributes once to each name it contains, however many times
// the name repeats in its list. citations may be nil.
func NewVocabulary(perDoc [][]string, citations []int, exclude func(string) bool) *Vocabulary {
	counts := make(map[string]int)
	sums := make(map[string]int)
	for i, list := range perDoc {
		seen := make(map[string]bool, len(list))
		for _, name := range list {
			if seen[name] {
				continue
			}
			seen[name] = true
			counts[name]++
			if i < len(citations) {
				sums[name] += citations[i]
			}
		}
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		if exclude != nil && exclude(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	v := &Vocabulary{
		Names:     names,
		Documents: make([]int, len(names)),
		Citations: make([]int, len(names)),
	}
	for i, name := range names {
		v.Documents[i] = counts[name]
		v.Citations[i] = sums[name]
	}
	v.reindex()
	return v
}

// ByFrequency returns a copy ordered by descending document count. Ties keep
// their current relative order.
func (v *Vocabulary) ByFrequency() *Vocabulary {
	order := make([]int, len(v.Names))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return v.Documents[order[a]] > v.Documents[order[b]]
	})

	out := &Vocabulary{
		Names:     make([]string, len(order)),
		Documents: make([]int, len(order)),
		Citations: make([]int, len(order)),
	}
	for i, j := range order {
		out.Names[i] = v.Names[j]
		out.Documents[i] = v.Documents[j]
		out.Citations[i] = v.Citations[j]
	}
	out.reindex()
	return out
}

// Index returns the position of name, or -1.
func (v *Vocabulary) Index(name string) int {
	if i, ok := v.index[name]; ok {
		return i
	}
	return -1
}

// Len returns the number of names.
func (v *Vocabulary) Len() int {
	return len(v.Names)
}

func (v *Vocabulary) reindex() {
	v.index = make(map[string]int, len(v.Names))
	for i, name := range v.Names {
		v.index[name] = i
	}
}
