package author

// Ratio returns the Ratcliff/Obershelp similarity of a and b: twice the
// number of matched runes over the total length. Two empty strings score 1.
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchedRunes(ra, rb)) / float64(total)
}

// matchedRunes sums the lengths of the matching blocks: the longest common
// substring, then recursively the unmatched parts on each side of it.
func matchedRunes(a, b []rune) int {
	type span struct{ alo, ahi, blo, bhi int }
	queue := []span{{0, len(a), 0, len(b)}}
	matched := 0
	for len(queue) > 0 {
		s := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		i, j, k := longestMatch(a, b, s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}
		matched += k
		if s.alo < i && s.blo < j {
			queue = append(queue, span{s.alo, i, s.blo, j})
		}
		if i+k < s.ahi && j+k < s.bhi {
			queue = append(queue, span{i + k, s.ahi, j + k, s.bhi})
		}
	}
	return matched
}

// longestMatch finds the longest common block of a[alo:ahi] and b[blo:bhi].
// Ties go to the block that starts earliest in a, then earliest in b.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestk int) {
	besti, bestj = alo, blo
	prev := make([]int, bhi-blo+1)
	for i := alo; i < ahi; i++ {
		cur := make([]int, bhi-blo+1)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := prev[j-blo] + 1
			cur[j-blo+1] = k
			if k > bestk {
				besti, bestj, bestk = i-k+1, j-k+1, k
			}
		}
		prev = cur
	}
	return besti, bestj, bestk
}

// DefaultCutoff is the similarity above which two names are grouped.
const DefaultCutoff = 0.8

// Group is a name together with the near-identical names folded into it.
type Group struct {
	Name    string   `json:"name"`
	Similar []string `json:"similar"`
}

// FuzzyGroups groups names whose Ratio lies in [cutoff, 1). Names are taken
// in order; each unclaimed name claims every later unclaimed name similar
// to it. Names that claim nothing are left out.
func FuzzyGroups(names []string, cutoff float64) []Group {
	claimed := make([]bool, len(names))
	var groups []Group
	for i, name := range names {
		if claimed[i] {
			continue
		}
		claimed[i] = true
		var similar []string
		for j := i + 1; j < len(names); j++ {
			if claimed[j] {
				continue
			}
			if r := Ratio(name, names[j]); r >= cutoff && r < 1 {
				similar = append(similar, names[j])
				claimed[j] = true
			}
		}
		if len(similar) > 0 {
			groups = append(groups, Group{Name: name, Similar: similar})
		}
	}
	return groups
}
