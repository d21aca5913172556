package metrics

import (
	"math"
	"sort"
	"strconv"
)

// YearRange returns the earliest and latest known year.
func YearRange(years []int) (first, last int, ok bool) {
	for _, y := range years {
		if y == NoYear {
			continue
		}
		if !ok || y < first {
			first = y
		}
		if !ok || y > last {
			last = y
		}
		ok = true
	}
	return first, last, ok
}

// YearCount is the production of one publication year.
type YearCount struct {
	Year      int `json:"year"`
	Documents int `json:"documents"`
	Citations int `json:"citations"`
}

// PerYear counts documents and citations for every year of the corpus
// timespan, including years without documents.
func PerYear(years, citations []int) []YearCount {
	first, last, ok := YearRange(years)
	if !ok {
		return nil
	}
	out := make([]YearCount, last-first+1)
	for i := range out {
		out[i].Year = first + i
	}
	for d, y := range years {
		if y == NoYear {
			continue
		}
		out[y-first].Documents++
		if d < len(citations) {
			out[y-first].Citations += citations[d]
		}
	}
	return out
}

// LotkaRow says how many authors wrote exactly Documents documents.
type LotkaRow struct {
	Documents int     `json:"documents"`
	Authors   int     `json:"authors"`
	Share     float64 `json:"share"`
}

// Lotka tabulates authors by productivity, from one document up to the most
// prolific author.
func Lotka(authorDocuments []int) []LotkaRow {
	most := 0
	for _, n := range authorDocuments {
		most = max(most, n)
	}
	out := make([]LotkaRow, most)
	for i := range out {
		out[i].Documents = i + 1
	}
	for _, n := range authorDocuments {
		if n > 0 {
			out[n-1].Authors++
		}
	}
	if len(authorDocuments) > 0 {
		for i := range out {
			out[i].Share = Round2(float64(out[i].Authors) / float64(len(authorDocuments)))
		}
	}
	return out
}

// CollaborationRow counts the documents of one year by number of authors.
type CollaborationRow struct {
	Year   string  `json:"year"`
	Counts []int   `json:"counts"`
	Total  int     `json:"total"`
	Index  float64 `json:"collaboration_index"`
}

// CollaborationTable lays out documents per year against team size. Sizes
// lists the distinct team sizes in ascending order; each row's Counts is
// aligned with Sizes. The last row sums every year.
type CollaborationTable struct {
	Sizes []int              `json:"sizes"`
	Rows  []CollaborationRow `json:"rows"`
}

// Collaboration builds the per-year collaboration table. The collaboration
// index of a row is the mean number of authors per document. Documents
// without a year only contribute to the total row.
func Collaboration(years, teamSizes []int) CollaborationTable {
	seen := make(map[int]bool)
	var sizes []int
	for _, n := range teamSizes {
		if !seen[n] {
			seen[n] = true
			sizes = append(sizes, n)
		}
	}
	sort.Ints(sizes)
	col := make(map[int]int, len(sizes))
	for i, n := range sizes {
		col[n] = i
	}

	newRow := func(label string) CollaborationRow {
		return CollaborationRow{Year: label, Counts: make([]int, len(sizes))}
	}

	var rows []CollaborationRow
	first, last, ok := YearRange(years)
	if ok {
		for y := first; y <= last; y++ {
			rows = append(rows, newRow(strconv.Itoa(y)))
		}
	}
	total := newRow("Total")

	for d, n := range teamSizes {
		c := col[n]
		total.Counts[c]++
		if d < len(years) && years[d] != NoYear {
			rows[years[d]-first].Counts[c]++
		}
	}
	rows = append(rows, total)

	for i := range rows {
		authors := 0
		for c, count := range rows[i].Counts {
			rows[i].Total += count
			authors += count * sizes[c]
		}
		if rows[i].Total > 0 {
			rows[i].Index = Round2(float64(authors) / float64(rows[i].Total))
		}
	}
	return CollaborationTable{Sizes: sizes, Rows: rows}
}

// Round2 rounds to two decimals, the precision of every reported average.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
