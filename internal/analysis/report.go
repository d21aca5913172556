package analysis

import (
	"fmt"
	"sort"

	"github.com/matsen/bibx/internal/metrics"
	"github.com/matsen/bibx/internal/registry"
)

// ReportSeparator labels the rows that split report sections.
const ReportSeparator = "-//-"

// ReportItem is one row of the descriptive statistics report.
type ReportItem struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Report returns the descriptive statistics of the corpus.
func (ix *Index) Report() []ReportItem {
	authors := ix.entities[registry.KindAuthor].Vocabulary
	sources := ix.entities[registry.KindSource].Vocabulary
	institutions := ix.entities[registry.KindInstitution].Vocabulary
	countries := ix.entities[registry.KindCountry].Vocabulary
	kwa := ix.entities[registry.KindAuthorKeyword].Vocabulary
	kwp := ix.entities[registry.KindKeywordPlus].Vocabulary

	timespan := "-"
	if ix.HasYears {
		timespan = fmt.Sprintf("%d-%d", ix.FirstYear, ix.LastYear)
	}

	var items []ReportItem
	add := func(label string, value any) {
		items = append(items, ReportItem{Label: label, Value: value})
	}
	sep := func() { add(ReportSeparator, ReportSeparator) }

	add("Timespan", timespan)
	add("Total Number of Countries", countries.Len())
	add("Total Number of Institutions", institutions.Len())
	add("Total Number of Sources", sources.Len())
	add("Total Number of References", len(ix.UniqueReferences))
	add("Total Number of Languages", ix.LanguageVocabulary.Len())
	for i, name := range ix.LanguageVocabulary.Names {
		add("--"+name+" (# of docs)", ix.LanguageVocabulary.Documents[i])
	}
	sep()

	add("Total Number of Documents", ix.Len())
	for _, dt := range ix.DocumentTypes {
		add("--"+dt.Type, dt.Count)
	}
	add("Average Documents per Author", mean(authors.Documents))
	add("Average Documents per Institution", mean(institutions.Documents))
	add("Average Documents per Source", mean(sources.Documents))
	add("Average Documents per Year", ix.documentsPerYear())
	sep()

	single, multi := ix.Authorship()
	add("Total Number of Authors", authors.Len())
	add("Total Number of Authors Keywords", kwa.Len())
	add("Total Number of Authors Keywords Plus", kwp.Len())
	add("Total Single-Authored Documents", single)
	add("Total Multi-Authored Documents", multi)
	add("Average Collaboration Index", ix.collaborationIndex())
	add("Max H-Index", maxOf(ix.AuthorMetrics.HIndex))
	sep()

	total := sum(ix.Citations)
	add("Total Number of Citations", total)
	add("Average Citations per Author", ratio(total, authors.Len()))
	add("Average Citations per Institution", ratio(total, institutions.Len()))
	add("Average Citations per Document", ratio(total, ix.Len()))
	add("Average Citations per Source", mean(sources.Citations))
	sep()

	return items
}

// Verbose returns the rebuild summary: document totals followed by a blank
// line and the count of each document type.
func (ix *Index) Verbose() []string {
	c := ix.Corpus
	var head string
	switch c.origin {
	case originDeduplicated:
		head = fmt.Sprintf("A Total of %d Documents were Found ( %d Documents and %d Duplicates )",
			c.Len(), c.read, c.duplicates)
	case originMerged:
		head = fmt.Sprintf("A Total of %d Documents were Found ( %d New Documents from the Added Database )",
			c.Len(), c.added)
	case originFiltered:
		head = fmt.Sprintf("A Total of %d Documents Remains", c.Len())
	default:
		head = fmt.Sprintf("A Total of %d Documents were Found", c.Len())
	}

	lines := []string{head, ""}
	for _, dt := range ix.DocumentTypes {
		lines = append(lines, fmt.Sprintf("%s = %d", dt.Type, dt.Count))
	}
	return lines
}

// Authorship counts single-authored and multi-authored documents.
func (ix *Index) Authorship() (single, multi int) {
	for _, list := range ix.entities[registry.KindAuthor].PerDocument {
		switch {
		case len(list) == 1:
			single++
		case len(list) > 1:
			multi++
		}
	}
	return single, multi
}

// PerYear returns documents and citations for every year of the timespan.
func (ix *Index) PerYear() []metrics.YearCount {
	return metrics.PerYear(ix.Years, ix.Citations)
}

// Lotka returns the author productivity distribution.
func (ix *Index) Lotka() []metrics.LotkaRow {
	return metrics.Lotka(ix.entities[registry.KindAuthor].Vocabulary.Documents)
}

// Bradford returns the zone table of the sources.
func (ix *Index) Bradford() []metrics.SourceZone {
	v := ix.entities[registry.KindSource].Vocabulary
	return metrics.BradfordTable(v.Names, v.Documents)
}

// AuthorRow is one author's line in the author metrics table.
type AuthorRow struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Documents     int    `json:"documents"`
	Citations     int    `json:"citations"`
	SelfCitations int    `json:"self_citations"`
	HIndex        int    `json:"h_index"`
}

// Authors returns the author metrics table in identifier order.
func (ix *Index) Authors() []AuthorRow {
	e := ix.entities[registry.KindAuthor]
	rows := make([]AuthorRow, e.Vocabulary.Len())
	for i, entry := range e.Registry.Entries() {
		rows[i] = AuthorRow{
			ID:            entry.ID,
			Name:          entry.Name,
			Documents:     e.Vocabulary.Documents[i],
			Citations:     ix.AuthorMetrics.Total[i],
			SelfCitations: ix.AuthorMetrics.Self[i],
			HIndex:        ix.AuthorMetrics.HIndex[i],
		}
	}
	return rows
}

// ReferenceYearCounts tallies unique references by estimated year,
// ascending. References without a year are left out.
func (ix *Index) ReferenceYearCounts() []metrics.YearCount {
	counts := make(map[int]int)
	for _, y := range ix.ReferenceYears {
		if y != metrics.NoYear {
			counts[y]++
		}
	}
	out := make([]metrics.YearCount, 0, len(counts))
	for y, n := range counts {
		out = append(out, metrics.YearCount{Year: y, Documents: n})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Year < out[b].Year })
	return out
}

func (ix *Index) documentsPerYear() float64 {
	distinct := make(map[int]bool)
	n := 0
	for _, y := range ix.Years {
		if y != metrics.NoYear {
			distinct[y] = true
			n++
		}
	}
	return ratio(n, len(distinct))
}

func (ix *Index) collaborationIndex() float64 {
	rows := ix.Collaboration.Rows
	if len(rows) == 0 {
		return 0
	}
	return rows[len(rows)-1].Index
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

func mean(xs []int) float64 {
	return ratio(sum(xs), len(xs))
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return metrics.Round2(float64(a) / float64(b))
}

func maxOf(xs []int) int {
	m := 0
	for _, x := range xs {
		m = max(m, x)
	}
	return m
}
