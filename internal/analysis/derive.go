package analysis

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/matsen/bibx/internal/affiliation"
	"github.com/matsen/bibx/internal/document"
	"github.com/matsen/bibx/internal/entity"
	"github.com/matsen/bibx/internal/metrics"
	"github.com/matsen/bibx/internal/registry"
)

// Options configures derivation.
type Options struct {
	// Resolver matches countries and institutions. Nil uses the built-in
	// gazetteers.
	Resolver *affiliation.Resolver
}

// EntityClass is one entity kind's per-document lists, vocabulary and
// identifiers.
type EntityClass struct {
	Kind        registry.Kind
	PerDocument [][]string
	Vocabulary  *entity.Vocabulary
	Registry    *registry.Registry
}

// DocumentType counts the documents of one canonical type.
type DocumentType struct {
	Type      string `json:"type"`
	Count     int    `json:"count"`
	Documents []int  `json:"documents"`
}

// Index bundles everything derived from one Corpus. It is never updated;
// a changed corpus gets a new Index.
type Index struct {
	Corpus *Corpus

	Years     []int
	FirstYear int
	LastYear  int
	HasYears  bool
	Citations []int

	References       [][]string
	UniqueReferences []string
	ReferenceYears   []int

	Languages          [][]string
	LanguageVocabulary *entity.Vocabulary

	AuthorMetrics metrics.AuthorCitations
	DocumentTypes []DocumentType
	Collaboration metrics.CollaborationTable

	Documents *registry.Registry
	entities  map[registry.Kind]*EntityClass
}

// entitySource describes how one entity kind is read from the table.
type entitySource struct {
	kind  registry.Kind
	field string
	sep   string
}

var entitySources = []entitySource{
	{registry.KindAuthor, document.FieldAuthor, " and "},
	{registry.KindSource, document.FieldAbbrevSourceTitle, ";"},
	{registry.KindAuthorKeyword, document.FieldAuthorKeywords, ";"},
	{registry.KindKeywordPlus, document.FieldKeywords, ";"},
}

// Derive computes the full Index of c. It fails only when a citation field
// cannot be parsed, and then returns no partial result.
func Derive(c *Corpus, opts Options) (*Index, error) {
	t := c.table
	resolver := opts.Resolver
	if resolver == nil {
		resolver = affiliation.NewResolver()
	}

	ix := &Index{
		Corpus:   c,
		entities: make(map[registry.Kind]*EntityClass),
	}

	ix.Years = parseYears(t.Column(document.FieldYear))
	ix.FirstYear, ix.LastYear, ix.HasYears = metrics.YearRange(ix.Years)

	citations, err := metrics.ParseAllCitations(t.Column(document.FieldNote))
	if err != nil {
		return nil, fmt.Errorf("parsing citations: %w", err)
	}
	ix.Citations = citations

	refs, uniqueRefs := entity.Split(t.Column(document.FieldReferences), ";", false)
	ix.References = refs
	ix.UniqueReferences = withoutSentinel(uniqueRefs)
	ix.ReferenceYears = metrics.NewYearExtractor(ix.LastYear).Years(ix.UniqueReferences)

	for _, src := range entitySources {
		perDoc, _ := entity.Split(t.Column(src.field), src.sep, true)
		ix.addEntity(src.kind, perDoc)
	}

	ix.Languages, _ = entity.Split(t.Column(document.FieldLanguage), ".", true)
	ix.LanguageVocabulary = entity.NewVocabulary(ix.Languages, ix.Citations, nil)

	records := t.Records()
	authors := ix.entities[registry.KindAuthor].PerDocument
	countries := make([][]string, t.Len())
	institutions := make([][]string, t.Len())
	for i, r := range records {
		aff := r.Get(document.FieldAffiliation)
		if r.Dialect == document.WebOfScience {
			aff = r.Get(document.FieldAuthorAffiliation)
		}
		countries[i], institutions[i] = resolver.Resolve(r.Dialect, aff, authors[i])
	}
	ix.addEntity(registry.KindCountry, countries)
	ix.addEntity(registry.KindInstitution, institutions)

	authorNames := ix.entities[registry.KindAuthor].Vocabulary.Names
	ix.AuthorMetrics = metrics.ComputeAuthorCitations(authorNames, authors, ix.Citations, ix.References)

	ix.DocumentTypes = countDocumentTypes(t.Column(document.FieldDocumentType))

	teamSizes := make([]int, len(authors))
	for i, list := range authors {
		teamSizes[i] = len(list)
	}
	ix.Collaboration = metrics.Collaboration(ix.Years, teamSizes)

	labels := make([]string, t.Len())
	for i, r := range records {
		labels[i] = r.Label()
	}
	ix.Documents = registry.New(registry.KindDocument, labels)

	log.WithFields(log.Fields{
		"documents":  t.Len(),
		"authors":    len(authorNames),
		"references": len(ix.UniqueReferences),
	}).Debug("derived index")
	return ix, nil
}

func (ix *Index) addEntity(kind registry.Kind, perDoc [][]string) {
	vocab := entity.NewVocabulary(perDoc, ix.Citations, entity.IsSentinel).ByFrequency()
	ix.entities[kind] = &EntityClass{
		Kind:        kind,
		PerDocument: perDoc,
		Vocabulary:  vocab,
		Registry:    registry.New(kind, vocab.Names),
	}
}

// Entity returns the derived class of kind, or nil for KindDocument and
// unknown kinds.
func (ix *Index) Entity(kind registry.Kind) *EntityClass {
	return ix.entities[kind]
}

// Registry returns the identifier table of kind.
func (ix *Index) Registry(kind registry.Kind) *registry.Registry {
	if kind == registry.KindDocument {
		return ix.Documents
	}
	if e := ix.entities[kind]; e != nil {
		return e.Registry
	}
	return nil
}

// Len returns the number of documents.
func (ix *Index) Len() int {
	return ix.Corpus.Len()
}

func parseYears(values []string) []int {
	out := make([]int, len(values))
	for i, v := range values {
		y, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			y = metrics.NoYear
		}
		out[i] = y
	}
	return out
}

func withoutSentinel(names []string) []string {
	out := names[:0:0]
	for _, n := range names {
		if n != document.Unknown {
			out = append(out, n)
		}
	}
	return out
}

func countDocumentTypes(types []string) []DocumentType {
	byType := make(map[string][]int)
	for i, t := range types {
		byType[t] = append(byType[t], i)
	}
	out := make([]DocumentType, 0, len(byType))
	for t, docs := range byType {
		out = append(out, DocumentType{Type: t, Count: len(docs), Documents: docs})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Type < out[b].Type })
	return out
}
