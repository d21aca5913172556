package analysis

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/matsen/bibx/internal/document"
	"github.com/matsen/bibx/internal/metrics"
	"github.com/matsen/bibx/internal/registry"
)

// Filter selects documents. Zero-valued fields are inactive. The steps run
// in field order and the index is re-derived after each one, so later steps
// see the vocabularies of the already narrowed set.
type Filter struct {
	DocumentTypes   []string     `json:"document_types,omitempty"`
	YearFrom        int          `json:"year_from,omitempty"`
	YearTo          int          `json:"year_to,omitempty"`
	Sources         []string     `json:"sources,omitempty"`
	Zone            metrics.Zone `json:"zone,omitempty"`
	Countries       []string     `json:"countries,omitempty"`
	Languages       []string     `json:"languages,omitempty"`
	RequireAbstract bool         `json:"require_abstract,omitempty"`
}

type filterStep struct {
	name   string
	active bool
	// keep returns the predicate for documents of ix. When keepAllOnEmpty
	// is set and no document survives, the step leaves the set unchanged.
	keep           func(ix *Index) func(i int) bool
	keepAllOnEmpty bool
}

func (f Filter) steps() []filterStep {
	return []filterStep{
		{
			name:   "document_type",
			active: len(f.DocumentTypes) > 0,
			keep: func(ix *Index) func(int) bool {
				return func(i int) bool {
					return contains(f.DocumentTypes, ix.Corpus.table.Value(i, document.FieldDocumentType))
				}
			},
			keepAllOnEmpty: true,
		},
		{
			name:   "year_from",
			active: f.YearFrom > 0,
			keep: func(ix *Index) func(int) bool {
				return func(i int) bool {
					return ix.Years[i] != metrics.NoYear && ix.Years[i] >= f.YearFrom
				}
			},
		},
		{
			name:   "year_to",
			active: f.YearTo > 0,
			keep: func(ix *Index) func(int) bool {
				return func(i int) bool {
					return ix.Years[i] != metrics.NoYear && ix.Years[i] <= f.YearTo
				}
			},
		},
		{
			name:   "source",
			active: len(f.Sources) > 0,
			keep: func(ix *Index) func(int) bool {
				return func(i int) bool {
					srcs := ix.entities[registry.KindSource].PerDocument[i]
					return len(srcs) > 0 && containsFold(f.Sources, srcs[0])
				}
			},
			keepAllOnEmpty: true,
		},
		{
			name:   "zone",
			active: f.Zone != 0,
			keep: func(ix *Index) func(int) bool {
				zone := ix.zoneSources(f.Zone)
				return func(i int) bool {
					for _, s := range ix.entities[registry.KindSource].PerDocument[i] {
						if zone[s] {
							return true
						}
					}
					return false
				}
			},
		},
		{
			name:   "country",
			active: len(f.Countries) > 0,
			keep: func(ix *Index) func(int) bool {
				return func(i int) bool {
					for _, c := range ix.entities[registry.KindCountry].PerDocument[i] {
						if contains(f.Countries, c) {
							return true
						}
					}
					return false
				}
			},
			keepAllOnEmpty: true,
		},
		{
			name:   "language",
			active: len(f.Languages) > 0,
			keep: func(ix *Index) func(int) bool {
				return func(i int) bool {
					return contains(f.Languages, ix.Corpus.table.Value(i, document.FieldLanguage))
				}
			},
		},
		{
			name:   "abstract",
			active: f.RequireAbstract,
			keep: func(ix *Index) func(int) bool {
				return func(i int) bool {
					return ix.Corpus.table.Value(i, document.FieldAbstract) != document.Unknown
				}
			},
		},
	}
}

// Apply runs f against ix and returns the narrowed corpus with its index.
func Apply(ix *Index, f Filter, opts Options) (*Index, error) {
	if _, err := validZone(f.Zone); err != nil {
		return nil, err
	}

	current := ix
	for _, step := range f.steps() {
		if !step.active {
			continue
		}
		var keep []int
		pred := step.keep(current)
		for i := 0; i < current.Len(); i++ {
			if pred(i) {
				keep = append(keep, i)
			}
		}
		if len(keep) == 0 && step.keepAllOnEmpty {
			log.WithField("filter", step.name).Debug("no document matched; filter skipped")
			continue
		}
		if len(keep) == current.Len() {
			continue
		}

		next := derived(current.Corpus.table.Select(keep), originFiltered)
		var err error
		current, err = Derive(next, opts)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"filter": step.name, "documents": current.Len()}).Debug("filter applied")
	}

	if current.Corpus.origin != originFiltered {
		// Nothing was removed; still report the set as filtered.
		out := *current
		out.Corpus = derived(current.Corpus.table, originFiltered)
		return &out, nil
	}
	return current, nil
}

func validZone(z metrics.Zone) (metrics.Zone, error) {
	if z == 0 {
		return 0, nil
	}
	return metrics.ParseZone(int(z))
}

// zoneSources returns the set of source names in zone.
func (ix *Index) zoneSources(zone metrics.Zone) map[string]bool {
	v := ix.entities[registry.KindSource].Vocabulary
	set := make(map[string]bool)
	for _, name := range metrics.BradfordSources(v.Names, v.Documents, zone) {
		set[name] = true
	}
	return set
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), s) {
			return true
		}
	}
	return false
}
