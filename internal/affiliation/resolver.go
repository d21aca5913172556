// Package affiliation resolves countries and institutions from raw
// affiliation text and aligns them with a document's author list.
package affiliation

import (
	"regexp"
	"strings"

	"github.com/matsen/bibx/internal/document"
)

// Resolver matches affiliation segments against the country gazetteer and
// the institution indicators.
type Resolver struct {
	countries  []string
	lower      []string
	indicators []string
	aliases    []aliasRule
}

type aliasRule struct {
	re *regexp.Regexp
	to string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithIndicators appends institution indicators after the built-in ones.
func WithIndicators(extra ...string) Option {
	return func(r *Resolver) {
		for _, ind := range extra {
			ind = strings.ToLower(strings.TrimSpace(ind))
			if ind != "" {
				r.indicators = append(r.indicators, ind)
			}
		}
	}
}

// WithAliases appends country aliases applied to Web of Science addresses
// after the built-in ones.
func WithAliases(extra ...Alias) Option {
	return func(r *Resolver) {
		for _, a := range extra {
			if a.From == "" {
				continue
			}
			r.aliases = append(r.aliases, newAliasRule(a))
		}
	}
}

// NewResolver returns a Resolver over the built-in gazetteers.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		countries:  Countries,
		lower:      make([]string, len(Countries)),
		indicators: append([]string(nil), InstitutionIndicators...),
	}
	for i, c := range Countries {
		r.lower[i] = strings.ToLower(c)
	}
	for _, a := range WoSCountryAliases {
		r.aliases = append(r.aliases, newAliasRule(a))
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func newAliasRule(a Alias) aliasRule {
	return aliasRule{re: regexp.MustCompile("(?i)" + regexp.QuoteMeta(a.From)), to: a.To}
}

// Resolve returns the countries and institutions of one document, each
// padded to len(authors). authors must be the document's lowercased author
// list.
func (r *Resolver) Resolve(d document.Dialect, affiliation string, authors []string) (countries, institutions []string) {
	if affiliation == "" || affiliation == document.Unknown {
		return Pad(nil, len(authors)), Pad(nil, len(authors))
	}

	var candidates []string
	switch d {
	case document.WebOfScience:
		countries, candidates = r.resolveWoS(affiliation, authors)
	default:
		countries, candidates = r.resolveDelimited(d, affiliation)
	}

	for _, c := range candidates {
		if name := r.institutionName(c); name != "" {
			institutions = append(institutions, name)
		}
	}
	return Pad(countries, len(authors)), Pad(institutions, len(authors))
}

// Country returns the first gazetteer country contained in segment, or "".
func (r *Resolver) Country(segment string) string {
	segment = strings.ToLower(segment)
	for i, c := range r.lower {
		if strings.Contains(segment, c) {
			return r.countries[i]
		}
	}
	return ""
}

func (r *Resolver) hasIndicator(segment string) bool {
	for _, ind := range r.indicators {
		if strings.Contains(segment, ind) {
			return true
		}
	}
	return false
}

// institutionName narrows a candidate segment to the comma-separated part
// that carries the first matching indicator.
func (r *Resolver) institutionName(candidate string) string {
	parts := strings.Split(candidate, ",")
	for _, ind := range r.indicators {
		for _, p := range parts {
			if strings.Contains(strings.ToLower(p), ind) {
				return strings.Join(strings.Fields(p), " ")
			}
		}
	}
	return ""
}

func (r *Resolver) resolveDelimited(d document.Dialect, affiliation string) (countries, candidates []string) {
	text := strings.ToLower(affiliation)

	var segments []string
	if d == document.PubMed {
		segments = strings.FieldsFunc(text, func(c rune) bool { return c == ',' || c == ';' })
	} else {
		segments = strings.Split(strings.TrimSpace(text), ";")
	}

	for _, seg := range segments {
		if c := r.Country(seg); c != "" {
			countries = append(countries, c)
		}
		if r.hasIndicator(seg) {
			candidates = appendUnique(candidates, strings.TrimSpace(seg))
		}
	}
	return countries, candidates
}

// resolveWoS attributes each address segment to the authors named in it.
// Author names lose their periods first so that "smith, j." survives the
// split on '.'.
func (r *Resolver) resolveWoS(affiliation string, authors []string) (countries, candidates []string) {
	text := affiliation
	for _, a := range r.aliases {
		text = a.re.ReplaceAllLiteralString(text, a.to)
	}
	text = strings.ToLower(text)

	stripped := make([]string, len(authors))
	for i, name := range authors {
		stripped[i] = strings.ReplaceAll(name, ".", "")
		if name != "" {
			text = strings.ReplaceAll(text, name, stripped[i])
		}
	}

	segments := strings.Split(strings.TrimSpace(text), ".")
	segments = segments[:len(segments)-1]

	for _, seg := range segments {
		for _, name := range stripped {
			if name == "" || !strings.Contains(seg, name) {
				continue
			}
			if c := r.Country(seg); c != "" {
				countries = append(countries, c)
			}
			if r.hasIndicator(seg) {
				candidates = appendUnique(candidates, strings.ReplaceAll(strings.TrimSpace(seg), `\&`, "and"))
			}
		}
	}
	return countries, candidates
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
