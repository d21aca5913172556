// Package registry assigns positional, type-prefixed identifiers to the
// names of one entity class.
package registry

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is an entity class.
type Kind string

const (
	KindDocument      Kind = "document"
	KindAuthor        Kind = "author"
	KindSource        Kind = "source"
	KindInstitution   Kind = "institution"
	KindCountry       Kind = "country"
	KindAuthorKeyword Kind = "author_keyword"
	KindKeywordPlus   Kind = "keyword_plus"
)

// Kinds lists every entity class in display order.
var Kinds = []Kind{
	KindDocument,
	KindAuthor,
	KindSource,
	KindInstitution,
	KindCountry,
	KindAuthorKeyword,
	KindKeywordPlus,
}

var prefixes = map[Kind]string{
	KindDocument:      "",
	KindAuthor:        "a_",
	KindSource:        "j_",
	KindInstitution:   "i_",
	KindCountry:       "c_",
	KindAuthorKeyword: "k_",
	KindKeywordPlus:   "p_",
}

// Prefix returns the identifier prefix of the kind. Documents have none.
func (k Kind) Prefix() string {
	return prefixes[k]
}

// ParseKind accepts a kind name or its identifier prefix letter.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds {
		if s == string(k) || (k.Prefix() != "" && s == strings.TrimSuffix(k.Prefix(), "_")) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// KindOf infers the kind from an identifier.
func KindOf(id string) (Kind, bool) {
	for _, k := range Kinds {
		if p := k.Prefix(); p != "" && strings.HasPrefix(id, p) {
			return k, true
		}
	}
	if _, err := strconv.Atoi(id); err == nil {
		return KindDocument, true
	}
	return "", false
}

// Entry pairs an identifier with its display name.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Registry is the identifier table of one kind. It is rebuilt from scratch
// whenever the name list changes.
type Registry struct {
	kind    Kind
	entries []Entry
	byID    map[string]string
	byName  map[string]string
}

// New numbers names in order: the i-th name gets Prefix()+i. When a name
// repeats, name lookups return its first identifier.
func New(kind Kind, names []string) *Registry {
	r := &Registry{
		kind:    kind,
		entries: make([]Entry, len(names)),
		byID:    make(map[string]string, len(names)),
		byName:  make(map[string]string, len(names)),
	}
	for i, name := range names {
		id := kind.Prefix() + strconv.Itoa(i)
		r.entries[i] = Entry{ID: id, Name: name}
		r.byID[id] = name
		if _, ok := r.byName[name]; !ok {
			r.byName[name] = id
		}
	}
	return r
}

// Kind returns the entity class.
func (r *Registry) Kind() Kind { return r.kind }

// Len returns the number of entries.
func (r *Registry) Len() int { return len(r.entries) }

// Entries returns the ID/name table in identifier order.
func (r *Registry) Entries() []Entry {
	return append([]Entry(nil), r.entries...)
}

// ID looks up the identifier of name.
func (r *Registry) ID(name string) (string, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Name looks up the display name of id.
func (r *Registry) Name(id string) (string, bool) {
	name, ok := r.byID[id]
	return name, ok
}

// NameToID returns a copy of the name to identifier map.
func (r *Registry) NameToID() map[string]string {
	out := make(map[string]string, len(r.byName))
	for k, v := range r.byName {
		out[k] = v
	}
	return out
}

// IDToName returns a copy of the identifier to name map.
func (r *Registry) IDToName() map[string]string {
	out := make(map[string]string, len(r.byID))
	for k, v := range r.byID {
		out[k] = v
	}
	return out
}
