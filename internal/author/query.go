// Package author provides author name parsing and matching for search
// queries, and fuzzy grouping of near-identical names.
package author

import (
	"strings"
	"unicode"
)

// Name is an author name split into its parts.
type Name struct {
	First string // Given names or initials (may be empty)
	Last  string // Family name
}

// Query represents a parsed author search query.
type Query Name

// ParseQuery parses an author search string into a structured Query.
//
// Supported formats:
//   - "Yu"           → last="Yu" (single word = last name only)
//   - "Timothy Yu"   → first="Timothy", last="Yu" (space-separated = First Last)
//   - "Yu, Timothy"  → first="Timothy", last="Yu" (comma = Last, First)
//
// Names are trimmed but case is preserved (matching is case-insensitive).
func ParseQuery(input string) Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}
	}

	// Check for comma format: "Last, First"
	if idx := strings.Index(input, ","); idx > 0 {
		last := strings.TrimSpace(input[:idx])
		first := strings.TrimSpace(input[idx+1:])
		return Query{First: first, Last: last}
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		return Query{Last: parts[0]}
	}

	// Multiple words: last word is last name, rest is first name
	// e.g., "Timothy C Yu" → first="Timothy C", last="Yu"
	last := parts[len(parts)-1]
	first := strings.Join(parts[:len(parts)-1], " ")
	return Query{First: first, Last: last}
}

// ParseName splits an author entry as exported by the bibliographic
// databases: "smith, j." (Scopus, Web of Science) or "smith jc" (MEDLINE,
// family name first, initials last).
func ParseName(entry string) Name {
	entry = strings.TrimSpace(entry)
	if idx := strings.Index(entry, ","); idx > 0 {
		return Name{Last: strings.TrimSpace(entry[:idx]), First: strings.TrimSpace(entry[idx+1:])}
	}
	parts := strings.Fields(entry)
	switch {
	case len(parts) == 0:
		return Name{}
	case len(parts) == 1:
		return Name{Last: parts[0]}
	}
	if tail := parts[len(parts)-1]; isInitials(tail) {
		return Name{Last: strings.Join(parts[:len(parts)-1], " "), First: tail}
	}
	return Name{Last: parts[len(parts)-1], First: strings.Join(parts[:len(parts)-1], " ")}
}

// Matches checks if the query matches an author vocabulary entry.
//
// Matching rules:
//   - Last name: case-insensitive exact match (required)
//   - First name: case-insensitive prefix match, or initials match when the
//     entry only carries initials
//
// This enables "Tim Yu" to match "yu, timothy c." and "yu, t." while
// preventing "Yu" from matching "yujia, a.".
func (q Query) Matches(entry string) bool {
	a := ParseName(entry)
	if !strings.EqualFold(q.Last, a.Last) {
		return false
	}
	if q.First == "" {
		return true
	}

	first := strings.ToLower(a.First)
	want := strings.ToLower(q.First)
	if strings.HasPrefix(first, want) {
		return true
	}
	if isInitials(first) && first != "" {
		qi, ei := initials(want), compact(first)
		return strings.HasPrefix(qi, ei) || strings.HasPrefix(ei, qi)
	}
	return false
}

// MatchesAny checks if the query matches any author in the list.
func (q Query) MatchesAny(entries []string) bool {
	for _, a := range entries {
		if q.Matches(a) {
			return true
		}
	}
	return false
}

// AllMatch checks if all queries match at least one author each.
// This implements AND logic for multiple author filters.
func AllMatch(queries []Query, entries []string) bool {
	for _, q := range queries {
		if !q.MatchesAny(entries) {
			return false
		}
	}
	return true
}

// isInitials reports whether every part of s, split on spaces, periods and
// hyphens, has at most two letters.
func isInitials(s string) bool {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '.' || r == '-' })
	if len(parts) == 0 {
		return false
	}
	for _, p := range parts {
		if len([]rune(p)) > 2 {
			return false
		}
	}
	return true
}

func compact(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}

// initials returns the first letter of each word of s.
func initials(s string) string {
	var b strings.Builder
	for _, w := range strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '.' || r == '-' }) {
		for _, r := range w {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}
