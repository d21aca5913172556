// Package entity splits delimited document fields into per-document lists
// and builds the unique vocabularies derived from them.
package entity

import (
	"sort"
	"strings"
)

// noteToken is a stray marker some exports leave inside delimited fields.
const noteToken = "note"

// SplitValue splits one raw field value on sep. Tokens are trimmed and have
// internal whitespace collapsed; empty tokens and the literal "note" are
// dropped.
func SplitValue(value, sep string, lower bool) []string {
	parts := strings.Split(value, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == noteToken {
			continue
		}
		p = strings.Join(strings.Fields(p), " ")
		if p == "" {
			continue
		}
		if lower {
			p = strings.ToLower(p)
		}
		out = append(out, p)
	}
	return out
}

// Split applies SplitValue to every value and returns the per-document
// lists together with the sorted set of distinct tokens.
func Split(values []string, sep string, lower bool) (perDoc [][]string, unique []string) {
	perDoc = make([][]string, len(values))
	seen := make(map[string]bool)
	for i, v := range values {
		perDoc[i] = SplitValue(v, sep, lower)
		for _, tok := range perDoc[i] {
			if !seen[tok] {
				seen[tok] = true
				unique = append(unique, tok)
			}
		}
	}
	sort.Strings(unique)
	return perDoc, unique
}

// Flatten concatenates per-document lists in document order.
func Flatten(perDoc [][]string) []string {
	var out []string
	for _, list := range perDoc {
		out = append(out, list...)
	}
	return out
}
