// Package export writes the corpus and its derived tables to BibTeX and
// spreadsheet files.
package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/matsen/bibx/internal/document"
)

// leadingFields are written first, in this order; the rest follow sorted.
var leadingFields = []string{
	document.FieldAuthor,
	document.FieldTitle,
	document.FieldJournal,
	document.FieldYear,
}

// verbatimFields are written without LaTeX escaping.
var verbatimFields = map[string]bool{
	document.FieldDOI: true,
	"url":             true,
}

// ToBibTeX renders one record in the Scopus-like canonical form. Fields
// holding the placeholder are left out.
func ToBibTeX(key string, r document.Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "@%s{%s,\n", entryType(r.Get(document.FieldDocumentType)), key)

	written := make(map[string]bool, len(leadingFields))
	for _, f := range leadingFields {
		written[f] = true
		writeField(&b, f, r)
	}

	rest := make([]string, 0, len(r.Fields))
	for f := range r.Fields {
		if !written[f] {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	for _, f := range rest {
		writeField(&b, f, r)
	}

	b.WriteString("}\n")
	return b.String()
}

func writeField(b *strings.Builder, name string, r document.Record) {
	if !r.Has(name) {
		return
	}
	value := r.Get(name)
	if !verbatimFields[name] {
		value = escapeLatex(value)
	}
	fmt.Fprintf(b, "%s={%s},\n", name, value)
}

// ToBibTeXList renders every record of t, keyed by CitationKey.
func ToBibTeXList(t *document.Table) string {
	entries := make([]string, t.Len())
	for i := range entries {
		r := t.Record(i)
		entries[i] = ToBibTeX(CitationKey(r, i), r)
	}
	return strings.Join(entries, "\n")
}

// CitationKey builds "Lastname2020-i" from the first author and year. The
// position suffix keeps keys unique within one export.
func CitationKey(r document.Record, i int) string {
	var key strings.Builder
	if r.Has(document.FieldAuthor) {
		first, _, _ := strings.Cut(r.Get(document.FieldAuthor), " and ")
		family, _, found := strings.Cut(first, ",")
		if words := strings.Fields(first); !found && len(words) > 0 {
			family = words[0]
		}
		for _, c := range family {
			if unicode.IsLetter(c) {
				key.WriteRune(c)
			}
		}
	}
	if key.Len() == 0 {
		key.WriteString("Anonymous")
	}
	if r.Has(document.FieldYear) {
		key.WriteString(strings.TrimSpace(r.Get(document.FieldYear)))
	}
	key.WriteString("-")
	key.WriteString(strconv.Itoa(i))
	return key.String()
}

// entryType maps a canonical document type to a BibTeX entry type.
func entryType(documentType string) string {
	switch documentType {
	case "Conference Paper", "Conference Review":
		return "inproceedings"
	case "Book":
		return "book"
	case "Book Chapter":
		return "incollection"
	}
	return "article"
}

// escapeLatex escapes special LaTeX characters. Sequences already escaped
// by the source database are left alone.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		`\&`, `\&`,
		`\%`, `\%`,
		`\_`, `\_`,
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}
