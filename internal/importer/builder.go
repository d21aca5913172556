package importer

import (
	"strconv"
	"strings"

	"github.com/araddon/dateparse"

	"github.com/matsen/bibx/internal/document"
)

// Build assembles mapped tokens into one record per DocStart marker. A tag
// repeated within a record keeps its last value. Keyword fields use ';' as
// their only delimiter, and Web of Science records without a year take it
// from the date-added field.
func Build(d document.Dialect, tokens []Token) ([]document.Record, error) {
	var records []document.Record
	for _, tok := range tokens {
		if tok.Name == DocStart {
			records = append(records, document.NewRecord(d))
			continue
		}
		if len(records) == 0 {
			return nil, &ParseError{Dialect: d, Line: tok.Line, Msg: "field " + tok.Name + " outside of a record"}
		}
		records[len(records)-1].Fields[tok.Name] = tok.Value
	}

	for _, r := range records {
		for _, f := range []string{document.FieldKeywords, document.FieldAuthorKeywords} {
			if v, ok := r.Fields[f]; ok {
				r.Fields[f] = strings.ReplaceAll(v, ",", ";")
			}
		}
		if d == document.WebOfScience && !r.Has(document.FieldYear) && r.Has(document.FieldDateAdded) {
			if y := yearFromDate(r.Fields[document.FieldDateAdded]); y != "" {
				r.Fields[document.FieldYear] = y
			}
		}
	}

	return records, nil
}

// yearFromDate extracts a four-digit year from a date string, falling back
// to its first four characters when they are digits.
func yearFromDate(s string) string {
	s = strings.TrimSpace(s)
	if t, err := dateparse.ParseAny(s); err == nil {
		return strconv.Itoa(t.Year())
	}
	if len(s) >= 4 {
		if _, err := strconv.Atoi(s[:4]); err == nil {
			return s[:4]
		}
	}
	return ""
}
