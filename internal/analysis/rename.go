package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/matsen/bibx/internal/document"
)

// RenameTarget names the entity class whose spelling a rename edits.
type RenameTarget string

const (
	RenameAuthor      RenameTarget = "author"
	RenameInstitution RenameTarget = "institution"
	RenameCountry     RenameTarget = "country"
	RenameLanguage    RenameTarget = "language"
	RenameSource      RenameTarget = "source"
)

var renameFields = map[RenameTarget][]string{
	RenameAuthor:      {document.FieldAuthor},
	RenameInstitution: {document.FieldAffiliation, document.FieldAuthorAffiliation},
	RenameCountry:     {document.FieldAffiliation, document.FieldAuthorAffiliation},
	RenameLanguage:    {document.FieldLanguage},
	RenameSource:      {document.FieldAbbrevSourceTitle},
}

// ParseRenameTarget validates a rename target name.
func ParseRenameTarget(s string) (RenameTarget, error) {
	t := RenameTarget(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := renameFields[t]; !ok {
		return "", fmt.Errorf("unknown rename target %q (want author, institution, country, language or source)", s)
	}
	return t, nil
}

// Rename replaces every case-insensitive occurrence of each name in from
// with to, in the raw fields behind target. It returns the edited corpus and
// the number of documents changed.
func Rename(c *Corpus, target RenameTarget, from []string, to string) (*Corpus, int, error) {
	fields, ok := renameFields[target]
	if !ok {
		return nil, 0, fmt.Errorf("unknown rename target %q", target)
	}

	var patterns []*regexp.Regexp
	for _, name := range from {
		if strings.TrimSpace(name) == "" {
			continue
		}
		patterns = append(patterns, regexp.MustCompile("(?i)"+regexp.QuoteMeta(name)))
	}

	records := c.table.Records()
	changed := 0
	for i := range records {
		touched := false
		for _, field := range fields {
			v, ok := records[i].Fields[field]
			if !ok || v == document.Unknown {
				continue
			}
			edited := v
			for _, re := range patterns {
				edited = re.ReplaceAllLiteralString(edited, to)
			}
			if edited != v {
				records[i].Fields[field] = edited
				touched = true
			}
		}
		if touched {
			changed++
		}
	}

	out := derived(document.NewTable(records), c.origin)
	out.read, out.duplicates, out.added = c.read, c.duplicates, c.added
	return out, changed, nil
}
