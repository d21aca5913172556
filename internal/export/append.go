package export

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/matsen/bibx/internal/dedupe"
	"github.com/matsen/bibx/internal/document"
)

var (
	// entryStartRegex matches "@type{key,".
	entryStartRegex = regexp.MustCompile(`@\w+\{([^,]+),`)
	// doiFieldRegex matches doi = {value} or doi = "value".
	doiFieldRegex = regexp.MustCompile(`(?i)^\s*doi\s*=\s*[\{"]([^\}"]+)[\}"]`)
)

// BibTeXIndex indexes the entries of an existing .bib file.
type BibTeXIndex struct {
	// Keys maps citation keys to true for existence check
	Keys map[string]bool
	// DOIs maps normalized DOI values to citation keys
	DOIs map[string]string
}

// NewBibTeXIndex creates an empty BibTeX index.
func NewBibTeXIndex() *BibTeXIndex {
	return &BibTeXIndex{
		Keys: make(map[string]bool),
		DOIs: make(map[string]string),
	}
}

// HasEntry reports whether the entry already exists. DOI is the primary
// match; the citation key is the fallback when there is no DOI.
func (idx *BibTeXIndex) HasEntry(key, doi string) bool {
	if k := normalizeDOI(doi); k != "" {
		if _, exists := idx.DOIs[k]; exists {
			return true
		}
	}
	return idx.Keys[key]
}

// ParseBibTeXFile builds an index from an existing .bib file.
// Returns an empty index if the file doesn't exist.
func ParseBibTeXFile(path string) (*BibTeXIndex, error) {
	idx := NewBibTeXIndex()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	var currentKey string
	for scanner.Scan() {
		line := scanner.Text()

		if matches := entryStartRegex.FindStringSubmatch(line); len(matches) > 1 {
			currentKey = strings.TrimSpace(matches[1])
			idx.Keys[currentKey] = true
		}

		if matches := doiFieldRegex.FindStringSubmatch(line); len(matches) > 1 {
			if doi := normalizeDOI(matches[1]); doi != "" && currentKey != "" {
				idx.DOIs[doi] = currentKey
			}
		}
	}

	return idx, scanner.Err()
}

// normalizeDOI strips resolver prefixes before the duplicate-rule
// normalization.
func normalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range []string{"https://doi.org/", "http://doi.org/", "doi.org/", "DOI:", "doi:"} {
		doi = strings.TrimPrefix(doi, prefix)
	}
	return dedupe.DOIKey(doi)
}

// AppendResult counts what AppendBibTeX did.
type AppendResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// AppendBibTeX appends the records of t that the file at path does not
// already hold, matched by DOI and then by citation key.
func AppendBibTeX(path string, t *document.Table) (AppendResult, error) {
	idx, err := ParseBibTeXFile(path)
	if err != nil {
		return AppendResult{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var res AppendResult
	var b strings.Builder
	for i := 0; i < t.Len(); i++ {
		r := t.Record(i)
		key := CitationKey(r, i)
		if idx.HasEntry(key, r.Get(document.FieldDOI)) {
			res.Skipped++
			continue
		}
		b.WriteString("\n")
		b.WriteString(ToBibTeX(key, r))
		res.Added++

		idx.Keys[key] = true
		if doi := normalizeDOI(r.Get(document.FieldDOI)); doi != "" {
			idx.DOIs[doi] = key
		}
	}
	if res.Added == 0 {
		return res, nil
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return AppendResult{}, err
	}
	defer file.Close()

	if _, err := file.WriteString(b.String()); err != nil {
		return AppendResult{}, err
	}
	return res, nil
}
