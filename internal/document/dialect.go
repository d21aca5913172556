package document

import (
	"fmt"
	"strings"
)

// Dialect identifies the bibliographic export format a record came from.
type Dialect int

const (
	// Scopus is the Scopus BibTeX export.
	Scopus Dialect = iota
	// WebOfScience is the Web of Science BibTeX export.
	WebOfScience
	// PubMed is the PubMed MEDLINE text export.
	PubMed
)

// Dialects lists every supported dialect in selector order.
var Dialects = []Dialect{Scopus, WebOfScience, PubMed}

var dialectNames = map[Dialect]string{
	Scopus:       "scopus",
	WebOfScience: "wos",
	PubMed:       "pubmed",
}

// String returns the selector name used on the command line and in storage.
func (d Dialect) String() string {
	if name, ok := dialectNames[d]; ok {
		return name
	}
	return fmt.Sprintf("dialect(%d)", int(d))
}

// ParseDialect resolves a selector name ("scopus", "wos", "pubmed").
func ParseDialect(s string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for d, name := range dialectNames {
		if name == key {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown dialect %q (valid: scopus, wos, pubmed)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Dialect) MarshalText() ([]byte, error) {
	if _, ok := dialectNames[d]; !ok {
		return nil, fmt.Errorf("unknown dialect %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dialect) UnmarshalText(text []byte) error {
	parsed, err := ParseDialect(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
