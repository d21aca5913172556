// Package document defines the canonical bibliographic record and the
// fixed-column table every dialect is normalized into.
package document

import "strings"

// Unknown is the placeholder stored in every field a record does not provide.
const Unknown = "UNKNOWN"

// Canonical field names.
const (
	FieldAbbrevSourceTitle = "abbrev_source_title"
	FieldAbstract          = "abstract"
	FieldAffiliation       = "affiliation"
	FieldAuthorAffiliation = "author_affiliation"
	FieldArtNumber         = "art_number"
	FieldAuthor            = "author"
	FieldAuthorKeywords    = "author_keywords"
	FieldDateAdded         = "da"
	FieldDocumentType      = "document_type"
	FieldDOI               = "doi"
	FieldJournal           = "journal"
	FieldKeywords          = "keywords"
	FieldLanguage          = "language"
	FieldNote              = "note"
	FieldPubMedID          = "pubmed_id"
	FieldReferences        = "references"
	FieldSource            = "source"
	FieldTitle             = "title"
	FieldYear              = "year"
)

// CanonicalFields is the fixed column set every table carries, whatever
// the dialect. Sorted.
var CanonicalFields = []string{
	"abbrev_source_title", "abstract", "address", "affiliation", "art_number",
	"author", "author_keywords", "chemicals_cas", "coden", "correspondence_address1",
	"document_type", "doi", "editor", "funding_details",
	"funding_text_1", "funding_text_2", "funding_text_3",
	"isbn", "issn", "journal", "keywords", "language", "note", "number",
	"page_count", "pages", "publisher", "pubmed_id", "references", "source",
	"sponsors", "title", "tradenames", "url", "volume", "year",
}

// IsCanonical reports whether name belongs to the fixed column set.
func IsCanonical(name string) bool {
	for _, f := range CanonicalFields {
		if f == name {
			return true
		}
	}
	return false
}

// Record is one bibliographic document. Fields holds raw values keyed by
// canonical (or preserved extra) field name.
type Record struct {
	Dialect Dialect           `json:"dialect"`
	Fields  map[string]string `json:"fields"`
}

// NewRecord returns an empty record for the given dialect.
func NewRecord(d Dialect) Record {
	return Record{Dialect: d, Fields: make(map[string]string)}
}

// Get returns the field value, or Unknown when absent or blank.
func (r Record) Get(name string) string {
	v, ok := r.Fields[name]
	if !ok || strings.TrimSpace(v) == "" {
		return Unknown
	}
	return v
}

// Has reports whether the field carries a real (non-placeholder) value.
func (r Record) Has(name string) bool {
	return r.Get(name) != Unknown
}

// Clone returns a deep copy so edits never leak into a shared table.
func (r Record) Clone() Record {
	fields := make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}
	return Record{Dialect: r.Dialect, Fields: fields}
}

// Label renders the display string used for document nodes and ID tables:
// "author (year). title. journal. doi:X. "
func (r Record) Label() string {
	var b strings.Builder
	b.WriteString(r.Get(FieldAuthor))
	b.WriteString(" (")
	b.WriteString(r.Get(FieldYear))
	b.WriteString("). ")
	b.WriteString(r.Get(FieldTitle))
	b.WriteString(". ")
	b.WriteString(r.Get(FieldJournal))
	b.WriteString(". doi:")
	b.WriteString(r.Get(FieldDOI))
	b.WriteString(". ")
	return b.String()
}
