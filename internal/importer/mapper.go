package importer

import (
	"strings"
	"unicode"

	"github.com/matsen/bibx/internal/document"
)

// wosFieldNames renames Web of Science tags onto the canonical vocabulary.
var wosFieldNames = map[string]string{
	"affiliation":      document.FieldAuthorAffiliation,
	"affiliations":     document.FieldAffiliation,
	"article-number":   document.FieldArtNumber,
	"cited-references": document.FieldReferences,
	"keywords":         document.FieldAuthorKeywords,
	"journal-iso":      document.FieldAbbrevSourceTitle,
	"keywords-plus":    document.FieldKeywords,
	"note":             "notes",
	"times-cited":      document.FieldNote,
	"type":             document.FieldDocumentType,
}

// pubmedFieldNames renames MEDLINE tags onto the canonical vocabulary.
var pubmedFieldNames = map[string]string{
	"ab":   document.FieldAbstract,
	"ad":   document.FieldAffiliation,
	"au":   document.FieldAuthor,
	"auid": "orcid",
	"fau":  "full_author",
	"lid":  document.FieldDOI,
	"dp":   document.FieldYear,
	"ed":   "editor",
	"ip":   "issue",
	"is":   "issn",
	"isbn": "isbn",
	"jt":   document.FieldJournal,
	"la":   document.FieldLanguage,
	"mh":   document.FieldKeywords,
	"ot":   document.FieldAuthorKeywords,
	"pg":   "pages",
	"pt":   document.FieldDocumentType,
	"pmid": document.FieldPubMedID,
	"ta":   document.FieldAbbrevSourceTitle,
	"ti":   document.FieldTitle,
	"vi":   "volume",
}

// wosDocumentTypes unifies Web of Science document types with Scopus.
var wosDocumentTypes = map[string]string{
	"Article; Early Access":          "Article in Press",
	"Article; Proceedings Paper":     "Proceedings Paper",
	"Article; Discussion":            "Article",
	"Article; Letter":                "Article",
	"Article; Excerpt":               "Article",
	"Article; Chronology":            "Article",
	"Article; Correction":            "Article",
	"Article; Correction, Addition":  "Article",
	"Article; Data Paper":            "Article",
	"Art Exhibit Review":             "Review",
	"Dance Performance Review":       "Review",
	"Music Performance Review":       "Review",
	"Music Score Review":             "Review",
	"Film Review":                    "Review",
	"TV Review, Radio Review":        "Review",
	"TV Review, Radio Review, Video": "Review",
	"Theater Review, Video":          "Review",
	"Database Review":                "Review",
	"Record Review":                  "Review",
	"Software Review":                "Review",
	"Hardware Review":                "Review",
}

// pubmedDocumentTypes unifies PubMed publication types with Scopus.
var pubmedDocumentTypes = map[string]string{
	"Clinical Study":                                           "Article",
	"Clinical Trial":                                           "Article",
	"Clinical Trial Protocol":                                  "Article",
	"Clinical Trial, Phase I":                                  "Article",
	"Clinical Trial, Phase II":                                 "Article",
	"Clinical Trial, Phase III":                                "Article",
	"Clinical Trial, Phase IV":                                 "Article",
	"Clinical Trial, Veterinary":                               "Article",
	"Comparative Study":                                        "Article",
	"Controlled Clinical Trial":                                "Article",
	"Corrected and Republished Article":                        "Article",
	"Duplicate Publication":                                    "Article",
	"Essay":                                                    "Article",
	"Historical Article":                                       "Article",
	"Journal Article":                                          "Article",
	"Letter":                                                   "Article",
	"Meta-Analysis":                                            "Article",
	"Randomized Controlled Trial":                              "Article",
	"Randomized Controlled Trial, Veterinary":                  "Article",
	"Research Support, N.I.H., Extramural":                     "Article",
	"Research Support, N.I.H., Intramural":                     "Article",
	"Research Support, Non-U.S. Gov't":                         "Article",
	"Research Support, U.S. Gov't, Non-P.H.S.":                 "Article",
	"Research Support, U.S. Gov't, P.H.S.":                     "Article",
	"Research Support, U.S. Government":                        "Article",
	"Research Support, American Recovery and Reinvestment Act": "Article",
	"Technical Report":                                         "Article",
	"Twin Study":                                               "Article",
	"Validation Study":                                         "Article",
	"Clinical Conference":                                      "Conference Paper",
	"Congress":                                                 "Conference Paper",
	"Consensus Development Conference":                         "Conference Paper",
	"Consensus Development Conference, NIH":                    "Conference Paper",
	"Systematic Review":                                        "Review",
	"Scientific Integrity Review":                              "Review",
}

// LanguageNames expands MEDLINE three-letter language codes.
var LanguageNames = map[string]string{
	"afr": "Afrikaans", "alb": "Albanian", "amh": "Amharic", "ara": "Arabic",
	"arm": "Armenian", "aze": "Azerbaijani", "bos": "Bosnian", "bul": "Bulgarian",
	"cat": "Catalan", "chi": "Chinese", "cze": "Czech", "dan": "Danish",
	"dut": "Dutch", "eng": "English", "epo": "Esperanto", "est": "Estonian",
	"fin": "Finnish", "fre": "French", "geo": "Georgian", "ger": "German",
	"gla": "Scottish Gaelic", "gre": "Greek, Modern", "heb": "Hebrew", "hin": "Hindi",
	"hrv": "Croatian", "hun": "Hungarian", "ice": "Icelandic", "ind": "Indonesian",
	"ita": "Italian", "jpn": "Japanese", "kin": "Kinyarwanda", "kor": "Korean",
	"lat": "Latin", "lav": "Latvian", "lit": "Lithuanian", "mac": "Macedonian",
	"mal": "Malayalam", "mao": "Maori", "may": "Malay", "mul": "Multiple languages",
	"nor": "Norwegian", "per": "Persian, Iranian", "pol": "Polish", "por": "Portuguese",
	"pus": "Pushto", "rum": "Romanian, Rumanian, Moldovan", "rus": "Russian",
	"san": "Sanskrit", "slo": "Slovak", "slv": "Slovenian", "spa": "Spanish",
	"srp": "Serbian", "swe": "Swedish", "tha": "Thai", "tur": "Turkish",
	"ukr": "Ukrainian", "und": "Undetermined", "vie": "Vietnamese", "wel": "Welsh",
}

// CanonicalDocumentType maps a dialect's document type onto the shared
// taxonomy. Unmapped types pass through unchanged.
func CanonicalDocumentType(d document.Dialect, docType string) string {
	var table map[string]string
	switch d {
	case document.WebOfScience:
		table = wosDocumentTypes
	case document.PubMed:
		table = pubmedDocumentTypes
	default:
		return docType
	}
	if mapped, ok := table[docType]; ok {
		return mapped
	}
	return docType
}

// ExpandLanguage expands each "; "-separated three-letter code it knows.
func ExpandLanguage(codes string) string {
	parts := strings.Split(codes, ";")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if name, ok := LanguageNames[strings.ToLower(p)]; ok {
			p = name
		}
		parts[i] = p
	}
	return strings.Join(parts, "; ")
}

func (p bibtexParser) Map(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		if tok.Name != DocStart {
			name := tok.Name
			if p.dialect == document.WebOfScience {
				if renamed, ok := wosFieldNames[name]; ok {
					name = renamed
				}
				name = strings.ReplaceAll(name, "-", "_")
			}
			tok.Name = normalizeFieldName(name)
			if tok.Name == document.FieldDocumentType {
				tok.Value = CanonicalDocumentType(p.dialect, tok.Value)
			}
		}
		out[i] = tok
	}
	return out
}

func (medlineParser) Map(tokens []Token) []Token {
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		if renamed, ok := pubmedFieldNames[tok.Name]; ok {
			switch tok.Name {
			case "dp":
				tok.Value = truncateRunes(tok.Value, 4)
			case "la":
				tok.Value = ExpandLanguage(tok.Value)
			case "lid":
				tok.Value = strings.TrimSpace(strings.TrimSuffix(tok.Value, "[doi]"))
			case "pt":
				tok.Value = CanonicalDocumentType(document.PubMed, tok.Value)
			}
			tok.Name = renamed
		}
		out[i] = tok
	}
	return out
}

// normalizeFieldName lowercases a tag and turns whitespace runs (including
// no-break spaces) into a single underscore.
func normalizeFieldName(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), unicode.IsSpace)
	return strings.Join(fields, "_")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
