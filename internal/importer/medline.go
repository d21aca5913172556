package importer

import (
	"strings"

	"github.com/matsen/bibx/internal/document"
)

// medlineIndent is the six-column indent of a wrapped MEDLINE value.
const medlineIndent = "      "

// medlineJoin gives the separator used when a tag repeats within a record.
// Tags not listed join with "; ".
var medlineJoin = map[string]string{
	"FAU":  "; ",
	"AU":   " and ",
	"AUID": "; ",
	"AD":   "; ",
}

// medlineParser reads the PubMed MEDLINE text export: a four-character tag,
// a dash in column five, the value from column seven.
type medlineParser struct{}

func (medlineParser) Dialect() document.Dialect {
	return document.PubMed
}

func (medlineParser) Tokenize(raw string) ([]Token, error) {
	var tokens []Token
	var rec *medlineRecord

	for _, ln := range splitLines(raw) {
		text := ln.text
		if isBlank(text) {
			continue
		}

		if strings.HasPrefix(text, medlineIndent) {
			if rec == nil || rec.last == nil {
				return nil, &ParseError{Dialect: document.PubMed, Line: ln.num, Msg: "continuation line before any tag"}
			}
			rec.last.Value = joinNonEmpty(rec.last.Value, strings.TrimSpace(text), " ")
			continue
		}

		if len(text) < 5 || text[4] != '-' {
			return nil, &ParseError{Dialect: document.PubMed, Line: ln.num, Msg: "malformed tag line: " + text}
		}
		tag := strings.ToUpper(strings.TrimSpace(text[:4]))
		value := strings.TrimSpace(text[5:])

		if tag == "PMID" {
			if rec != nil {
				tokens = append(tokens, rec.tokens()...)
			}
			rec = &medlineRecord{start: ln.num, index: make(map[string]*Token)}
		}
		if rec == nil {
			return nil, &ParseError{Dialect: document.PubMed, Line: ln.num, Msg: "tag " + tag + " before the first PMID"}
		}
		rec.add(tag, value, ln.num)
	}

	if rec != nil {
		tokens = append(tokens, rec.tokens()...)
	}
	return tokens, nil
}

// medlineRecord folds the tag lines of one record.
type medlineRecord struct {
	start   int
	entries []*Token
	index   map[string]*Token
	last    *Token // target for the next continuation line
	discard Token
}

func (r *medlineRecord) add(tag, value string, num int) {
	switch tag {
	case "LID", "AID":
		// Only the DOI locator is kept, stored under LID.
		if !strings.HasSuffix(value, "[doi]") || r.index["LID"] != nil {
			r.discard = Token{}
			r.last = &r.discard
			return
		}
		tag = "LID"
	case "PT":
		if r.index["PT"] != nil {
			r.discard = Token{}
			r.last = &r.discard
			return
		}
	}

	if existing := r.index[tag]; existing != nil {
		sep, ok := medlineJoin[tag]
		if !ok {
			sep = "; "
		}
		existing.Value = joinNonEmpty(existing.Value, value, sep)
		r.last = existing
		return
	}

	tok := &Token{Name: tag, Value: value, Line: num}
	r.entries = append(r.entries, tok)
	r.index[tag] = tok
	r.last = tok
}

// tokens emits the record with its DocStart marker and the PubMed defaults:
// zero citations and the source name.
func (r *medlineRecord) tokens() []Token {
	out := make([]Token, 0, len(r.entries)+3)
	out = append(out,
		Token{Name: DocStart, Value: DocStart, Line: r.start},
		Token{Name: document.FieldNote, Value: "0", Line: r.start},
		Token{Name: document.FieldSource, Value: "PubMed", Line: r.start},
	)
	for _, e := range r.entries {
		out = append(out, Token{Name: strings.ToLower(e.Name), Value: e.Value, Line: e.Line})
	}
	return out
}
