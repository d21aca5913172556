package importer

import (
	"strings"

	"github.com/matsen/bibx/internal/document"
)

// wosIndent marks a Web of Science continuation line.
const wosIndent = "   "

// bibtexParser reads the Scopus and Web of Science BibTeX exports. Both put
// one "tag = {value}," per line; Web of Science wraps long values onto lines
// indented by three spaces.
type bibtexParser struct {
	dialect document.Dialect
}

func (p bibtexParser) Dialect() document.Dialect {
	return p.dialect
}

func (p bibtexParser) Tokenize(raw string) ([]Token, error) {
	lines := splitLines(raw)
	if p.dialect == document.WebOfScience {
		var err error
		lines, err = foldWoSContinuations(lines)
		if err != nil {
			return nil, err
		}
	}

	var tokens []Token
	inRecord := false
	lastTag := -1

	for _, ln := range lines {
		text := ln.text
		switch {
		case strings.HasPrefix(text, "@"):
			tokens = append(tokens, Token{Name: DocStart, Value: DocStart, Line: ln.num})
			if p.dialect == document.WebOfScience {
				tokens = append(tokens, Token{Name: document.FieldSource, Value: "WoS", Line: ln.num})
			}
			inRecord = true
			lastTag = -1

		case isBlank(text):
			continue

		case text[0] == ' ' || text[0] == '\t':
			if lastTag < 0 {
				return nil, &ParseError{Dialect: p.dialect, Line: ln.num, Msg: "continuation line before any tag"}
			}
			if v := cleanBibValue(text); v != "" {
				tokens[lastTag].Value = joinNonEmpty(tokens[lastTag].Value, v, " ")
			}

		case strings.Contains(text, "="):
			if !inRecord {
				return nil, &ParseError{Dialect: p.dialect, Line: ln.num, Msg: "tag line outside of a record"}
			}
			name, value, _ := strings.Cut(text, "=")
			tokens = append(tokens, Token{
				Name:  strings.ToLower(strings.TrimSpace(name)),
				Value: cleanBibValue(value),
				Line:  ln.num,
			})
			lastTag = len(tokens) - 1
		}
	}

	return tokens, nil
}

// foldWoSContinuations joins indented lines onto the line above. Lines under
// Cited-References each hold one reference: their own semicolons become
// commas and they are joined with ';'.
func foldWoSContinuations(lines []line) ([]line, error) {
	out := make([]line, 0, len(lines))
	for _, ln := range lines {
		if !strings.HasPrefix(ln.text, wosIndent) {
			out = append(out, ln)
			continue
		}
		if isBlank(ln.text) {
			continue
		}
		if len(out) == 0 {
			return nil, &ParseError{Dialect: document.WebOfScience, Line: ln.num, Msg: "continuation line before any tag"}
		}

		prev := &out[len(out)-1]
		cont := strings.TrimSpace(ln.text)
		if strings.Contains(strings.ToLower(prev.text), "cited-references") {
			prev.text += ";" + strings.ReplaceAll(cont, ";", ",")
		} else {
			prev.text += " " + cont
		}
	}
	return out, nil
}

var braceReplacer = strings.NewReplacer("{", "", "},", "", "}", "")

// cleanBibValue strips braces and the trailing field separator.
func cleanBibValue(v string) string {
	v = strings.TrimSpace(braceReplacer.Replace(v))
	return strings.TrimSpace(strings.TrimSuffix(v, ","))
}

func joinNonEmpty(a, b, sep string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + sep + b
	}
}
