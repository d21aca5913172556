// Package importer turns raw bibliographic export text into canonical records.
//
// Each dialect has a Parser that tokenizes the text into tag/value pairs and
// maps dialect tags onto the canonical field vocabulary. Build then assembles
// the mapped tokens into one record per document.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	gzip "github.com/klauspost/pgzip"
	log "github.com/sirupsen/logrus"

	"github.com/matsen/bibx/internal/document"
)

// DocStart is the token name marking the first line of a new record.
const DocStart = "doc_start"

// Token is one logical tag/value line of an export file.
type Token struct {
	Name  string
	Value string
	Line  int // 1-based line in the input where the tag started
}

// ErrParse is matched by every *ParseError through errors.Is.
var ErrParse = errors.New("parse error")

// ParseError reports malformed input at a specific line.
type ParseError struct {
	Dialect document.Dialect
	Line    int
	Msg     string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s line %d: %s", e.Dialect, e.Line, e.Msg)
}

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IsParseError reports whether err wraps a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// Parser is the per-dialect strategy selected once at load time.
type Parser interface {
	// Dialect returns the dialect this parser reads.
	Dialect() document.Dialect

	// Tokenize splits raw text into logical tag/value lines, with a DocStart
	// token at the beginning of every record.
	Tokenize(raw string) ([]Token, error)

	// Map rewrites dialect tags into canonical field names and transforms
	// values (language codes, document types, year truncation).
	Map(tokens []Token) []Token
}

// ParserFor returns the parser for a dialect.
func ParserFor(d document.Dialect) (Parser, error) {
	switch d {
	case document.Scopus, document.WebOfScience:
		return bibtexParser{dialect: d}, nil
	case document.PubMed:
		return medlineParser{}, nil
	default:
		return nil, fmt.Errorf("no parser for %v", d)
	}
}

// Parse converts raw export text into records. Records are not yet filled
// with placeholders; document.NewTable does that.
func Parse(raw string, d document.Dialect) ([]document.Record, error) {
	p, err := ParserFor(d)
	if err != nil {
		return nil, err
	}

	tokens, err := p.Tokenize(raw)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"dialect": d.String(), "tokens": len(tokens)}).Debug("tokenized export")

	records, err := Build(d, p.Map(tokens))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 && strings.TrimSpace(raw) != "" {
		return nil, &ParseError{Dialect: d, Line: 1, Msg: fmt.Sprintf("no records found for dialect %s", d)}
	}
	log.WithFields(log.Fields{"dialect": d.String(), "records": len(records)}).Debug("built records")
	return records, nil
}

// Load reads an export file and parses it into a table.
func Load(path string, d document.Dialect) (*document.Table, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := Parse(raw, d)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return document.NewTable(records), nil
}

// ReadFile reads an export file fully into memory. Files ending in .gz are
// decompressed; a leading byte order mark is dropped.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening export file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("opening gzip stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading export file: %w", err)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

// line is one physical input line with its 1-based number.
type line struct {
	text string
	num  int
}

func splitLines(raw string) []line {
	parts := strings.Split(raw, "\n")
	out := make([]line, len(parts))
	for i, p := range parts {
		out[i] = line{text: strings.TrimRight(p, "\r"), num: i + 1}
	}
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
