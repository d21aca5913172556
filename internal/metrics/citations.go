// Package metrics computes citation counts, author indicators, reference
// years and the distribution tables derived from a document set.
package metrics

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/matsen/bibx/internal/document"
)

// ErrNoCitationDigits is returned for citation text that carries no number.
var ErrNoCitationDigits = errors.New("citation text contains no digits")

var digitsRe = regexp.MustCompile(`\d+`)

// ParseCitations extracts the citation count from a note field such as
// "Cited by: 12; All Open Access". Missing values count as zero.
func ParseCitations(text string) (int, error) {
	if strings.TrimSpace(text) == "" || text == document.Unknown {
		return 0, nil
	}

	s := strings.ToLower(text)
	s = strings.ReplaceAll(s, "cited by ", "")
	s = strings.ReplaceAll(s, "cited by: ", "")

	head := s
	if before, _, found := strings.Cut(s, ";"); found {
		head = before
	}
	if n, err := strconv.Atoi(strings.TrimSpace(head)); err == nil {
		return n, nil
	}

	m := digitsRe.FindString(s)
	if m == "" {
		return 0, fmt.Errorf("%w: %q", ErrNoCitationDigits, text)
	}
	return strconv.Atoi(m)
}

// ParseAllCitations parses one note value per document.
func ParseAllCitations(notes []string) ([]int, error) {
	out := make([]int, len(notes))
	for i, note := range notes {
		n, err := ParseCitations(note)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}
