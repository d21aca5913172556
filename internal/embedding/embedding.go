// Package embedding generates vector embeddings of document text through an
// external service. Vectors are written out as-is and never interpreted.
package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/matsen/bibx/internal/document"
)

// Embedder turns one piece of text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// Record is one line of the embeddings file.
type Record struct {
	DocID  string    `json:"doc_id"`
	Model  string    `json:"model"`
	Vector []float32 `json:"vector"`
}

// Field selects which document text is embedded.
type Field string

const (
	FieldTitle    Field = "title"
	FieldAbstract Field = "abstract"
)

// ParseField accepts "title" or "abstract".
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldTitle, FieldAbstract:
		return f, nil
	}
	return "", fmt.Errorf("unknown embedding field %q (valid: title, abstract)", s)
}

// Text returns the text of field in r, or "" when the record has none.
func (f Field) Text(r document.Record) string {
	if !r.Has(string(f)) {
		return ""
	}
	return strings.TrimSpace(r.Get(string(f)))
}
