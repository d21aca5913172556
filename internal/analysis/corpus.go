// Package analysis derives the entity model and statistics of a document
// set. A Corpus is never modified in place: filtering, merging and renaming
// return a new Corpus, and Derive builds a fresh Index from it.
package analysis

import (
	"github.com/matsen/bibx/internal/dedupe"
	"github.com/matsen/bibx/internal/document"
)

type origin int

const (
	originLoaded origin = iota
	originDeduplicated
	originFiltered
	originMerged
)

// Corpus is an immutable document set.
type Corpus struct {
	table      *document.Table
	origin     origin
	read       int
	duplicates int
	added      int
}

// NewCorpus wraps a freshly loaded table, optionally removing duplicates.
func NewCorpus(t *document.Table, removeDuplicates bool) *Corpus {
	if !removeDuplicates {
		return &Corpus{table: t, origin: originLoaded, read: t.Len()}
	}
	res := dedupe.Remove(t)
	return &Corpus{
		table:      res.Table,
		origin:     originDeduplicated,
		read:       res.Found,
		duplicates: len(res.Duplicates),
	}
}

// Merge concatenates b after a. With removeDuplicates the duplicate rule
// runs over the combined set, so documents of b that repeat a are dropped,
// and so are repeats already stored in a. Added counts the survivors of b.
func Merge(a, b *Corpus, removeDuplicates bool) *Corpus {
	combined := document.Concat(a.table, b.table)
	if !removeDuplicates {
		return &Corpus{table: combined, origin: originMerged, read: combined.Len(), added: b.table.Len()}
	}

	res := dedupe.Remove(combined)
	added := b.table.Len()
	for _, i := range res.Duplicates {
		if i >= a.table.Len() {
			added--
		}
	}
	return &Corpus{
		table:      res.Table,
		origin:     originMerged,
		read:       res.Found,
		duplicates: len(res.Duplicates),
		added:      added,
	}
}

func derived(t *document.Table, o origin) *Corpus {
	return &Corpus{table: t, origin: o, read: t.Len()}
}

// Table returns the document table.
func (c *Corpus) Table() *document.Table { return c.table }

// Len returns the number of documents.
func (c *Corpus) Len() int { return c.table.Len() }

// Read returns the number of documents before duplicate removal.
func (c *Corpus) Read() int { return c.read }

// Duplicates returns how many documents duplicate removal dropped.
func (c *Corpus) Duplicates() int { return c.duplicates }
