// Package dedupe removes duplicate documents by DOI and normalized title.
package dedupe

import (
	log "github.com/sirupsen/logrus"

	"github.com/matsen/bibx/internal/document"
)

// Result describes one duplicate-removal pass.
type Result struct {
	Table      *document.Table
	Found      int   // documents before removal
	Duplicates []int // indices of dropped documents in the input table
}

// Remove drops every document whose DOI or normalized title matches an
// earlier document. The first occurrence is kept. Documents without a DOI
// fall through to the title comparison.
func Remove(t *document.Table) Result {
	seenDOI := make(map[string]bool)
	seenTitle := make(map[string]bool)

	var keep, dropped []int
	for i := 0; i < t.Len(); i++ {
		doi := DOIKey(t.Value(i, document.FieldDOI))
		title := ""
		if raw := t.Value(i, document.FieldTitle); raw != document.Unknown {
			title = TitleKey(raw)
		}

		dup := (doi != "" && seenDOI[doi]) || (title != "" && seenTitle[title])

		if doi != "" {
			seenDOI[doi] = true
		}
		if title != "" {
			seenTitle[title] = true
		}

		if dup {
			dropped = append(dropped, i)
		} else {
			keep = append(keep, i)
		}
	}

	log.WithFields(log.Fields{"documents": t.Len(), "duplicates": len(dropped)}).Debug("removed duplicates")
	return Result{
		Table:      t.Select(keep),
		Found:      t.Len(),
		Duplicates: dropped,
	}
}
