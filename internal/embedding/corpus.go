package embedding

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/segmentio/encoding/json"
	log "github.com/sirupsen/logrus"

	"github.com/matsen/bibx/internal/analysis"
)

// Stats summarizes one EmbedCorpus run.
type Stats struct {
	Embedded int `json:"embedded"`
	Skipped  int `json:"skipped"` // documents without text in the chosen field
}

// EmbedCorpus embeds field of every document of ix and writes one Record
// per line to w. Requests are not retried: the first failure stops the run
// and the lines already written stay valid.
func EmbedCorpus(ctx context.Context, p Embedder, ix *analysis.Index, field Field, w io.Writer) (Stats, error) {
	var stats Stats
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	t := ix.Corpus.Table()
	for i, entry := range ix.Documents.Entries() {
		text := field.Text(t.Record(i))
		if text == "" {
			stats.Skipped++
			continue
		}

		vec, err := p.Embed(ctx, text)
		if err != nil {
			return stats, fmt.Errorf("embedding document %s: %w", entry.ID, err)
		}

		data, err := json.Marshal(Record{DocID: entry.ID, Model: p.Model(), Vector: vec})
		if err != nil {
			return stats, fmt.Errorf("encoding document %s: %w", entry.ID, err)
		}
		bw.Write(data)
		if err := bw.WriteByte('\n'); err != nil {
			return stats, fmt.Errorf("writing document %s: %w", entry.ID, err)
		}
		stats.Embedded++
	}

	log.WithFields(log.Fields{"embedded": stats.Embedded, "skipped": stats.Skipped, "model": p.Model()}).Debug("embedded corpus")
	return stats, bw.Flush()
}
