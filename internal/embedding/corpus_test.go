package embedding

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/segmentio/encoding/json"

	"github.com/matsen/bibx/internal/analysis"
	"github.com/matsen/bibx/internal/document"
)

// fakeEmbedder embeds text as its length and fails on a chosen text.
type fakeEmbedder struct {
	failOn string
	calls  int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if text == f.failOn {
		return nil, errors.New("service unavailable")
	}
	return []float32{float32(len(text))}, nil
}

func (f *fakeEmbedder) Model() string { return "fake" }

func testIndex(t *testing.T, titles ...string) *analysis.Index {
	t.Helper()
	var records []document.Record
	for _, title := range titles {
		r := document.NewRecord(document.Scopus)
		r.Fields["title"] = title
		records = append(records, r)
	}
	ix, err := analysis.Derive(analysis.NewCorpus(document.NewTable(records), false), analysis.Options{})
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	return ix
}

func readRecords(t *testing.T, data []byte) []Record {
	t.Helper()
	var out []Record
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var r Record
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("decoding %q: %v", sc.Text(), err)
		}
		out = append(out, r)
	}
	return out
}

func TestEmbedCorpus(t *testing.T) {
	ix := testIndex(t, "Alpha", "", "Gamma ray")
	var buf bytes.Buffer

	stats, err := EmbedCorpus(context.Background(), &fakeEmbedder{}, ix, FieldTitle, &buf)
	if err != nil {
		t.Fatalf("EmbedCorpus() error = %v", err)
	}
	if stats.Embedded != 2 || stats.Skipped != 1 {
		t.Errorf("EmbedCorpus() stats = %+v, want 2 embedded, 1 skipped", stats)
	}

	got := readRecords(t, buf.Bytes())
	if len(got) != 2 {
		t.Fatalf("wrote %d records, want 2", len(got))
	}
	if got[0].DocID != "0" || got[1].DocID != "2" {
		t.Errorf("doc IDs = %s, %s, want 0, 2", got[0].DocID, got[1].DocID)
	}
	if got[1].Vector[0] != 9 || got[1].Model != "fake" {
		t.Errorf("record = %+v", got[1])
	}
}

func TestEmbedCorpus_StopsOnFirstError(t *testing.T) {
	ix := testIndex(t, "Alpha", "Beta", "Gamma")
	p := &fakeEmbedder{failOn: "Beta"}
	var buf bytes.Buffer

	stats, err := EmbedCorpus(context.Background(), p, ix, FieldTitle, &buf)
	if err == nil {
		t.Fatal("EmbedCorpus() expected error")
	}
	if p.calls != 2 {
		t.Errorf("embedder called %d times, want 2 (no retry)", p.calls)
	}
	if stats.Embedded != 1 {
		t.Errorf("Embedded = %d, want 1", stats.Embedded)
	}
	if got := readRecords(t, buf.Bytes()); len(got) != 1 {
		t.Errorf("wrote %d records before failing, want 1", len(got))
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		input   string
		want    Field
		wantErr bool
	}{
		{"title", FieldTitle, false},
		{" Abstract ", FieldAbstract, false},
		{"keywords", "", true},
	}
	for _, tt := range tests {
		got, err := ParseField(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseField(%q) = %q, %v, want %q", tt.input, got, err, tt.want)
		}
	}
}

func TestFieldText(t *testing.T) {
	r := document.NewRecord(document.PubMed)
	r.Fields["title"] = "  Spaced title "

	if got := FieldTitle.Text(r); got != "Spaced title" {
		t.Errorf("FieldTitle.Text() = %q, want %q", got, "Spaced title")
	}
	if got := FieldAbstract.Text(r); got != "" {
		t.Errorf("FieldAbstract.Text() = %q, want empty", got)
	}
}
