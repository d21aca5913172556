package storage

import (
	"path/filepath"
	"testing"

	"github.com/matsen/bibx/internal/analysis"
	"github.com/matsen/bibx/internal/document"
	"github.com/matsen/bibx/internal/importer"
	"github.com/matsen/bibx/internal/registry"
)

const sample = `@ARTICLE{a,
author={Smith, J. and Doe, A.},
title={Machine learning in biology},
year={2020},
abbrev_source_title={Nat. Med.},
doi={10.1234/smith},
affiliation={Harvard University, Boston, United States},
author_keywords={Genomics; Phylogenetics},
abstract={Applications of neural networks.},
note={Cited by: 12},
document_type={Article},
}

@ARTICLE{b,
author={Smith, J.},
title={Statistical methods},
abbrev_source_title={Cell},
author_keywords={genomics},
note={Cited by 3},
document_type={Review},
}
`

// setupTestDB builds an index database from the sample corpus.
func setupTestDB(t *testing.T) (*DB, BuildInfo) {
	t.Helper()

	records, err := importer.Parse(sample, document.Scopus)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	ix, err := analysis.Derive(analysis.NewCorpus(document.NewTable(records), false), analysis.Options{})
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}

	db, err := OpenDB(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	info, err := db.RebuildFromIndex(ix)
	if err != nil {
		t.Fatalf("RebuildFromIndex() error = %v", err)
	}
	return db, info
}

func TestRebuildFromIndex(t *testing.T) {
	db, info := setupTestDB(t)

	if info.Documents != 2 {
		t.Errorf("BuildInfo.Documents = %d, want 2", info.Documents)
	}
	if info.ID == "" {
		t.Error("BuildInfo.ID is empty")
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("Count() = %d, want 2", count)
	}

	last, err := db.LastBuild()
	if err != nil {
		t.Fatalf("LastBuild() error = %v", err)
	}
	if last == nil || last.ID != info.ID {
		t.Errorf("LastBuild() = %+v, want build %s", last, info.ID)
	}
}

func TestRebuildFromIndex_Replaces(t *testing.T) {
	db, first := setupTestDB(t)

	records, err := importer.Parse(sample, document.Scopus)
	if err != nil {
		t.Fatal(err)
	}
	ix, err := analysis.Derive(analysis.NewCorpus(document.NewTable(records[:1]), false), analysis.Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := db.RebuildFromIndex(ix)
	if err != nil {
		t.Fatalf("RebuildFromIndex() error = %v", err)
	}
	if second.ID == first.ID {
		t.Error("rebuild reused the build ID")
	}

	count, _ := db.Count()
	if count != 1 {
		t.Errorf("Count() after rebuild = %d, want 1", count)
	}
	e, err := db.EntityByID("j_1")
	if err != nil {
		t.Fatalf("EntityByID() error = %v", err)
	}
	if e != nil {
		t.Errorf("EntityByID(j_1) = %+v, want nil after rebuild", e)
	}
}

func TestSearch(t *testing.T) {
	db, _ := setupTestDB(t)

	tests := []struct {
		query   string
		wantIDs []string
	}{
		{"genomics", []string{"0", "1"}},
		{"statistical", []string{"1"}},
		{"neural", []string{"0"}},
		{"phylogenetics", []string{"0"}},
		{"unknown", nil},
		{"Nat. Med.", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			docs, err := db.Search(tt.query, 10)
			if err != nil {
				t.Fatalf("Search(%q) error = %v", tt.query, err)
			}
			if len(docs) != len(tt.wantIDs) {
				t.Fatalf("Search(%q) returned %d docs, want %d", tt.query, len(docs), len(tt.wantIDs))
			}
			for i, doc := range docs {
				if doc.ID != tt.wantIDs[i] {
					t.Errorf("Search(%q)[%d].ID = %s, want %s", tt.query, i, doc.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestDocumentByID(t *testing.T) {
	db, _ := setupTestDB(t)

	doc, err := db.DocumentByID("0")
	if err != nil {
		t.Fatalf("DocumentByID() error = %v", err)
	}
	if doc == nil {
		t.Fatal("DocumentByID(0) = nil")
	}
	if doc.Year != 2020 || doc.DOI != "10.1234/smith" || doc.Citations != 12 || doc.Dialect != "scopus" {
		t.Errorf("DocumentByID(0) = %+v", doc)
	}

	doc, _ = db.DocumentByID("1")
	if doc.Year != 0 || doc.DOI != "" {
		t.Errorf("DocumentByID(1) year/doi = %d/%q, want 0/empty", doc.Year, doc.DOI)
	}

	doc, err = db.DocumentByID("99")
	if err != nil || doc != nil {
		t.Errorf("DocumentByID(99) = %+v, %v, want nil, nil", doc, err)
	}
}

func TestEntityByID(t *testing.T) {
	db, _ := setupTestDB(t)

	e, err := db.EntityByID("a_0")
	if err != nil {
		t.Fatalf("EntityByID() error = %v", err)
	}
	if e == nil {
		t.Fatal("EntityByID(a_0) = nil")
	}
	if e.Kind != registry.KindAuthor || e.Name != "smith, j." || e.Documents != 2 || e.Citations != 15 {
		t.Errorf("EntityByID(a_0) = %+v", e)
	}

	docs, err := db.DocumentsOf("a_0")
	if err != nil {
		t.Fatalf("DocumentsOf() error = %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("DocumentsOf(a_0) returned %d docs, want 2", len(docs))
	}

	k, err := db.EntityByID("k_0")
	if err != nil || k == nil || k.Name != "genomics" {
		t.Errorf("EntityByID(k_0) = %+v, %v, want genomics", k, err)
	}

	missing, err := db.EntityByID("a_42")
	if err != nil || missing != nil {
		t.Errorf("EntityByID(a_42) = %+v, %v, want nil, nil", missing, err)
	}
}

func TestPrepareFTSQuery(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"genomics", "genomics"},
		{"  spaced  ", "spaced"},
		{"Nat. Med.", `"Nat. Med."`},
		{`say "hi"`, `"say ""hi"""`},
		{"", ""},
	}
	for _, tt := range tests {
		if got := prepareFTSQuery(tt.input); got != tt.want {
			t.Errorf("prepareFTSQuery(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
