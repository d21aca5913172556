package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	gzip "github.com/klauspost/pgzip"

	"github.com/matsen/bibx/internal/document"
)

const scopusSample = `Scopus
EXPORT DATE: 01 January 2023

@ARTICLE{Smith2020,
author={Smith, J. and Doe, A.},
title={Deep learning for {COVID}},
journal={Nature},
year={2020},
doi={10.1000/abc},
affiliation={Dept of X, University of São Paulo, Brazil; Stanford University, Stanford, United States},
author_keywords={deep learning, covid},
note={Cited by: 12; All Open Access},
document_type={Article},
source={Scopus},
}

@ARTICLE{Smith2021,
author={Smith, J.},
title={Second paper},
year={2021},
document_type={Letter},
funding_text 1={We thank},
}
`

const wosSample = `@article{ WOS:000001,
Author = {Smith, J. and
   Doe, A.},
Title = {A study},
Journal = {NATURE},
Year = {2019},
Affiliation = {Smith, J. (Corresponding Author), Univ Sao Paulo, Dept X, Sao Paulo, Brazil.},
Type = {Article; Early Access},
Keywords = {alpha, beta},
Keywords-Plus = {GAMMA},
Cited-References = {Doe A, 2001, J BIO, V1, P1.
   Roe B, 1999, CELL; SUPPL, V2, P3.},
Times-Cited = {5},
Journal-ISO = {Nature},
Unique-ID = {WOS:000001},
DA = {2023-05-01},
}

@article{ WOS:000002,
Author = {Roe, B.},
Title = {No year here},
DA = {2022-11-30},
}
`

const pubmedSample = `
PMID- 111
OWN - NLM
TI  - A long title that
      wraps here.
LID - S0000 [pii]
LID - 10.1000/pm1 [doi]
AB  - Abstract.
FAU - Smith, John
AU  - Smith J
AD  - Dept of X, University of Sao Paulo, Brazil.
FAU - Doe, Ann
AU  - Doe A
AD  - Harvard University, Boston, USA.
LA  - eng
PT  - Journal Article
PT  - Research Support, Non-U.S. Gov't
DP  - 2020 Jan 15
TA  - Nat Med
JT  - Nature medicine

PMID- 222
TI  - Second
AU  - Roe B
LA  - fre
PT  - Congress
DP  - 2019
`

func checkFields(t *testing.T, r document.Record, want map[string]string) {
	t.Helper()
	for field, value := range want {
		if got := r.Get(field); got != value {
			t.Errorf("%s = %q, want %q", field, got, value)
		}
	}
}

func TestParse_Scopus(t *testing.T) {
	records, err := Parse(scopusSample, document.Scopus)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Parse() returned %d records, want 2", len(records))
	}

	checkFields(t, records[0], map[string]string{
		"author":          "Smith, J. and Doe, A.",
		"title":           "Deep learning for COVID",
		"year":            "2020",
		"doi":             "10.1000/abc",
		"author_keywords": "deep learning; covid",
		"note":            "Cited by: 12; All Open Access",
		"document_type":   "Article",
	})
	checkFields(t, records[1], map[string]string{
		"author":         "Smith, J.",
		"document_type":  "Letter",
		"funding_text_1": "We thank",
		"doi":            document.Unknown,
	})
	if records[0].Dialect != document.Scopus {
		t.Errorf("Dialect = %v, want scopus", records[0].Dialect)
	}
}

func TestParse_WebOfScience(t *testing.T) {
	records, err := Parse(wosSample, document.WebOfScience)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Parse() returned %d records, want 2", len(records))
	}

	checkFields(t, records[0], map[string]string{
		"source":              "WoS",
		"author":              "Smith, J. and Doe, A.",
		"author_affiliation":  "Smith, J. (Corresponding Author), Univ Sao Paulo, Dept X, Sao Paulo, Brazil.",
		"document_type":       "Article in Press",
		"author_keywords":     "alpha; beta",
		"keywords":            "GAMMA",
		"references":          "Doe A, 2001, J BIO, V1, P1.;Roe B, 1999, CELL, SUPPL, V2, P3.",
		"note":                "5",
		"abbrev_source_title": "Nature",
		"unique_id":           "WOS:000001",
		"year":                "2019",
	})
	checkFields(t, records[1], map[string]string{
		"year": "2022",
	})
}

func TestParse_PubMed(t *testing.T) {
	records, err := Parse(pubmedSample, document.PubMed)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Parse() returned %d records, want 2", len(records))
	}

	checkFields(t, records[0], map[string]string{
		"pubmed_id":           "111",
		"note":                "0",
		"source":              "PubMed",
		"own":                 "NLM",
		"title":               "A long title that wraps here.",
		"doi":                 "10.1000/pm1",
		"full_author":         "Smith, John; Doe, Ann",
		"author":              "Smith J and Doe A",
		"affiliation":         "Dept of X, University of Sao Paulo, Brazil.; Harvard University, Boston, USA.",
		"language":            "English",
		"document_type":       "Article",
		"year":                "2020",
		"abbrev_source_title": "Nat Med",
		"journal":             "Nature medicine",
	})
	checkFields(t, records[1], map[string]string{
		"document_type": "Conference Paper",
		"language":      "French",
		"year":          "2019",
		"doi":           document.Unknown,
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		dialect  document.Dialect
		input    string
		wantLine int
	}{
		{"scopus continuation before record", document.Scopus, " orphan\n@ARTICLE{x,\ntitle={a},\n}", 1},
		{"scopus continuation before tag", document.Scopus, "@ARTICLE{x,\n  continued\ntitle={a},\n}", 2},
		{"scopus tag outside record", document.Scopus, "title={a}\n@ARTICLE{x,\n}", 1},
		{"wos leading continuation", document.WebOfScience, "   orphan\n@article{x,\n}", 1},
		{"pubmed leading continuation", document.PubMed, "      orphan\nPMID- 1\n", 1},
		{"pubmed malformed tag", document.PubMed, "PMID- 1\nnot a tag line\n", 2},
		{"pubmed tag before pmid", document.PubMed, "TI  - title\nPMID- 1\n", 1},
		{"wos tagged text", document.WebOfScience, "PT J\nAU Smith, J\n   Doe, A\nTI A title\nER\n", 1},
		{"pubmed text read as wos", document.WebOfScience, pubmedSample, 1},
		{"scopus text without entries", document.Scopus, "Scopus\nEXPORT DATE: 01 January 2024\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input, tt.dialect)
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("errors.Is(err, ErrParse) = false for %v", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error is not a *ParseError: %v", err)
			}
			if pe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", pe.Line, tt.wantLine)
			}
			if pe.Dialect != tt.dialect {
				t.Errorf("Dialect = %v, want %v", pe.Dialect, tt.dialect)
			}
		})
	}
}

func TestParse_BlankInput(t *testing.T) {
	for _, d := range []document.Dialect{document.Scopus, document.WebOfScience, document.PubMed} {
		records, err := Parse(" \n\n", d)
		if err != nil {
			t.Errorf("Parse(blank, %v) error = %v", d, err)
		}
		if len(records) != 0 {
			t.Errorf("Parse(blank, %v) = %d records, want 0", d, len(records))
		}
	}
}

func TestParse_BlankLinesNeverContinue(t *testing.T) {
	input := "@ARTICLE{x,\n\n   \ntitle={a},\n}\n"
	records, err := Parse(input, document.Scopus)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(records) != 1 || records[0].Get("title") != "a" {
		t.Errorf("Parse() = %+v", records)
	}
}

func TestLoad_PlainAndGzip(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "scopus.bib")
	if err := os.WriteFile(plain, []byte("\ufeff"+scopusSample), 0644); err != nil {
		t.Fatal(err)
	}

	gzPath := filepath.Join(dir, "scopus.bib.gz")
	f, err := os.Create(gzPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(scopusSample)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	for _, path := range []string{plain, gzPath} {
		table, err := Load(path, document.Scopus)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", path, err)
		}
		if table.Len() != 2 {
			t.Errorf("Load(%s).Len() = %d, want 2", path, table.Len())
		}
		if got := table.Value(1, "journal"); got != document.Unknown {
			t.Errorf("Load(%s) missing journal = %q, want %q", path, got, document.Unknown)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.bib"), document.Scopus); err == nil {
		t.Error("Load() expected error for missing file")
	}
}
