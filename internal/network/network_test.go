package network

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matsen/bibx/internal/analysis"
	"github.com/matsen/bibx/internal/document"
	"github.com/matsen/bibx/internal/importer"
	"github.com/matsen/bibx/internal/registry"
)

const sample = `@ARTICLE{a,
author={A, X. and B, Y. and C, Z.},
title={One},
year={2020},
references={r1; r2; r3},
}

@ARTICLE{b,
author={B, Y. and A, X.},
title={Two},
year={2021},
references={r1; r2},
}

@ARTICLE{c,
author={D, W.},
title={Three},
year={2021},
references={r9},
}
`

func sampleIndex(t *testing.T) *analysis.Index {
	t.Helper()
	records, err := importer.Parse(sample, document.Scopus)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	ix, err := analysis.Derive(analysis.NewCorpus(document.NewTable(records), false), analysis.Options{})
	if err != nil {
		t.Fatalf("Derive() error = %v", err)
	}
	return ix
}

func edgePairs(g *Graph) []string {
	var out []string
	for _, e := range g.Edges {
		out = append(out, e.Source+"-"+e.Target)
	}
	return out
}

func TestCollaboration(t *testing.T) {
	ix := sampleIndex(t)

	tests := []struct {
		name      string
		minDegree int
		wantNodes int
		wantEdges []string
	}{
		{"no filter", 0, 3, []string{"a_0-a_1", "a_1-a_2"}},
		{"min one", 1, 3, []string{"a_0-a_1", "a_1-a_2"}},
		{"min two drops leaves", 2, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Collaboration(ix, registry.KindAuthor, tt.minDegree)
			if err != nil {
				t.Fatalf("Collaboration() error = %v", err)
			}
			if len(g.Nodes) != tt.wantNodes {
				t.Errorf("len(Nodes) = %d, want %d", len(g.Nodes), tt.wantNodes)
			}
			if got := edgePairs(g); !reflect.DeepEqual(got, tt.wantEdges) {
				t.Errorf("edges = %v, want %v", got, tt.wantEdges)
			}
		})
	}
}

func TestCollaboration_NodeDetails(t *testing.T) {
	g, err := Collaboration(sampleIndex(t), registry.KindAuthor, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := Node{ID: "a_1", Label: "b, y.", Documents: 2, Degree: 2}
	if g.Nodes[1] != want {
		t.Errorf("Nodes[1] = %+v, want %+v", g.Nodes[1], want)
	}
}

func TestCollaboration_DocumentKindRejected(t *testing.T) {
	if _, err := Collaboration(sampleIndex(t), registry.KindDocument, 0); err == nil {
		t.Error("Collaboration(document) expected error")
	}
}

func TestIncidence(t *testing.T) {
	got := Incidence([][]string{{"r2", "r1", "r2"}, {"zz"}}, []string{"r1", "r2"})
	want := [][]int{{0, 1}, nil}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Incidence() = %v, want %v", got, want)
	}
}

func TestDocuments(t *testing.T) {
	ix := sampleIndex(t)

	tests := []struct {
		name       string
		sim        Similarity
		cut        float64
		wantEdges  []string
		wantWeight float64
	}{
		{"coupling", Coupling, Coupling.DefaultCut(), []string{"0-1"}, 0.816},
		{"cocitation low cut", CoCitation, 2, []string{"0-1"}, 2},
		{"cocitation default cut", CoCitation, CoCitation.DefaultCut(), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Documents(ix, tt.sim, tt.cut)
			if err != nil {
				t.Fatalf("Documents() error = %v", err)
			}
			if got := edgePairs(g); !reflect.DeepEqual(got, tt.wantEdges) {
				t.Fatalf("edges = %v, want %v", got, tt.wantEdges)
			}
			if len(g.Edges) > 0 && g.Edges[0].Weight != tt.wantWeight {
				t.Errorf("weight = %v, want %v", g.Edges[0].Weight, tt.wantWeight)
			}
			if len(g.Edges) > 0 && g.Nodes[0].Year != 2020 {
				t.Errorf("Nodes[0].Year = %d, want 2020", g.Nodes[0].Year)
			}
		})
	}
}

func TestParseSimilarity(t *testing.T) {
	if _, err := ParseSimilarity("jaccard"); err == nil {
		t.Error("ParseSimilarity(jaccard) expected error")
	}
	if s, err := ParseSimilarity("cocit"); err != nil || s != CoCitation {
		t.Errorf("ParseSimilarity(cocit) = %q, %v", s, err)
	}
}

func TestToCytoscapeJSON(t *testing.T) {
	g := &Graph{
		Kind:  "author",
		Nodes: []Node{{ID: "a_0", Label: "smith, j.", Degree: 1}, {ID: "a_1", Label: "doe, a.", Degree: 1}},
		Edges: []Edge{{Source: "a_0", Target: "a_1", Weight: 1}},
	}
	out, err := g.ToCytoscapeJSON()
	if err != nil {
		t.Fatalf("ToCytoscapeJSON() error = %v", err)
	}
	for _, want := range []string{`"id":"a_0~a_1"`, `"source":"a_0"`, `"label":"smith, j."`, `"weight":1`} {
		if !strings.Contains(out, want) {
			t.Errorf("ToCytoscapeJSON() missing %s in %s", want, out)
		}
	}
	if !(&Graph{}).IsEmpty() {
		t.Error("IsEmpty() = false for empty graph")
	}
}

func TestToHTML(t *testing.T) {
	g := &Graph{
		Kind:  "cocit",
		Nodes: []Node{{ID: "0", Label: "Smith (2020)", Degree: 1}, {ID: "1", Label: "Doe <2021>", Degree: 1}},
		Edges: []Edge{{Source: "0", Target: "1", Weight: 0.5}},
	}

	tests := []struct {
		name    string
		layout  string
		want    []string
		wantErr bool
	}{
		{"default layout", "", []string{`name: "cose"`, "<title>cocit network</title>"}, false},
		{"circle", "circle", []string{`name: "circle"`}, false},
		{"bad layout", "spiral", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := g.ToHTML(HTMLOptions{Layout: tt.layout})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ToHTML() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("ToHTML() missing %q", want)
				}
			}
			if !tt.wantErr && strings.Contains(out, "Doe <2021>") {
				t.Error("ToHTML() left a label unescaped")
			}
		})
	}
}

func TestToHTML_Unweighted(t *testing.T) {
	g := &Graph{Kind: "author", Edges: []Edge{{Source: "a_0", Target: "a_1", Weight: 1}}}
	out, err := g.ToHTML(HTMLOptions{Title: "Authors"})
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if !strings.Contains(out, "<title>Authors</title>") {
		t.Error("ToHTML() ignored the title option")
	}
	if g.weighted() {
		t.Error("weighted() = true for unit weights")
	}
	g.Edges[0].Weight = 0.25
	if !g.weighted() {
		t.Error("weighted() = false for fractional weights")
	}
}
