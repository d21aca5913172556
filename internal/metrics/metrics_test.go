package metrics

import (
	"errors"
	"reflect"
	"testing"

	"github.com/matsen/bibx/internal/document"
)

func TestParseCitations(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"Cited by: 12;", 12, false},
		{"Cited by 7", 7, false},
		{"Cited by: 12; All Open Access", 12, false},
		{"CITED BY 3; Bronze Open Access", 3, false},
		{"5", 5, false},
		{"0", 0, false},
		{"about 40 citations", 40, false},
		{"x; 9 times", 9, false},
		{document.Unknown, 0, false},
		{"", 0, false},
		{"All Open Access", 0, true},
		{"cited by: none;", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCitations(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrNoCitationDigits) {
					t.Errorf("ParseCitations(%q) error = %v, want ErrNoCitationDigits", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCitations(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCitations(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAllCitations_ReportsDocument(t *testing.T) {
	_, err := ParseAllCitations([]string{"1", "Open Access"})
	if !errors.Is(err, ErrNoCitationDigits) {
		t.Fatalf("error = %v, want ErrNoCitationDigits", err)
	}
	if got := err.Error(); got[:10] != "document 1" {
		t.Errorf("error = %q, want prefix %q", got, "document 1")
	}
}

func TestHIndex(t *testing.T) {
	tests := []struct {
		citations []int
		want      int
	}{
		{[]int{10, 8, 5, 4, 3}, 4},
		{[]int{0}, 0},
		{nil, 0},
		{[]int{3, 10, 8, 4, 5}, 4},
		{[]int{10, 10}, 2},
		{[]int{1, 1, 1}, 1},
	}

	for _, tt := range tests {
		if got := HIndex(tt.citations); got != tt.want {
			t.Errorf("HIndex(%v) = %d, want %d", tt.citations, got, tt.want)
		}
	}
}

func TestComputeAuthorCitations(t *testing.T) {
	names := []string{"smith, j.", "doe, a."}
	authors := [][]string{{"smith, j.", "doe, a."}, {"smith, j."}}
	citations := []int{10, 3}
	refs := [][]string{{"Smith, J., 2001, Old work", "Roe, B., 1999"}, {"SMITH, J., 2005", "Doe, A., 2002"}}

	got := ComputeAuthorCitations(names, authors, citations, refs)
	if want := []int{2, 1}; !reflect.DeepEqual(got.HIndex, want) {
		t.Errorf("HIndex = %v, want %v", got.HIndex, want)
	}
	if want := []int{13, 10}; !reflect.DeepEqual(got.Total, want) {
		t.Errorf("Total = %v, want %v", got.Total, want)
	}
	if want := []int{2, 0}; !reflect.DeepEqual(got.Self, want) {
		t.Errorf("Self = %v, want %v", got.Self, want)
	}
}

func TestYearExtractor(t *testing.T) {
	e := NewYearExtractor(2021)
	tests := []struct {
		ref  string
		want int
	}{
		{"Doe A, 2001, J BIO, V1, P1", 2001},
		{"Roe B, 1999, CELL, V2, P3", 1999},
		{"Smith (2019) Deep nets, pp. 1850-1870", 2019},
		{"Old 1875 text reprinted 1990", 1990},
		{"Future 2035 work", NoYear},
		{"Report 2020, pages 2030-2040", 2020},
		{"no year at all", NoYear},
	}

	for _, tt := range tests {
		if got := e.Year(tt.ref); got != tt.want {
			t.Errorf("Year(%q) = %d, want %d", tt.ref, got, tt.want)
		}
	}
}

func TestBradford(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f"}
	counts := []int{1, 3, 2, 3, 2, 1}

	rows := BradfordTable(names, counts)
	wantOrder := []string{"b", "d", "c", "e", "a", "f"}
	wantZones := []Zone{Zone1, Zone2, Zone2, Zone3, Zone3, Zone3}
	for i, r := range rows {
		if r.Name != wantOrder[i] || r.Zone != wantZones[i] {
			t.Errorf("row %d = %s/%d, want %s/%d", i, r.Name, r.Zone, wantOrder[i], wantZones[i])
		}
	}

	tests := []struct {
		zone Zone
		want []string
	}{
		{Zone1, []string{"b"}},
		{Zone2, []string{"d", "c"}},
		{Zone3, []string{"e", "a", "f"}},
		{Zone12, []string{"b", "d", "c"}},
		{Zone23, []string{"d", "c", "e", "a", "f"}},
	}
	for _, tt := range tests {
		if got := BradfordSources(names, counts, tt.zone); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("BradfordSources(zone %d) = %v, want %v", tt.zone, got, tt.want)
		}
	}
}

func TestParseZone(t *testing.T) {
	for _, n := range []int{1, 2, 3, 12, 23} {
		if _, err := ParseZone(n); err != nil {
			t.Errorf("ParseZone(%d) error = %v", n, err)
		}
	}
	for _, n := range []int{0, 4, 13, -1} {
		if _, err := ParseZone(n); err == nil {
			t.Errorf("ParseZone(%d) expected error", n)
		}
	}
}

func TestPerYear(t *testing.T) {
	got := PerYear([]int{2019, 2021, NoYear, 2021}, []int{1, 2, 4, 8})
	want := []YearCount{
		{Year: 2019, Documents: 1, Citations: 1},
		{Year: 2020},
		{Year: 2021, Documents: 2, Citations: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PerYear() = %+v, want %+v", got, want)
	}
	if got := PerYear([]int{NoYear}, nil); got != nil {
		t.Errorf("PerYear(no years) = %v, want nil", got)
	}
}

func TestLotka(t *testing.T) {
	got := Lotka([]int{2, 1, 1, 3})
	want := []LotkaRow{
		{Documents: 1, Authors: 2, Share: 0.5},
		{Documents: 2, Authors: 1, Share: 0.25},
		{Documents: 3, Authors: 1, Share: 0.25},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lotka() = %+v, want %+v", got, want)
	}
}

func TestCollaboration(t *testing.T) {
	table := Collaboration([]int{2020, 2020, 2021, NoYear}, []int{1, 3, 3, 2})

	if want := []int{1, 2, 3}; !reflect.DeepEqual(table.Sizes, want) {
		t.Fatalf("Sizes = %v, want %v", table.Sizes, want)
	}
	want := []CollaborationRow{
		{Year: "2020", Counts: []int{1, 0, 1}, Total: 2, Index: 2},
		{Year: "2021", Counts: []int{0, 0, 1}, Total: 1, Index: 3},
		{Year: "Total", Counts: []int{1, 1, 2}, Total: 4, Index: 2.25},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("Rows = %+v, want %+v", table.Rows, want)
	}
}
