package author

import (
	"math"
	"reflect"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"smith, j.", "smith, jo.", 0.947},
		{"abcd", "bcde", 0.75},
		{"", "", 1},
		{"abc", "", 0},
		{"harvard univ", "harvard university", 0.8},
		{"university of sao paulo", "universidade de sao paulo", 0.792},
		{"doe, a.", "roe, b.", 0.714},
	}

	for _, tt := range tests {
		got := Ratio(tt.a, tt.b)
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("Ratio(%q, %q) = %.4f, want %.3f", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFuzzyGroups(t *testing.T) {
	names := []string{"smith, j.", "smith, jo.", "doe, a.", "smith, j", "doe, a", "roe, b."}
	got := FuzzyGroups(names, DefaultCutoff)
	want := []Group{
		{Name: "smith, j.", Similar: []string{"smith, jo.", "smith, j"}},
		{Name: "doe, a.", Similar: []string{"doe, a"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FuzzyGroups() = %+v, want %+v", got, want)
	}
}

func TestFuzzyGroups_IdenticalNamesNotGrouped(t *testing.T) {
	if got := FuzzyGroups([]string{"a b c", "a b c"}, 0.5); got != nil {
		t.Errorf("FuzzyGroups(identical) = %+v, want nil", got)
	}
}
