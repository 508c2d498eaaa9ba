package textutil

import (
	"math"
	"testing"
)

func TestSimilarityReflexive(t *testing.T) {
	inputs := []string{"Dune", "The Quick Brown Fox", "Mátame Si Puedes"}
	for _, input := range inputs {
		if got := Similarity(input, input); got != 1.0 {
			t.Errorf("Similarity(%q, %q) = %v, want 1.0", input, input, got)
		}
	}
}

func TestSimilarityEmpty(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{"both empty", "", ""},
		{"a empty", "", "dune"},
		{"b empty", "dune", ""},
		{"b punctuation only", "dune", ":::"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Similarity(tt.a, tt.b); got != 0 {
				t.Errorf("Similarity(%q, %q) = %v, want 0", tt.a, tt.b, got)
			}
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := "dune part two"
	b := "dune part one"
	if Similarity(a, b) != Similarity(b, a) {
		t.Errorf("Similarity not symmetric: %v vs %v", Similarity(a, b), Similarity(b, a))
	}
}

func TestSimilarityPartialOverlap(t *testing.T) {
	// Token sets {dune, part, two} and {dune, part, one}: 2 shared of 4 total.
	got := Similarity("Dune: Part Two", "Dune Part One")
	want := 0.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Similarity = %v, want %v", got, want)
	}
}

func TestSimilarityDuplicatesCollapse(t *testing.T) {
	// "fox fox fox" is the single-token set {fox}.
	if got := Similarity("fox fox fox", "fox"); got != 1.0 {
		t.Errorf("Similarity(duplicates) = %v, want 1.0", got)
	}
}

func TestSimilarityBounded(t *testing.T) {
	pairs := [][2]string{
		{"completely different", "unrelated words here"},
		{"some overlap here", "overlap is partial"},
	}
	for _, pair := range pairs {
		got := Similarity(pair[0], pair[1])
		if got < 0 || got > 1 {
			t.Errorf("Similarity(%q, %q) = %v, out of [0,1]", pair[0], pair[1], got)
		}
	}
}
