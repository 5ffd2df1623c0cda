package problem

import (
	"testing"

	"phylon/internal/model"
	"phylon/internal/rng"
)

func TestDigitsOf(t *testing.T) {
	cases := []struct {
		number uint64
		want   []int
	}{
		{0, []int{0}},
		{7, []int{7}},
		{163, []int{1, 6, 3}},
		{90210, []int{9, 0, 2, 1, 0}},
	}
	for _, tc := range cases {
		got := DigitsOf(tc.number)
		if len(got) != len(tc.want) {
			t.Fatalf("%d: got %v want %v", tc.number, got, tc.want)
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Fatalf("%d: got %v want %v", tc.number, got, tc.want)
			}
		}
	}
}

func TestFindNumberScore(t *testing.T) {
	p := NewFindNumber(163)

	cases := []struct {
		name string
		c    model.Chromosome[int]
		want float64
	}{
		{"exact match", model.Chromosome[int]{1, 6, 3}, 3},
		{"no match", model.Chromosome[int]{4, 4, 4}, 0},
		{"partial match", model.Chromosome[int]{1, 6, 4}, 2},
		{"extra digits penalized", model.Chromosome[int]{1, 6, 3, 9, 9}, 1},
		{"missing digits penalized", model.Chromosome[int]{1}, -1},
		{"only wrong and short", model.Chromosome[int]{9}, -2},
	}
	for _, tc := range cases {
		if got := p.Score(tc.c); got != tc.want {
			t.Fatalf("%s: got=%g want=%g", tc.name, got, tc.want)
		}
	}

	if p.MaxScore() != 3 {
		t.Fatalf("unexpected max score: %g", p.MaxScore())
	}
}

func TestFindNumberPrint(t *testing.T) {
	p := NewFindNumber(163)
	if got := p.Print(model.Chromosome[int]{1, 6, 3}); got != "163" {
		t.Fatalf("unexpected rendering: %q", got)
	}
	if got := p.Print(nil); got != "" {
		t.Fatalf("expected empty rendering for empty chromosome, got %q", got)
	}
}

func TestFindNumberRandomGeneIsDigit(t *testing.T) {
	p := NewFindNumber(163)
	src := rng.New(1)
	for i := 0; i < 500; i++ {
		if g := p.RandomGene(src); g < 0 || g > 9 {
			t.Fatalf("gene out of digit range: %d", g)
		}
	}
}
