package evo

import (
	"testing"

	"phylon/internal/model"
	"phylon/internal/rng"
)

// digitProblem generates digit genes; scoring is irrelevant to the
// operator tests.
type digitProblem struct{}

func (digitProblem) Name() string { return "digits" }

func (digitProblem) RandomGene(src *rng.Source) int { return src.Int(0, 9) }

func (digitProblem) Score(model.Chromosome[int]) float64 { return 0 }

func TestCrossPreservesLengthsAndGenePool(t *testing.T) {
	src := rng.New(1)
	for i := 0; i < 200; i++ {
		a := make(model.Chromosome[int], src.Int(1, 12))
		b := make(model.Chromosome[int], src.Int(1, 12))
		for j := range a {
			a[j] = j
		}
		for j := range b {
			b[j] = 100 + j
		}
		lenA, lenB := len(a), len(b)

		Cross(src, a, b)

		if len(a) != lenA || len(b) != lenB {
			t.Fatalf("lengths changed: a=%d->%d b=%d->%d", lenA, len(a), lenB, len(b))
		}
		// Positions only ever swap between the two chromosomes, so each
		// position holds one of exactly two known values.
		for j := 0; j < lenA; j++ {
			if a[j] != j && a[j] != 100+j {
				t.Fatalf("unexpected gene at a[%d]: %d", j, a[j])
			}
		}
		for j := 0; j < lenB; j++ {
			if b[j] != j && b[j] != 100+j {
				t.Fatalf("unexpected gene at b[%d]: %d", j, b[j])
			}
		}
	}
}

func TestCrossLeavesTailBeyondShorterUntouched(t *testing.T) {
	src := rng.New(2)
	for i := 0; i < 100; i++ {
		a := model.Chromosome[int]{0, 1, 2}
		b := model.Chromosome[int]{100, 101, 102, 103, 104}

		Cross(src, a, b)

		for j := 3; j < len(b); j++ {
			if b[j] != 100+j {
				t.Fatalf("tail gene moved at b[%d]: %d", j, b[j])
			}
		}
	}
}

func TestCrossSwapsPairedPositions(t *testing.T) {
	src := rng.New(3)
	swappedOnce := false
	for i := 0; i < 100; i++ {
		a := model.Chromosome[int]{0, 1, 2, 3, 4, 5}
		b := model.Chromosome[int]{100, 101, 102, 103, 104, 105}

		Cross(src, a, b)

		for j := range a {
			fromA := a[j] == j
			fromB := b[j] == 100+j
			if fromA != fromB {
				t.Fatalf("position %d swapped on one side only: a=%d b=%d", j, a[j], b[j])
			}
			if !fromA {
				swappedOnce = true
			}
		}
	}
	if !swappedOnce {
		t.Fatal("crossover never exchanged a position over 100 runs")
	}
}

func TestMutateZeroProbabilityLeavesChromosomeAlone(t *testing.T) {
	src := rng.New(4)
	changed := 0
	for i := 0; i < 1000; i++ {
		c := model.Chromosome[int]{7, 7, 7, 7, 7}
		Mutate(src, c, 0, digitProblem{})
		for _, g := range c {
			if g != 7 {
				changed++
				break
			}
		}
	}
	if changed > 0 {
		t.Fatalf("zero-probability mutation changed %d/1000 chromosomes", changed)
	}
}

func TestMutateAlwaysFiresWithFullProbability(t *testing.T) {
	src := rng.New(5)
	c := model.Chromosome[int]{-1, -1, -1, -1, -1, -1, -1, -1}
	for i := 0; i < 200; i++ {
		Mutate(src, c, 1, digitProblem{})
		if len(c) != 8 {
			t.Fatalf("mutation changed length: %d", len(c))
		}
	}
	// With probability 1 and 200 rounds, every position should have been
	// rewritten with a digit at least once.
	for i, g := range c {
		if g < 0 || g > 9 {
			t.Fatalf("position %d never replaced: %d", i, g)
		}
	}
}

func TestMutateReplacesOnlyChosenRange(t *testing.T) {
	src := rng.New(6)
	for i := 0; i < 100; i++ {
		c := make(model.Chromosome[int], 10)
		for j := range c {
			c[j] = 50 + j
		}
		Mutate(src, c, 1, digitProblem{})

		// Replaced positions hold digits; untouched positions keep their
		// sentinel values. Both must form a single contiguous block.
		begin, end := -1, -1
		for j, g := range c {
			if g < 10 {
				if begin == -1 {
					begin = j
				}
				end = j
			}
		}
		if begin == -1 {
			continue
		}
		for j := begin; j <= end; j++ {
			if c[j] >= 10 {
				t.Fatalf("non-contiguous mutation at %d: %v", j, c)
			}
		}
	}
}

func TestRandomChromosomeRespectsSizeBounds(t *testing.T) {
	src := rng.New(7)
	for i := 0; i < 200; i++ {
		c := randomChromosome[int](src, digitProblem{}, 3, 6)
		if len(c) < 3 || len(c) > 6 {
			t.Fatalf("size out of bounds: %d", len(c))
		}
		for _, g := range c {
			if g < 0 || g > 9 {
				t.Fatalf("gene out of range: %d", g)
			}
		}
	}
}
