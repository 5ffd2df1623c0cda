package evo

import (
	"fmt"

	"phylon/internal/model"
	"phylon/internal/population"
	"phylon/internal/rng"
)

// Selector chooses one or more chromosomes from the current ledger to
// parent the next generation.
type Selector[G any] interface {
	Name() string
	Select(src *rng.Source, ledger *population.Ledger[G]) []model.Chromosome[G]
}

// populationValidator is implemented by selectors whose parameters are
// only meaningful relative to the population size. The engine checks it
// before the first generation.
type populationValidator interface {
	validatePopulation(size int) error
}

// RouletteWheel is fitness-proportionate selection: spin once over
// [0, total score] and take the chromosome the wheel stops on. Known
// limitation: with a total score <= 0 the wheel has no meaningful
// slots and selection degenerates toward the worst-ranked entries; the
// scoring function, not the selector, must keep totals positive.
type RouletteWheel[G any] struct{}

func (RouletteWheel[G]) Name() string { return "roulette_wheel" }

func (RouletteWheel[G]) Select(src *rng.Source, ledger *population.Ledger[G]) []model.Chromosome[G] {
	spin := src.Float64(0, ledger.TotalScore())
	return []model.Chromosome[G]{ledger.AtCumulative(spin)}
}

// StochasticUniversal draws a random number of chromosomes whose
// cumulative scores are evenly spaced across the fitness distribution.
// It may return fewer chromosomes than it aimed for when the last
// spacing step overshoots the total score; callers take what they get.
// A total score <= 0 leaves no room for spaced marks and collapses the
// draw to a single pick.
type StochasticUniversal[G any] struct{}

func (StochasticUniversal[G]) Name() string { return "stochastic_universal" }

func (StochasticUniversal[G]) Select(src *rng.Source, ledger *population.Ledger[G]) []model.Chromosome[G] {
	count := ledger.Len() / 10
	if count < 1 {
		count = 1
	}
	toSelect := src.Int(1, count)

	total := ledger.TotalScore()
	if total <= 0 {
		return []model.Chromosome[G]{ledger.AtCumulative(0)}
	}
	spacing := total / float64(toSelect)
	offset := src.Float64(0, spacing)

	var selected []model.Chromosome[G]
	for mark := offset; mark <= total; mark += spacing {
		selected = append(selected, ledger.AtCumulative(mark))
	}
	return selected
}

// Tournament draws Size entries uniformly with replacement and keeps
// the single best among them; the first-seen entry wins score ties.
type Tournament[G any] struct {
	Size int
}

func (Tournament[G]) Name() string { return "tournament" }

func (t Tournament[G]) Select(src *rng.Source, ledger *population.Ledger[G]) []model.Chromosome[G] {
	contenders := make([]int, t.Size)
	for i := range contenders {
		contenders[i] = src.Int(0, ledger.Len()-1)
	}

	bestIndex := contenders[0]
	bestScore := ledger.ScoreAt(bestIndex)
	for _, index := range contenders[1:] {
		if score := ledger.ScoreAt(index); score > bestScore {
			bestIndex = index
			bestScore = score
		}
	}
	return []model.Chromosome[G]{ledger.ChromosomeAt(bestIndex)}
}

func (t Tournament[G]) validatePopulation(size int) error {
	if t.Size <= 0 {
		return fmt.Errorf("tournament size must be > 0, got %d", t.Size)
	}
	if t.Size > size {
		return fmt.Errorf("tournament size %d exceeds population size %d", t.Size, size)
	}
	return nil
}
