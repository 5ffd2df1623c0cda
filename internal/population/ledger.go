// Package population holds the fitness-ordered working set the selection
// operators read. A Ledger is rebuilt from scratch every generation and is
// never mutated once the engine publishes it.
package population

import (
	"sort"

	"phylon/internal/model"
)

// Ledger is a multiset of scored chromosomes kept in ascending score
// order. Insertion is stable: among equal scores the most recently
// inserted entry sits closest to the top, so Best returns it.
type Ledger[G any] struct {
	entries []model.Scored[G]
}

// NewLedger returns an empty ledger sized for capacity entries.
func NewLedger[G any](capacity int) *Ledger[G] {
	return &Ledger[G]{entries: make([]model.Scored[G], 0, capacity)}
}

// Insert adds an entry, preserving ascending score order. Duplicate
// scores are permitted.
func (l *Ledger[G]) Insert(score float64, c model.Chromosome[G]) {
	idx := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].Score > score
	})
	l.entries = append(l.entries, model.Scored[G]{})
	copy(l.entries[idx+1:], l.entries[idx:])
	l.entries[idx] = model.Scored[G]{Score: score, Chromosome: c}
}

// Len reports the number of entries.
func (l *Ledger[G]) Len() int {
	return len(l.entries)
}

// Best returns the highest-scored entry. Among equal scores the most
// recently inserted wins. Calling Best on an empty ledger returns the
// zero entry.
func (l *Ledger[G]) Best() model.Scored[G] {
	if len(l.entries) == 0 {
		return model.Scored[G]{}
	}
	return l.entries[len(l.entries)-1]
}

// ScoreAt returns the score at the given ascending-rank position.
// Out-of-range indices return 0 rather than failing; selection treats a
// bad index as a harmless miss.
func (l *Ledger[G]) ScoreAt(index int) float64 {
	if index < 0 || index >= len(l.entries) {
		return 0
	}
	return l.entries[index].Score
}

// ChromosomeAt returns the chromosome at the given ascending-rank
// position, or the best chromosome when the index is out of range.
func (l *Ledger[G]) ChromosomeAt(index int) model.Chromosome[G] {
	if index < 0 || index >= len(l.entries) {
		return l.Best().Chromosome
	}
	return l.entries[index].Chromosome
}

// AtCumulative returns the smallest-rank chromosome whose running
// cumulative score, summed in ascending order, reaches the threshold.
// When no entry reaches it the best chromosome is returned.
func (l *Ledger[G]) AtCumulative(threshold float64) model.Chromosome[G] {
	cumulative := 0.0
	for _, entry := range l.entries {
		cumulative += entry.Score
		if threshold <= cumulative {
			return entry.Chromosome
		}
	}
	return l.Best().Chromosome
}

// TotalScore sums every score in the ledger. The sum may be zero or
// negative; callers dividing by it must tolerate that.
func (l *Ledger[G]) TotalScore() float64 {
	total := 0.0
	for _, entry := range l.entries {
		total += entry.Score
	}
	return total
}
