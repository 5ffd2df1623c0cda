// Package problem ships the built-in demo problems the CLI can run by
// name. Each problem implements evo.Problem for its own gene type; they
// double as realistic fixtures for the engine tests.
package problem

import (
	"strconv"
	"strings"

	"phylon/internal/model"
	"phylon/internal/rng"
)

// FindNumber searches for a target number represented as a chromosome of
// decimal digits. A chromosome scores one point per digit position that
// matches the target, minus one per position of length mismatch, so the
// maximum score equals the number of digits in the target.
type FindNumber struct {
	Target model.Chromosome[int]
}

// NewFindNumber builds the problem for a non-negative target number.
func NewFindNumber(target uint64) FindNumber {
	return FindNumber{Target: DigitsOf(target)}
}

func (FindNumber) Name() string { return "find-number" }

func (FindNumber) RandomGene(src *rng.Source) int {
	return src.Int(0, 9)
}

func (f FindNumber) Score(c model.Chromosome[int]) float64 {
	score := 0.0
	for i, digit := range c {
		switch {
		case i >= len(f.Target):
			score -= 1.0
		case digit == f.Target[i]:
			score += 1.0
		}
	}
	if len(c) < len(f.Target) {
		score -= float64(len(f.Target) - len(c))
	}
	return score
}

func (FindNumber) Print(c model.Chromosome[int]) string {
	var sb strings.Builder
	for _, digit := range c {
		sb.WriteString(strconv.Itoa(digit))
	}
	return sb.String()
}

// MaxScore is the score of an exact match, usable as a MaxScore ending
// threshold.
func (f FindNumber) MaxScore() float64 {
	return float64(len(f.Target))
}

// DigitsOf splits a number into its decimal digits, most significant
// first. Zero becomes the single-digit chromosome {0}.
func DigitsOf(number uint64) model.Chromosome[int] {
	text := strconv.FormatUint(number, 10)
	digits := make(model.Chromosome[int], len(text))
	for i, r := range text {
		digits[i] = int(r - '0')
	}
	return digits
}
