package evo

import (
	"phylon/internal/model"
	"phylon/internal/rng"
)

// Problem supplies the two callbacks the engine cannot invent: how to
// make a gene and how to judge a chromosome. The engine calls Score
// exactly once per chromosome per generation and never validates gene
// values.
type Problem[G any] interface {
	Name() string
	RandomGene(src *rng.Source) G
	Score(c model.Chromosome[G]) float64
}

// Printer renders a chromosome for logging. Problems that do not
// implement it log without a rendering; printing never affects the
// algorithm.
type Printer[G any] interface {
	Print(c model.Chromosome[G]) string
}

// Render returns the problem's rendering of c, or the empty string when
// the problem has no Printer.
func Render[G any](p Problem[G], c model.Chromosome[G]) string {
	if printer, ok := p.(Printer[G]); ok {
		return printer.Print(c)
	}
	return ""
}
