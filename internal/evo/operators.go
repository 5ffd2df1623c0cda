package evo

import (
	"phylon/internal/model"
	"phylon/internal/rng"
)

// Cross recombines two chromosomes in place by swapping genes over
// alternating runs of positions. Run boundaries are drawn uniformly in
// [current index, m] where m is the shorter length, and the first run is
// always an exchange run. Genes beyond m stay put, so both chromosomes
// keep their original lengths.
func Cross[G any](src *rng.Source, a, b model.Chromosome[G]) {
	shorter := len(a)
	if len(b) < shorter {
		shorter = len(b)
	}

	index := 0
	exchange := true
	for index < shorter {
		next := src.Int(index, shorter)
		if exchange {
			for i := index; i < next; i++ {
				a[i], b[i] = b[i], a[i]
			}
		}
		exchange = !exchange
		index = next
	}
}

// Mutate perturbs a chromosome with the given per-chromosome
// probability. When the check fires, genes in [begin, end) are replaced
// with fresh ones from the problem's generator; begin may equal end, in
// which case the mutation replaces nothing. Length never changes.
func Mutate[G any](src *rng.Source, c model.Chromosome[G], probability float64, p Problem[G]) {
	if src.Float64(0, 1) > probability {
		return
	}

	begin := src.Int(0, len(c)-1)
	end := src.Int(begin, len(c))
	for i := begin; i < end; i++ {
		c[i] = p.RandomGene(src)
	}
}

func randomChromosome[G any](src *rng.Source, p Problem[G], minSize, maxSize int) model.Chromosome[G] {
	size := src.Int(minSize, maxSize)
	c := make(model.Chromosome[G], size)
	for i := range c {
		c[i] = p.RandomGene(src)
	}
	return c
}
