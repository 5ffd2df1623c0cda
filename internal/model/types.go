package model

// Chromosome is an ordered sequence of genes representing one candidate
// solution. The gene type is supplied by the caller; the engine never
// inspects gene values.
type Chromosome[G any] []G

// Clone returns an independent copy of the chromosome.
func (c Chromosome[G]) Clone() Chromosome[G] {
	if c == nil {
		return nil
	}
	out := make(Chromosome[G], len(c))
	copy(out, c)
	return out
}

// Scored pairs a chromosome with its fitness score. Higher is better;
// negative scores are legal.
type Scored[G any] struct {
	Score      float64
	Chromosome Chromosome[G]
}

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// RunRecord summarizes one completed or in-progress evolution run as
// persisted by the storage layer. Chromosomes are stored rendered, not
// structurally: persistence observes runs, it never feeds back into them.
type RunRecord struct {
	VersionedRecord
	ID                  string  `json:"id"`
	Problem             string  `json:"problem"`
	CreatedAtUTC        string  `json:"created_at_utc"`
	PopulationSize      int     `json:"population_size"`
	MutationProbability float64 `json:"mutation_probability"`
	Selection           string  `json:"selection"`
	Ending              string  `json:"ending"`
	Generations         int     `json:"generations"`
	BestScore           float64 `json:"best_score"`
	BestRendered        string  `json:"best_rendered,omitempty"`
}
