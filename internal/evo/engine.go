package evo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"phylon/internal/model"
	"phylon/internal/population"
	"phylon/internal/rng"
)

// Config carries everything an Engine needs. Zero values fall back to
// the defaults listed on each field; validation happens in NewEngine and
// again never — a constructed engine is runnable as-is.
type Config[G any] struct {
	// Problem is the user-supplied gene generator and fitness
	// evaluator. Required.
	Problem Problem[G]

	// PopulationSize is the number of chromosomes per generation.
	// Default 100.
	PopulationSize int

	// MutationProbability is the per-chromosome chance of a mutation
	// event, in [0, 1]. Zero disables mutation.
	MutationProbability float64

	// Selector picks parents each generation. Default Tournament{Size: 10}.
	Selector Selector[G]

	// Ending decides when the run stops. Default &BestScore{}.
	Ending Criterion

	// MinChromosomeSize and MaxChromosomeSize bound generated
	// chromosome lengths, both inclusive. Defaults 1 and 100.
	MinChromosomeSize int
	MaxChromosomeSize int

	// Rand is the random source shared by every operator. Default
	// rng.Global().
	Rand *rng.Source

	// Logger receives one line per generation and one at termination.
	// Nil disables logging; logging never affects the run's outcome.
	Logger *slog.Logger
}

// Engine drives one evolution run at a time: score the population,
// check the ending criterion, then select, cross, and mutate into the
// next generation. It is re-entrant: a finished engine can be run again
// and starts from a fresh random population.
type Engine[G any] struct {
	cfg Config[G]

	mu         sync.RWMutex
	ledger     *population.Ledger[G]
	best       model.Scored[G]
	haveBest   bool
	history    []float64
	generation int
	running    bool
	done       chan struct{}
}

// NewEngine validates the configuration, applies defaults, and returns
// a ready engine. Configuration errors surface here, before any
// background work can start.
func NewEngine[G any](cfg Config[G]) (*Engine[G], error) {
	if cfg.Problem == nil {
		return nil, fmt.Errorf("problem is required")
	}
	if cfg.PopulationSize == 0 {
		cfg.PopulationSize = 100
	}
	if cfg.PopulationSize < 2 {
		return nil, fmt.Errorf("population size must be >= 2, got %d", cfg.PopulationSize)
	}
	if cfg.MutationProbability < 0 || cfg.MutationProbability > 1 {
		return nil, fmt.Errorf("mutation probability must be in [0, 1], got %g", cfg.MutationProbability)
	}
	if cfg.MinChromosomeSize == 0 {
		cfg.MinChromosomeSize = 1
	}
	if cfg.MaxChromosomeSize == 0 {
		cfg.MaxChromosomeSize = 100
	}
	if cfg.MinChromosomeSize < 1 {
		return nil, fmt.Errorf("minimum chromosome size must be >= 1, got %d", cfg.MinChromosomeSize)
	}
	if cfg.MaxChromosomeSize < cfg.MinChromosomeSize {
		return nil, fmt.Errorf("chromosome size range is inverted: [%d, %d]", cfg.MinChromosomeSize, cfg.MaxChromosomeSize)
	}
	if cfg.Selector == nil {
		cfg.Selector = Tournament[G]{Size: 10}
	}
	if cfg.Ending == nil {
		cfg.Ending = &BestScore{}
	}
	if cfg.Rand == nil {
		cfg.Rand = rng.Global()
	}
	if validator, ok := cfg.Selector.(populationValidator); ok {
		if err := validator.validatePopulation(cfg.PopulationSize); err != nil {
			return nil, err
		}
	}

	return &Engine[G]{cfg: cfg}, nil
}

// Run executes the full evolution loop on the caller's goroutine and
// returns when the ending criterion fires, Stop is called, or ctx is
// cancelled. Interruption takes effect between generations only.
func (e *Engine[G]) Run(ctx context.Context) error {
	seed, err := e.prepare()
	if err != nil {
		return err
	}
	e.evolve(ctx, seed)
	return nil
}

// Start launches the evolution loop on its own goroutine and returns
// immediately, leaving the caller free to poll Best or call Stop.
// Configuration and concurrent-run errors still surface synchronously.
func (e *Engine[G]) Start(ctx context.Context) error {
	seed, err := e.prepare()
	if err != nil {
		return err
	}
	go e.evolve(ctx, seed)
	return nil
}

// Stop requests termination. The in-progress generation always runs to
// completion; the run ends at the next generation boundary.
func (e *Engine[G]) Stop() {
	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
}

// Wait blocks until a run launched with Start has finished. It returns
// immediately when no run is active.
func (e *Engine[G]) Wait() {
	e.mu.RLock()
	done := e.done
	e.mu.RUnlock()
	if done != nil {
		<-done
	}
}

// Running reports whether a run is in progress.
func (e *Engine[G]) Running() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.running
}

// Generation returns the number of completed generations of the current
// or most recent run.
func (e *Engine[G]) Generation() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.generation
}

// Best returns the highest-scored chromosome recorded so far in the
// current or most recent run. The score never decreases within a run:
// later generations may regress, but the best-known chromosome is kept.
// It is safe to call during a run and only ever observes fully scored
// generations. ok is false before the first generation has been scored.
func (e *Engine[G]) Best() (c model.Chromosome[G], score float64, ok bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.haveBest {
		return nil, 0, false
	}
	return e.best.Chromosome.Clone(), e.best.Score, true
}

// History returns the best-of-generation scores of the current or most
// recent run, oldest first.
func (e *Engine[G]) History() []float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]float64(nil), e.history...)
}

// Scores returns every score of the most recently scored generation in
// ascending order. It is nil before the first generation has been
// scored.
func (e *Engine[G]) Scores() []float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.ledger == nil {
		return nil
	}
	scores := make([]float64, e.ledger.Len())
	for i := range scores {
		scores[i] = e.ledger.ScoreAt(i)
	}
	return scores
}

// prepare flips the engine into a fresh run and seeds the initial
// population synchronously, so both Run and Start surface errors before
// any evolution happens.
func (e *Engine[G]) prepare() ([]model.Chromosome[G], error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return nil, fmt.Errorf("run already active")
	}
	e.running = true
	e.generation = 0
	e.history = nil
	e.ledger = nil
	e.best = model.Scored[G]{}
	e.haveBest = false
	e.done = make(chan struct{})
	e.cfg.Ending.Reset()

	seed := make([]model.Chromosome[G], 0, e.cfg.PopulationSize)
	for i := 0; i < e.cfg.PopulationSize; i++ {
		seed = append(seed, randomChromosome(e.cfg.Rand, e.cfg.Problem, e.cfg.MinChromosomeSize, e.cfg.MaxChromosomeSize))
	}
	return seed, nil
}

func (e *Engine[G]) evolve(ctx context.Context, working []model.Chromosome[G]) {
	for {
		// Score every chromosome exactly once into a fresh ledger and
		// publish it atomically; readers of Best never see a
		// half-built generation.
		ledger := population.NewLedger[G](len(working))
		for _, c := range working {
			ledger.Insert(e.cfg.Problem.Score(c), c)
		}
		best := ledger.Best()

		e.mu.Lock()
		e.ledger = ledger
		if !e.haveBest || best.Score > e.best.Score {
			e.best = best
			e.haveBest = true
		}
		e.history = append(e.history, best.Score)
		generation := e.generation
		interrupted := !e.running || ctx.Err() != nil
		e.mu.Unlock()

		if e.cfg.Logger != nil {
			e.cfg.Logger.Info("generation scored",
				"generation", generation,
				"best_score", best.Score,
				"best", Render(e.cfg.Problem, best.Chromosome))
		}

		if interrupted {
			break
		}
		if e.cfg.Ending.Done(best.Score) {
			if e.cfg.Logger != nil {
				e.cfg.Logger.Info("ending criterion matched", "criterion", e.cfg.Ending.Name())
			}
			break
		}

		next := make([]model.Chromosome[G], 0, e.cfg.PopulationSize)
		for len(next) < e.cfg.PopulationSize {
			var parents []model.Chromosome[G]
			for len(parents) < 2 {
				parents = append(parents, e.cfg.Selector.Select(e.cfg.Rand, ledger)...)
			}
			// An odd leftover parent is dropped for this batch, not
			// carried over.
			for i := 0; i+1 < len(parents); i += 2 {
				first := parents[i].Clone()
				second := parents[i+1].Clone()
				Cross(e.cfg.Rand, first, second)
				next = append(next, first, second)
			}
		}
		for _, c := range next {
			Mutate(e.cfg.Rand, c, e.cfg.MutationProbability, e.cfg.Problem)
		}

		e.mu.Lock()
		e.generation++
		e.mu.Unlock()
		working = next
	}

	e.mu.Lock()
	e.running = false
	done := e.done
	e.done = nil
	finalBest := e.best
	e.mu.Unlock()

	if e.cfg.Logger != nil {
		e.cfg.Logger.Info("run finished",
			"generations", e.Generation(),
			"best_score", finalBest.Score,
			"best", Render(e.cfg.Problem, finalBest.Chromosome))
	}
	close(done)
}
