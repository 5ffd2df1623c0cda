// Package phylon is the embedding surface of the evolution platform. A
// Client owns a store and a lab, launches runs by name-keyed problem,
// selection, and ending configuration, and answers queries about
// persisted runs.
package phylon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"phylon/internal/evo"
	"phylon/internal/model"
	"phylon/internal/platform"
	"phylon/internal/problem"
	"phylon/internal/rng"
	"phylon/internal/storage"
)

const (
	defaultDBPath = "phylon.db"

	defaultFindNumberTarget = 163
	defaultRegressionTarget = "3 * x - 8.5"
)

type Options struct {
	StoreKind string
	DBPath    string

	// Logger receives per-generation progress lines. Nil disables them.
	Logger *slog.Logger
}

type Client struct {
	store  storage.Store
	lab    *platform.Lab
	logger *slog.Logger
}

// RunRequest configures one evolution run. Zero values fall back to the
// defaults noted per field.
type RunRequest struct {
	// RunID overrides the generated identifier. Default a fresh UUID.
	RunID string

	// Problem is "find-number" or "regression". Default "find-number".
	Problem string

	// Target is the number to find, find-number only. Default 163.
	Target uint64

	// Expression is the function to mimic, regression only.
	// Default "3 * x - 8.5".
	Expression string

	// Noise is the sample noise amplitude, regression only.
	Noise float64

	// Population is the chromosome count per generation. Default 100.
	Population int

	// MutationProbability is the per-chromosome mutation chance in
	// [0, 1]. Zero disables mutation; negative picks the default 0.1.
	MutationProbability float64

	// Selection is "roulette", "stochastic", or "tournament".
	// Default "tournament".
	Selection string

	// TournamentSize applies to tournament selection only. Default 10.
	TournamentSize int

	// Ending is "max-score", "best-score", or "never".
	// Default "best-score".
	Ending string

	// MaxScore is the max-score threshold. Zero picks a per-problem
	// default: the full find-number score, or 99 for regression.
	MaxScore float64

	// MinSize and MaxSize bound generated chromosome lengths, both
	// inclusive. Zero picks per-problem defaults.
	MinSize int
	MaxSize int

	// Seed fixes the random source. Zero seeds from the clock.
	Seed int64
}

type RunSummary struct {
	RunID       string
	Problem     string
	Generations int
	BestScore   float64
	Best        string
	History     []float64
}

type RunsRequest struct {
	Limit int
}

type FitnessHistoryRequest struct {
	RunID  string
	Latest bool
	Limit  int
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	return &Client{store: store, logger: opts.Logger}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	_, err := c.ensureLab(ctx)
	return err
}

// Run executes one evolution run to completion on the caller's
// goroutine, persists its record and fitness history, and returns a
// summary. Cancelling ctx stops the run at the next generation boundary
// and still persists what was evolved; pair it with the "never" ending
// for open-ended runs.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Problem == "" {
		req.Problem = "find-number"
	}
	if req.Population <= 0 {
		req.Population = 100
	}
	if req.MutationProbability < 0 {
		req.MutationProbability = 0.1
	}
	if req.Selection == "" {
		req.Selection = "tournament"
	}
	if req.TournamentSize <= 0 {
		req.TournamentSize = 10
	}
	if req.Ending == "" {
		req.Ending = "best-score"
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	switch req.Problem {
	case "find-number":
		if req.Target == 0 {
			req.Target = defaultFindNumberTarget
		}
		p := problem.NewFindNumber(req.Target)
		if req.MinSize <= 0 {
			req.MinSize = 1
		}
		if req.MaxSize <= 0 {
			req.MaxSize = 2 * len(problem.DigitsOf(req.Target))
		}
		if req.MaxScore == 0 {
			req.MaxScore = p.MaxScore()
		}
		return runProblem[int](ctx, c, req, p)
	case "regression":
		if req.Expression == "" {
			req.Expression = defaultRegressionTarget
		}
		target, err := problem.ParseExpression(req.Expression)
		if err != nil {
			return RunSummary{}, fmt.Errorf("target expression: %w", err)
		}
		p := problem.NewRegression(target, problem.DefaultInputs(), req.Noise, rng.New(req.Seed))
		if req.MinSize <= 0 {
			req.MinSize = 1
		}
		if req.MaxSize <= 0 {
			req.MaxSize = 2*len(target) + 1
		}
		if req.MaxScore == 0 {
			req.MaxScore = 99
		}
		return runProblem[problem.Token](ctx, c, req, p)
	default:
		return RunSummary{}, fmt.Errorf("unsupported problem: %s", req.Problem)
	}
}

// Runs lists persisted runs, newest first.
func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]model.RunRecord, error) {
	if req.Limit <= 0 {
		req.Limit = 20
	}
	lab, err := c.ensureLab(ctx)
	if err != nil {
		return nil, err
	}
	records, err := lab.Runs(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) > req.Limit {
		records = records[:req.Limit]
	}
	return records, nil
}

func (c *Client) FitnessHistory(ctx context.Context, req FitnessHistoryRequest) ([]float64, error) {
	if req.RunID != "" && req.Latest {
		return nil, errors.New("use either run id or latest")
	}
	if req.Limit < 0 {
		return nil, errors.New("limit must be >= 0")
	}

	lab, err := c.ensureLab(ctx)
	if err != nil {
		return nil, err
	}

	runID := req.RunID
	if req.Latest {
		records, err := lab.Runs(ctx)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, errors.New("no runs available")
		}
		runID = records[0].ID
	}
	if runID == "" {
		return nil, errors.New("fitness history requires run id or latest")
	}

	history, ok, err := lab.FitnessHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("fitness history not found for run id: %s", runID)
	}
	if req.Limit > 0 && len(history) > req.Limit {
		history = history[:req.Limit]
	}
	return history, nil
}

func (c *Client) ensureLab(ctx context.Context) (*platform.Lab, error) {
	if c.lab != nil {
		return c.lab, nil
	}
	lab := platform.NewLab(platform.Config{Store: c.store})
	if err := lab.Init(ctx); err != nil {
		return nil, err
	}
	c.lab = lab
	return c.lab, nil
}

// runProblem is generic over the gene type, which Client methods cannot
// be; Run dispatches here once the problem is concrete.
func runProblem[G any](ctx context.Context, c *Client, req RunRequest, p evo.Problem[G]) (RunSummary, error) {
	selector, err := selectionFromName[G](req.Selection, req.TournamentSize)
	if err != nil {
		return RunSummary{}, err
	}
	criterion, err := endingFromName(req.Ending, req.MaxScore)
	if err != nil {
		return RunSummary{}, err
	}

	engine, err := evo.NewEngine(evo.Config[G]{
		Problem:             p,
		PopulationSize:      req.Population,
		MutationProbability: req.MutationProbability,
		Selector:            selector,
		Ending:              criterion,
		MinChromosomeSize:   req.MinSize,
		MaxChromosomeSize:   req.MaxSize,
		Rand:                rng.New(req.Seed),
		Logger:              c.logger,
	})
	if err != nil {
		return RunSummary{}, err
	}

	lab, err := c.ensureLab(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	if err := lab.RegisterRun(runID, engine); err != nil {
		return RunSummary{}, err
	}
	defer lab.UnregisterRun(runID)

	if err := engine.Run(ctx); err != nil {
		return RunSummary{}, err
	}

	best, bestScore, ok := engine.Best()
	if !ok {
		return RunSummary{}, errors.New("run produced no scored generation")
	}
	rendered := evo.Render(p, best)
	history := engine.History()

	record := model.RunRecord{
		ID:                  runID,
		Problem:             p.Name(),
		CreatedAtUTC:        time.Now().UTC().Format(time.RFC3339Nano),
		PopulationSize:      req.Population,
		MutationProbability: req.MutationProbability,
		Selection:           selector.Name(),
		Ending:              criterion.Name(),
		Generations:         len(history),
		BestScore:           bestScore,
		BestRendered:        rendered,
	}
	if err := lab.RecordRun(ctx, record, history); err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:       runID,
		Problem:     p.Name(),
		Generations: len(history),
		BestScore:   bestScore,
		Best:        rendered,
		History:     history,
	}, nil
}

func selectionFromName[G any](name string, tournamentSize int) (evo.Selector[G], error) {
	switch name {
	case "roulette":
		return evo.RouletteWheel[G]{}, nil
	case "stochastic":
		return evo.StochasticUniversal[G]{}, nil
	case "tournament":
		return evo.Tournament[G]{Size: tournamentSize}, nil
	default:
		return nil, fmt.Errorf("unsupported selection strategy: %s", name)
	}
}

func endingFromName(name string, maxScore float64) (evo.Criterion, error) {
	switch name {
	case "max-score":
		return evo.MaxScore{Threshold: maxScore}, nil
	case "best-score":
		return &evo.BestScore{}, nil
	case "never":
		return evo.NeverStop{}, nil
	default:
		return nil, fmt.Errorf("unsupported ending criterion: %s", name)
	}
}
