package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"phylon/internal/platform"
	"phylon/internal/storage"
	phylonapi "phylon/pkg/phylon"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "fitness":
		return runFitness(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "phylon.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := storage.NewStore(*storeKind, *dbPath)
	if err != nil {
		return err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	lab := platform.NewLab(platform.Config{Store: store})
	if err := lab.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	runID := fs.String("run-id", "", "explicit run id (optional)")
	problemName := fs.String("problem", "find-number", "problem: find-number|regression")
	target := fs.Uint64("target", 163, "number to find (find-number)")
	expression := fs.String("expr", "3 * x - 8.5", "target expression (regression)")
	noise := fs.Float64("noise", 0, "sample noise amplitude (regression)")
	population := fs.Int("pop", 100, "population size")
	mutationProbability := fs.Float64("mutation-prob", 0.1, "per-chromosome mutation probability (0 disables mutation)")
	selectionName := fs.String("selection", "tournament", "parent selection strategy: roulette|stochastic|tournament")
	tournamentSize := fs.Int("tournament-size", 10, "contestant count for selection=tournament")
	endingName := fs.String("ending", "best-score", "ending criterion: max-score|best-score|never")
	maxScore := fs.Float64("max-score", 0, "threshold for ending=max-score (0 uses the problem default)")
	minSize := fs.Int("min-size", 0, "minimum chromosome size (0 uses the problem default)")
	maxSize := fs.Int("max-size", 0, "maximum chromosome size (0 uses the problem default)")
	seed := fs.Int64("seed", 0, "rng seed (0 seeds from the clock)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "phylon.db", "sqlite database path")
	quiet := fs.Bool("quiet", false, "suppress per-generation progress logging")
	jsonOut := fs.Bool("json", false, "emit run summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var logger *slog.Logger
	if !*quiet {
		logger = newLogger()
	}

	client, err := phylonapi.New(phylonapi.Options{
		StoreKind: *storeKind,
		DBPath:    *dbPath,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	// Interrupt stops the run at the next generation boundary; the
	// evolved-so-far record is still persisted.
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	summary, err := client.Run(ctx, phylonapi.RunRequest{
		RunID:               *runID,
		Problem:             *problemName,
		Target:              *target,
		Expression:          *expression,
		Noise:               *noise,
		Population:          *population,
		MutationProbability: *mutationProbability,
		Selection:           *selectionName,
		TournamentSize:      *tournamentSize,
		Ending:              *endingName,
		MaxScore:            *maxScore,
		MinSize:             *minSize,
		MaxSize:             *maxSize,
		Seed:                *seed,
	})
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(summary)
	}
	fmt.Printf("run=%s problem=%s generations=%s best_score=%g best=%q\n",
		summary.RunID, summary.Problem, humanize.Comma(int64(summary.Generations)), summary.BestScore, summary.Best)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "phylon.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := phylonapi.New(phylonapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	records, err := client.Runs(ctx, phylonapi.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	if *jsonOut {
		return printJSON(records)
	}
	for _, r := range records {
		created := r.CreatedAtUTC
		if at, err := time.Parse(time.RFC3339Nano, r.CreatedAtUTC); err == nil {
			created = humanize.Time(at)
		}
		fmt.Printf("%s  %-12s pop=%-5s gens=%-6s best=%-10g %s  %s\n",
			r.ID, r.Problem,
			humanize.Comma(int64(r.PopulationSize)),
			humanize.Comma(int64(r.Generations)),
			r.BestScore, r.BestRendered, created)
	}
	return nil
}

func runFitness(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fitness", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	latest := fs.Bool("latest", false, "show fitness history for the most recent run")
	limit := fs.Int("limit", 50, "max generations to print (<=0 for all)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "phylon.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit fitness history as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID != "" && *latest {
		return errors.New("use either --run-id or --latest, not both")
	}
	if *runID == "" && !*latest {
		return errors.New("fitness requires --run-id or --latest")
	}

	client, err := phylonapi.New(phylonapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.FitnessHistory(ctx, phylonapi.FitnessHistoryRequest{
		RunID:  *runID,
		Latest: *latest,
		Limit:  max(*limit, 0),
	})
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(history)
	}
	for i, score := range history {
		fmt.Printf("gen=%d best=%g\n", i, score)
	}
	return nil
}

func newLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: "15:04:05",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: phylonctl <init|run|runs|fitness> [flags]", msg)
}
