// Package platform owns the lifecycle around evolution runs: it holds
// the store, tracks active runs so they can be stopped by ID, and
// records finished runs. It never reaches into a running engine beyond
// the engine's own Stop contract.
package platform

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"phylon/internal/model"
	"phylon/internal/storage"
)

type Config struct {
	Store storage.Store
}

// Stopper is the slice of the engine surface the lab needs: request
// termination at the next generation boundary.
type Stopper interface {
	Stop()
}

type Lab struct {
	store storage.Store

	mu      sync.RWMutex
	started bool
	runs    map[string]Stopper
}

func NewLab(cfg Config) *Lab {
	return &Lab{
		store: cfg.Store,
		runs:  make(map[string]Stopper),
	}
}

func (l *Lab) Init(ctx context.Context) error {
	if l.store == nil {
		return fmt.Errorf("store is required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return nil
	}
	if err := l.store.Init(ctx); err != nil {
		return err
	}
	l.started = true
	return nil
}

func (l *Lab) Started() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.started
}

// RegisterRun tracks an active run under its ID so StopRun can reach it.
func (l *Lab) RegisterRun(runID string, run Stopper) error {
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	if run == nil {
		return fmt.Errorf("run handle is required")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.started {
		return fmt.Errorf("lab is not initialized")
	}
	if _, exists := l.runs[runID]; exists {
		return fmt.Errorf("run already active: %s", runID)
	}
	l.runs[runID] = run
	return nil
}

func (l *Lab) UnregisterRun(runID string) {
	l.mu.Lock()
	delete(l.runs, runID)
	l.mu.Unlock()
}

// StopRun requests termination of an active run; the run leaves the
// registry when its owner unregisters it after the engine drains.
func (l *Lab) StopRun(runID string) error {
	l.mu.RLock()
	run, ok := l.runs[runID]
	l.mu.RUnlock()
	if !ok {
		return fmt.Errorf("run not active: %s", runID)
	}
	run.Stop()
	return nil
}

// Shutdown stops every active run. Engines drain at their next
// generation boundary; Shutdown does not wait for them.
func (l *Lab) Shutdown() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, run := range l.runs {
		run.Stop()
	}
	l.started = false
}

func (l *Lab) ActiveRuns() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.runs))
	for name := range l.runs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RecordRun persists the summary record and fitness history of a
// finished run.
func (l *Lab) RecordRun(ctx context.Context, run model.RunRecord, history []float64) error {
	if !l.Started() {
		return fmt.Errorf("lab is not initialized")
	}
	run.SchemaVersion = storage.CurrentSchemaVersion
	run.CodecVersion = storage.CurrentCodecVersion
	if err := l.store.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	if err := l.store.SaveFitnessHistory(ctx, run.ID, history); err != nil {
		return fmt.Errorf("save fitness history %s: %w", run.ID, err)
	}
	return nil
}

func (l *Lab) Runs(ctx context.Context) ([]model.RunRecord, error) {
	if !l.Started() {
		return nil, fmt.Errorf("lab is not initialized")
	}
	return l.store.ListRuns(ctx)
}

func (l *Lab) Run(ctx context.Context, runID string) (model.RunRecord, bool, error) {
	if !l.Started() {
		return model.RunRecord{}, false, fmt.Errorf("lab is not initialized")
	}
	return l.store.GetRun(ctx, runID)
}

func (l *Lab) FitnessHistory(ctx context.Context, runID string) ([]float64, bool, error) {
	if !l.Started() {
		return nil, false, fmt.Errorf("lab is not initialized")
	}
	return l.store.GetFitnessHistory(ctx, runID)
}
