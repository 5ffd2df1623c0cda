package storage

import (
	"context"

	"phylon/internal/model"
)

// Store persists run records and per-run fitness histories. Persistence
// only observes evolution runs; nothing read from a Store ever feeds
// back into a running engine.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]model.RunRecord, error)
	SaveFitnessHistory(ctx context.Context, runID string, history []float64) error
	GetFitnessHistory(ctx context.Context, runID string) ([]float64, bool, error)
}
