package storage

import (
	"context"

	"github.com/Mklevns/aletheia-phenom/internal/model"
)

// Store defines transaction-like persistence operations for the run journal.
//
// ListRuns returns the most recent runs first; a limit of zero or less means
// all runs. GetDiscoveries returns discoveries in step order; a positive
// limit keeps only the most recent entries.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.RunRecord) error
	GetRun(ctx context.Context, id string) (model.RunRecord, bool, error)
	ListRuns(ctx context.Context, limit int) ([]model.RunRecord, error)
	AppendDiscoveries(ctx context.Context, runID string, discoveries []model.DiscoveryRecord) error
	GetDiscoveries(ctx context.Context, runID string, limit int) ([]model.DiscoveryRecord, bool, error)
	SaveTickStats(ctx context.Context, runID string, stats []model.TickStats) error
	GetTickStats(ctx context.Context, runID string) ([]model.TickStats, bool, error)
}
