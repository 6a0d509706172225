package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/natserract/hubspot/propertysync/schema/postgres"
	"go.uber.org/zap"
)

// Sync run statuses
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusPartial   = "completed_with_errors"
	RunStatusFailed    = "failed"
)

// RunService records sync runs in sync_runs
type RunService struct {
	db     postgres.Querier
	logger *zap.Logger
}

// NewRunService creates a new run service
func NewRunService(db postgres.Querier, logger *zap.Logger) *RunService {
	return &RunService{
		db:     db,
		logger: logger,
	}
}

// StartRun inserts a running sync run and returns its id
func (r *RunService) StartRun(ctx context.Context) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO sync_runs (id, status, started_at) VALUES ($1, $2, now())`,
		id, RunStatusRunning)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create sync run: %w", err)
	}

	r.logger.Info("Created sync run", zap.String("run_id", id.String()))
	return id, nil
}

// CompleteRun stores the final status and counts of a run
func (r *RunService) CompleteRun(ctx context.Context, id uuid.UUID, status string, metrics *SyncMetrics) error {
	groupsSucceeded, groupsFailed, propsSucceeded, propsFailed := metrics.Snapshot()

	tag, err := r.db.Exec(ctx, `
UPDATE sync_runs
SET status = $2,
    groups_succeeded = $3,
    groups_failed = $4,
    properties_succeeded = $5,
    properties_failed = $6,
    finished_at = now()
WHERE id = $1`,
		id, status, groupsSucceeded, groupsFailed, propsSucceeded, propsFailed)
	if err != nil {
		return fmt.Errorf("failed to complete sync run %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("sync run %s not found", id)
	}
	return nil
}
