package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/natserract/hubspot/pkg/hubspot"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// GroupSource is the part of the HubSpot client the sync reads from.
type GroupSource interface {
	GetGroups(ctx context.Context, includeProperties bool) ([]hubspot.Group, error)
}

// SyncMetrics tracks the overall sync operation metrics
type SyncMetrics struct {
	GroupsSucceeded     int
	GroupsFailed        int
	PropertiesSucceeded int
	PropertiesFailed    int
	mu                  sync.Mutex
}

// AddGroupSuccess increments the groups succeeded count
func (m *SyncMetrics) AddGroupSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GroupsSucceeded++
}

// AddGroupFailure increments the groups failed count
func (m *SyncMetrics) AddGroupFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GroupsFailed++
}

// AddProperties adds the result of one group's property batch
func (m *SyncMetrics) AddProperties(succeeded, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PropertiesSucceeded += succeeded
	m.PropertiesFailed += failed
}

// Snapshot returns the current counts
func (m *SyncMetrics) Snapshot() (groupsSucceeded, groupsFailed, propertiesSucceeded, propertiesFailed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GroupsSucceeded, m.GroupsFailed, m.PropertiesSucceeded, m.PropertiesFailed
}

// TotalSucceeded returns the total number of succeeded operations
func (m *SyncMetrics) TotalSucceeded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GroupsSucceeded + m.PropertiesSucceeded
}

// TotalFailed returns the total number of failed operations
func (m *SyncMetrics) TotalFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.GroupsFailed + m.PropertiesFailed
}

// SyncService copies a portal's contact property groups and their
// properties into Postgres, tracking each run in sync_runs
type SyncService struct {
	client        GroupSource
	groupSvc      *GroupService
	runSvc        *RunService
	maxGoroutines int
	logger        *zap.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(client GroupSource, groupSvc *GroupService, runSvc *RunService, logger *zap.Logger) *SyncService {
	return &SyncService{
		client:        client,
		groupSvc:      groupSvc,
		runSvc:        runSvc,
		maxGoroutines: 10,
		logger:        logger,
	}
}

// SyncAll fetches every group with its properties and saves them. A group
// that fails to save is counted and logged; the run carries on with the
// others. The returned run id identifies the sync_runs row.
func (s *SyncService) SyncAll(ctx context.Context) (uuid.UUID, *SyncMetrics, error) {
	startTime := time.Now()
	metrics := &SyncMetrics{}

	runID, err := s.runSvc.StartRun(ctx)
	if err != nil {
		return uuid.Nil, metrics, err
	}
	s.logger.Info("Starting property sync", zap.String("run_id", runID.String()))

	groups, err := s.client.GetGroups(ctx, true)
	if err != nil {
		s.finish(ctx, runID, RunStatusFailed, metrics)
		return runID, metrics, fmt.Errorf("failed to fetch groups: %w", err)
	}

	s.logger.Info("Fetched groups", zap.Int("items_count", len(groups)))

	groupPool := pool.New().WithMaxGoroutines(s.maxGoroutines).WithErrors()
	for _, group := range groups {
		groupPool.Go(func() error {
			return s.SyncGroup(ctx, group, metrics)
		})
	}
	// Failures are already counted per group.
	_ = groupPool.Wait()

	status := RunStatusCompleted
	if metrics.TotalFailed() > 0 {
		status = RunStatusPartial
	}
	s.finish(ctx, runID, status, metrics)

	s.logger.Info("Completed property sync",
		zap.String("run_id", runID.String()),
		zap.String("status", status),
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("groups_succeeded", metrics.GroupsSucceeded),
		zap.Int("groups_failed", metrics.GroupsFailed),
		zap.Int("properties_succeeded", metrics.PropertiesSucceeded),
		zap.Int("properties_failed", metrics.PropertiesFailed))

	return runID, metrics, nil
}

// SyncGroup saves one group and then its properties
func (s *SyncService) SyncGroup(ctx context.Context, group hubspot.Group, metrics *SyncMetrics) error {
	if err := s.groupSvc.SaveGroup(ctx, group); err != nil {
		metrics.AddGroupFailure()
		metrics.AddProperties(0, len(group.Properties))
		return err
	}
	metrics.AddGroupSuccess()

	if err := s.groupSvc.SaveProperties(ctx, group); err != nil {
		metrics.AddProperties(0, len(group.Properties))
		s.logger.Warn("Failed to save properties of group",
			zap.String("group_name", group.Name),
			zap.Error(err))
		return err
	}
	metrics.AddProperties(len(group.Properties), 0)

	s.logger.Info("Saved group",
		zap.String("group_name", group.Name),
		zap.Int("properties", len(group.Properties)))
	return nil
}

func (s *SyncService) finish(ctx context.Context, runID uuid.UUID, status string, metrics *SyncMetrics) {
	if err := s.runSvc.CompleteRun(ctx, runID, status, metrics); err != nil {
		s.logger.Warn("Failed to complete sync run",
			zap.String("run_id", runID.String()),
			zap.Error(err))
	}
}
