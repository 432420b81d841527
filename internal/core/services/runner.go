package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driving"
	"github.com/arkival-labs/arkival-cli/internal/logger"
)

// Ensure Runner implements the interface.
var _ driving.PipelineRunner = (*Runner)(nil)

// Runner executes the configured stages in order. One run at a time:
// the manifest file and artifact directories are the only shared
// mutable resources, and they assume a single writer. Watch mode
// serialises reruns through the same mutex.
type Runner struct {
	mu     sync.Mutex
	stages []driving.Stage
}

// NewRunner creates a runner over the given stages, executed in order.
func NewRunner(stages ...driving.Stage) *Runner {
	return &Runner{stages: stages}
}

// Run executes every stage sequentially. A stage that declines to run
// (no classifier configured) is skipped; any other stage error stops
// the run, since later stages consume earlier stages' output.
func (r *Runner) Run(ctx context.Context) (*domain.RunSummary, error) {
	if !r.mu.TryLock() {
		return nil, domain.ErrRunInProgress
	}
	defer r.mu.Unlock()

	summary := &domain.RunSummary{RunID: uuid.New().String()}
	logger.Info("Starting run %s", summary.RunID)

	for _, stage := range r.stages {
		stageSummary, err := stage.Run(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrClassifierUnavailable) {
				logger.Info("Skipping %s stage: no classifier configured", stage.Name())
				continue
			}
			return summary, err
		}
		summary.Stages = append(summary.Stages, *stageSummary)
		logger.Info("Stage %s: %d processed, %d skipped, %d failed, %d orphans deleted",
			stage.Name(), stageSummary.Processed, stageSummary.Skipped,
			stageSummary.Failed, stageSummary.OrphansDeleted)
	}

	return summary, nil
}
