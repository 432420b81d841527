package driving

import (
	"context"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

// Stage is one manifest-gated pass over a document set.
type Stage interface {
	// Name returns the stage name for logging and summaries.
	Name() string

	// Run executes the stage: gate each candidate against the
	// manifest, process the stale ones, persist the manifest and
	// reconcile orphaned artifacts. A per-document failure never
	// aborts the stage.
	Run(ctx context.Context) (*domain.StageSummary, error)
}

// PipelineRunner executes the configured stages in order.
type PipelineRunner interface {
	// Run executes extract, classify (when configured) and chunk.
	Run(ctx context.Context) (*domain.RunSummary, error)
}

// Preparer normalises the raw source tree in place: archive expansion,
// legacy conversion, deferred deletions, filename normalisation.
type Preparer interface {
	// Prepare runs the preparation phases and returns a report of the
	// mutations made.
	Prepare(ctx context.Context) (*PrepareReport, error)
}

// PrepareReport lists the mutations a preparation pass made.
type PrepareReport struct {
	// ArchivesExpanded counts archives fully expanded (and deleted).
	ArchivesExpanded int

	// FilesConverted counts legacy files converted (and deleted).
	FilesConverted int

	// FilesRenamed counts names normalised to ASCII-safe form.
	FilesRenamed int

	// Errors counts non-fatal per-file failures.
	Errors int
}
