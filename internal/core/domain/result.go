package domain

// ProcessOutcome is the per-file result of a pipeline stage. Failures
// are values, not panics: the orchestrator aggregates outcomes and a
// failed file never aborts the batch.
type ProcessOutcome struct {
	// Identifier is the document the outcome belongs to.
	Identifier string

	// Skipped is true when the manifest gate found the entry fresh.
	Skipped bool

	// ArtifactNames lists the artifacts written for this document.
	ArtifactNames []string

	// Chunks is the number of chunk records produced (chunk stage only).
	Chunks int

	// Err is the failure, nil on success. A failed document is excluded
	// from the new manifest so it is retried on the next run.
	Err error

	// Kind buckets the failure for the summary.
	Kind ErrorKind
}

// Ok reports whether the outcome is a success (processed or skipped).
func (o ProcessOutcome) Ok() bool {
	return o.Err == nil
}

// Failed constructs a failure outcome.
func Failed(id string, kind ErrorKind, err error) ProcessOutcome {
	return ProcessOutcome{Identifier: id, Kind: kind, Err: err}
}

// StageSummary aggregates one stage's outcomes for the run report.
type StageSummary struct {
	// Stage is the stage name: "extract", "classify" or "chunk".
	Stage string

	// Found is the number of candidate documents encountered.
	Found int

	// Processed counts documents (re)processed this run.
	Processed int

	// Skipped counts documents whose manifest entry was fresh.
	Skipped int

	// Failed counts documents that errored and were excluded from the
	// new manifest.
	Failed int

	// Artifacts counts artifact files written this run.
	Artifacts int

	// OrphansDeleted counts artifact files removed by reconciliation.
	OrphansDeleted int
}

// Record folds one outcome into the summary.
func (s *StageSummary) Record(o ProcessOutcome) {
	s.Found++
	switch {
	case o.Err != nil:
		s.Failed++
	case o.Skipped:
		s.Skipped++
	default:
		s.Processed++
		s.Artifacts += len(o.ArtifactNames)
	}
}

// RunSummary aggregates a full pipeline run.
type RunSummary struct {
	// RunID uniquely identifies the run in logs.
	RunID string

	// Stages holds per-stage summaries in execution order.
	Stages []StageSummary
}

// TotalFailed sums failures across stages.
func (r *RunSummary) TotalFailed() int {
	n := 0
	for _, s := range r.Stages {
		n += s.Failed
	}
	return n
}
