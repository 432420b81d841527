package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driving"
	"github.com/arkival-labs/arkival-cli/internal/logger"
	"github.com/arkival-labs/arkival-cli/internal/postprocessors"
)

// Ensure ChunkStage implements the interface.
var _ driving.Stage = (*ChunkStage)(nil)

// ChunkStage reduces classified documents to bounded, overlapping
// chunk artifacts. Its signature folds the document text, file type and
// every chunking parameter, so a parameter change reprocesses the whole
// corpus. Old chunk artifacts for a parent are purged before new ones
// are written, so a shrinking chunk count never leaves stale tails.
type ChunkStage struct {
	source     driven.ArtifactStore
	store      driven.ArtifactStore
	manifests  driven.ManifestStore
	pipeline   *postprocessors.Pipeline
	catalog    driven.ChunkCatalog
	reconciler *Reconciler
	settings   domain.Settings
}

// NewChunkStage creates the chunk stage. source is the classified (or,
// without a classifier, processed) artifact store; catalog may be nil.
func NewChunkStage(
	source driven.ArtifactStore,
	store driven.ArtifactStore,
	manifests driven.ManifestStore,
	pipeline *postprocessors.Pipeline,
	catalog driven.ChunkCatalog,
	settings domain.Settings,
) *ChunkStage {
	return &ChunkStage{
		source:     source,
		store:      store,
		manifests:  manifests,
		pipeline:   pipeline,
		catalog:    catalog,
		reconciler: NewReconciler(store, manifests.Filename()),
		settings:   settings,
	}
}

// Name returns the stage name.
func (s *ChunkStage) Name() string { return "chunk" }

// Run executes the stage over every source record.
func (s *ChunkStage) Run(ctx context.Context) (*domain.StageSummary, error) {
	logger.Section("chunk")

	names, err := s.source.List()
	if err != nil {
		return nil, fmt.Errorf("list source records: %w", err)
	}

	old := s.manifests.Load()
	next := domain.Manifest{}
	summary := &domain.StageSummary{Stage: s.Name()}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if name == s.manifests.Filename() || name == domain.ManifestFilename {
			continue
		}

		outcome := s.processOne(ctx, name, old, next)
		summary.Record(outcome)
		if outcome.Err != nil {
			logger.Warn("Chunking failed for %s (%s): %v", name, outcome.Kind, outcome.Err)
		}
	}

	if err := s.manifests.Save(next); err != nil {
		logger.Warn("Could not save chunk manifest: %v", err)
	}

	deleted, err := s.reconciler.Reconcile(next)
	if err != nil {
		logger.Warn("Chunk reconciliation failed: %v", err)
	}
	summary.OrphansDeleted = deleted

	s.pruneCatalog(ctx, old, next)

	return summary, nil
}

// processOne chunks one document record.
func (s *ChunkStage) processOne(
	ctx context.Context,
	name string,
	old, next domain.Manifest,
) domain.ProcessOutcome {
	var record domain.DocumentRecord
	if err := s.source.ReadJSON(name, &record); err != nil {
		return domain.Failed(name, domain.KindDecode, err)
	}
	id := record.Identifier
	if id == "" {
		id = strings.TrimSuffix(name, ".json")
		record.Identifier = id
	}

	signature := ChunkSignature(&record, s.settings)
	if Fresh(old, id, signature, s.store.Exists) {
		logger.Debug("Skipping (no changes, chunks exist): %s", name)
		next[id] = old[id]
		return domain.ProcessOutcome{Identifier: id, Skipped: true}
	}

	// Pre-emptive cleanup: stale chunks for this parent go before any
	// new ones are written.
	if entry, ok := old[id]; ok {
		logger.Debug("Purging %d stale chunks for %s", len(entry.ArtifactFilenames), name)
		s.reconciler.PurgeEntry(entry)
	}

	chunks, strategy, err := s.pipeline.ChunksFor(&record)
	if err != nil {
		return domain.Failed(id, domain.KindDecode, err)
	}

	written := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		filename := postprocessors.ChunkFilename(chunk.ChunkID)
		if err := s.store.WriteJSON(filename, &chunk); err != nil {
			// Partial output stays unmanifested; the next run purges
			// it via reconciliation and retries the document.
			return domain.Failed(id, domain.KindIO, err)
		}
		written = append(written, filename)
	}

	next[id] = domain.ManifestEntry{
		Signature:         signature,
		ArtifactFilenames: written,
		LastProcessed:     time.Now().UTC(),
	}

	if s.catalog != nil {
		if err := s.catalog.UpsertDocument(ctx, &record, len(chunks)); err != nil {
			logger.Warn("Catalog update failed for %s: %v", id, err)
		} else if err := s.catalog.ReplaceChunks(ctx, id, chunks); err != nil {
			logger.Warn("Catalog chunk replace failed for %s: %v", id, err)
		}
	}

	logger.Info("Generated %d chunks for %s (%s)", len(chunks), name, strategy)
	return domain.ProcessOutcome{Identifier: id, ArtifactNames: written, Chunks: len(chunks)}
}

// pruneCatalog drops catalog rows for documents that left the source
// set this run.
func (s *ChunkStage) pruneCatalog(ctx context.Context, old, next domain.Manifest) {
	if s.catalog == nil {
		return
	}
	for id := range old {
		if _, ok := next[id]; ok {
			continue
		}
		if err := s.catalog.DeleteDocument(ctx, id); err != nil {
			logger.Warn("Catalog prune failed for %s: %v", id, err)
		}
	}
}
