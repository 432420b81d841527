package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driving"
	"github.com/arkival-labs/arkival-cli/internal/logger"
)

// Ensure ExtractStage implements the interface.
var _ driving.Stage = (*ExtractStage)(nil)

// ExtractStage walks the prepared source tree and produces one
// processed DocumentRecord artifact per eligible file. It is gated by
// its own manifest: an unchanged file whose artifact still exists is
// skipped.
type ExtractStage struct {
	connector  driven.SourceConnector
	registry   driven.ExtractorRegistry
	store      driven.ArtifactStore
	manifests  driven.ManifestStore
	reconciler *Reconciler
}

// NewExtractStage creates the extract stage.
func NewExtractStage(
	connector driven.SourceConnector,
	registry driven.ExtractorRegistry,
	store driven.ArtifactStore,
	manifests driven.ManifestStore,
) *ExtractStage {
	return &ExtractStage{
		connector:  connector,
		registry:   registry,
		store:      store,
		manifests:  manifests,
		reconciler: NewReconciler(store, manifests.Filename()),
	}
}

// Name returns the stage name.
func (s *ExtractStage) Name() string { return "extract" }

// Run executes the stage. The new manifest is built from only the
// files present this run, so documents removed from the source set drop
// out and their artifacts are swept as orphans.
func (s *ExtractStage) Run(ctx context.Context) (*domain.StageSummary, error) {
	logger.Section("extract")

	files, err := s.connector.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source tree: %w", err)
	}

	old := s.manifests.Load()
	next := domain.Manifest{}
	summary := &domain.StageSummary{Stage: s.Name()}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !file.Kind.Eligible() || !s.registry.Supports(file.Kind) {
			logger.Debug("Skipping unsupported file: %s", file.RelPath)
			continue
		}

		outcome := s.processOne(ctx, file, old, next)
		summary.Record(outcome)
		if outcome.Err != nil {
			logger.Warn("Extract failed for %s (%s): %v", file.RelPath, outcome.Kind, outcome.Err)
		}
	}

	if err := s.manifests.Save(next); err != nil {
		logger.Warn("Could not save extract manifest: %v", err)
	}

	deleted, err := s.reconciler.Reconcile(next)
	if err != nil {
		logger.Warn("Extract reconciliation failed: %v", err)
	}
	summary.OrphansDeleted = deleted

	return summary, nil
}

// processOne handles a single source file, recording its entry in next
// on success. Failed files stay out of next so they are retried on the
// following run.
func (s *ExtractStage) processOne(
	ctx context.Context,
	file domain.SourceFile,
	old, next domain.Manifest,
) domain.ProcessOutcome {
	id := domain.Identifier(file.RelPath)

	raw, err := os.ReadFile(file.Path)
	if err != nil {
		return domain.Failed(id, domain.KindIO, fmt.Errorf("read source: %w", err))
	}

	rawHash := sha256.Sum256(raw)
	signature := Signature(
		map[string]any{
			"content_hash": hex.EncodeToString(rawHash[:]),
			"file_type":    domain.FileTypeOf(file.RelPath),
		},
		nil,
	)

	if Fresh(old, id, signature, s.store.Exists) {
		logger.Debug("Skipping (no changes, artifact exists): %s", file.RelPath)
		next[id] = old[id]
		return domain.ProcessOutcome{Identifier: id, Skipped: true}
	}
	if entry, ok := old[id]; ok {
		s.reconciler.PurgeEntry(entry)
	}

	text, err := s.registry.Extract(ctx, file.Path, file.Kind)
	if err != nil {
		return domain.Failed(id, domain.KindExtraction,
			fmt.Errorf("%w: %w", domain.ErrExtractionFailed, err))
	}

	record := domain.DocumentRecord{
		Identifier:      id,
		FileName:        filepath.Base(file.RelPath),
		FileType:        domain.FileTypeOf(file.RelPath),
		Text:            text,
		ContentHash:     TextHash(text),
		SourcePathInRaw: file.RelPath,
		ExtractedAt:     time.Now().UTC(),
	}

	artifact := id + ".json"
	if err := s.store.WriteJSON(artifact, &record); err != nil {
		return domain.Failed(id, domain.KindIO, err)
	}

	next[id] = domain.ManifestEntry{
		Signature:         signature,
		ArtifactFilenames: []string{artifact},
		LastProcessed:     time.Now().UTC(),
	}
	logger.Info("Extracted %s (%d chars)", file.RelPath, len(text))
	return domain.ProcessOutcome{Identifier: id, ArtifactNames: []string{artifact}}
}
