package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driving"
	"github.com/arkival-labs/arkival-cli/internal/logger"
)

// Ensure ClassifyStage implements the interface.
var _ driving.Stage = (*ClassifyStage)(nil)

// ClassifyStage attaches structured labels to processed documents.
// Freshness keys off the sha256 of the extracted text alone: an
// unchanged document whose classified artifact still exists is never
// re-sent to the model.
type ClassifyStage struct {
	classifier driven.Classifier
	source     driven.ArtifactStore
	store      driven.ArtifactStore
	manifests  driven.ManifestStore
	reconciler *Reconciler
	maxChars   int
}

// NewClassifyStage creates the classify stage. source is the processed
// artifact store; store receives the classified records.
func NewClassifyStage(
	classifier driven.Classifier,
	source driven.ArtifactStore,
	store driven.ArtifactStore,
	manifests driven.ManifestStore,
	maxChars int,
) *ClassifyStage {
	return &ClassifyStage{
		classifier: classifier,
		source:     source,
		store:      store,
		manifests:  manifests,
		reconciler: NewReconciler(store, manifests.Filename()),
		maxChars:   maxChars,
	}
}

// Name returns the stage name.
func (s *ClassifyStage) Name() string { return "classify" }

// Run executes the stage over every processed record.
func (s *ClassifyStage) Run(ctx context.Context) (*domain.StageSummary, error) {
	if s.classifier == nil {
		return nil, domain.ErrClassifierUnavailable
	}
	logger.Section("classify")

	names, err := s.source.List()
	if err != nil {
		return nil, fmt.Errorf("list processed records: %w", err)
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
			logger.Warn("Classification failed for %s (%s): %v", name, outcome.Kind, outcome.Err)
		}
	}

	if err := s.manifests.Save(next); err != nil {
		logger.Warn("Could not save classification manifest: %v", err)
	}

	deleted, err := s.reconciler.Reconcile(next)
	if err != nil {
		logger.Warn("Classification reconciliation failed: %v", err)
	}
	summary.OrphansDeleted = deleted

	return summary, nil
}

// processOne classifies one processed record. Records with no text are
// copied through with a skip status; they are manifested so the
// reconciler keeps them, but no model call is made.
func (s *ClassifyStage) processOne(
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
	}

	signature := TextHash(record.Text)
	if Fresh(old, id, signature, s.store.Exists) {
		logger.Debug("Skipping (text unchanged, output exists): %s", name)
		next[id] = old[id]
		return domain.ProcessOutcome{Identifier: id, Skipped: true}
	}
	if entry, ok := old[id]; ok {
		s.reconciler.PurgeEntry(entry)
	}

	if strings.TrimSpace(record.Text) == "" {
		record.ClassificationStatus = domain.ClassificationSkippedEmpty
		return s.commit(id, name, signature, &record, next)
	}

	text := record.Text
	if s.maxChars > 0 && len(text) > s.maxChars {
		logger.Debug("Truncating %s from %d to %d chars for classification", name, len(text), s.maxChars)
		text = text[:s.maxChars]
	}

	labels, err := s.classifier.Classify(ctx, text)
	if err != nil {
		// The failure is recorded on the artifact so reviewers can see
		// it, but manifested under an empty signature: the gate can
		// never match it, so the document is retried next run.
		var parseErr *driven.ParseError
		if errors.As(err, &parseErr) {
			record.ClassificationStatus = domain.ClassificationParseError
		} else {
			record.ClassificationStatus = domain.ClassificationCallFailed
		}
		if werr := s.store.WriteJSON(name, &record); werr == nil {
			next[id] = domain.ManifestEntry{
				Signature:         "",
				ArtifactFilenames: []string{name},
				LastProcessed:     time.Now().UTC(),
			}
		}
		return domain.Failed(id, domain.KindClassification, err)
	}

	record.Classifications = labels
	record.ClassificationStatus = domain.ClassificationSuccess
	return s.commit(id, name, signature, &record, next)
}

// commit writes the classified record and its manifest entry.
func (s *ClassifyStage) commit(
	id, name, signature string,
	record *domain.DocumentRecord,
	next domain.Manifest,
) domain.ProcessOutcome {
	if err := s.store.WriteJSON(name, record); err != nil {
		return domain.Failed(id, domain.KindIO, err)
	}
	next[id] = domain.ManifestEntry{
		Signature:         signature,
		ArtifactFilenames: []string{name},
		LastProcessed:     time.Now().UTC(),
	}
	return domain.ProcessOutcome{Identifier: id, ArtifactNames: []string{name}}
}
