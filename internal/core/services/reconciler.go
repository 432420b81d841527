package services

import (
	"fmt"
	"strings"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
	"github.com/arkival-labs/arkival-cli/internal/logger"
)

// Reconciler keeps an artifact store consistent with its manifest. The
// manifest is authoritative; any artifact file it does not reference is
// an orphan and is deleted.
type Reconciler struct {
	store        driven.ArtifactStore
	manifestName string
}

// NewReconciler creates a reconciler for one stage's artifact store.
// manifestName is exempted from deletion.
func NewReconciler(store driven.ArtifactStore, manifestName string) *Reconciler {
	return &Reconciler{store: store, manifestName: manifestName}
}

// Reconcile deletes every artifact not referenced by any manifest entry
// and returns the number deleted. It must run once per pipeline
// invocation, after the new manifest is finalised - never mid-run -
// so it cannot delete artifacts a not-yet-committed document needs.
func (r *Reconciler) Reconcile(m domain.Manifest) (int, error) {
	keep := m.ArtifactNames()

	names, err := r.store.List()
	if err != nil {
		return 0, fmt.Errorf("list artifacts: %w", err)
	}

	deleted := 0
	for _, name := range names {
		if !strings.HasSuffix(name, ".json") || name == r.manifestName {
			continue
		}
		if keep[name] {
			continue
		}
		if err := r.store.Remove(name); err != nil {
			logger.Warn("Could not delete orphaned artifact %s: %v", name, err)
			continue
		}
		logger.Debug("Deleted orphaned artifact: %s", name)
		deleted++
	}
	return deleted, nil
}

// PurgeEntry pre-emptively deletes a stale entry's artifacts before the
// document is reprocessed, so partial old output never coexists with
// partial new output under ambiguous naming.
func (r *Reconciler) PurgeEntry(entry domain.ManifestEntry) {
	for _, name := range entry.ArtifactFilenames {
		if name == r.manifestName {
			continue
		}
		if err := r.store.Remove(name); err != nil {
			logger.Warn("Could not delete stale artifact %s: %v", name, err)
		}
	}
}
