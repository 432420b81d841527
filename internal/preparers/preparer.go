// Package preparers normalises a raw source tree before extraction:
// archive expansion, legacy-format conversion, deferred deletion of
// consumed originals, and ASCII filename normalisation.
//
// The phases are discrete, each with explicit inputs and outputs:
// archives are expanded first, legacy files converted second, confirmed
// originals deleted third, and names normalised last - so the rename
// pass sees the final file set.
package preparers

import (
	"context"
	"fmt"
	"os"

	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driving"
	"github.com/arkival-labs/arkival-cli/internal/logger"
)

// Ensure Preparer implements the interface.
var _ driving.Preparer = (*Preparer)(nil)

// Preparer mutates the raw tree in place. It is the only pipeline
// component with filesystem side effects outside the artifact
// directories, which is why preparation is an explicit command rather
// than part of every run.
type Preparer struct {
	root      string
	converter driven.LegacyConverter
}

// New creates a preparer for the tree at root. converter may be nil,
// which disables the legacy-conversion phase.
func New(root string, converter driven.LegacyConverter) *Preparer {
	return &Preparer{root: root, converter: converter}
}

// Prepare runs the four phases in order. Per-file failures are logged
// and counted, never fatal: a stuck archive or rename leaves the rest
// of the tree prepared.
func (p *Preparer) Prepare(ctx context.Context) (*driving.PrepareReport, error) {
	if _, err := os.Stat(p.root); err != nil {
		return nil, fmt.Errorf("source tree %s: %w", p.root, err)
	}

	report := &driving.PrepareReport{}

	expanded, err := p.expandArchives(ctx, report)
	if err != nil {
		return report, err
	}

	converted, err := p.convertLegacy(ctx, report)
	if err != nil {
		return report, err
	}

	// Deferred deletions: only archives that fully expanded and legacy
	// files whose conversion was confirmed.
	for _, path := range append(expanded, converted...) {
		if err := os.Remove(path); err != nil {
			logger.Warn("Could not delete consumed original %s: %v", path, err)
			report.Errors++
		}
	}

	if err := p.normaliseNames(ctx, report); err != nil {
		return report, err
	}

	return report, nil
}
