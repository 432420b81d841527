// Package extract provides the text-extraction adapters and the kind
// registry that dispatches to them.
package extract

import (
	"context"
	"fmt"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
	"github.com/arkival-labs/arkival-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry dispatches extraction to the adapter registered for a file
// kind. Later registrations for the same kind win, so a caller can
// override a default adapter.
type Registry struct {
	byKind map[domain.FileKind]driven.TextExtractor
}

// NewRegistry creates a registry over the given extractors.
func NewRegistry(extractors ...driven.TextExtractor) *Registry {
	r := &Registry{byKind: make(map[domain.FileKind]driven.TextExtractor)}
	for _, e := range extractors {
		r.Register(e)
	}
	return r
}

// Register adds an extractor for every kind it reports.
func (r *Registry) Register(e driven.TextExtractor) {
	for _, kind := range e.Kinds() {
		r.byKind[kind] = e
	}
}

// Supports reports whether any extractor handles kind.
func (r *Registry) Supports(kind domain.FileKind) bool {
	_, ok := r.byKind[kind]
	return ok
}

// Extract dispatches to the registered extractor for kind.
func (r *Registry) Extract(ctx context.Context, path string, kind domain.FileKind) (string, error) {
	e, ok := r.byKind[kind]
	if !ok {
		return "", fmt.Errorf("%w: no extractor for %s", domain.ErrUnsupportedType, kind)
	}
	return e.Extract(ctx, path, kind)
}

// Defaults returns the registry with the standard adapters: plain text,
// docconv for parsed binary documents, and the tabular renderer.
func Defaults() *Registry {
	return NewRegistry(
		NewPlainText(),
		NewDocconv(false),
		NewTabular(),
	)
}
