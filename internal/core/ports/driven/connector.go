package driven

import (
	"context"

	"github.com/arkival-labs/arkival-cli/internal/core/domain"
)

// SourceConnector enumerates the prepared source tree. Files are
// yielded in directory-listing order; no ordering is guaranteed between
// independent documents.
type SourceConnector interface {
	// List walks the tree and returns every file beneath it, eligible
	// or not; the caller filters by kind.
	List(ctx context.Context) ([]domain.SourceFile, error)

	// Root returns the tree root for logging.
	Root() string
}

// SourceWatcher extends a connector with change notification for watch
// mode. Events are debounced by the caller.
type SourceWatcher interface {
	SourceConnector

	// Watch invokes notify for every change beneath the root until ctx
	// is cancelled.
	Watch(ctx context.Context, notify func(path string)) error
}

// LegacyConverter converts a legacy-format file to its modern
// equivalent during preparation.
type LegacyConverter interface {
	// CanConvert reports whether path is a legacy format this
	// converter handles (e.g. .doc, .xls, .ppt).
	CanConvert(path string) bool

	// Convert writes the modern sibling of src and returns its path.
	// The original is only deleted by the caller on confirmed success.
	Convert(ctx context.Context, src string) (dst string, err error)
}
